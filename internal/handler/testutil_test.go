package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobhub-dev/jobhub/backend/internal/auth"
	"github.com/jobhub-dev/jobhub/backend/internal/config"
	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

// memStore is an in-memory Store used to drive the handlers without a
// database. Lookups that find nothing return sql.ErrNoRows, matching the
// repository.
type memStore struct {
	users  map[int64]*domain.User
	jobs   map[int64]*domain.Job
	apps   map[int64]*domain.Application
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		users: map[int64]*domain.User{},
		jobs:  map[int64]*domain.Job{},
		apps:  map[int64]*domain.Application{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(user *domain.User) error {
	user.ID = m.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return nil
}

func (m *memStore) GetUserByID(id int64) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) GetUserByEmail(email string) (*domain.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) GetAllUsers() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memStore) UpdateUser(user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memStore) CreateJob(job *domain.Job) error {
	job.ID = m.id()
	if job.RateType == "" {
		job.RateType = domain.RateTypeFixed
	}
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	m.jobs[job.ID] = job
	return nil
}

func (m *memStore) GetJobByID(id int64) (*domain.Job, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if employer, ok := m.users[job.EmployerID]; ok {
		job.Employer = &domain.JobEmployer{ID: employer.ID, Name: employer.Name, Company: employer.Company, Email: employer.Email}
	}
	return job, nil
}

func (m *memStore) GetJobForEmployer(id int64, employerID int64) (*domain.Job, error) {
	job, ok := m.jobs[id]
	if !ok || job.EmployerID != employerID {
		return nil, sql.ErrNoRows
	}
	return job, nil
}

func (m *memStore) UpdateJob(job *domain.Job) error {
	if _, ok := m.jobs[job.ID]; !ok {
		return sql.ErrNoRows
	}
	job.UpdatedAt = time.Now()
	m.jobs[job.ID] = job
	return nil
}

func (m *memStore) DeleteJob(id int64) error {
	delete(m.jobs, id)
	return nil
}

func (m *memStore) ListJobs(filter domain.JobFilter) ([]*domain.Job, int64, error) {
	matched := make([]*domain.Job, 0)
	for _, job := range m.jobs {
		if job.Status != domain.JobStatusActive {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(job.Title), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(job.Description), strings.ToLower(filter.Search)) {
			continue
		}
		if len(filter.Skills) > 0 && !hasAnySkill(job.RequiredSkills, filter.Skills) {
			continue
		}
		if filter.Location != "" {
			if job.Location == nil || !strings.Contains(strings.ToLower(job.Location.City), strings.ToLower(filter.Location)) {
				continue
			}
		}
		matched = append(matched, job)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func hasAnySkill(have []string, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func (m *memStore) GetJobsByEmployer(employerID int64) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)
	for _, job := range m.jobs {
		if job.EmployerID == employerID {
			jobs = append(jobs, job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID > jobs[j].ID })
	return jobs, nil
}

func (m *memStore) CreateApplication(app *domain.Application) error {
	app.ID = m.id()
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	m.apps[app.ID] = app
	return nil
}

func (m *memStore) GetApplicationByID(id int64) (*domain.Application, error) {
	if app, ok := m.apps[id]; ok {
		return app, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) HasApplied(jobID int64, jobSeekerID int64) (bool, error) {
	for _, app := range m.apps {
		if app.JobID == jobID && app.JobSeekerID == jobSeekerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetApplicationsByJob(jobID int64) ([]*domain.Application, error) {
	apps := make([]*domain.Application, 0)
	for _, app := range m.apps {
		if app.JobID != jobID {
			continue
		}
		if seeker, ok := m.users[app.JobSeekerID]; ok {
			app.JobSeeker = &domain.Applicant{ID: seeker.ID, Name: seeker.Name, Email: seeker.Email, Bio: seeker.Bio, Skills: seeker.Skills, PortfolioLink: seeker.PortfolioLink}
		}
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID > apps[j].ID })
	return apps, nil
}

func (m *memStore) GetApplicationsByJobSeeker(jobSeekerID int64) ([]*domain.Application, error) {
	apps := make([]*domain.Application, 0)
	for _, app := range m.apps {
		if app.JobSeekerID != jobSeekerID {
			continue
		}
		app.Job = m.jobs[app.JobID]
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID > apps[j].ID })
	return apps, nil
}

func (m *memStore) UpdateApplicationStatus(app *domain.Application) error {
	if _, ok := m.apps[app.ID]; !ok {
		return sql.ErrNoRows
	}
	app.UpdatedAt = time.Now()
	m.apps[app.ID] = app
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Environment = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.RateLimit.MaxRequests = 10
	cfg.RateLimit.Window = 900
	return cfg
}

func newTestHandler(t *testing.T) (*Handler, *memStore) {
	t.Helper()

	store := newMemStore()
	h, err := NewHandler(testConfig(), store, nil, nil)
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	h.RegisterRoutes()
	return h, store
}

// seedUser inserts a user directly into the store, bypassing the register
// endpoint so tests don't spend rate-limit budget on setup.
func seedUser(t *testing.T, store *memStore, role domain.Role, email string, password string) *domain.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Role:         role,
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         strings.Split(email, "@")[0],
	}
	if role == domain.RoleEmployer {
		user.Company = "Test Company"
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedJob(t *testing.T, store *memStore, employerID int64, status domain.JobStatus) *domain.Job {
	t.Helper()

	job := &domain.Job{
		EmployerID:     employerID,
		Title:          "Backend Developer",
		Description:    "Build APIs",
		RequiredSkills: []string{"Go", "PostgreSQL"},
		Budget:         5000,
		RateType:       domain.RateTypeFixed,
		Deadline:       time.Now().Add(30 * 24 * time.Hour),
		Status:         status,
	}
	if err := store.CreateJob(job); err != nil {
		t.Fatalf("failed to seed job: %v", err)
	}
	return job
}

func authCookie(t *testing.T, h *Handler, user *domain.User) *http.Cookie {
	t.Helper()

	tokenString, err := auth.IssueToken(h.config.JWT.Secret, user.ID, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: tokenString}
}

func doRequest(t *testing.T, h *Handler, method string, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	h.Mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func bodyMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rr, &resp)
	return resp.Message
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func requireStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rr.Code != want {
		t.Fatalf("expected status %d, got %d (body: %s)", want, rr.Code, rr.Body.String())
	}
}
