package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobhub-dev/jobhub/backend/internal/auth"
	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterSetsCookieAndReturnsUser(t *testing.T) {
	h, store := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "alice@example.com",
		"password": "secret123",
		"name":     "Alice",
		"role":     "EMPLOYER",
		"company":  "Acme",
	})
	requireStatus(t, rr, http.StatusCreated)

	cookie := findCookie(rr, auth.CookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected an auth cookie on the register response")
	}
	if !cookie.HttpOnly {
		t.Error("expected the auth cookie to be http-only")
	}

	var resp struct {
		User domain.User `json:"user"`
	}
	decodeBody(t, rr, &resp)
	if resp.User.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", resp.User.Email)
	}
	if resp.User.Role != domain.RoleEmployer {
		t.Errorf("expected role EMPLOYER, got %q", resp.User.Role)
	}
	if resp.User.ID == 0 {
		t.Error("expected the created user to have an id")
	}

	stored, err := store.GetUserByID(resp.User.ID)
	if err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
	if stored.PasswordHash == "secret123" {
		t.Error("password must be stored hashed, not in plain text")
	}
}

func TestRegisterNeverEchoesPasswordHash(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "bob@example.com",
		"password": "secret123",
		"name":     "Bob",
		"role":     "JOB_SEEKER",
	})
	requireStatus(t, rr, http.StatusCreated)

	var raw map[string]map[string]any
	decodeBody(t, rr, &raw)
	if _, ok := raw["user"]["passwordHash"]; ok {
		t.Error("response must not contain the password hash")
	}
	if _, ok := raw["user"]["password_hash"]; ok {
		t.Error("response must not contain the password hash")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, store := newTestHandler(t)
	seedUser(t, store, domain.RoleJobSeeker, "taken@example.com", "secret123")

	rr := doRequest(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "taken@example.com",
		"password": "secret123",
		"name":     "Imposter",
		"role":     "JOB_SEEKER",
	})
	requireStatus(t, rr, http.StatusBadRequest)
	if msg := bodyMessage(t, rr); msg != "User already exists" {
		t.Errorf("expected message %q, got %q", "User already exists", msg)
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "not-an-email",
		"password": "123", // too short
		"role":     "SUPERUSER",
	})
	requireStatus(t, rr, http.StatusBadRequest)

	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	decodeBody(t, rr, &resp)

	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"email", "password", "name", "role"} {
		if !fields[want] {
			t.Errorf("expected a validation error for field %q, got %v", want, fields)
		}
	}
}

func TestLoginRoundTrip(t *testing.T) {
	h, store := newTestHandler(t)
	seedUser(t, store, domain.RoleJobSeeker, "carol@example.com", "secret123")

	rr := doRequest(t, h, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "carol@example.com",
		"password": "secret123",
	})
	requireStatus(t, rr, http.StatusOK)

	cookie := findCookie(rr, auth.CookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected an auth cookie on the login response")
	}

	// the cookie from login must authenticate /me
	rr = doRequest(t, h, http.MethodGet, "/api/auth/me", nil, cookie)
	requireStatus(t, rr, http.StatusOK)

	var resp struct {
		User domain.User `json:"user"`
	}
	decodeBody(t, rr, &resp)
	if resp.User.Email != "carol@example.com" {
		t.Errorf("expected email carol@example.com, got %q", resp.User.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, store := newTestHandler(t)
	seedUser(t, store, domain.RoleJobSeeker, "dave@example.com", "secret123")

	rr := doRequest(t, h, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "dave@example.com",
		"password": "wrong-password",
	})
	requireStatus(t, rr, http.StatusBadRequest)
	if msg := bodyMessage(t, rr); msg != "Invalid credentials" {
		t.Errorf("expected message %q, got %q", "Invalid credentials", msg)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	requireStatus(t, rr, http.StatusBadRequest)
	if msg := bodyMessage(t, rr); msg != "Invalid credentials" {
		t.Errorf("expected message %q, got %q", "Invalid credentials", msg)
	}
}

func TestMeWithoutCookie(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/api/auth/me", nil)
	requireStatus(t, rr, http.StatusUnauthorized)
	if msg := bodyMessage(t, rr); msg != "Unauthorized" {
		t.Errorf("expected message %q, got %q", "Unauthorized", msg)
	}
}

func TestMeWithGarbageToken(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/api/auth/me", nil, &http.Cookie{Name: auth.CookieName, Value: "not-a-token"})
	requireStatus(t, rr, http.StatusUnauthorized)
}

func TestLogoutExpiresCookie(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := doRequest(t, h, http.MethodPost, "/api/auth/logout", nil)
	requireStatus(t, rr, http.StatusOK)
	if msg := bodyMessage(t, rr); msg != "Logged out successfully" {
		t.Errorf("expected message %q, got %q", "Logged out successfully", msg)
	}

	cookie := findCookie(rr, auth.CookieName)
	if cookie == nil {
		t.Fatal("expected a cookie clearing the credential")
	}
	if cookie.Value != "" {
		t.Errorf("expected the cleared cookie to be empty, got %q", cookie.Value)
	}
}

func TestAuthRateLimit(t *testing.T) {
	h, store := newTestHandler(t)
	seedUser(t, store, domain.RoleJobSeeker, "erin@example.com", "secret123")

	body := map[string]any{"email": "erin@example.com", "password": "wrong-password"}

	// the limiter allows 10 requests per window from one address
	for i := 0; i < 10; i++ {
		rr := doRequest(t, h, http.MethodPost, "/api/auth/login", body)
		requireStatus(t, rr, http.StatusBadRequest)
	}

	rr := doRequest(t, h, http.MethodPost, "/api/auth/login", body)
	requireStatus(t, rr, http.StatusTooManyRequests)
}
