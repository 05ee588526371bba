package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

func (r *Repository) CreateJob(job *domain.Job) error {
	query := `
		INSERT INTO jobs (employer_id, title, description, required_skills, budget, rate_type, location, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, updated_at
	`

	skills, err := marshalSkills(job.RequiredSkills)
	if err != nil {
		return err
	}
	location, err := marshalLocation(job.Location)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{job.EmployerID, job.Title, job.Description, skills, job.Budget, job.RateType, location, job.Deadline}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.Status, &job.CreatedAt, &job.UpdatedAt)
}

const jobColumns = `j.id, j.employer_id, j.title, j.description, j.required_skills, j.budget, j.rate_type, j.location, j.deadline, j.status, j.created_at, j.updated_at`

func (r *Repository) scanJobRow(row interface{ Scan(dest ...any) error }, job *domain.Job, withEmployer bool) error {
	var skills, location []byte

	dst := []any{&job.ID, &job.EmployerID, &job.Title, &job.Description, &skills, &job.Budget, &job.RateType, &location, &job.Deadline, &job.Status, &job.CreatedAt, &job.UpdatedAt}
	if withEmployer {
		job.Employer = &domain.JobEmployer{}
		dst = append(dst, &job.Employer.ID, &job.Employer.Name, &job.Employer.Company, &job.Employer.Email)
	}
	if err := row.Scan(dst...); err != nil {
		return err
	}

	var err error
	if job.RequiredSkills, err = unmarshalSkills(skills); err != nil {
		return err
	}
	if job.Location, err = unmarshalLocation(location); err != nil {
		return err
	}

	return nil
}

// GetJobByID resolves the owning employer's public fields alongside the job.
func (r *Repository) GetJobByID(id int64) (*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `, u.id, u.name, u.company, u.email
		FROM jobs j
		JOIN users u ON u.id = j.employer_id
		WHERE j.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	job := &domain.Job{}
	if err := r.scanJobRow(r.dbpool.QueryRowContext(ctx, query, id), job, true); err != nil {
		return nil, err
	}

	return job, nil
}

// GetJobForEmployer is the ownership-scoped lookup: it only finds the job when
// it belongs to the given employer, so "not mine" and "not found" are the same
// sql.ErrNoRows to the caller.
func (r *Repository) GetJobForEmployer(id int64, employerID int64) (*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j
		WHERE j.id = $1 AND j.employer_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	job := &domain.Job{}
	if err := r.scanJobRow(r.dbpool.QueryRowContext(ctx, query, id, employerID), job, false); err != nil {
		return nil, err
	}

	return job, nil
}

func (r *Repository) UpdateJob(job *domain.Job) error {
	query := `
		UPDATE jobs
		SET
			title = $1,
			description = $2,
			required_skills = $3,
			budget = $4,
			rate_type = $5,
			location = $6,
			deadline = $7,
			status = $8,
			updated_at = now()
		WHERE id = $9
		RETURNING updated_at
	`

	skills, err := marshalSkills(job.RequiredSkills)
	if err != nil {
		return err
	}
	location, err := marshalLocation(job.Location)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{job.Title, job.Description, skills, job.Budget, job.RateType, location, job.Deadline, job.Status, job.ID}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.UpdatedAt)
}

func (r *Repository) DeleteJob(id int64) error {
	query := `DELETE FROM jobs WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// ListJobs returns the page of ACTIVE jobs matching the filter plus the total
// match count.
func (r *Repository) ListJobs(filter domain.JobFilter) ([]*domain.Job, int64, error) {
	where := []string{`j.status = 'ACTIVE'`}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf(`(j.title ILIKE $%d OR j.description ILIKE $%d)`, len(args), len(args)))
	}
	if len(filter.Skills) > 0 {
		args = append(args, filter.Skills)
		where = append(where, fmt.Sprintf(`j.required_skills ?| $%d`, len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		where = append(where, fmt.Sprintf(`j.location->>'city' ILIKE $%d`, len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var total int64
	countQuery := `SELECT count(*) FROM jobs j WHERE ` + whereClause
	if err := r.dbpool.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT `+jobColumns+`, u.id, u.name, u.company, u.email
		FROM jobs j
		JOIN users u ON u.id = j.employer_id
		WHERE `+whereClause+`
		ORDER BY j.created_at DESC
		LIMIT $%d OFFSET $%d
	`, len(args)-1, len(args))

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{}
		if err := r.scanJobRow(rows, job, true); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *Repository) GetJobsByEmployer(employerID int64) ([]*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j
		WHERE j.employer_id = $1
		ORDER BY j.created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{}
		if err := r.scanJobRow(rows, job, false); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
