package repository

import (
	"context"
	"time"

	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

func (r *Repository) CreateApplication(app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, job_seeker_id, cover_letter)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{app.JobID, app.JobSeekerID, app.CoverLetter}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&app.ID, &app.Status, &app.CreatedAt, &app.UpdatedAt)
}

func (r *Repository) GetApplicationByID(id int64) (*domain.Application, error) {
	query := `
		SELECT id, job_id, job_seeker_id, cover_letter, status, created_at, updated_at
		FROM applications WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	app := &domain.Application{}
	dst := []any{&app.ID, &app.JobID, &app.JobSeekerID, &app.CoverLetter, &app.Status, &app.CreatedAt, &app.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return app, nil
}

func (r *Repository) HasApplied(jobID int64, jobSeekerID int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND job_seeker_id = $2)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	exists := false
	if err := r.dbpool.QueryRowContext(ctx, query, jobID, jobSeekerID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// GetApplicationsByJob resolves each applicant's public profile for the
// employer's applicant view.
func (r *Repository) GetApplicationsByJob(jobID int64) ([]*domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.status, a.created_at, a.updated_at,
			u.id, u.name, u.email, u.bio, u.skills, u.portfolio_link
		FROM applications a
		JOIN users u ON u.id = a.job_seeker_id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app := &domain.Application{JobSeeker: &domain.Applicant{}}
		var skills []byte

		dst := []any{
			&app.ID, &app.JobID, &app.JobSeekerID, &app.CoverLetter, &app.Status, &app.CreatedAt, &app.UpdatedAt,
			&app.JobSeeker.ID, &app.JobSeeker.Name, &app.JobSeeker.Email, &app.JobSeeker.Bio, &skills, &app.JobSeeker.PortfolioLink,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if app.JobSeeker.Skills, err = unmarshalSkills(skills); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

// GetApplicationsByJobSeeker resolves each application's job and that job's
// employer for the seeker's "my applications" view.
func (r *Repository) GetApplicationsByJobSeeker(jobSeekerID int64) ([]*domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.status, a.created_at, a.updated_at,
			` + jobColumns + `, u.id, u.name, u.company, u.email
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = j.employer_id
		WHERE a.job_seeker_id = $1
		ORDER BY a.created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, jobSeekerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app := &domain.Application{Job: &domain.Job{}}
		var skills, location []byte

		app.Job.Employer = &domain.JobEmployer{}
		dst := []any{
			&app.ID, &app.JobID, &app.JobSeekerID, &app.CoverLetter, &app.Status, &app.CreatedAt, &app.UpdatedAt,
			&app.Job.ID, &app.Job.EmployerID, &app.Job.Title, &app.Job.Description, &skills, &app.Job.Budget,
			&app.Job.RateType, &location, &app.Job.Deadline, &app.Job.Status, &app.Job.CreatedAt, &app.Job.UpdatedAt,
			&app.Job.Employer.ID, &app.Job.Employer.Name, &app.Job.Employer.Company, &app.Job.Employer.Email,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if app.Job.RequiredSkills, err = unmarshalSkills(skills); err != nil {
			return nil, err
		}
		if app.Job.Location, err = unmarshalLocation(location); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *Repository) UpdateApplicationStatus(app *domain.Application) error {
	query := `
		UPDATE applications
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, query, app.Status, app.ID).Scan(&app.UpdatedAt)
}
