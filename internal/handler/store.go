package handler

import (
	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

// Store is the persistence contract the handlers need. It is implemented by
// *repository.Repository and by the in-memory store used in tests. Lookups
// that find nothing return sql.ErrNoRows.
type Store interface {
	CreateUser(user *domain.User) error
	GetUserByID(id int64) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	GetAllUsers() ([]*domain.User, error)
	UpdateUser(user *domain.User) error

	CreateJob(job *domain.Job) error
	GetJobByID(id int64) (*domain.Job, error)
	GetJobForEmployer(id int64, employerID int64) (*domain.Job, error)
	UpdateJob(job *domain.Job) error
	DeleteJob(id int64) error
	ListJobs(filter domain.JobFilter) ([]*domain.Job, int64, error)
	GetJobsByEmployer(employerID int64) ([]*domain.Job, error)

	CreateApplication(app *domain.Application) error
	GetApplicationByID(id int64) (*domain.Application, error)
	HasApplied(jobID int64, jobSeekerID int64) (bool, error)
	GetApplicationsByJob(jobID int64) ([]*domain.Application, error)
	GetApplicationsByJobSeeker(jobSeekerID int64) ([]*domain.Application, error)
	UpdateApplicationStatus(app *domain.Application) error
}
