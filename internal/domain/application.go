package domain

import (
	"slices"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusReviewed    ApplicationStatus = "REVIEWED"
	ApplicationStatusInterviewed ApplicationStatus = "INTERVIEWED"
	ApplicationStatusAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusInterviewed,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

func IsValidApplicationStatus(s ApplicationStatus) bool {
	return slices.Contains(ApplicationStatuses, s)
}

// Applicant is the public slice of the job seeker resolved when an employer
// lists applicants for one of their jobs.
type Applicant struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Bio           string   `json:"bio,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	PortfolioLink string   `json:"portfolioLink,omitempty"`
}

type Application struct {
	ID          int64             `json:"id"`
	JobID       int64             `json:"jobId"`
	JobSeekerID int64             `json:"jobSeekerId"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// resolved references, present only on the reads that need them
	Job       *Job       `json:"job,omitempty"`
	JobSeeker *Applicant `json:"jobSeeker,omitempty"`
}
