package domain

import (
	"time"
)

type RateType string

const (
	RateTypeHourly RateType = "HOURLY"
	RateTypeFixed  RateType = "FIXED"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "ACTIVE"
	JobStatusClosed JobStatus = "CLOSED"
	JobStatusFilled JobStatus = "FILLED"
)

// JobEmployer is the public slice of the owning employer resolved on job reads.
type JobEmployer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email"`
}

type Job struct {
	ID             int64        `json:"id"`
	EmployerID     int64        `json:"employerId"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	RequiredSkills []string     `json:"requiredSkills"`
	Budget         float64      `json:"budget"`
	RateType       RateType     `json:"rateType"`
	Location       *Location    `json:"location,omitempty"`
	Deadline       time.Time    `json:"deadline"`
	Status         JobStatus    `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	Employer       *JobEmployer `json:"employer,omitempty"`
}

// JobFilter narrows the public job listing. Zero values mean "no filter".
type JobFilter struct {
	Search   string
	Skills   []string
	Location string
	Page     int
	Limit    int
}
