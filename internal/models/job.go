package models

import (
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
)

type JobStatus string

const (
	JobDraft     JobStatus = "draft"
	JobOpen      JobStatus = "open"
	JobPaused    JobStatus = "paused"
	JobClosed    JobStatus = "closed"
	JobCancelled JobStatus = "cancelled"
)

// jobTransitions holds the allowed lifecycle moves. Publish reopens paused
// jobs; closed and cancelled are terminal.
var jobTransitions = map[JobStatus][]JobStatus{
	JobDraft:  {JobOpen, JobCancelled},
	JobOpen:   {JobPaused, JobClosed, JobCancelled},
	JobPaused: {JobOpen, JobClosed, JobCancelled},
}

// CanTransition reports whether a job may move from one status to another.
func CanTransition(from, to JobStatus) bool {
	for _, s := range jobTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// JobStatistics are backend-computed aggregates; there is no local fallback
// for them.
type JobStatistics struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	OpenPositions int            `json:"open_positions"`
}

type Department struct {
	ID          identity.ID `json:"id"`
	Name        string      `json:"name" validate:"required,max=100"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Job struct {
	ID              identity.ID `json:"id"`
	Title           string      `json:"title" validate:"required,max=200"`
	DepartmentID    identity.ID `json:"department" validate:"required"`
	DepartmentName  string      `json:"department_name,omitempty"`
	Description     string      `json:"description,omitempty"`
	Requirements    string      `json:"requirements,omitempty"`
	Location        string      `json:"location,omitempty"`
	JobType         string      `json:"job_type,omitempty"`
	ExperienceLevel string      `json:"experience_level,omitempty"`
	SalaryMin       *int64      `json:"salary_min,omitempty"`
	SalaryMax       *int64      `json:"salary_max,omitempty"`
	Status          JobStatus   `json:"status"`
	PublishedAt     *time.Time  `json:"published_at,omitempty"`
	ClosedAt        *time.Time  `json:"closed_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
