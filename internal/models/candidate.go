package models

import (
	"strings"
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
)

type Candidate struct {
	ID        identity.ID `json:"id"`
	FirstName string      `json:"first_name" validate:"required,max=100"`
	LastName  string      `json:"last_name" validate:"required,max=100"`
	Email     string      `json:"email" validate:"required,email"`
	Phone     string      `json:"phone,omitempty"`
	Location  string      `json:"location,omitempty"`
	JobID     identity.ID `json:"job,omitempty"`
	Source    string      `json:"source,omitempty"`
	Status    string      `json:"status,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// FullName joins first and last name with normalized spacing; bulk-create
// dedup compares it case-insensitively.
func (c *Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type CandidateStatistics struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByJob    map[string]int `json:"by_job,omitempty"`
}

// BulkCreateRow is one candidate row of a bulk upload, either from the JSON
// body or parsed out of a spreadsheet.
type BulkCreateRow struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Source    string `json:"source,omitempty"`
}

// BulkCreateResult reports per-row outcomes of a bulk upload. Rows are never
// all-or-nothing: valid rows land even when siblings fail.
type BulkCreateResult struct {
	Created []Candidate       `json:"created"`
	Skipped []BulkSkippedRow  `json:"skipped"`
	Errors  []BulkFailedRow   `json:"errors"`
	Stats   BulkCreateStats   `json:"stats"`
}

type BulkSkippedRow struct {
	Row    int    `json:"row"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type BulkFailedRow struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type BulkCreateStats struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
