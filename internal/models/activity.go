package models

import "time"

// ActivityEvent records a notable domain action for the dashboard feed.
type ActivityEvent struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	EntityName string    `json:"entity_name,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	ActivityTemplateCreated   = "template.created"
	ActivityTemplateUpdated   = "template.updated"
	ActivityTemplateDeleted   = "template.deleted"
	ActivityTemplatePublished = "template.published"
	ActivityResponseSaved     = "response.saved"
	ActivityJobPublished      = "job.published"
	ActivityJobPaused         = "job.paused"
	ActivityJobClosed         = "job.closed"
	ActivityCandidateCreated  = "candidate.created"
	ActivityCandidateImported = "candidate.imported"
)
