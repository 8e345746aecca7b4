package models

import (
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
)

type TemplateStatus string

const (
	TemplateDraft     TemplateStatus = "draft"
	TemplatePublished TemplateStatus = "published"
	TemplateArchived  TemplateStatus = "archived"
)

type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionAudio    QuestionType = "audio"
	QuestionVideo    QuestionType = "video"
)

// SupportedQuestionTypes is the canonical closed set. Earlier builder
// variants shipped richer sets (radio, rating, date, ...); those names are
// recognized so they can be rejected explicitly instead of dropped silently.
var SupportedQuestionTypes = map[QuestionType]bool{
	QuestionText:     true,
	QuestionTextarea: true,
	QuestionAudio:    true,
	QuestionVideo:    true,
}

// LegacyQuestionTypes are type names from retired builder variants.
var LegacyQuestionTypes = map[QuestionType]bool{
	"radio":           true,
	"multiple-choice": true,
	"number":          true,
	"rating":          true,
	"date":            true,
	"datetime":        true,
	"time":            true,
	"program":         true,
	"image":           true,
}

// FeedbackTemplate is a named feedback form. Its id lives in the dual-range
// scheme: backend-assigned below identity.LocalThreshold, locally synthesized
// at or above it.
type FeedbackTemplate struct {
	ID          identity.ID    `json:"id"`
	Name        string         `json:"name" validate:"required,max=200"`
	Description string         `json:"description" validate:"omitempty,max=2000"`
	Questions   []Question     `json:"questions"`
	Status      TemplateStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsActive    bool           `json:"is_active"`
	IsDefault   bool           `json:"is_default"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Origin reports where the template's id was assigned.
func (t *FeedbackTemplate) Origin() identity.Origin { return t.ID.Origin() }

// Question belongs to exactly one template. Ids are unique only within the
// owning template and are assigned max+1 starting at 1; they are never reused
// after deletion within the same editing session.
type Question struct {
	ID          int64        `json:"id"`
	Text        string       `json:"text" validate:"required,max=2000"`
	Type        QuestionType `json:"type" validate:"required"`
	Required    bool         `json:"required"`
	Options     []string     `json:"options,omitempty"`
	Answer      string       `json:"answer,omitempty"`
	AIGenerated bool         `json:"ai_generated"`
}

// NextQuestionID returns the id for a question appended to the template.
func (t *FeedbackTemplate) NextQuestionID() int64 {
	var max int64
	for _, q := range t.Questions {
		if q.ID > max {
			max = q.ID
		}
	}
	return max + 1
}

// FindQuestion returns the question with the given id, or nil.
func (t *FeedbackTemplate) FindQuestion(id int64) *Question {
	for i := range t.Questions {
		if t.Questions[i].ID == id {
			return &t.Questions[i]
		}
	}
	return nil
}
