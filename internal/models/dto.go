package models

import (
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
)

type TemplateCreateRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Questions   []Question `json:"questions" validate:"dive"`
	Status      string     `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsActive    *bool      `json:"is_active"`
	IsDefault   *bool      `json:"is_default"`
}

type TemplateUpdateRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Questions   []Question `json:"questions" validate:"omitempty,dive"`
	Status      *string    `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsActive    *bool      `json:"is_active"`
	IsDefault   *bool      `json:"is_default"`
}

// TemplateSaveResult wraps a persisted template with where the write landed.
type TemplateSaveResult struct {
	Template *FeedbackTemplate `json:"template"`
	SavedTo  SaveLocation      `json:"saved_to"`
}

type ResponseSaveRequest struct {
	FormID       identity.ID `json:"form_id" validate:"required"`
	QuestionID   int64       `json:"question_id" validate:"required"`
	ResponseText string      `json:"response_text" validate:"omitempty"`
	ResponseFile string      `json:"response_file" validate:"omitempty"`
	FileName     string      `json:"file_name" validate:"omitempty,max=255"`
	FileType     string      `json:"file_type" validate:"omitempty,max=100"`
}

type ResponseSaveResult struct {
	Response *FormResponse `json:"response"`
	SavedTo  SaveLocation  `json:"saved_to"`
}

type JobCreateRequest struct {
	Title           string      `json:"title" validate:"required,min=1,max=200"`
	DepartmentID    identity.ID `json:"department" validate:"required"`
	Description     string      `json:"description" validate:"omitempty"`
	Requirements    string      `json:"requirements" validate:"omitempty"`
	Location        string      `json:"location" validate:"omitempty,max=200"`
	JobType         string      `json:"job_type" validate:"omitempty,max=50"`
	ExperienceLevel string      `json:"experience_level" validate:"omitempty,max=50"`
	SalaryMin       *int64      `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax       *int64      `json:"salary_max" validate:"omitempty,min=0"`
}

type JobUpdateRequest struct {
	Title           *string      `json:"title" validate:"omitempty,min=1,max=200"`
	DepartmentID    *identity.ID `json:"department"`
	Description     *string      `json:"description"`
	Requirements    *string      `json:"requirements"`
	Location        *string      `json:"location" validate:"omitempty,max=200"`
	JobType         *string      `json:"job_type" validate:"omitempty,max=50"`
	ExperienceLevel *string      `json:"experience_level" validate:"omitempty,max=50"`
	SalaryMin       *int64       `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax       *int64       `json:"salary_max" validate:"omitempty,min=0"`
}

type DepartmentCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type DepartmentUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CandidateCreateRequest struct {
	FirstName string      `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string      `json:"last_name" validate:"required,min=1,max=100"`
	Email     string      `json:"email" validate:"required,email"`
	Phone     string      `json:"phone" validate:"omitempty,max=50"`
	Location  string      `json:"location" validate:"omitempty,max=200"`
	JobID     identity.ID `json:"job"`
	Source    string      `json:"source" validate:"omitempty,max=100"`
}

type CandidateUpdateRequest struct {
	FirstName *string      `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string      `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string      `json:"email" validate:"omitempty,email"`
	Phone     *string      `json:"phone" validate:"omitempty,max=50"`
	Location  *string      `json:"location" validate:"omitempty,max=200"`
	JobID     *identity.ID `json:"job"`
	Status    *string      `json:"status" validate:"omitempty,max=50"`
}

type BulkCreateRequest struct {
	Candidates []BulkCreateRow `json:"candidates" validate:"required,min=1,max=500,dive"`
	JobID      identity.ID     `json:"job"`
}

type GenerateQuestionsRequest struct {
	JobTitle       string   `json:"job_title" validate:"required,min=1,max=200"`
	JobDescription string   `json:"job_description" validate:"omitempty,max=5000"`
	Count          int      `json:"count" validate:"omitempty,min=1,max=20"`
	QuestionTypes  []string `json:"question_types" validate:"omitempty,dive,oneof=text textarea audio video"`
}

type GenerateJobTitlesRequest struct {
	Department string `json:"department" validate:"omitempty,max=100"`
	Keyword    string `json:"keyword" validate:"omitempty,max=100"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=50"`
}

type GenerateJobDetailsRequest struct {
	JobTitle   string `json:"job_title" validate:"required,min=1,max=200"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

type JobDetails struct {
	Description      string   `json:"description"`
	Requirements     string   `json:"requirements"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// DashboardOverview aggregates the headline numbers plus the recent activity
// feed. Degraded is set when the backend was unreachable and counts reflect
// local data only.
type DashboardOverview struct {
	ActiveJobs       int             `json:"active_jobs"`
	TotalCandidates  int             `json:"total_candidates"`
	TemplateCount    int             `json:"template_count"`
	PublishedCount   int             `json:"published_count"`
	ResponseCount    int             `json:"response_count"`
	RecentActivities []ActivityEvent `json:"recent_activities"`
	Degraded         bool            `json:"degraded"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

type ListTemplatesParams struct {
	Status   string `json:"status" validate:"omitempty,oneof=draft published archived"`
	Search   string `json:"search"`
	IsActive *bool  `json:"is_active"`
}

type ListCandidatesParams struct {
	Page   int         `json:"page" validate:"min=0"`
	Size   int         `json:"size" validate:"min=1,max=200"`
	JobID  identity.ID `json:"job"`
	Search string      `json:"search"`
	Status string      `json:"status"`
}

// ===== VALIDATION RESPONSES =====

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
	Code    string `json:"code"`
}

type BusinessRuleViolation struct {
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Severity    string `json:"severity"` // error, warning, info
	CanOverride bool   `json:"can_override"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error                  string                    `json:"error"`
	Message                string                    `json:"message"`
	Code                   string                    `json:"code"`
	Details                interface{}               `json:"details,omitempty"`
	Timestamp              time.Time                 `json:"timestamp"`
	Path                   string                    `json:"path"`
	ValidationErrors       []ValidationErrorResponse `json:"validation_errors,omitempty"`
	BusinessRuleViolations []BusinessRuleViolation   `json:"business_rule_violations,omitempty"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
