package services

import (
	"context"
	"io"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
)

// Request type aliases keep the handler layer importing one package.
type CreateTemplateRequest = models.TemplateCreateRequest
type UpdateTemplateRequest = models.TemplateUpdateRequest
type SaveResponseRequest = models.ResponseSaveRequest
type CreateJobRequest = models.JobCreateRequest
type UpdateJobRequest = models.JobUpdateRequest
type CreateDepartmentRequest = models.DepartmentCreateRequest
type UpdateDepartmentRequest = models.DepartmentUpdateRequest
type CreateCandidateRequest = models.CandidateCreateRequest
type UpdateCandidateRequest = models.CandidateUpdateRequest
type BulkCreateCandidatesRequest = models.BulkCreateRequest

// TemplateService reconciles the backend template store with the embedded
// local fallback. Reads merge both stores; writes go backend-first and fall
// back locally when the backend is unreachable.
type TemplateService interface {
	// List reports offline=true when the backend could not be reached and
	// only local data is returned.
	List(ctx context.Context) ([]models.FeedbackTemplate, bool, error)
	Get(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error)
	Create(ctx context.Context, req *CreateTemplateRequest) (*models.TemplateSaveResult, error)
	Update(ctx context.Context, id identity.ID, req *UpdateTemplateRequest) (*models.TemplateSaveResult, error)
	Delete(ctx context.Context, id identity.ID) error
	Publish(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error)
	Unpublish(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error)

	// SyncLocal retries pending backend deletes recorded as tombstones.
	SyncLocal(ctx context.Context) error
}

// ResponseService is the per-question answer ledger.
type ResponseService interface {
	Save(ctx context.Context, req *SaveResponseRequest) (*models.ResponseSaveResult, error)
	// ListForForm returns backend answers only; local-only answers are not
	// merged in. On backend failure the list is empty, never an error.
	ListForForm(ctx context.Context, formID identity.ID) ([]models.FormResponse, error)
}

// JobService proxies job CRUD and lifecycle actions to the backend.
type JobService interface {
	List(ctx context.Context) ([]models.Job, error)
	Get(ctx context.Context, id identity.ID) (*models.Job, error)
	Create(ctx context.Context, req *CreateJobRequest) (*models.Job, error)
	Update(ctx context.Context, id identity.ID, req *UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, id identity.ID) error
	Publish(ctx context.Context, id identity.ID) (*models.Job, error)
	Pause(ctx context.Context, id identity.ID) (*models.Job, error)
	Close(ctx context.Context, id identity.ID) (*models.Job, error)
	Statistics(ctx context.Context) (*models.JobStatistics, error)
}

type DepartmentService interface {
	List(ctx context.Context) ([]models.Department, error)
	Get(ctx context.Context, id identity.ID) (*models.Department, error)
	Create(ctx context.Context, req *CreateDepartmentRequest) (*models.Department, error)
	Update(ctx context.Context, id identity.ID, req *UpdateDepartmentRequest) (*models.Department, error)
	Delete(ctx context.Context, id identity.ID) error
}

type CandidateService interface {
	List(ctx context.Context, params *models.ListCandidatesParams) ([]models.Candidate, int, error)
	Get(ctx context.Context, id identity.ID) (*models.Candidate, error)
	Create(ctx context.Context, req *CreateCandidateRequest) (*models.Candidate, error)
	Update(ctx context.Context, id identity.ID, req *UpdateCandidateRequest) (*models.Candidate, error)
	Delete(ctx context.Context, id identity.ID) error
	Statistics(ctx context.Context) (*models.CandidateStatistics, error)
	BulkCreate(ctx context.Context, req *BulkCreateCandidatesRequest) (*models.BulkCreateResult, error)
}

// ImportService parses candidate spreadsheets into bulk-create rows.
type ImportService interface {
	ParseWorkbook(ctx context.Context, r io.Reader) ([]models.BulkCreateRow, error)
	ImportWorkbook(ctx context.Context, r io.Reader, jobID identity.ID) (*models.BulkCreateResult, error)
}

type DashboardService interface {
	Overview(ctx context.Context) (*models.DashboardOverview, error)
	RecentActivities(limit int) []models.ActivityEvent
}

// GenerationService produces AI-assisted content. The backing provider is
// either the configured HTTP endpoint or the built-in template provider.
type GenerationService interface {
	GenerateQuestions(ctx context.Context, req *models.GenerateQuestionsRequest) ([]models.Question, error)
	GenerateJobTitles(ctx context.Context, req *models.GenerateJobTitlesRequest) ([]string, error)
	GenerateJobDetails(ctx context.Context, req *models.GenerateJobDetailsRequest) (*models.JobDetails, error)
}

// ServiceManager provides access to all services with lifecycle management.
type ServiceManager interface {
	Template() TemplateService
	Response() ResponseService
	Job() JobService
	Department() DepartmentService
	Candidate() CandidateService
	Import() ImportService
	Dashboard() DashboardService
	Generation() GenerationService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
