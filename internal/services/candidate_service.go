package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nithishcb360/recruit-sub001/internal/cache"
	"github.com/nithishcb360/recruit-sub001/internal/events"
	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

type candidateService struct {
	client    *remote.Client
	logger    *slog.Logger
	validator *validator.Validator
	bus       *events.Bus
	cacheMgr  *cache.CacheManager
}

func NewCandidateService(client *remote.Client, logger *slog.Logger, v *validator.Validator, bus *events.Bus, cacheMgr *cache.CacheManager) CandidateService {
	return &candidateService{
		client:    client,
		logger:    logger,
		validator: v,
		bus:       bus,
		cacheMgr:  cacheMgr,
	}
}

func (s *candidateService) List(ctx context.Context, params *models.ListCandidatesParams) ([]models.Candidate, int, error) {
	return s.client.ListCandidates(ctx, params)
}

func (s *candidateService) Get(ctx context.Context, id identity.ID) (*models.Candidate, error) {
	c, err := s.client.GetCandidate(ctx, id)
	if remote.IsNotFound(err) {
		return nil, ErrCandidateNotFound
	}
	return c, err
}

func (s *candidateService) Create(ctx context.Context, req *CreateCandidateRequest) (*models.Candidate, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}

	created, err := s.client.CreateCandidate(ctx, req)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, created.ID, created.FullName(), models.ActivityCandidateCreated)
	return created, nil
}

func (s *candidateService) Update(ctx context.Context, id identity.ID, req *UpdateCandidateRequest) (*models.Candidate, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}

	updated, err := s.client.UpdateCandidate(ctx, id, req)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *candidateService) Delete(ctx context.Context, id identity.ID) error {
	err := s.client.DeleteCandidate(ctx, id)
	if remote.IsNotFound(err) {
		return ErrCandidateNotFound
	}
	if err == nil && s.cacheMgr != nil {
		cache.SafeInvalidatePattern(ctx, s.cacheMgr.Dashboard, "*")
	}
	return err
}

func (s *candidateService) Statistics(ctx context.Context) (*models.CandidateStatistics, error) {
	return s.client.CandidateStatistics(ctx)
}

// BulkCreate uploads candidate rows. Rows are validated and deduped here
// before the upload so obviously broken rows never reach the backend; the
// backend applies its own email and full-name dedup on what remains.
func (s *candidateService) BulkCreate(ctx context.Context, req *BulkCreateCandidatesRequest) (*models.BulkCreateResult, error) {
	if len(req.Candidates) == 0 {
		return nil, ValidationErrors{{Field: "candidates", Message: "must not be empty", Rule: "required"}}
	}

	valid := make([]models.BulkCreateRow, 0, len(req.Candidates))
	result := &models.BulkCreateResult{
		Created: []models.Candidate{},
		Skipped: []models.BulkSkippedRow{},
		Errors:  []models.BulkFailedRow{},
	}
	seenEmails := make(map[string]bool, len(req.Candidates))

	for i, row := range req.Candidates {
		if verrs := s.validator.Business().ValidateBulkRow(&row); len(verrs) > 0 {
			result.Errors = append(result.Errors, models.BulkFailedRow{
				Row:   i + 1,
				Error: verrs.Error(),
			})
			continue
		}
		email := strings.ToLower(strings.TrimSpace(row.Email))
		if seenEmails[email] {
			result.Skipped = append(result.Skipped, models.BulkSkippedRow{
				Row:    i + 1,
				Email:  row.Email,
				Reason: "duplicate email within upload",
			})
			continue
		}
		seenEmails[email] = true
		valid = append(valid, row)
	}

	if len(valid) > 0 {
		uploaded, err := s.client.BulkCreateCandidates(ctx, &models.BulkCreateRequest{
			Candidates: valid,
			JobID:      req.JobID,
		})
		if err != nil {
			return nil, err
		}
		result.Created = append(result.Created, uploaded.Created...)
		result.Skipped = append(result.Skipped, uploaded.Skipped...)
		result.Errors = append(result.Errors, uploaded.Errors...)
	}

	result.Stats = models.BulkCreateStats{
		Total:   len(req.Candidates),
		Created: len(result.Created),
		Skipped: len(result.Skipped),
		Failed:  len(result.Errors),
	}

	if len(result.Created) > 0 {
		s.afterWrite(ctx, 0, "", models.ActivityCandidateImported)
	}
	return result, nil
}

func (s *candidateService) afterWrite(ctx context.Context, id identity.ID, name, activity string) {
	if s.cacheMgr != nil {
		cache.SafeInvalidatePattern(ctx, s.cacheMgr.Dashboard, "*")
	}
	if s.bus != nil {
		err := s.bus.Publish(&models.ActivityEvent{
			Action:     activity,
			EntityType: "candidate",
			EntityID:   int64(id),
			EntityName: name,
		})
		if err != nil {
			s.logger.Warn("failed to publish activity event", "action", activity, "error", err)
		}
	}
}
