package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/events"
	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/localstore"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

type responseService struct {
	client    *remote.Client
	store     *localstore.Store
	templates TemplateService
	logger    *slog.Logger
	validator *validator.Validator
	bus       *events.Bus
	clock     identity.Clock
}

func NewResponseService(client *remote.Client, store *localstore.Store, templates TemplateService, logger *slog.Logger, v *validator.Validator, bus *events.Bus) ResponseService {
	return &responseService{
		client:    client,
		store:     store,
		templates: templates,
		logger:    logger,
		validator: v,
		bus:       bus,
		clock:     time.Now,
	}
}

// Save records one answer keyed by (form_id, question_id); re-saving the
// same key overwrites. The question must exist in the template and carry a
// type that accepts responses. Backend-first with local fallback.
func (s *responseService) Save(ctx context.Context, req *SaveResponseRequest) (*models.ResponseSaveResult, error) {
	template, err := s.templates.Get(ctx, req.FormID)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrTemplateDeleted) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if verrs := s.validator.Business().ValidateResponseSave(req, template); len(verrs) > 0 {
		return nil, verrs
	}

	question := template.FindQuestion(req.QuestionID)
	response := &models.FormResponse{
		FormID:       req.FormID,
		QuestionID:   req.QuestionID,
		QuestionType: question.Type,
		ResponseText: req.ResponseText,
		ResponseFile: req.ResponseFile,
		FileName:     req.FileName,
		FileType:     req.FileType,
		UpdatedAt:    s.clock(),
	}

	// Answers for local-only templates have nowhere to go upstream.
	if !req.FormID.IsLocal() {
		saved, err := s.client.SaveResponse(ctx, response)
		if err == nil {
			if serr := s.store.SaveResponse(saved); serr != nil {
				s.logger.Warn("failed to mirror response locally", "form_id", req.FormID, "question_id", req.QuestionID, "error", serr)
			}
			s.publishSaved(saved)
			return &models.ResponseSaveResult{Response: saved, SavedTo: models.SavedToServer}, nil
		}
		if !errors.Is(err, remote.ErrUnavailable) {
			return nil, err
		}
		s.logger.Info("response saved locally, backend unreachable", "form_id", req.FormID, "question_id", req.QuestionID)
	}

	// Local saves carry a synthesized local-range id; an overwrite keeps
	// the identity and created_at of the first save.
	response.ID = identity.NewLocalID(s.clock)
	response.CreatedAt = response.UpdatedAt
	if prior := s.localResponse(response.Key()); prior != nil {
		if prior.ID != 0 {
			response.ID = prior.ID
		}
		if !prior.CreatedAt.IsZero() {
			response.CreatedAt = prior.CreatedAt
		}
	}

	if err := s.store.SaveResponse(response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailedEverywhere, err)
	}
	s.publishSaved(response)
	return &models.ResponseSaveResult{Response: response, SavedTo: models.SavedToLocal}, nil
}

func (s *responseService) localResponse(key models.ResponseKey) *models.FormResponse {
	responses, err := s.store.ResponsesForForm(key.FormID)
	if err != nil {
		return nil
	}
	for i := range responses {
		if responses[i].Key() == key {
			return &responses[i]
		}
	}
	return nil
}

// ListForForm reads the ledger for one template from the backend only.
// Answers that were saved locally while offline do not appear until they
// reach the server; a backend failure yields an empty list, not an error.
func (s *responseService) ListForForm(ctx context.Context, formID identity.ID) ([]models.FormResponse, error) {
	if formID.IsLocal() {
		return []models.FormResponse{}, nil
	}

	responses, err := s.client.ListResponses(ctx, formID)
	if err != nil {
		s.logger.Warn("response list unavailable, returning empty", "form_id", formID, "error", err)
		return []models.FormResponse{}, nil
	}
	if responses == nil {
		responses = []models.FormResponse{}
	}
	return responses, nil
}

func (s *responseService) publishSaved(r *models.FormResponse) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(&models.ActivityEvent{
		Action:     models.ActivityResponseSaved,
		EntityType: "response",
		EntityID:   int64(r.FormID),
	})
	if err != nil {
		s.logger.Warn("failed to publish activity event", "action", models.ActivityResponseSaved, "error", err)
	}
}
