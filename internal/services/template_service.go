package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/cache"
	"github.com/nithishcb360/recruit-sub001/internal/events"
	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/localstore"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

type templateService struct {
	client    *remote.Client
	store     *localstore.Store
	logger    *slog.Logger
	validator *validator.Validator
	bus       *events.Bus
	cacheMgr  *cache.CacheManager
	clock     identity.Clock
}

func NewTemplateService(client *remote.Client, store *localstore.Store, logger *slog.Logger, v *validator.Validator, bus *events.Bus, cacheMgr *cache.CacheManager) TemplateService {
	return &templateService{
		client:    client,
		store:     store,
		logger:    logger,
		validator: v,
		bus:       bus,
		cacheMgr:  cacheMgr,
		clock:     time.Now,
	}
}

// List merges the backend list with locally saved templates. Backend entries
// win on id collision; tombstoned ids are filtered from both sources. A
// backend failure degrades to the local list alone, reported through the
// offline flag.
func (s *templateService) List(ctx context.Context) ([]models.FeedbackTemplate, bool, error) {
	offline := false
	backendTemplates, err := s.client.ListTemplates(ctx)
	if err != nil {
		if !errors.Is(err, remote.ErrUnavailable) {
			return nil, false, err
		}
		s.logger.Warn("listing templates from local store only", "error", err)
		backendTemplates = nil
		offline = true
	}

	localTemplates, err := s.store.Templates()
	if err != nil {
		s.logger.Error("local template read failed", "error", err)
		localTemplates = nil
	}

	tombstoned, err := s.store.TombstonedIDs()
	if err != nil {
		s.logger.Error("tombstone read failed", "error", err)
		tombstoned = nil
	}

	merged := make([]models.FeedbackTemplate, 0, len(backendTemplates)+len(localTemplates))
	seen := make(map[identity.ID]bool, len(backendTemplates))
	for _, t := range backendTemplates {
		if tombstoned[t.ID] || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		merged = append(merged, t)
	}
	for _, t := range localTemplates {
		if tombstoned[t.ID] || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		merged = append(merged, t)
	}

	// Mirror the merged view so templates seen online stay editable after
	// the backend drops away.
	if !offline {
		if serr := s.store.SaveTemplates(merged); serr != nil {
			s.logger.Warn("failed to mirror merged templates locally", "error", serr)
		}
	}

	return merged, offline, nil
}

// Get returns one template. Local-range ids never touch the network.
func (s *templateService) Get(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error) {
	tombstoned, err := s.store.TombstonedIDs()
	if err == nil && tombstoned[id] {
		return nil, ErrTemplateDeleted
	}

	if id.IsLocal() {
		t, err := s.store.FindTemplate(id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrTemplateNotFound
		}
		return t, nil
	}

	t, err := s.client.GetTemplate(ctx, id)
	if err == nil {
		return t, nil
	}
	if remote.IsNotFound(err) {
		return nil, ErrTemplateNotFound
	}
	if !errors.Is(err, remote.ErrUnavailable) {
		return nil, err
	}

	// Backend down: the template may have been merged locally earlier.
	local, lerr := s.store.FindTemplate(id)
	if lerr != nil {
		return nil, lerr
	}
	if local == nil {
		return nil, ErrTemplateNotFound
	}
	return local, nil
}

// Create persists a new template, backend first. When the backend is
// unreachable the template is saved locally under a synthesized id so
// editing can continue offline.
func (s *templateService) Create(ctx context.Context, req *CreateTemplateRequest) (*models.TemplateSaveResult, error) {
	if verrs := s.validator.Business().ValidateTemplateCreate(req); len(verrs) > 0 {
		return nil, verrs
	}

	t := s.buildTemplate(req)

	created, err := s.client.CreateTemplate(ctx, t)
	if err == nil {
		// Mirror the backend copy so offline reads see it.
		if serr := s.store.UpsertTemplate(created); serr != nil {
			s.logger.Warn("failed to mirror created template locally", "id", created.ID, "error", serr)
		}
		s.afterWrite(ctx, created, models.ActivityTemplateCreated)
		return &models.TemplateSaveResult{Template: created, SavedTo: models.SavedToServer}, nil
	}

	if !errors.Is(err, remote.ErrUnavailable) {
		return nil, err
	}

	t.ID = identity.NewLocalID(s.clock)
	now := s.clock()
	t.CreatedAt = now
	t.UpdatedAt = now
	if serr := s.store.UpsertTemplate(t); serr != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailedEverywhere, serr)
	}

	s.logger.Info("template saved locally, backend unreachable", "id", t.ID, "name", t.Name)
	s.afterWrite(ctx, t, models.ActivityTemplateCreated)
	return &models.TemplateSaveResult{Template: t, SavedTo: models.SavedToLocal}, nil
}

// Update modifies an existing template. Templates that only exist locally
// are updated in place without any network traffic; backend templates fall
// back to a local merge whenever the backend fails the write.
func (s *templateService) Update(ctx context.Context, id identity.ID, req *UpdateTemplateRequest) (*models.TemplateSaveResult, error) {
	if id.IsZero() {
		return nil, ErrTemplateNotPersisted
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		// The backend may 404 or reject a template the user still has
		// mirrored locally; the edit proceeds against that copy.
		if !id.IsLocal() && !errors.Is(err, ErrTemplateDeleted) {
			local, lerr := s.store.FindTemplate(id)
			if lerr == nil && local != nil {
				existing = local
				err = nil
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if verrs := s.validator.Business().ValidateTemplateUpdate(req, existing); len(verrs) > 0 {
		return nil, verrs
	}

	updated := applyTemplateUpdate(existing, req)
	updated.UpdatedAt = s.clock()

	if id.IsLocal() {
		if serr := s.store.UpsertTemplate(updated); serr != nil {
			return nil, serr
		}
		s.afterWrite(ctx, updated, models.ActivityTemplateUpdated)
		return &models.TemplateSaveResult{Template: updated, SavedTo: models.SavedToLocal}, nil
	}

	saved, err := s.client.UpdateTemplate(ctx, updated)
	if err == nil {
		if serr := s.store.UpsertTemplate(saved); serr != nil {
			s.logger.Warn("failed to mirror updated template locally", "id", saved.ID, "error", serr)
		}
		s.afterWrite(ctx, saved, models.ActivityTemplateUpdated)
		return &models.TemplateSaveResult{Template: saved, SavedTo: models.SavedToServer}, nil
	}

	// Any backend failure on the update leg, unreachable or a 4xx
	// rejection, degrades to the local merge; the edit is never lost.
	s.logger.Warn("backend update failed, saving locally", "id", id, "error", err)
	if serr := s.store.UpsertTemplate(updated); serr != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailedEverywhere, serr)
	}
	s.afterWrite(ctx, updated, models.ActivityTemplateUpdated)
	return &models.TemplateSaveResult{Template: updated, SavedTo: models.SavedToLocal}, nil
}

// Delete removes the template everywhere it can. The backend attempt is
// best-effort: its failure never blocks the local removal, and a tombstone
// guarantees the id cannot resurrect from a later backend merge.
func (s *templateService) Delete(ctx context.Context, id identity.ID) error {
	if id.IsZero() {
		return ErrTemplateNotPersisted
	}

	synced := true
	if !id.IsLocal() {
		if err := s.client.DeleteTemplate(ctx, id); err != nil {
			if remote.IsNotFound(err) {
				// Already gone upstream; nothing left to sync.
			} else {
				s.logger.Warn("backend delete failed, will retry on next sync", "id", id, "error", err)
				synced = false
			}
		}
	}

	if err := s.store.RemoveTemplate(id); err != nil {
		return err
	}
	if !id.IsLocal() {
		if err := s.store.AddTombstone(id, synced); err != nil {
			return err
		}
	}

	s.invalidate(ctx, id)
	s.publishEvent(&models.ActivityEvent{
		Action:     models.ActivityTemplateDeleted,
		EntityType: "template",
		EntityID:   int64(id),
	})
	return nil
}

// Publish flips the template to published. Publishing is a backend-only
// operation: local-range ids are rejected before any network traffic.
func (s *templateService) Publish(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error) {
	t, err := s.publishAction(ctx, id, s.client.PublishTemplate)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, t, models.ActivityTemplatePublished)
	return t, nil
}

// Unpublish reverts the template to draft, backend-only like Publish.
func (s *templateService) Unpublish(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error) {
	t, err := s.publishAction(ctx, id, s.client.UnpublishTemplate)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, t, models.ActivityTemplateUpdated)
	return t, nil
}

func (s *templateService) publishAction(ctx context.Context, id identity.ID, action func(context.Context, identity.ID) (*models.FeedbackTemplate, error)) (*models.FeedbackTemplate, error) {
	if id.IsZero() {
		return nil, ErrTemplateNotPersisted
	}
	if id.IsLocal() {
		return nil, &BusinessRuleError{
			Rule:    "publish_requires_server",
			Message: "locally saved templates cannot change publish state; sync to server first",
		}
	}

	t, err := action(ctx, id)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if serr := s.store.UpsertTemplate(t); serr != nil {
		s.logger.Warn("failed to mirror publish state locally", "id", id, "error", serr)
	}
	return t, nil
}

// SyncLocal retries backend deletes for unsynced tombstones. Run at startup
// and whenever the backend comes back.
func (s *templateService) SyncLocal(ctx context.Context) error {
	tombstones, err := s.store.Tombstones()
	if err != nil {
		return err
	}

	for _, tomb := range tombstones {
		if tomb.Synced {
			continue
		}
		err := s.client.DeleteTemplate(ctx, tomb.ID)
		if err != nil && !remote.IsNotFound(err) {
			if errors.Is(err, remote.ErrUnavailable) {
				// Backend still down; keep the tombstone pending.
				return nil
			}
			s.logger.Warn("tombstone sync failed", "id", tomb.ID, "error", err)
			continue
		}
		if err := s.store.MarkTombstoneSynced(tomb.ID); err != nil {
			return err
		}
		s.logger.Info("pending delete synced to backend", "id", tomb.ID)
	}
	return nil
}

// buildTemplate turns a create request into a template with question ids
// assigned max+1 from 1.
func (s *templateService) buildTemplate(req *CreateTemplateRequest) *models.FeedbackTemplate {
	t := &models.FeedbackTemplate{
		Name:        req.Name,
		Description: req.Description,
		Questions:   append([]models.Question(nil), req.Questions...),
		Status:      models.TemplateDraft,
	}
	if req.Status != "" {
		t.Status = models.TemplateStatus(req.Status)
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	} else {
		t.IsActive = true
	}
	if req.IsDefault != nil {
		t.IsDefault = *req.IsDefault
	}
	for i := range t.Questions {
		if t.Questions[i].ID == 0 {
			t.Questions[i].ID = t.NextQuestionID()
		}
	}
	return t
}

func applyTemplateUpdate(existing *models.FeedbackTemplate, req *UpdateTemplateRequest) *models.FeedbackTemplate {
	updated := *existing
	updated.Questions = append([]models.Question(nil), existing.Questions...)

	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Status != nil {
		updated.Status = models.TemplateStatus(*req.Status)
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	if req.IsDefault != nil {
		updated.IsDefault = *req.IsDefault
	}
	if req.Questions != nil {
		updated.Questions = append([]models.Question(nil), req.Questions...)
		for i := range updated.Questions {
			if updated.Questions[i].ID == 0 {
				updated.Questions[i].ID = updated.NextQuestionID()
			}
		}
	}
	return &updated
}

func (s *templateService) afterWrite(ctx context.Context, t *models.FeedbackTemplate, action string) {
	s.invalidate(ctx, t.ID)
	s.publishEvent(&models.ActivityEvent{
		Action:     action,
		EntityType: "template",
		EntityID:   int64(t.ID),
		EntityName: t.Name,
	})
}

func (s *templateService) invalidate(ctx context.Context, id identity.ID) {
	if s.cacheMgr != nil {
		cache.InvalidateTemplateCache(ctx, s.cacheMgr, int64(id))
	}
}

func (s *templateService) publishEvent(event *models.ActivityEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event); err != nil {
		s.logger.Warn("failed to publish activity event", "action", event.Action, "error", err)
	}
}
