package services

import (
	"context"
	"log/slog"

	"github.com/nithishcb360/recruit-sub001/internal/cache"
	"github.com/nithishcb360/recruit-sub001/internal/events"
	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

// jobService proxies job operations to the backend. Jobs have no local
// fallback: hiring state lives on the server and errors surface as-is.
type jobService struct {
	client    *remote.Client
	logger    *slog.Logger
	validator *validator.Validator
	bus       *events.Bus
	cacheMgr  *cache.CacheManager
}

func NewJobService(client *remote.Client, logger *slog.Logger, v *validator.Validator, bus *events.Bus, cacheMgr *cache.CacheManager) JobService {
	return &jobService{
		client:    client,
		logger:    logger,
		validator: v,
		bus:       bus,
		cacheMgr:  cacheMgr,
	}
}

func (s *jobService) List(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if s.cacheMgr != nil {
		err := s.cacheMgr.Job.CacheOrExecute(ctx, "list:all", &jobs, cache.JobCacheConfig.TTL, func() (interface{}, error) {
			return s.client.ListJobs(ctx)
		})
		return jobs, err
	}
	return s.client.ListJobs(ctx)
}

func (s *jobService) Get(ctx context.Context, id identity.ID) (*models.Job, error) {
	j, err := s.client.GetJob(ctx, id)
	if remote.IsNotFound(err) {
		return nil, ErrJobNotFound
	}
	return j, err
}

func (s *jobService) Create(ctx context.Context, req *CreateJobRequest) (*models.Job, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}
	j, err := s.client.CreateJob(ctx, req)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, j, "")
	return j, nil
}

func (s *jobService) Update(ctx context.Context, id identity.ID, req *UpdateJobRequest) (*models.Job, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}
	j, err := s.client.UpdateJob(ctx, id, req)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	s.afterWrite(ctx, j, "")
	return j, nil
}

func (s *jobService) Delete(ctx context.Context, id identity.ID) error {
	if err := s.client.DeleteJob(ctx, id); err != nil {
		if remote.IsNotFound(err) {
			return ErrJobNotFound
		}
		return err
	}
	if s.cacheMgr != nil {
		cache.InvalidateJobCache(ctx, s.cacheMgr, int64(id))
	}
	return nil
}

// Publish opens the job; publishing a paused job reopens it.
func (s *jobService) Publish(ctx context.Context, id identity.ID) (*models.Job, error) {
	return s.lifecycleAction(ctx, id, models.JobOpen, s.client.PublishJob, models.ActivityJobPublished)
}

func (s *jobService) Pause(ctx context.Context, id identity.ID) (*models.Job, error) {
	return s.lifecycleAction(ctx, id, models.JobPaused, s.client.PauseJob, models.ActivityJobPaused)
}

func (s *jobService) Close(ctx context.Context, id identity.ID) (*models.Job, error) {
	return s.lifecycleAction(ctx, id, models.JobClosed, s.client.CloseJob, models.ActivityJobClosed)
}

func (s *jobService) Statistics(ctx context.Context) (*models.JobStatistics, error) {
	var stats models.JobStatistics
	if s.cacheMgr != nil {
		err := s.cacheMgr.Job.CacheOrExecute(ctx, "statistics", &stats, cache.JobCacheConfig.TTL, func() (interface{}, error) {
			return s.client.JobStatistics(ctx)
		})
		return &stats, err
	}
	remoteStats, err := s.client.JobStatistics(ctx)
	if err != nil {
		return nil, err
	}
	return remoteStats, nil
}

func (s *jobService) lifecycleAction(ctx context.Context, id identity.ID, target models.JobStatus, action func(context.Context, identity.ID) (*models.Job, error), activity string) (*models.Job, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if verrs := s.validator.Business().ValidateJobStatusTransition(current.Status, target); len(verrs) > 0 {
		return nil, verrs
	}

	j, err := action(ctx, id)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	s.afterWrite(ctx, j, activity)
	return j, nil
}

func (s *jobService) afterWrite(ctx context.Context, j *models.Job, activity string) {
	if s.cacheMgr != nil {
		cache.InvalidateJobCache(ctx, s.cacheMgr, int64(j.ID))
	}
	if s.bus != nil && activity != "" {
		err := s.bus.Publish(&models.ActivityEvent{
			Action:     activity,
			EntityType: "job",
			EntityID:   int64(j.ID),
			EntityName: j.Title,
		})
		if err != nil {
			s.logger.Warn("failed to publish activity event", "action", activity, "error", err)
		}
	}
}
