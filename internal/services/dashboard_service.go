package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/cache"
	"github.com/nithishcb360/recruit-sub001/internal/events"
	"github.com/nithishcb360/recruit-sub001/internal/localstore"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
)

const recentActivityLimit = 10

type dashboardService struct {
	client   *remote.Client
	store    *localstore.Store
	recorder *events.Recorder
	cacheMgr *cache.CacheManager
	logger   *slog.Logger
}

func NewDashboardService(client *remote.Client, store *localstore.Store, recorder *events.Recorder, cacheMgr *cache.CacheManager, logger *slog.Logger) DashboardService {
	return &dashboardService{
		client:   client,
		store:    store,
		recorder: recorder,
		cacheMgr: cacheMgr,
		logger:   logger,
	}
}

// Overview returns the headline numbers plus the recent activity feed. The
// backend aggregate is cached briefly; when the backend is unreachable the
// counts degrade to local data with the Degraded flag set.
func (s *dashboardService) Overview(ctx context.Context) (*models.DashboardOverview, error) {
	var counts remote.DashboardCounts

	fetch := func() (interface{}, error) {
		c, err := s.client.DashboardOverview(ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	var err error
	if s.cacheMgr != nil {
		err = s.cacheMgr.Dashboard.CacheOrExecute(ctx, "overview", &counts, cache.DashboardCacheConfig.TTL, fetch)
	} else {
		var c *remote.DashboardCounts
		c, err = s.client.DashboardOverview(ctx)
		if c != nil {
			counts = *c
		}
	}

	overview := &models.DashboardOverview{
		GeneratedAt: time.Now().UTC(),
	}
	if s.recorder != nil {
		overview.RecentActivities = s.recorder.Recent(recentActivityLimit)
	} else {
		overview.RecentActivities = []models.ActivityEvent{}
	}

	if err != nil {
		if !errors.Is(err, remote.ErrUnavailable) {
			return nil, err
		}
		s.logger.Warn("dashboard degraded to local counts", "error", err)
		s.fillLocalCounts(overview)
		overview.Degraded = true
		return overview, nil
	}

	overview.ActiveJobs = counts.ActiveJobs
	overview.TotalCandidates = counts.TotalCandidates
	overview.TemplateCount = counts.TemplateCount
	overview.PublishedCount = counts.PublishedCount
	overview.ResponseCount = counts.ResponseCount
	return overview, nil
}

// RecentActivities returns the newest in-process activity events, capped at
// limit (or the default feed size when limit is not positive).
func (s *dashboardService) RecentActivities(limit int) []models.ActivityEvent {
	if limit <= 0 {
		limit = recentActivityLimit
	}
	if s.recorder == nil {
		return []models.ActivityEvent{}
	}
	return s.recorder.Recent(limit)
}

// fillLocalCounts computes what the local store alone can answer.
func (s *dashboardService) fillLocalCounts(overview *models.DashboardOverview) {
	if s.store == nil {
		return
	}
	if templates, err := s.store.Templates(); err == nil {
		overview.TemplateCount = len(templates)
		for _, t := range templates {
			if t.Status == models.TemplatePublished {
				overview.PublishedCount++
			}
		}
	}
	if responses, err := s.store.Responses(); err == nil {
		overview.ResponseCount = len(responses)
	}
}
