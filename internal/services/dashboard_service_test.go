package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nithishcb360/recruit-sub001/internal/cache"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

func TestOverviewServesBackendCounts(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/dashboard/overview/", r.URL.Path)
		writeJSON(w, http.StatusOK, remote.DashboardCounts{
			ActiveJobs:      4,
			TotalCandidates: 120,
			TemplateCount:   9,
			PublishedCount:  3,
			ResponseCount:   57,
		})
	}))
	defer backend.Close()

	client := remote.NewClient(backend.URL, 500*time.Millisecond, utils.NewSlogLogger(testSlog()))
	svc := NewDashboardService(client, newTestStore(t), nil, nil, testSlog())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, overview.ActiveJobs)
	assert.Equal(t, 120, overview.TotalCandidates)
	assert.False(t, overview.Degraded)
}

func TestOverviewDegradesToLocalCounts(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 1, Name: "A", Status: models.TemplatePublished}))
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 2, Name: "B", Status: models.TemplateDraft}))
	require.NoError(t, store.SaveResponse(&models.FormResponse{FormID: 1, QuestionID: 1, ResponseText: "x"}))

	client := remote.NewClient(deadBackendURL(t), 300*time.Millisecond, utils.NewSlogLogger(testSlog()))
	svc := NewDashboardService(client, store, nil, nil, testSlog())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.True(t, overview.Degraded)
	assert.Equal(t, 2, overview.TemplateCount)
	assert.Equal(t, 1, overview.PublishedCount)
	assert.Equal(t, 1, overview.ResponseCount)
	assert.Zero(t, overview.ActiveJobs)
}

func TestOverviewUsesCacheOnSecondCall(t *testing.T) {
	var hits atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, remote.DashboardCounts{ActiveJobs: 1})
	}))
	defer backend.Close()

	mr := miniredis.RunT(t)
	cacheMgr := cache.NewCacheManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	client := remote.NewClient(backend.URL, 500*time.Millisecond, utils.NewSlogLogger(testSlog()))
	svc := NewDashboardService(client, newTestStore(t), nil, cacheMgr, testSlog())

	_, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// The cache write is async; wait for the key before the second call.
	require.Eventually(t, func() bool {
		ok, err := cacheMgr.Dashboard.Exists(context.Background(), "overview")
		return err == nil && ok
	}, 2*time.Second, 10*time.Millisecond)

	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())
}
