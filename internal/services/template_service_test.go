package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/localstore"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

func testSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) *localstore.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	store, err := localstore.New(db, utils.NewSlogLogger(testSlog()))
	require.NoError(t, err)
	return store
}

func newTemplateService(t *testing.T, baseURL string, store *localstore.Store) TemplateService {
	t.Helper()
	client := remote.NewClient(baseURL, 500*time.Millisecond, utils.NewSlogLogger(testSlog()))
	return NewTemplateService(client, store, testSlog(), validator.New(), nil, nil)
}

// deadBackendURL returns a URL nothing listens on.
func deadBackendURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListMergesBackendAndLocalBackendWins(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.FeedbackTemplate{
			{ID: 1, Name: "Server Copy", Status: models.TemplatePublished},
			{ID: 2, Name: "Server Only", Status: models.TemplateDraft},
		})
	}))
	defer backend.Close()

	store := newTestStore(t)
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 1, Name: "Stale Local Copy"}))
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 1756000000000, Name: "Local Only"}))

	svc := newTemplateService(t, backend.URL, store)
	templates, offline, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.False(t, offline)
	require.Len(t, templates, 3)

	byID := map[identity.ID]models.FeedbackTemplate{}
	for _, tmpl := range templates {
		byID[tmpl.ID] = tmpl
	}
	assert.Equal(t, "Server Copy", byID[1].Name)
	assert.Equal(t, "Server Only", byID[2].Name)
	assert.Equal(t, "Local Only", byID[1756000000000].Name)
}

func TestListMergeIsIdempotent(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.FeedbackTemplate{{ID: 1, Name: "One"}})
	}))
	defer backend.Close()

	store := newTestStore(t)
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 1756000000000, Name: "Local"}))

	svc := newTemplateService(t, backend.URL, store)
	first, _, err := svc.List(context.Background())
	require.NoError(t, err)
	second, _, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListBackendDownServesLocal(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 1756000000000, Name: "Offline Draft"}))

	svc := newTemplateService(t, deadBackendURL(t), store)
	templates, offline, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.True(t, offline, "callers must be told the list is local only")
	require.Len(t, templates, 1)
	assert.Equal(t, "Offline Draft", templates[0].Name)
}

func TestListMirrorsBackendTemplatesForOfflineEdit(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.FeedbackTemplate{
			{ID: 42, Name: "Server Template", Status: models.TemplateDraft},
		})
	}))

	store := newTestStore(t)
	svc := newTemplateService(t, backend.URL, store)
	_, _, err := svc.List(context.Background())
	require.NoError(t, err)
	backend.Close()

	// The template seen online must stay editable once the backend is gone.
	offlineSvc := newTemplateService(t, deadBackendURL(t), store)
	name := "Edited After Outage"
	result, err := offlineSvc.Update(context.Background(), 42, &UpdateTemplateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, models.SavedToLocal, result.SavedTo)
	assert.Equal(t, "Edited After Outage", result.Template.Name)
}

func TestCreateSavesToServer(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body models.FeedbackTemplate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body.ID = 7
		writeJSON(w, http.StatusCreated, body)
	}))
	defer backend.Close()

	store := newTestStore(t)
	svc := newTemplateService(t, backend.URL, store)

	result, err := svc.Create(context.Background(), &CreateTemplateRequest{
		Name:      "Interview Feedback",
		Questions: []models.Question{{Text: "How did it go?", Type: models.QuestionTextarea}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.SavedToServer, result.SavedTo)
	assert.Equal(t, identity.ID(7), result.Template.ID)
	assert.Equal(t, identity.OriginRemote, result.Template.Origin())
}

func TestCreateOfflineSynthesizesLocalID(t *testing.T) {
	store := newTestStore(t)
	svc := newTemplateService(t, deadBackendURL(t), store)

	result, err := svc.Create(context.Background(), &CreateTemplateRequest{
		Name:      "Onboarding Survey",
		Questions: []models.Question{{Text: "How was week one?", Type: models.QuestionText}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.SavedToLocal, result.SavedTo)
	assert.GreaterOrEqual(t, int64(result.Template.ID), identity.LocalThreshold)
	assert.Equal(t, identity.OriginLocal, result.Template.Origin())
	assert.Equal(t, models.TemplateDraft, result.Template.Status)

	stored, err := store.FindTemplate(result.Template.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Onboarding Survey", stored.Name)
}

func TestCreateRejectsLegacyQuestionType(t *testing.T) {
	store := newTestStore(t)
	svc := newTemplateService(t, deadBackendURL(t), store)

	_, err := svc.Create(context.Background(), &CreateTemplateRequest{
		Name:      "Old Builder Form",
		Questions: []models.Question{{Text: "Rate us", Type: "rating"}},
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs[0].Message, "no longer supported")
}

func TestUpdateZeroIDRejected(t *testing.T) {
	store := newTestStore(t)
	svc := newTemplateService(t, deadBackendURL(t), store)

	_, err := svc.Update(context.Background(), 0, &UpdateTemplateRequest{})
	assert.ErrorIs(t, err, ErrTemplateNotPersisted)
}

func TestUpdateLocalIDStaysOffNetwork(t *testing.T) {
	var hits atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, []models.FeedbackTemplate{})
	}))
	defer backend.Close()

	localID := identity.ID(1756000000000)
	store := newTestStore(t)
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: localID, Name: "Local Draft"}))

	svc := newTemplateService(t, backend.URL, store)
	name := "Local Draft v2"
	result, err := svc.Update(context.Background(), localID, &UpdateTemplateRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, models.SavedToLocal, result.SavedTo)
	assert.Equal(t, int64(0), hits.Load(), "local-range ids must never reach the network")
}

func TestUpdateRemoteFallsBackToLocalMerge(t *testing.T) {
	localCopy := models.FeedbackTemplate{ID: 42, Name: "Server Template", Status: models.TemplateDraft}
	store := newTestStore(t)
	require.NoError(t, store.UpsertTemplate(&localCopy))

	svc := newTemplateService(t, deadBackendURL(t), store)
	name := "Edited While Offline"
	result, err := svc.Update(context.Background(), 42, &UpdateTemplateRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, models.SavedToLocal, result.SavedTo)
	assert.Equal(t, "Edited While Offline", result.Template.Name)

	stored, err := store.FindTemplate(42)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Edited While Offline", stored.Name)
}

func TestUpdateBackendRejectionFallsBackToLocalMerge(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, models.FeedbackTemplate{ID: 42, Name: "Server Template", Status: models.TemplateDraft})
		case http.MethodPut:
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "backend validation failed"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer backend.Close()

	store := newTestStore(t)
	svc := newTemplateService(t, backend.URL, store)

	name := "Rejected Upstream"
	result, err := svc.Update(context.Background(), 42, &UpdateTemplateRequest{Name: &name})
	require.NoError(t, err, "a backend rejection must not lose the edit")
	assert.Equal(t, models.SavedToLocal, result.SavedTo)

	stored, err := store.FindTemplate(42)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Rejected Upstream", stored.Name)
}

func TestUpdateRemotelyDeletedTemplateSavesLocally(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
	}))
	defer backend.Close()

	store := newTestStore(t)
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 42, Name: "Mirrored Copy", Status: models.TemplateDraft}))

	svc := newTemplateService(t, backend.URL, store)
	name := "Edited After Remote Delete"
	result, err := svc.Update(context.Background(), 42, &UpdateTemplateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, models.SavedToLocal, result.SavedTo)
	assert.Equal(t, "Edited After Remote Delete", result.Template.Name)
}

func TestDeleteSwallowsBackendFailureAndTombstones(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 42, Name: "Doomed"}))

	svc := newTemplateService(t, deadBackendURL(t), store)
	require.NoError(t, svc.Delete(context.Background(), 42))

	stored, err := store.FindTemplate(42)
	require.NoError(t, err)
	assert.Nil(t, stored)

	ids, err := store.TombstonedIDs()
	require.NoError(t, err)
	assert.True(t, ids[42])
}

func TestDeletedTemplateDoesNotResurrectFromBackendList(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			// Simulate a backend that failed the delete.
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, []models.FeedbackTemplate{{ID: 42, Name: "Zombie"}})
	}))
	defer backend.Close()

	store := newTestStore(t)
	svc := newTemplateService(t, backend.URL, store)

	require.NoError(t, svc.Delete(context.Background(), 42))

	templates, _, err := svc.List(context.Background())
	require.NoError(t, err)
	for _, tmpl := range templates {
		assert.NotEqual(t, identity.ID(42), tmpl.ID, "deleted template resurrected from backend list")
	}
}

func TestPublishLocalIDRejectedBeforeNetwork(t *testing.T) {
	var hits atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	store := newTestStore(t)
	svc := newTemplateService(t, backend.URL, store)

	_, err := svc.Publish(context.Background(), identity.ID(1756000000000))
	require.Error(t, err)

	var bre *BusinessRuleError
	require.ErrorAs(t, err, &bre)
	assert.Equal(t, int64(0), hits.Load())
}

func TestPublishSurfacesBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "template has no questions"})
	}))
	defer backend.Close()

	store := newTestStore(t)
	svc := newTemplateService(t, backend.URL, store)

	_, err := svc.Publish(context.Background(), 42)
	require.Error(t, err)

	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "template has no questions", apiErr.Detail)
}

func TestSyncLocalRetriesPendingDeletes(t *testing.T) {
	var deletes atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, []models.FeedbackTemplate{})
	}))
	defer backend.Close()

	store := newTestStore(t)
	require.NoError(t, store.AddTombstone(42, false))
	require.NoError(t, store.AddTombstone(43, true))

	svc := newTemplateService(t, backend.URL, store)
	require.NoError(t, svc.SyncLocal(context.Background()))

	assert.Equal(t, int64(1), deletes.Load(), "only the unsynced tombstone should retry")

	tombstones, err := store.Tombstones()
	require.NoError(t, err)
	for _, tomb := range tombstones {
		assert.True(t, tomb.Synced)
	}
}
