package localstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	store, err := New(db, logger)
	require.NoError(t, err)
	return store
}

func TestTemplateUpsertAndFind(t *testing.T) {
	store := newTestStore(t)

	tmpl := &models.FeedbackTemplate{
		ID:     identity.ID(1756000000000),
		Name:   "Onboarding Survey",
		Status: models.TemplateDraft,
		Questions: []models.Question{
			{ID: 1, Text: "How was your first week?", Type: models.QuestionTextarea},
		},
	}
	require.NoError(t, store.UpsertTemplate(tmpl))

	got, err := store.FindTemplate(tmpl.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Onboarding Survey", got.Name)
	assert.Len(t, got.Questions, 1)

	// Upsert with the same id replaces, not duplicates.
	tmpl.Name = "Onboarding Survey v2"
	require.NoError(t, store.UpsertTemplate(tmpl))

	all, err := store.Templates()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Onboarding Survey v2", all[0].Name)
}

func TestConcurrentUpsertsKeepEveryTemplate(t *testing.T) {
	store := newTestStore(t)

	const writers = 25
	var wg sync.WaitGroup
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{
				ID:   identity.ID(id),
				Name: fmt.Sprintf("Template %d", id),
			}))
		}(i)
	}
	wg.Wait()

	all, err := store.Templates()
	require.NoError(t, err)
	assert.Len(t, all, writers, "overlapping rewrites must not drop templates")
}

func TestRemoveTemplateMissingIDIsNoop(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 5, Name: "Kept"}))
	require.NoError(t, store.RemoveTemplate(identity.ID(999)))

	all, err := store.Templates()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTombstoneLifecycle(t *testing.T) {
	store := newTestStore(t)

	id := identity.ID(42)
	require.NoError(t, store.AddTombstone(id, false))

	ids, err := store.TombstonedIDs()
	require.NoError(t, err)
	assert.True(t, ids[id])

	// Re-adding keeps a single tombstone; marking synced flips the flag.
	require.NoError(t, store.MarkTombstoneSynced(id))
	tombstones, err := store.Tombstones()
	require.NoError(t, err)
	require.Len(t, tombstones, 1)
	assert.True(t, tombstones[0].Synced)
}

func TestResponseOverwriteByKey(t *testing.T) {
	store := newTestStore(t)

	r := &models.FormResponse{
		FormID:       7,
		QuestionID:   2,
		ResponseText: "first answer",
	}
	require.NoError(t, store.SaveResponse(r))

	r.ResponseText = "revised answer"
	require.NoError(t, store.SaveResponse(r))

	responses, err := store.ResponsesForForm(7)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "revised answer", responses[0].ResponseText)
}

func TestResponsesForFormFiltersOtherForms(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveResponse(&models.FormResponse{FormID: 1, QuestionID: 1, ResponseText: "a"}))
	require.NoError(t, store.SaveResponse(&models.FormResponse{FormID: 2, QuestionID: 1, ResponseText: "b"}))

	responses, err := store.ResponsesForForm(1)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "a", responses[0].ResponseText)
}

func TestDecodeEntriesSkipsMalformed(t *testing.T) {
	store := newTestStore(t)

	// Write a blob where one array element has the wrong shape for a
	// template.
	raw := []json.RawMessage{
		json.RawMessage(`{"id": 3, "name": "Valid"}`),
		json.RawMessage(`{"id": "not-a-number"}`),
	}
	require.NoError(t, store.save(keyTemplates, raw))

	templates, err := store.Templates()
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Valid", templates[0].Name)
}

func TestCleanupDropsIncompleteEntries(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 10, Name: "Complete"}))
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{ID: 11, Name: ""}))
	require.NoError(t, store.SaveResponse(&models.FormResponse{FormID: 1, QuestionID: 1, ResponseText: "ok"}))
	require.NoError(t, store.SaveResponse(&models.FormResponse{FormID: 0, QuestionID: 3, ResponseText: "orphan"}))

	require.NoError(t, store.Cleanup())

	templates, err := store.Templates()
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Complete", templates[0].Name)

	responses, err := store.Responses()
	require.NoError(t, err)
	require.Len(t, responses, 1)
}

func TestCorruptBlobReadsEmpty(t *testing.T) {
	store := newTestStore(t)

	entry := StoreEntry{Key: keyTemplates, Value: []byte(`{"totally": "wrong"}`), UpdatedAt: time.Now()}
	require.NoError(t, store.db.Create(&entry).Error)

	templates, err := store.Templates()
	require.NoError(t, err)
	assert.Empty(t, templates)
}
