package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/localstore"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

func newResponseService(t *testing.T, baseURL string, store *localstore.Store) ResponseService {
	t.Helper()
	client := remote.NewClient(baseURL, 500*time.Millisecond, utils.NewSlogLogger(testSlog()))
	templates := NewTemplateService(client, store, testSlog(), validator.New(), nil, nil)
	return NewResponseService(client, store, templates, testSlog(), validator.New(), nil)
}

func seedLocalTemplate(t *testing.T, store *localstore.Store) identity.ID {
	t.Helper()
	id := identity.ID(1756000000000)
	require.NoError(t, store.UpsertTemplate(&models.FeedbackTemplate{
		ID:   id,
		Name: "Exit Interview",
		Questions: []models.Question{
			{ID: 1, Text: "Why are you leaving?", Type: models.QuestionTextarea},
			{ID: 2, Text: "Record a farewell note", Type: models.QuestionVideo},
			{ID: 3, Text: "Legacy rating", Type: "rating"},
		},
	}))
	return id
}

func TestSaveResponseOverwritesSameKey(t *testing.T) {
	store := newTestStore(t)
	formID := seedLocalTemplate(t, store)
	svc := newResponseService(t, deadBackendURL(t), store)

	_, err := svc.Save(context.Background(), &SaveResponseRequest{
		FormID:       formID,
		QuestionID:   1,
		ResponseText: "first answer",
	})
	require.NoError(t, err)

	result, err := svc.Save(context.Background(), &SaveResponseRequest{
		FormID:       formID,
		QuestionID:   1,
		ResponseText: "final answer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SavedToLocal, result.SavedTo)

	stored, err := store.ResponsesForForm(formID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "final answer", stored[0].ResponseText)
}

func TestSaveResponseOfflineSynthesizesLocalID(t *testing.T) {
	store := newTestStore(t)
	formID := seedLocalTemplate(t, store)
	svc := newResponseService(t, deadBackendURL(t), store)

	first, err := svc.Save(context.Background(), &SaveResponseRequest{
		FormID:       formID,
		QuestionID:   1,
		ResponseText: "draft answer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SavedToLocal, first.SavedTo)
	assert.GreaterOrEqual(t, int64(first.Response.ID), identity.LocalThreshold)
	assert.True(t, first.Response.ID.IsLocal())
	assert.False(t, first.Response.CreatedAt.IsZero())

	// Overwriting the same key keeps the first save's identity.
	second, err := svc.Save(context.Background(), &SaveResponseRequest{
		FormID:       formID,
		QuestionID:   1,
		ResponseText: "final answer",
	})
	require.NoError(t, err)
	assert.Equal(t, first.Response.ID, second.Response.ID)
	assert.True(t, second.Response.CreatedAt.Equal(first.Response.CreatedAt))
}

func TestSaveResponseRejectsUnknownQuestion(t *testing.T) {
	store := newTestStore(t)
	formID := seedLocalTemplate(t, store)
	svc := newResponseService(t, deadBackendURL(t), store)

	_, err := svc.Save(context.Background(), &SaveResponseRequest{
		FormID:       formID,
		QuestionID:   99,
		ResponseText: "orphan",
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "question_id", verrs[0].Field)
}

func TestSaveResponseRejectsUnsupportedQuestionType(t *testing.T) {
	store := newTestStore(t)
	formID := seedLocalTemplate(t, store)
	svc := newResponseService(t, deadBackendURL(t), store)

	_, err := svc.Save(context.Background(), &SaveResponseRequest{
		FormID:       formID,
		QuestionID:   3,
		ResponseText: "5 stars",
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs[0].Message, "does not accept responses")
}

func TestSaveResponseUnknownTemplate(t *testing.T) {
	store := newTestStore(t)
	svc := newResponseService(t, deadBackendURL(t), store)

	_, err := svc.Save(context.Background(), &SaveResponseRequest{
		FormID:       identity.ID(1756999999999),
		QuestionID:   1,
		ResponseText: "hello",
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestSaveResponseBackendFirstThenMirror(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/feedback-templates/42/":
			writeJSON(w, http.StatusOK, models.FeedbackTemplate{
				ID:   42,
				Name: "Phone Screen",
				Questions: []models.Question{
					{ID: 1, Text: "Intro", Type: models.QuestionText},
				},
			})
		case r.URL.Path == "/api/form-responses/" && r.Method == http.MethodPost:
			var body models.FormResponse
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			body.ID = 1001
			writeJSON(w, http.StatusCreated, body)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	store := newTestStore(t)
	svc := newResponseService(t, backend.URL, store)

	result, err := svc.Save(context.Background(), &SaveResponseRequest{
		FormID:       42,
		QuestionID:   1,
		ResponseText: "answered",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SavedToServer, result.SavedTo)
	assert.Equal(t, identity.ID(1001), result.Response.ID)

	mirrored, err := store.ResponsesForForm(42)
	require.NoError(t, err)
	assert.Len(t, mirrored, 1)
}

func TestListForFormBackendFailureReturnsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveResponse(&models.FormResponse{
		FormID: 42, QuestionID: 1, ResponseText: "local only",
	}))

	svc := newResponseService(t, deadBackendURL(t), store)
	responses, err := svc.ListForForm(context.Background(), 42)
	require.NoError(t, err)
	// Locally saved answers are deliberately not merged into the list.
	assert.Empty(t, responses)
}

func TestListForFormLocalTemplateReturnsEmpty(t *testing.T) {
	store := newTestStore(t)
	svc := newResponseService(t, deadBackendURL(t), store)

	responses, err := svc.ListForForm(context.Background(), identity.ID(1756000000000))
	require.NoError(t, err)
	assert.Empty(t, responses)
}
