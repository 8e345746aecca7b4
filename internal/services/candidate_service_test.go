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
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

func newCandidateService(t *testing.T, baseURL string) CandidateService {
	t.Helper()
	client := remote.NewClient(baseURL, 500*time.Millisecond, utils.NewSlogLogger(testSlog()))
	return NewCandidateService(client, testSlog(), validator.New(), nil, nil)
}

// echoBulkBackend accepts every uploaded row as created.
func echoBulkBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/candidates/bulk_create/", r.URL.Path)
		var req models.BulkCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result := models.BulkCreateResult{Created: []models.Candidate{}}
		for i, row := range req.Candidates {
			result.Created = append(result.Created, models.Candidate{
				ID:        identity.ID(i + 1),
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Email:     row.Email,
			})
		}
		writeJSON(w, http.StatusOK, result)
	}))
}

func TestBulkCreateValidatesAndDedupsBeforeUpload(t *testing.T) {
	backend := echoBulkBackend(t)
	defer backend.Close()

	svc := newCandidateService(t, backend.URL)
	result, err := svc.BulkCreate(context.Background(), &BulkCreateCandidatesRequest{
		Candidates: []models.BulkCreateRow{
			{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			{FirstName: "Ada", LastName: "Duplicate", Email: "ADA@example.com"},
			{FirstName: "No", LastName: "Email"},
			{FirstName: "Bad", LastName: "Email", Email: "not-an-email"},
			{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, result.Created, 2)
	assert.Len(t, result.Skipped, 1)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 5, result.Stats.Total)
	assert.Equal(t, 2, result.Stats.Created)
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.Equal(t, 2, result.Stats.Failed)
}

func TestBulkCreateEmptyRejected(t *testing.T) {
	svc := newCandidateService(t, deadBackendURL(t))

	_, err := svc.BulkCreate(context.Background(), &BulkCreateCandidatesRequest{})
	require.Error(t, err)

	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestBulkCreateAllRowsInvalidSkipsUpload(t *testing.T) {
	// Backend is dead; if no row survives validation nothing is uploaded
	// and the call still succeeds with per-row errors.
	svc := newCandidateService(t, deadBackendURL(t))

	result, err := svc.BulkCreate(context.Background(), &BulkCreateCandidatesRequest{
		Candidates: []models.BulkCreateRow{
			{FirstName: "No", LastName: "Email"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Len(t, result.Errors, 1)
}
