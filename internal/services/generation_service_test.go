package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

func TestTemplateProviderQuestions(t *testing.T) {
	svc := NewGenerationService(NewTemplateProvider(), testSlog(), validator.New())

	questions, err := svc.GenerateQuestions(context.Background(), &models.GenerateQuestionsRequest{
		JobTitle: "Backend Engineer",
		Count:    3,
	})
	require.NoError(t, err)
	require.Len(t, questions, 3)

	for i, q := range questions {
		assert.True(t, q.AIGenerated)
		assert.Equal(t, int64(i+1), q.ID)
		assert.Contains(t, q.Text, "Backend Engineer")
		assert.True(t, models.SupportedQuestionTypes[q.Type])
	}
}

func TestTemplateProviderQuestionsFiltersTypes(t *testing.T) {
	svc := NewGenerationService(NewTemplateProvider(), testSlog(), validator.New())

	questions, err := svc.GenerateQuestions(context.Background(), &models.GenerateQuestionsRequest{
		JobTitle:      "Designer",
		Count:         4,
		QuestionTypes: []string{"text"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, questions)
	for _, q := range questions {
		assert.Equal(t, models.QuestionText, q.Type)
	}
}

func TestTemplateProviderJobTitlesByDepartment(t *testing.T) {
	svc := NewGenerationService(NewTemplateProvider(), testSlog(), validator.New())

	titles, err := svc.GenerateJobTitles(context.Background(), &models.GenerateJobTitlesRequest{
		Department: "Engineering",
		Count:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Software Engineer", "Senior Software Engineer"}, titles)
}

func TestTemplateProviderJobDetails(t *testing.T) {
	svc := NewGenerationService(NewTemplateProvider(), testSlog(), validator.New())

	details, err := svc.GenerateJobDetails(context.Background(), &models.GenerateJobDetailsRequest{
		JobTitle: "Recruiter",
	})
	require.NoError(t, err)
	assert.Contains(t, details.Description, "Recruiter")
	assert.NotEmpty(t, details.Requirements)
	assert.NotEmpty(t, details.Responsibilities)
}

func TestHTTPProviderRoundTrip(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/job-titles", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string][]string{"titles": {"Platform Engineer"}})
	}))
	defer backend.Close()

	svc := NewGenerationService(NewHTTPProvider(backend.URL, time.Second), testSlog(), validator.New())
	titles, err := svc.GenerateJobTitles(context.Background(), &models.GenerateJobTitlesRequest{Keyword: "platform"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Platform Engineer"}, titles)
}

func TestHTTPProviderErrorWrapsUnavailable(t *testing.T) {
	svc := NewGenerationService(NewHTTPProvider(deadBackendURL(t), 200*time.Millisecond), testSlog(), validator.New())

	_, err := svc.GenerateJobTitles(context.Background(), &models.GenerateJobTitlesRequest{})
	assert.ErrorIs(t, err, ErrGenerationUnavailable)
}

func TestGenerateQuestionsRequiresJobTitle(t *testing.T) {
	svc := NewGenerationService(NewTemplateProvider(), testSlog(), validator.New())

	_, err := svc.GenerateQuestions(context.Background(), &models.GenerateQuestionsRequest{})
	require.Error(t, err)

	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
