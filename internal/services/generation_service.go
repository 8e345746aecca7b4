package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

const defaultGeneratedQuestions = 5

// Provider produces generated content. The HTTP provider talks to an
// external generation endpoint; the template provider is the built-in
// fallback that needs no network.
type Provider interface {
	Questions(ctx context.Context, req *models.GenerateQuestionsRequest) ([]models.Question, error)
	JobTitles(ctx context.Context, req *models.GenerateJobTitlesRequest) ([]string, error)
	JobDetails(ctx context.Context, req *models.GenerateJobDetailsRequest) (*models.JobDetails, error)
}

type generationService struct {
	provider  Provider
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGenerationService(provider Provider, logger *slog.Logger, v *validator.Validator) GenerationService {
	return &generationService{provider: provider, logger: logger, validator: v}
}

func (s *generationService) GenerateQuestions(ctx context.Context, req *models.GenerateQuestionsRequest) ([]models.Question, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}
	if req.Count <= 0 {
		req.Count = defaultGeneratedQuestions
	}
	questions, err := s.provider.Questions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	for i := range questions {
		questions[i].AIGenerated = true
		if questions[i].ID == 0 {
			questions[i].ID = int64(i + 1)
		}
	}
	return questions, nil
}

func (s *generationService) GenerateJobTitles(ctx context.Context, req *models.GenerateJobTitlesRequest) ([]string, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}
	titles, err := s.provider.JobTitles(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	return titles, nil
}

func (s *generationService) GenerateJobDetails(ctx context.Context, req *models.GenerateJobDetailsRequest) (*models.JobDetails, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}
	details, err := s.provider.JobDetails(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	return details, nil
}

// ===== TEMPLATE PROVIDER =====

// TemplateProvider generates content from canned patterns. It is the
// default when no generation endpoint is configured, and keeps the feature
// usable offline.
type TemplateProvider struct{}

func NewTemplateProvider() *TemplateProvider { return &TemplateProvider{} }

var questionPatterns = []struct {
	text string
	typ  models.QuestionType
}{
	{"What interests you about the %s role?", models.QuestionTextarea},
	{"Describe a project where you used skills relevant to %s.", models.QuestionTextarea},
	{"What is your greatest strength as a %s?", models.QuestionText},
	{"Record a short introduction about your background in %s.", models.QuestionVideo},
	{"Walk us through how you would approach your first month as a %s.", models.QuestionAudio},
	{"Where do you see the %s field heading in the next few years?", models.QuestionTextarea},
	{"What tools do you rely on day to day as a %s?", models.QuestionText},
	{"Tell us about a challenge you overcame in a previous %s position.", models.QuestionTextarea},
}

func (p *TemplateProvider) Questions(_ context.Context, req *models.GenerateQuestionsRequest) ([]models.Question, error) {
	count := req.Count
	if count <= 0 {
		count = defaultGeneratedQuestions
	}
	if count > len(questionPatterns) {
		count = len(questionPatterns)
	}

	allowed := map[models.QuestionType]bool{}
	for _, t := range req.QuestionTypes {
		allowed[models.QuestionType(t)] = true
	}

	out := make([]models.Question, 0, count)
	for _, pattern := range questionPatterns {
		if len(out) == count {
			break
		}
		if len(allowed) > 0 && !allowed[pattern.typ] {
			continue
		}
		out = append(out, models.Question{
			ID:          int64(len(out) + 1),
			Text:        fmt.Sprintf(pattern.text, req.JobTitle),
			Type:        pattern.typ,
			Required:    true,
			AIGenerated: true,
		})
	}
	return out, nil
}

var titleSeeds = map[string][]string{
	"engineering": {"Software Engineer", "Senior Software Engineer", "Staff Engineer", "Engineering Manager", "DevOps Engineer", "QA Engineer"},
	"product":     {"Product Manager", "Senior Product Manager", "Product Designer", "Product Analyst"},
	"sales":       {"Account Executive", "Sales Development Representative", "Sales Manager", "Customer Success Manager"},
	"marketing":   {"Marketing Manager", "Content Strategist", "Growth Marketer", "Brand Designer"},
	"hr":          {"Recruiter", "Talent Acquisition Specialist", "HR Business Partner", "People Operations Manager"},
}

var defaultTitles = []string{
	"Software Engineer", "Product Manager", "Account Executive",
	"Marketing Manager", "Recruiter", "Data Analyst", "Designer",
}

func (p *TemplateProvider) JobTitles(_ context.Context, req *models.GenerateJobTitlesRequest) ([]string, error) {
	titles := defaultTitles
	if seeds, ok := titleSeeds[strings.ToLower(strings.TrimSpace(req.Department))]; ok {
		titles = seeds
	}

	if keyword := strings.ToLower(strings.TrimSpace(req.Keyword)); keyword != "" {
		filtered := make([]string, 0, len(titles))
		for _, t := range titles {
			if strings.Contains(strings.ToLower(t), keyword) {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) > 0 {
			titles = filtered
		}
	}

	if req.Count > 0 && req.Count < len(titles) {
		titles = titles[:req.Count]
	}
	return titles, nil
}

func (p *TemplateProvider) JobDetails(_ context.Context, req *models.GenerateJobDetailsRequest) (*models.JobDetails, error) {
	title := req.JobTitle
	return &models.JobDetails{
		Description: fmt.Sprintf(
			"We are looking for a %s to join our team. You will work closely with cross-functional partners to deliver high-quality results and grow with the organization.",
			title),
		Requirements: fmt.Sprintf(
			"Proven experience in a %s or similar role. Strong communication skills. Ability to work independently and in a team.",
			title),
		Responsibilities: []string{
			fmt.Sprintf("Own day-to-day responsibilities of the %s function", title),
			"Collaborate with stakeholders across departments",
			"Contribute to planning and continuous improvement",
		},
	}, nil
}

// ===== HTTP PROVIDER =====

// HTTPProvider calls an external generation endpoint. Each content kind maps
// to a subpath of the configured base URL.
type HTTPProvider struct {
	baseURL string
	http    *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Questions(ctx context.Context, req *models.GenerateQuestionsRequest) ([]models.Question, error) {
	var out struct {
		Questions []models.Question `json:"questions"`
	}
	if err := p.post(ctx, "/questions", req, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (p *HTTPProvider) JobTitles(ctx context.Context, req *models.GenerateJobTitlesRequest) ([]string, error) {
	var out struct {
		Titles []string `json:"titles"`
	}
	if err := p.post(ctx, "/job-titles", req, &out); err != nil {
		return nil, err
	}
	return out.Titles, nil
}

func (p *HTTPProvider) JobDetails(ctx context.Context, req *models.GenerateJobDetailsRequest) (*models.JobDetails, error) {
	var out models.JobDetails
	if err := p.post(ctx, "/job-details", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("generation endpoint returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
