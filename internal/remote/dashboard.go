package remote

import (
	"context"

	"github.com/nithishcb360/recruit-sub001/internal/models"
)

// DashboardCounts is the backend's aggregate snapshot.
type DashboardCounts struct {
	ActiveJobs      int `json:"active_jobs"`
	TotalCandidates int `json:"total_candidates"`
	TemplateCount   int `json:"template_count"`
	PublishedCount  int `json:"published_count"`
	ResponseCount   int `json:"response_count"`
}

func (c *Client) DashboardOverview(ctx context.Context) (*DashboardCounts, error) {
	var counts DashboardCounts
	if err := c.get(ctx, "/api/dashboard/overview/", &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// GenerateJobTitles asks the backend's generation endpoint for title
// suggestions.
func (c *Client) GenerateJobTitles(ctx context.Context, req *models.GenerateJobTitlesRequest) ([]string, error) {
	var out struct {
		Titles []string `json:"titles"`
	}
	if err := c.post(ctx, "/api/generate-job-titles/", req, &out); err != nil {
		return nil, err
	}
	return out.Titles, nil
}
