package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
)

func (c *Client) ListCandidates(ctx context.Context, params *models.ListCandidatesParams) ([]models.Candidate, int, error) {
	q := url.Values{}
	if params != nil {
		if params.Page > 0 {
			q.Set("page", strconv.Itoa(params.Page))
		}
		if params.Size > 0 {
			q.Set("page_size", strconv.Itoa(params.Size))
		}
		if params.JobID != 0 {
			q.Set("job", strconv.FormatInt(int64(params.JobID), 10))
		}
		if params.Search != "" {
			q.Set("search", params.Search)
		}
		if params.Status != "" {
			q.Set("status", params.Status)
		}
	}

	path := "/api/candidates/"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	return getList[models.Candidate](ctx, c, path)
}

func (c *Client) CreateCandidate(ctx context.Context, req *models.CandidateCreateRequest) (*models.Candidate, error) {
	var created models.Candidate
	if err := c.post(ctx, "/api/candidates/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetCandidate(ctx context.Context, id identity.ID) (*models.Candidate, error) {
	var cand models.Candidate
	if err := c.get(ctx, fmt.Sprintf("/api/candidates/%d/", id), &cand); err != nil {
		return nil, err
	}
	return &cand, nil
}

func (c *Client) UpdateCandidate(ctx context.Context, id identity.ID, req *models.CandidateUpdateRequest) (*models.Candidate, error) {
	var updated models.Candidate
	if err := c.patch(ctx, fmt.Sprintf("/api/candidates/%d/", id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCandidate(ctx context.Context, id identity.ID) error {
	return c.delete(ctx, fmt.Sprintf("/api/candidates/%d/", id))
}

func (c *Client) CandidateStatistics(ctx context.Context) (*models.CandidateStatistics, error) {
	var stats models.CandidateStatistics
	if err := c.get(ctx, "/api/candidates/statistics/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// BulkCreateCandidates uploads rows in one request; the backend dedups by
// email and by full name and reports per-row outcomes.
func (c *Client) BulkCreateCandidates(ctx context.Context, req *models.BulkCreateRequest) (*models.BulkCreateResult, error) {
	var result models.BulkCreateResult
	if err := c.post(ctx, "/api/candidates/bulk_create/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
