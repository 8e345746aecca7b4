package remote

import (
	"context"
	"fmt"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
)

// ListJobs fetches all jobs from the backend.
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	jobs, _, err := getList[models.Job](ctx, c, "/api/jobs/")
	return jobs, err
}

func (c *Client) GetJob(ctx context.Context, id identity.ID) (*models.Job, error) {
	var j models.Job
	if err := c.get(ctx, fmt.Sprintf("/api/jobs/%d/", id), &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *Client) CreateJob(ctx context.Context, req *models.JobCreateRequest) (*models.Job, error) {
	var created models.Job
	if err := c.post(ctx, "/api/jobs/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateJob(ctx context.Context, id identity.ID, req *models.JobUpdateRequest) (*models.Job, error) {
	var updated models.Job
	if err := c.patch(ctx, fmt.Sprintf("/api/jobs/%d/", id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteJob(ctx context.Context, id identity.ID) error {
	return c.delete(ctx, fmt.Sprintf("/api/jobs/%d/", id))
}

// PublishJob opens the job for applications. Publishing a paused job reopens
// it.
func (c *Client) PublishJob(ctx context.Context, id identity.ID) (*models.Job, error) {
	return c.jobAction(ctx, id, "publish")
}

// PauseJob pauses an open job.
func (c *Client) PauseJob(ctx context.Context, id identity.ID) (*models.Job, error) {
	return c.jobAction(ctx, id, "pause")
}

// CloseJob closes the job permanently.
func (c *Client) CloseJob(ctx context.Context, id identity.ID) (*models.Job, error) {
	return c.jobAction(ctx, id, "close")
}

func (c *Client) JobStatistics(ctx context.Context) (*models.JobStatistics, error) {
	var stats models.JobStatistics
	if err := c.get(ctx, "/api/jobs/statistics/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) jobAction(ctx context.Context, id identity.ID, action string) (*models.Job, error) {
	var j models.Job
	if err := c.post(ctx, fmt.Sprintf("/api/jobs/%d/%s/", id, action), nil, &j); err != nil {
		return nil, err
	}
	return &j, nil
}
