package remote

import (
	"context"
	"fmt"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
)

// SaveResponse persists one answer on the backend. The backend upserts on
// (form_id, question_id).
func (c *Client) SaveResponse(ctx context.Context, r *models.FormResponse) (*models.FormResponse, error) {
	var saved models.FormResponse
	if err := c.post(ctx, "/api/form-responses/", r, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListResponses fetches all answers recorded for one template.
func (c *Client) ListResponses(ctx context.Context, formID identity.ID) ([]models.FormResponse, error) {
	responses, _, err := getList[models.FormResponse](ctx, c, fmt.Sprintf("/api/form-responses/?form_id=%d", formID))
	return responses, err
}
