package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
)

// listEnvelope matches the backend's paginated list shape. Some list
// endpoints answer with a plain array instead; getList accepts both.
type listEnvelope[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// getList fetches a collection endpoint once and decodes the buffered body
// as either the paginated envelope or a plain array.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, int, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, 0, err
	}

	var envelope listEnvelope[T]
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, envelope.Count, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, fmt.Errorf("decode list response: %w", err)
	}
	return items, len(items), nil
}

// ListTemplates fetches all feedback templates from the backend.
func (c *Client) ListTemplates(ctx context.Context) ([]models.FeedbackTemplate, error) {
	templates, _, err := getList[models.FeedbackTemplate](ctx, c, "/api/feedback-templates/")
	return templates, err
}

// GetTemplate fetches a single template by id.
func (c *Client) GetTemplate(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error) {
	var t models.FeedbackTemplate
	if err := c.get(ctx, fmt.Sprintf("/api/feedback-templates/%d/", id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTemplate persists a new template on the backend; the backend assigns
// the id.
func (c *Client) CreateTemplate(ctx context.Context, t *models.FeedbackTemplate) (*models.FeedbackTemplate, error) {
	var created models.FeedbackTemplate
	if err := c.post(ctx, "/api/feedback-templates/", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTemplate replaces the template on the backend.
func (c *Client) UpdateTemplate(ctx context.Context, t *models.FeedbackTemplate) (*models.FeedbackTemplate, error) {
	var updated models.FeedbackTemplate
	if err := c.put(ctx, fmt.Sprintf("/api/feedback-templates/%d/", t.ID), t, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTemplate removes the template on the backend.
func (c *Client) DeleteTemplate(ctx context.Context, id identity.ID) error {
	return c.delete(ctx, fmt.Sprintf("/api/feedback-templates/%d/", id))
}

// PublishTemplate flips the template to published on the backend.
func (c *Client) PublishTemplate(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error) {
	var t models.FeedbackTemplate
	if err := c.post(ctx, fmt.Sprintf("/api/feedback-templates/%d/publish/", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UnpublishTemplate reverts the template to draft on the backend.
func (c *Client) UnpublishTemplate(ctx context.Context, id identity.ID) (*models.FeedbackTemplate, error) {
	var t models.FeedbackTemplate
	if err := c.post(ctx, fmt.Sprintf("/api/feedback-templates/%d/unpublish/", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
