package remote

import (
	"context"
	"fmt"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
)

func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments, _, err := getList[models.Department](ctx, c, "/api/departments/")
	return departments, err
}

func (c *Client) GetDepartment(ctx context.Context, id identity.ID) (*models.Department, error) {
	var department models.Department
	if err := c.get(ctx, fmt.Sprintf("/api/departments/%d/", id), &department); err != nil {
		return nil, err
	}
	return &department, nil
}

func (c *Client) CreateDepartment(ctx context.Context, req *models.DepartmentCreateRequest) (*models.Department, error) {
	var created models.Department
	if err := c.post(ctx, "/api/departments/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateDepartment(ctx context.Context, id identity.ID, req *models.DepartmentUpdateRequest) (*models.Department, error) {
	var updated models.Department
	if err := c.patch(ctx, fmt.Sprintf("/api/departments/%d/", id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteDepartment(ctx context.Context, id identity.ID) error {
	return c.delete(ctx, fmt.Sprintf("/api/departments/%d/", id))
}
