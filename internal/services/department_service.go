package services

import (
	"context"
	"log/slog"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

type departmentService struct {
	client    *remote.Client
	logger    *slog.Logger
	validator *validator.Validator
}

func NewDepartmentService(client *remote.Client, logger *slog.Logger, v *validator.Validator) DepartmentService {
	return &departmentService{client: client, logger: logger, validator: v}
}

func (s *departmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.client.ListDepartments(ctx)
}

func (s *departmentService) Get(ctx context.Context, id identity.ID) (*models.Department, error) {
	department, err := s.client.GetDepartment(ctx, id)
	if remote.IsNotFound(err) {
		return nil, ErrDepartmentNotFound
	}
	return department, err
}

func (s *departmentService) Create(ctx context.Context, req *CreateDepartmentRequest) (*models.Department, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}
	return s.client.CreateDepartment(ctx, req)
}

func (s *departmentService) Update(ctx context.Context, id identity.ID, req *UpdateDepartmentRequest) (*models.Department, error) {
	if verrs := s.validator.Validate(req); len(verrs) > 0 {
		return nil, verrs
	}
	updated, err := s.client.UpdateDepartment(ctx, id, req)
	if remote.IsNotFound(err) {
		return nil, ErrDepartmentNotFound
	}
	return updated, err
}

func (s *departmentService) Delete(ctx context.Context, id identity.ID) error {
	err := s.client.DeleteDepartment(ctx, id)
	if remote.IsNotFound(err) {
		return ErrDepartmentNotFound
	}
	return err
}
