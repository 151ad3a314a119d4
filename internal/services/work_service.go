package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
)

type WorkService interface {
	Create(ctx context.Context, workspaceID uuid.UUID, req *CreateWorkRequest) (*models.Work, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Work, error)
	List(ctx context.Context, workspaceID uuid.UUID) ([]*models.Work, error)
}

type workService struct {
	workRepo repositories.WorkRepository
}

func NewWorkService(workRepo repositories.WorkRepository) WorkService {
	return &workService{workRepo: workRepo}
}

type CreateWorkRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (s *workService) Create(ctx context.Context, workspaceID uuid.UUID, req *CreateWorkRequest) (*models.Work, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	work := &models.Work{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.workRepo.Create(ctx, work); err != nil {
		return nil, err
	}
	return work, nil
}

func (s *workService) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Work, error) {
	return s.workRepo.GetByID(ctx, workspaceID, id)
}

func (s *workService) List(ctx context.Context, workspaceID uuid.UUID) ([]*models.Work, error) {
	return s.workRepo.List(ctx, workspaceID)
}
