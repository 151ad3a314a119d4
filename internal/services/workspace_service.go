package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
)

// ErrNoAccess is returned when a user is not a member of the workspace
// they are addressing.
var ErrNoAccess = errors.New("user has no access to workspace")

type WorkspaceService interface {
	Create(ctx context.Context, creatorID uuid.UUID, req *CreateWorkspaceRequest) (*models.Workspace, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error)
	Update(ctx context.Context, req *UpdateWorkspaceRequest) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Workspace, error)
	AddMember(ctx context.Context, workspaceID, userID uuid.UUID) error
	ValidateAccess(ctx context.Context, workspaceID, userID uuid.UUID) error
}

type workspaceService struct {
	workspaceRepo repositories.WorkspaceRepository
}

func NewWorkspaceService(workspaceRepo repositories.WorkspaceRepository) WorkspaceService {
	return &workspaceService{workspaceRepo: workspaceRepo}
}

type CreateWorkspaceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type UpdateWorkspaceRequest struct {
	ID          uuid.UUID
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (s *workspaceService) Create(ctx context.Context, creatorID uuid.UUID, req *CreateWorkspaceRequest) (*models.Workspace, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	workspace := &models.Workspace{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	// The creator always becomes a member.
	if err := s.workspaceRepo.AddMember(ctx, workspace.ID, creatorID); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *workspaceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	return s.workspaceRepo.GetByID(ctx, id)
}

func (s *workspaceService) Update(ctx context.Context, req *UpdateWorkspaceRequest) error {
	existing, err := s.workspaceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("workspace not found")
	}

	existing.Name = req.Name
	existing.Description = req.Description
	return s.workspaceRepo.Update(ctx, existing)
}

func (s *workspaceService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Workspace, error) {
	return s.workspaceRepo.ListForUser(ctx, userID)
}

func (s *workspaceService) AddMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	return s.workspaceRepo.AddMember(ctx, workspaceID, userID)
}

func (s *workspaceService) ValidateAccess(ctx context.Context, workspaceID, userID uuid.UUID) error {
	ok, err := s.workspaceRepo.HasMember(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoAccess
	}
	return nil
}
