package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *models.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error)
	Update(ctx context.Context, workspace *models.Workspace) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Workspace, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Workspace, error)
	AddMember(ctx context.Context, workspaceID, userID uuid.UUID) error
	HasMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
}

type workspaceRepo struct {
	db DB
}

func NewWorkspaceRepository(db DB) WorkspaceRepository {
	return &workspaceRepo{db: db}
}

func (r *workspaceRepo) Create(ctx context.Context, workspace *models.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, workspace.ID, workspace.Name, workspace.Description)
	return err
}

func (r *workspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	workspace := &models.Workspace{}
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&workspace.ID, &workspace.Name, &workspace.Description, &workspace.CreatedAt, &workspace.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

func (r *workspaceRepo) Update(ctx context.Context, workspace *models.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, workspace.Name, workspace.Description, workspace.ID)
	return err
}

func (r *workspaceRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.description, w.created_at, w.updated_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY w.name ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*models.Workspace
	for rows.Next() {
		workspace := &models.Workspace{}
		if err := rows.Scan(&workspace.ID, &workspace.Name, &workspace.Description, &workspace.CreatedAt, &workspace.UpdatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, workspace)
	}
	return workspaces, rows.Err()
}

func (r *workspaceRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.Workspace, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM workspaces
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*models.Workspace
	for rows.Next() {
		workspace := &models.Workspace{}
		if err := rows.Scan(&workspace.ID, &workspace.Name, &workspace.Description, &workspace.CreatedAt, &workspace.UpdatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, workspace)
	}
	return workspaces, rows.Err()
}

func (r *workspaceRepo) AddMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	query := `
		INSERT INTO workspace_members (workspace_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (workspace_id, user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, workspaceID, userID)
	return err
}

func (r *workspaceRepo) HasMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM workspace_members
			WHERE workspace_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, workspaceID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
