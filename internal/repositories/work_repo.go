package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

type WorkRepository interface {
	Create(ctx context.Context, work *models.Work) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Work, error)
	List(ctx context.Context, workspaceID uuid.UUID) ([]*models.Work, error)
}

type workRepo struct {
	db DB
}

func NewWorkRepository(db DB) WorkRepository {
	return &workRepo{db: db}
}

func (r *workRepo) Create(ctx context.Context, work *models.Work) error {
	query := `
		INSERT INTO works (id, workspace_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, work.ID, work.WorkspaceID, work.Name, work.Description)
	return err
}

func (r *workRepo) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Work, error) {
	work := &models.Work{}
	query := `
		SELECT id, workspace_id, name, description, created_at, updated_at
		FROM works
		WHERE workspace_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, workspaceID, id).Scan(&work.ID, &work.WorkspaceID, &work.Name, &work.Description, &work.CreatedAt, &work.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return work, nil
}

func (r *workRepo) List(ctx context.Context, workspaceID uuid.UUID) ([]*models.Work, error) {
	query := `
		SELECT id, workspace_id, name, description, created_at, updated_at
		FROM works
		WHERE workspace_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var works []*models.Work
	for rows.Next() {
		work := &models.Work{}
		if err := rows.Scan(&work.ID, &work.WorkspaceID, &work.Name, &work.Description, &work.CreatedAt, &work.UpdatedAt); err != nil {
			return nil, err
		}
		works = append(works, work)
	}
	return works, rows.Err()
}
