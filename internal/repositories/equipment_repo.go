package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

type EquipmentRepository interface {
	Create(ctx context.Context, equipment *models.Equipment) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Equipment, error)
	Update(ctx context.Context, equipment *models.Equipment) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	List(ctx context.Context, workspaceID uuid.UUID, search string) ([]*models.EquipmentWithUsage, error)
}

type equipmentRepo struct {
	db DB
}

func NewEquipmentRepository(db DB) EquipmentRepository {
	return &equipmentRepo{db: db}
}

func (r *equipmentRepo) Create(ctx context.Context, equipment *models.Equipment) error {
	query := `
		INSERT INTO equipment (id, workspace_id, name, mark, model, serial_number, daily_rate, last_maintenance, next_maintenance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, equipment.ID, equipment.WorkspaceID, equipment.Name, equipment.Mark, equipment.Model, equipment.SerialNumber, equipment.DailyRate, equipment.LastMaintenance, equipment.NextMaintenance)
	return err
}

func (r *equipmentRepo) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Equipment, error) {
	equipment := &models.Equipment{}
	query := `
		SELECT id, workspace_id, name, mark, model, serial_number, daily_rate, last_maintenance, next_maintenance, created_at, updated_at
		FROM equipment
		WHERE workspace_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, workspaceID, id).Scan(&equipment.ID, &equipment.WorkspaceID, &equipment.Name, &equipment.Mark, &equipment.Model, &equipment.SerialNumber, &equipment.DailyRate, &equipment.LastMaintenance, &equipment.NextMaintenance, &equipment.CreatedAt, &equipment.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return equipment, nil
}

func (r *equipmentRepo) Update(ctx context.Context, equipment *models.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $1, mark = $2, model = $3, serial_number = $4, daily_rate = $5, last_maintenance = $6, next_maintenance = $7, updated_at = NOW()
		WHERE workspace_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, equipment.Name, equipment.Mark, equipment.Model, equipment.SerialNumber, equipment.DailyRate, equipment.LastMaintenance, equipment.NextMaintenance, equipment.WorkspaceID, equipment.ID)
	return err
}

func (r *equipmentRepo) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	query := `DELETE FROM equipment WHERE workspace_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, workspaceID, id)
	return err
}

// List returns equipment with its ACTIVE contract count so callers can
// derive rented/available without a second query.
func (r *equipmentRepo) List(ctx context.Context, workspaceID uuid.UUID, search string) ([]*models.EquipmentWithUsage, error) {
	query := `
		SELECT e.id, e.workspace_id, e.name, e.mark, e.model, e.serial_number, e.daily_rate, e.last_maintenance, e.next_maintenance, e.created_at, e.updated_at,
			COUNT(c.id) FILTER (WHERE c.status = 'ACTIVE') AS active_contracts
		FROM equipment e
		LEFT JOIN contracts c ON c.equipment_id = e.id
		WHERE e.workspace_id = $1
			AND ($2 = '' OR e.name ILIKE '%' || $2 || '%' OR e.mark ILIKE '%' || $2 || '%' OR e.model ILIKE '%' || $2 || '%')
		GROUP BY e.id
		ORDER BY e.name ASC
	`
	rows, err := r.db.Query(ctx, query, workspaceID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.EquipmentWithUsage
	for rows.Next() {
		item := &models.EquipmentWithUsage{}
		if err := rows.Scan(&item.ID, &item.WorkspaceID, &item.Name, &item.Mark, &item.Model, &item.SerialNumber, &item.DailyRate, &item.LastMaintenance, &item.NextMaintenance, &item.CreatedAt, &item.UpdatedAt, &item.ActiveContracts); err != nil {
			return nil, err
		}
		item.HasActiveContract = item.ActiveContracts > 0
		results = append(results, item)
	}
	return results, rows.Err()
}
