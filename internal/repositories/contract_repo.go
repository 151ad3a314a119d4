package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Contract, error)
	Update(ctx context.Context, contract *models.Contract) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	List(ctx context.Context, workspaceID uuid.UUID) ([]*models.Contract, error)
	Summary(ctx context.Context, workspaceID uuid.UUID) (*models.ContractSummary, error)
}

type contractRepo struct {
	db DB
}

func NewContractRepository(db DB) ContractRepository {
	return &contractRepo{db: db}
}

const contractColumns = `id, workspace_id, name, description, client_name, work_id, equipment_id, init_date, end_date, daily_value, amount_days, amount_total, status, created_at, updated_at`

func (r *contractRepo) scan(row pgx.Row) (*models.Contract, error) {
	contract := &models.Contract{}
	err := row.Scan(&contract.ID, &contract.WorkspaceID, &contract.Name, &contract.Description, &contract.ClientName, &contract.WorkID, &contract.EquipmentID, &contract.InitDate, &contract.EndDate, &contract.DailyValue, &contract.AmountDays, &contract.AmountTotal, &contract.Status, &contract.CreatedAt, &contract.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *contractRepo) Create(ctx context.Context, contract *models.Contract) error {
	query := `
		INSERT INTO contracts (id, workspace_id, name, description, client_name, work_id, equipment_id, init_date, end_date, daily_value, amount_days, amount_total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, contract.ID, contract.WorkspaceID, contract.Name, contract.Description, contract.ClientName, contract.WorkID, contract.EquipmentID, contract.InitDate, contract.EndDate, contract.DailyValue, contract.AmountDays, contract.AmountTotal, contract.Status)
	return err
}

func (r *contractRepo) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE workspace_id = $1 AND id = $2`
	contract, err := r.scan(r.db.QueryRow(ctx, query, workspaceID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *contractRepo) Update(ctx context.Context, contract *models.Contract) error {
	query := `
		UPDATE contracts
		SET name = $1, description = $2, client_name = $3, work_id = $4, equipment_id = $5, init_date = $6, end_date = $7, daily_value = $8, amount_days = $9, amount_total = $10, status = $11, updated_at = NOW()
		WHERE workspace_id = $12 AND id = $13
	`
	_, err := r.db.Exec(ctx, query, contract.Name, contract.Description, contract.ClientName, contract.WorkID, contract.EquipmentID, contract.InitDate, contract.EndDate, contract.DailyValue, contract.AmountDays, contract.AmountTotal, contract.Status, contract.WorkspaceID, contract.ID)
	return err
}

func (r *contractRepo) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	query := `DELETE FROM contracts WHERE workspace_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, workspaceID, id)
	return err
}

func (r *contractRepo) List(ctx context.Context, workspaceID uuid.UUID) ([]*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE workspace_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*models.Contract
	for rows.Next() {
		contract, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

func (r *contractRepo) Summary(ctx context.Context, workspaceID uuid.UUID) (*models.ContractSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'ACTIVE'),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'FINISHED'),
			COUNT(*)
		FROM contracts
		WHERE workspace_id = $1
	`
	summary := &models.ContractSummary{}
	err := r.db.QueryRow(ctx, query, workspaceID).Scan(&summary.Active, &summary.Pending, &summary.Finished, &summary.Total)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
