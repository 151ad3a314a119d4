package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

// PayableFilter narrows List. Zero values mean "no filter". SortBy is
// matched against a column whitelist; anything else falls back to due_date.
type PayableFilter struct {
	Search    string
	Status    models.AccountStatus
	SortBy    string
	SortDesc  bool
	Limit     int
	Offset    int
}

type AccountPayableRepository interface {
	Create(ctx context.Context, entry *models.AccountPayable) error
	CreateBatch(ctx context.Context, entries []*models.AccountPayable) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.AccountPayable, error)
	Update(ctx context.Context, entry *models.AccountPayable) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	List(ctx context.Context, workspaceID uuid.UUID, filter PayableFilter) ([]*models.AccountPayable, int, error)
	Summary(ctx context.Context, workspaceID uuid.UUID, now time.Time) (*models.PayableSummary, error)
	MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error)
}

type accountPayableRepo struct {
	db DB
}

func NewAccountPayableRepository(db DB) AccountPayableRepository {
	return &accountPayableRepo{db: db}
}

const payableColumns = `id, workspace_id, invoice_number, issue_date, supplier, product_or_service, cost_category, payment_method, amount, total_amount, installment_count, due_date, launch_date, paid_date, status, created_at, updated_at`

var payableSortColumns = map[string]string{
	"due_date":    "due_date",
	"launch_date": "launch_date",
	"amount":      "amount",
	"supplier":    "supplier",
	"status":      "status",
	"created_at":  "created_at",
}

func (r *accountPayableRepo) scan(row pgx.Row) (*models.AccountPayable, error) {
	entry := &models.AccountPayable{}
	err := row.Scan(&entry.ID, &entry.WorkspaceID, &entry.InvoiceNumber, &entry.IssueDate, &entry.Supplier, &entry.ProductOrService, &entry.CostCategory, &entry.PaymentMethod, &entry.Amount, &entry.TotalAmount, &entry.InstallmentCount, &entry.DueDate, &entry.LaunchDate, &entry.PaidDate, &entry.Status, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

const payableInsert = `
	INSERT INTO accounts_payable (id, workspace_id, invoice_number, issue_date, supplier, product_or_service, cost_category, payment_method, amount, total_amount, installment_count, due_date, launch_date, paid_date, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
`

func (r *accountPayableRepo) Create(ctx context.Context, entry *models.AccountPayable) error {
	_, err := r.db.Exec(ctx, payableInsert, entry.ID, entry.WorkspaceID, entry.InvoiceNumber, entry.IssueDate, entry.Supplier, entry.ProductOrService, entry.CostCategory, entry.PaymentMethod, entry.Amount, entry.TotalAmount, entry.InstallmentCount, entry.DueDate, entry.LaunchDate, entry.PaidDate, entry.Status)
	return err
}

// CreateBatch inserts all entries in one transaction. Either every row
// lands or none do; a failed import never leaves a partial ledger behind.
func (r *accountPayableRepo) CreateBatch(ctx context.Context, entries []*models.AccountPayable) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(payableInsert, entry.ID, entry.WorkspaceID, entry.InvoiceNumber, entry.IssueDate, entry.Supplier, entry.ProductOrService, entry.CostCategory, entry.PaymentMethod, entry.Amount, entry.TotalAmount, entry.InstallmentCount, entry.DueDate, entry.LaunchDate, entry.PaidDate, entry.Status)
	}
	results := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *accountPayableRepo) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.AccountPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM accounts_payable WHERE workspace_id = $1 AND id = $2`
	entry, err := r.scan(r.db.QueryRow(ctx, query, workspaceID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *accountPayableRepo) Update(ctx context.Context, entry *models.AccountPayable) error {
	query := `
		UPDATE accounts_payable
		SET invoice_number = $1, issue_date = $2, supplier = $3, product_or_service = $4, cost_category = $5, payment_method = $6, amount = $7, total_amount = $8, installment_count = $9, due_date = $10, launch_date = $11, paid_date = $12, status = $13, updated_at = NOW()
		WHERE workspace_id = $14 AND id = $15
	`
	_, err := r.db.Exec(ctx, query, entry.InvoiceNumber, entry.IssueDate, entry.Supplier, entry.ProductOrService, entry.CostCategory, entry.PaymentMethod, entry.Amount, entry.TotalAmount, entry.InstallmentCount, entry.DueDate, entry.LaunchDate, entry.PaidDate, entry.Status, entry.WorkspaceID, entry.ID)
	return err
}

func (r *accountPayableRepo) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	query := `DELETE FROM accounts_payable WHERE workspace_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, workspaceID, id)
	return err
}

func (r *accountPayableRepo) List(ctx context.Context, workspaceID uuid.UUID, filter PayableFilter) ([]*models.AccountPayable, int, error) {
	sortCol, ok := payableSortColumns[filter.SortBy]
	if !ok {
		sortCol = "due_date"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	where := `
		WHERE workspace_id = $1
			AND ($2 = '' OR supplier ILIKE '%' || $2 || '%' OR invoice_number ILIKE '%' || $2 || '%' OR product_or_service ILIKE '%' || $2 || '%')
			AND ($3 = '' OR status = $3)
	`

	var total int
	countQuery := `SELECT COUNT(*) FROM accounts_payable ` + where
	if err := r.db.QueryRow(ctx, countQuery, workspaceID, filter.Search, string(filter.Status)).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM accounts_payable %s ORDER BY %s %s LIMIT $4 OFFSET $5`, payableColumns, where, sortCol, direction)
	rows, err := r.db.Query(ctx, query, workspaceID, filter.Search, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*models.AccountPayable
	for rows.Next() {
		entry, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

// Summary computes the four dashboard buckets in one pass. Boundaries are
// half-open [start, end) so an entry due at exactly midnight lands in a
// single bucket.
func (r *accountPayableRepo) Summary(ctx context.Context, workspaceID uuid.UUID, now time.Time) (*models.PayableSummary, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PENDING' AND due_date >= $2 AND due_date < $3),
			COALESCE(SUM(amount) FILTER (WHERE status = 'PENDING' AND due_date >= $2 AND due_date < $3), 0),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COALESCE(SUM(amount) FILTER (WHERE status = 'PENDING'), 0),
			COUNT(*) FILTER (WHERE status IN ('PENDING', 'LATE') AND due_date < $2),
			COALESCE(SUM(amount) FILTER (WHERE status IN ('PENDING', 'LATE') AND due_date < $2), 0),
			COUNT(*) FILTER (WHERE status = 'PAID' AND paid_date >= $4 AND paid_date < $5),
			COALESCE(SUM(amount) FILTER (WHERE status = 'PAID' AND paid_date >= $4 AND paid_date < $5), 0)
		FROM accounts_payable
		WHERE workspace_id = $1
	`
	summary := &models.PayableSummary{}
	err := r.db.QueryRow(ctx, query, workspaceID, startOfDay, endOfDay, startOfMonth, endOfMonth).Scan(
		&summary.DueToday.Count, &summary.DueToday.Total,
		&summary.Open.Count, &summary.Open.Total,
		&summary.Overdue.Count, &summary.Overdue.Total,
		&summary.PaidThisMonth.Count, &summary.PaidThisMonth.Total,
	)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// MarkOverdue flips PENDING entries past their due date to LATE and
// reports how many rows changed.
func (r *accountPayableRepo) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE accounts_payable
		SET status = 'LATE', updated_at = NOW()
		WHERE status = 'PENDING' AND due_date < $1
	`
	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
