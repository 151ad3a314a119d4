package models

import (
	"time"

	"github.com/google/uuid"
)

type AccountStatus string

const (
	AccountPending AccountStatus = "PENDING"
	AccountPaid    AccountStatus = "PAID"
	AccountLate    AccountStatus = "LATE"
)

// AccountPayable is one ledger entry: a single installment owed to a
// supplier. Amount is the per-installment value; TotalAmount is the full
// invoice value and equals Amount when the source data carries no
// separate total.
type AccountPayable struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	WorkspaceID      uuid.UUID     `json:"workspace_id" db:"workspace_id"`
	InvoiceNumber    *string       `json:"invoice_number" db:"invoice_number"`
	IssueDate        *time.Time    `json:"issue_date" db:"issue_date"`
	Supplier         *string       `json:"supplier" db:"supplier"`
	ProductOrService *string       `json:"product_or_service" db:"product_or_service"`
	CostCategory     *string       `json:"cost_category" db:"cost_category"`
	PaymentMethod    *string       `json:"payment_method" db:"payment_method"`
	Amount           float64       `json:"amount" db:"amount"`
	TotalAmount      float64       `json:"total_amount" db:"total_amount"`
	InstallmentCount *int          `json:"installment_count" db:"installment_count"`
	DueDate          time.Time     `json:"due_date" db:"due_date"`
	LaunchDate       time.Time     `json:"launch_date" db:"launch_date"`
	PaidDate         *time.Time    `json:"paid_date" db:"paid_date"`
	Status           AccountStatus `json:"status" db:"status"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// SummaryBucket is one dashboard card: how many entries fall in the
// bucket and the summed per-installment amount.
type SummaryBucket struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// PayableSummary groups the four due-date/status buckets shown on the
// dashboard. Bucketing uses local-midnight boundaries.
type PayableSummary struct {
	DueToday      SummaryBucket `json:"due_today"`
	Open          SummaryBucket `json:"open"`
	Overdue       SummaryBucket `json:"overdue"`
	PaidThisMonth SummaryBucket `json:"paid_this_month"`
}
