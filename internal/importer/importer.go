package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
)

var (
	// ErrEmptyInput means the uploaded file had no content at all.
	ErrEmptyInput = errors.New("csv content is empty")
	// ErrNoValidRows means every row was rejected; nothing was persisted.
	ErrNoValidRows = errors.New("no valid rows found")
)

// MalformedFileError wraps a structural CSV parse failure. The whole
// import is aborted and nothing is persisted.
type MalformedFileError struct {
	Err error
}

func (e *MalformedFileError) Error() string { return "malformed csv file: " + e.Err.Error() }
func (e *MalformedFileError) Unwrap() error { return e.Err }

// PersistenceError wraps a batch-store failure. The batch either fully
// succeeds or fully fails, so inserted is reported as zero.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "failed to persist import batch: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the persistence capability injected into the importer: one
// ordered batch scoped to a single workspace, all-or-nothing.
type Store interface {
	CreateBatch(ctx context.Context, entries []*models.AccountPayable) error
}

// ImportResult reports per-row outcomes of one import call.
type ImportResult struct {
	TotalRows int      `json:"total_rows"`
	Inserted  int      `json:"inserted"`
	Rejected  int      `json:"rejected"`
	RowErrors []string `json:"row_errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Importer converts uploaded CSV text into accounts-payable entries.
// It is a pure single-pass transform followed by one store call; no
// state survives between invocations.
type Importer struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Importer {
	return &Importer{store: store, now: time.Now}
}

// Import parses, resolves, normalizes, validates, and persists csvText
// for one workspace. Row-level failures are counted and skipped;
// file-level and persistence failures abort the whole import.
func (i *Importer) Import(ctx context.Context, csvText string, workspaceID uuid.UUID) (*ImportResult, error) {
	if strings.TrimSpace(csvText) == "" {
		return nil, ErrEmptyInput
	}

	records, err := parseRecords(csvText)
	if err != nil {
		return nil, &MalformedFileError{Err: err}
	}

	result := &ImportResult{TotalRows: len(records)}

	entries := make([]*models.AccountPayable, 0, len(records))
	for n, record := range records {
		entry, reason, warning := i.mapRecord(record, workspaceID)
		if warning != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %s", n+1, warning))
		}
		if entry == nil {
			result.Rejected++
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: %s", n+1, reason))
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return result, ErrNoValidRows
	}

	if err := i.store.CreateBatch(ctx, entries); err != nil {
		return result, &PersistenceError{Err: err}
	}

	result.Inserted = len(entries)
	return result, nil
}

// mapRecord builds one entry from a resolved row. A nil entry means the
// row was rejected for the returned reason; a non-empty warning is
// attached either way.
func (i *Importer) mapRecord(record Record, workspaceID uuid.UUID) (*models.AccountPayable, string, string) {
	dueRaw, _ := record.Resolve(FieldDueDate)
	dueDate := ParseDate(dueRaw)
	if dueDate == nil {
		return nil, "missing or unparseable due date", ""
	}

	amountRaw, _ := record.Resolve(FieldAmount)
	amount := ParseCurrency(amountRaw)
	if amount <= 0 {
		return nil, "amount must be positive", ""
	}

	// The invoice total falls back to the installment amount when the
	// file carries no distinct total column.
	totalAmount := amount
	if totalRaw, ok := record.Resolve(FieldTotalAmount); ok {
		if total := ParseCurrency(totalRaw); total > 0 {
			totalAmount = total
		}
	}

	launchDate := i.now()
	launchRaw, _ := record.Resolve(FieldLaunchDate)
	if parsed := ParseDate(launchRaw); parsed != nil {
		launchDate = *parsed
	}

	statusRaw, _ := record.Resolve(FieldStatus)
	status, recognized := ParseStatus(statusRaw)
	warning := ""
	if !recognized {
		warning = fmt.Sprintf("unrecognized status %q, defaulting to PENDING", statusRaw)
	}

	entry := &models.AccountPayable{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Amount:      amount,
		TotalAmount: totalAmount,
		DueDate:     *dueDate,
		LaunchDate:  launchDate,
		Status:      status,
	}

	if v, ok := record.Resolve(FieldInvoiceNumber); ok {
		entry.InvoiceNumber = &v
	}
	if v, ok := record.Resolve(FieldIssueDate); ok {
		entry.IssueDate = ParseDate(v)
	}
	if v, ok := record.Resolve(FieldSupplier); ok {
		entry.Supplier = &v
	}
	if v, ok := record.Resolve(FieldProductOrService); ok {
		entry.ProductOrService = &v
	}
	if v, ok := record.Resolve(FieldCostCategory); ok {
		entry.CostCategory = &v
	}
	if v, ok := record.Resolve(FieldPaymentMethod); ok {
		entry.PaymentMethod = &v
	}
	if v, ok := record.Resolve(FieldPaidDate); ok {
		entry.PaidDate = ParseDate(v)
	}
	if v, ok := record.Resolve(FieldInstallments); ok {
		if count, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && count > 0 {
			entry.InstallmentCount = &count
		}
	}

	return entry, "", warning
}
