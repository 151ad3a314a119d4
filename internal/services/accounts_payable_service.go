package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Nivaldeir/erp-easy-remote/internal/caching"
	"github.com/Nivaldeir/erp-easy-remote/internal/models"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
)

type AccountsPayableService interface {
	Create(ctx context.Context, workspaceID uuid.UUID, req *CreatePayableRequest) (*models.AccountPayable, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.AccountPayable, error)
	Update(ctx context.Context, workspaceID uuid.UUID, req *UpdatePayableRequest) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	List(ctx context.Context, workspaceID uuid.UUID, filter repositories.PayableFilter) ([]*models.AccountPayable, int, error)
	Summary(ctx context.Context, workspaceID uuid.UUID) (*models.PayableSummary, error)
	RefreshSummary(ctx context.Context, workspaceID uuid.UUID) (*models.PayableSummary, error)
	MarkPaid(ctx context.Context, workspaceID, id uuid.UUID, paidDate time.Time) error
}

type accountsPayableService struct {
	payableRepo repositories.AccountPayableRepository
	cacheSvc    caching.CacheService
	now         func() time.Time
}

func NewAccountsPayableService(payableRepo repositories.AccountPayableRepository, cacheSvc caching.CacheService) AccountsPayableService {
	return &accountsPayableService{payableRepo: payableRepo, cacheSvc: cacheSvc, now: time.Now}
}

type CreatePayableRequest struct {
	InvoiceNumber    *string              `json:"invoice_number"`
	IssueDate        *time.Time           `json:"issue_date"`
	Supplier         *string              `json:"supplier"`
	ProductOrService *string              `json:"product_or_service"`
	CostCategory     *string              `json:"cost_category"`
	PaymentMethod    *string              `json:"payment_method"`
	Amount           float64              `json:"amount" validate:"required"`
	TotalAmount      *float64             `json:"total_amount"`
	InstallmentCount *int                 `json:"installment_count"`
	DueDate          time.Time            `json:"due_date" validate:"required"`
	LaunchDate       *time.Time           `json:"launch_date"`
	PaidDate         *time.Time           `json:"paid_date"`
	Status           models.AccountStatus `json:"status"`
}

type UpdatePayableRequest struct {
	ID uuid.UUID
	CreatePayableRequest
}

var validAccountStatuses = map[models.AccountStatus]bool{
	models.AccountPending: true,
	models.AccountPaid:    true,
	models.AccountLate:    true,
}

func (s *accountsPayableService) Create(ctx context.Context, workspaceID uuid.UUID, req *CreatePayableRequest) (*models.AccountPayable, error) {
	entry, err := s.fromRequest(workspaceID, req)
	if err != nil {
		return nil, err
	}
	if err := s.payableRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidate(ctx, workspaceID)
	return entry, nil
}

func (s *accountsPayableService) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.AccountPayable, error) {
	return s.payableRepo.GetByID(ctx, workspaceID, id)
}

func (s *accountsPayableService) Update(ctx context.Context, workspaceID uuid.UUID, req *UpdatePayableRequest) error {
	existing, err := s.payableRepo.GetByID(ctx, workspaceID, req.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("entry not found")
	}

	updated, err := s.fromRequest(workspaceID, &req.CreatePayableRequest)
	if err != nil {
		return err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.payableRepo.Update(ctx, updated); err != nil {
		return err
	}
	s.invalidate(ctx, workspaceID)
	return nil
}

func (s *accountsPayableService) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	if err := s.payableRepo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	s.invalidate(ctx, workspaceID)
	return nil
}

func (s *accountsPayableService) List(ctx context.Context, workspaceID uuid.UUID, filter repositories.PayableFilter) ([]*models.AccountPayable, int, error) {
	return s.payableRepo.List(ctx, workspaceID, filter)
}

// Summary serves the dashboard from cache when possible. Buckets are
// computed against the current local day and month.
func (s *accountsPayableService) Summary(ctx context.Context, workspaceID uuid.UUID) (*models.PayableSummary, error) {
	if cached, err := s.cacheSvc.GetPayableSummary(ctx, workspaceID); err == nil && cached != nil {
		return cached, nil
	}
	return s.RefreshSummary(ctx, workspaceID)
}

// RefreshSummary recomputes the buckets and overwrites the cache.
func (s *accountsPayableService) RefreshSummary(ctx context.Context, workspaceID uuid.UUID) (*models.PayableSummary, error) {
	summary, err := s.payableRepo.Summary(ctx, workspaceID, s.now())
	if err != nil {
		return nil, err
	}
	_ = s.cacheSvc.SetPayableSummary(ctx, workspaceID, summary, 5*time.Minute)
	return summary, nil
}

func (s *accountsPayableService) MarkPaid(ctx context.Context, workspaceID, id uuid.UUID, paidDate time.Time) error {
	existing, err := s.payableRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("entry not found")
	}

	existing.Status = models.AccountPaid
	existing.PaidDate = &paidDate
	if err := s.payableRepo.Update(ctx, existing); err != nil {
		return err
	}
	s.invalidate(ctx, workspaceID)
	return nil
}

func (s *accountsPayableService) fromRequest(workspaceID uuid.UUID, req *CreatePayableRequest) (*models.AccountPayable, error) {
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if req.DueDate.IsZero() {
		return nil, errors.New("due date is required")
	}
	if req.Status == "" {
		req.Status = models.AccountPending
	}
	if !validAccountStatuses[req.Status] {
		return nil, errors.New("invalid status")
	}
	if req.InstallmentCount != nil && *req.InstallmentCount <= 0 {
		return nil, errors.New("installment count must be positive")
	}

	totalAmount := req.Amount
	if req.TotalAmount != nil && *req.TotalAmount > 0 {
		totalAmount = *req.TotalAmount
	}
	launchDate := s.now()
	if req.LaunchDate != nil {
		launchDate = *req.LaunchDate
	}

	return &models.AccountPayable{
		ID:               uuid.New(),
		WorkspaceID:      workspaceID,
		InvoiceNumber:    req.InvoiceNumber,
		IssueDate:        req.IssueDate,
		Supplier:         req.Supplier,
		ProductOrService: req.ProductOrService,
		CostCategory:     req.CostCategory,
		PaymentMethod:    req.PaymentMethod,
		Amount:           req.Amount,
		TotalAmount:      totalAmount,
		InstallmentCount: req.InstallmentCount,
		DueDate:          req.DueDate,
		LaunchDate:       launchDate,
		PaidDate:         req.PaidDate,
		Status:           req.Status,
	}, nil
}

func (s *accountsPayableService) invalidate(ctx context.Context, workspaceID uuid.UUID) {
	_ = s.cacheSvc.InvalidateWorkspace(ctx, workspaceID)
}
