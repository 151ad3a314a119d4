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

type ContractService interface {
	Create(ctx context.Context, workspaceID uuid.UUID, req *CreateContractRequest) (*models.Contract, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Contract, error)
	Update(ctx context.Context, workspaceID uuid.UUID, req *UpdateContractRequest) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	List(ctx context.Context, workspaceID uuid.UUID) ([]*models.Contract, error)
	Summary(ctx context.Context, workspaceID uuid.UUID) (*models.ContractSummary, error)
}

type contractService struct {
	contractRepo repositories.ContractRepository
	cacheSvc     caching.CacheService
}

func NewContractService(contractRepo repositories.ContractRepository, cacheSvc caching.CacheService) ContractService {
	return &contractService{contractRepo: contractRepo, cacheSvc: cacheSvc}
}

type CreateContractRequest struct {
	Name        string                `json:"name" validate:"required"`
	Description *string               `json:"description"`
	ClientName  *string               `json:"client_name"`
	WorkID      *uuid.UUID            `json:"work_id"`
	EquipmentID *uuid.UUID            `json:"equipment_id"`
	InitDate    *time.Time            `json:"init_date"`
	EndDate     *time.Time            `json:"end_date"`
	DailyValue  *float64              `json:"daily_value"`
	Status      models.ContractStatus `json:"status"`
}

type UpdateContractRequest struct {
	ID uuid.UUID
	CreateContractRequest
}

var validContractStatuses = map[models.ContractStatus]bool{
	models.ContractPending:  true,
	models.ContractActive:   true,
	models.ContractFinished: true,
	models.ContractCanceled: true,
}

func (s *contractService) Create(ctx context.Context, workspaceID uuid.UUID, req *CreateContractRequest) (*models.Contract, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.Status == "" {
		req.Status = models.ContractPending
	}
	if !validContractStatuses[req.Status] {
		return nil, errors.New("invalid contract status")
	}
	if req.InitDate != nil && req.EndDate != nil && req.EndDate.Before(*req.InitDate) {
		return nil, errors.New("end date cannot precede init date")
	}

	contract := &models.Contract{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Description: req.Description,
		ClientName:  req.ClientName,
		WorkID:      req.WorkID,
		EquipmentID: req.EquipmentID,
		InitDate:    req.InitDate,
		EndDate:     req.EndDate,
		DailyValue:  req.DailyValue,
		Status:      req.Status,
	}
	s.deriveTotals(contract)

	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, err
	}
	s.invalidate(ctx, workspaceID)
	return contract, nil
}

func (s *contractService) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Contract, error) {
	return s.contractRepo.GetByID(ctx, workspaceID, id)
}

func (s *contractService) Update(ctx context.Context, workspaceID uuid.UUID, req *UpdateContractRequest) error {
	existing, err := s.contractRepo.GetByID(ctx, workspaceID, req.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("contract not found")
	}
	if req.Status != "" && !validContractStatuses[req.Status] {
		return errors.New("invalid contract status")
	}
	if req.InitDate != nil && req.EndDate != nil && req.EndDate.Before(*req.InitDate) {
		return errors.New("end date cannot precede init date")
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.ClientName = req.ClientName
	existing.WorkID = req.WorkID
	existing.EquipmentID = req.EquipmentID
	existing.InitDate = req.InitDate
	existing.EndDate = req.EndDate
	existing.DailyValue = req.DailyValue
	if req.Status != "" {
		existing.Status = req.Status
	}
	s.deriveTotals(existing)

	if err := s.contractRepo.Update(ctx, existing); err != nil {
		return err
	}
	s.invalidate(ctx, workspaceID)
	return nil
}

func (s *contractService) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	if err := s.contractRepo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	s.invalidate(ctx, workspaceID)
	return nil
}

func (s *contractService) List(ctx context.Context, workspaceID uuid.UUID) ([]*models.Contract, error) {
	return s.contractRepo.List(ctx, workspaceID)
}

func (s *contractService) Summary(ctx context.Context, workspaceID uuid.UUID) (*models.ContractSummary, error) {
	if cached, err := s.cacheSvc.GetContractSummary(ctx, workspaceID); err == nil && cached != nil {
		return cached, nil
	}

	summary, err := s.contractRepo.Summary(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	_ = s.cacheSvc.SetContractSummary(ctx, workspaceID, summary, 5*time.Minute)
	return summary, nil
}

// deriveTotals fills amount_days and amount_total from the rental window
// and daily value when both are present.
func (s *contractService) deriveTotals(contract *models.Contract) {
	if contract.InitDate == nil || contract.EndDate == nil {
		contract.AmountDays = nil
		contract.AmountTotal = nil
		return
	}
	days := int(contract.EndDate.Sub(*contract.InitDate).Hours()/24) + 1
	contract.AmountDays = &days
	if contract.DailyValue != nil {
		total := float64(days) * *contract.DailyValue
		contract.AmountTotal = &total
	}
}

func (s *contractService) invalidate(ctx context.Context, workspaceID uuid.UUID) {
	_ = s.cacheSvc.InvalidateWorkspace(ctx, workspaceID)
}
