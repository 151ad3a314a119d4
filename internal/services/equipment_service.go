package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
)

// EquipmentStatus is derived, not stored: an item is rented while an
// ACTIVE contract holds it, in maintenance while next_maintenance is in
// the past, and available otherwise.
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentRented      EquipmentStatus = "RENTED"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
)

type EquipmentService interface {
	Create(ctx context.Context, workspaceID uuid.UUID, req *CreateEquipmentRequest) (*models.Equipment, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Equipment, error)
	Update(ctx context.Context, workspaceID uuid.UUID, req *UpdateEquipmentRequest) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	List(ctx context.Context, workspaceID uuid.UUID, search string, status EquipmentStatus) ([]*EquipmentView, error)
}

type equipmentService struct {
	equipmentRepo repositories.EquipmentRepository
	now           func() time.Time
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo, now: time.Now}
}

type CreateEquipmentRequest struct {
	Name            string     `json:"name" validate:"required"`
	Mark            *string    `json:"mark"`
	Model           *string    `json:"model"`
	SerialNumber    *string    `json:"serial_number"`
	DailyRate       *float64   `json:"daily_rate"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	NextMaintenance *time.Time `json:"next_maintenance"`
}

type UpdateEquipmentRequest struct {
	ID              uuid.UUID
	Name            string     `json:"name" validate:"required"`
	Mark            *string    `json:"mark"`
	Model           *string    `json:"model"`
	SerialNumber    *string    `json:"serial_number"`
	DailyRate       *float64   `json:"daily_rate"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	NextMaintenance *time.Time `json:"next_maintenance"`
}

// EquipmentView is the list item returned to clients, equipment plus its
// derived status.
type EquipmentView struct {
	models.EquipmentWithUsage
	Status EquipmentStatus `json:"status"`
}

func (s *equipmentService) Create(ctx context.Context, workspaceID uuid.UUID, req *CreateEquipmentRequest) (*models.Equipment, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.DailyRate != nil && *req.DailyRate < 0 {
		return nil, errors.New("daily rate cannot be negative")
	}

	equipment := &models.Equipment{
		ID:              uuid.New(),
		WorkspaceID:     workspaceID,
		Name:            req.Name,
		Mark:            req.Mark,
		Model:           req.Model,
		SerialNumber:    req.SerialNumber,
		DailyRate:       req.DailyRate,
		LastMaintenance: req.LastMaintenance,
		NextMaintenance: req.NextMaintenance,
	}
	if err := s.equipmentRepo.Create(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *equipmentService) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, workspaceID, id)
}

func (s *equipmentService) Update(ctx context.Context, workspaceID uuid.UUID, req *UpdateEquipmentRequest) error {
	existing, err := s.equipmentRepo.GetByID(ctx, workspaceID, req.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("equipment not found")
	}

	existing.Name = req.Name
	existing.Mark = req.Mark
	existing.Model = req.Model
	existing.SerialNumber = req.SerialNumber
	existing.DailyRate = req.DailyRate
	existing.LastMaintenance = req.LastMaintenance
	existing.NextMaintenance = req.NextMaintenance
	return s.equipmentRepo.Update(ctx, existing)
}

func (s *equipmentService) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	return s.equipmentRepo.Delete(ctx, workspaceID, id)
}

func (s *equipmentService) List(ctx context.Context, workspaceID uuid.UUID, search string, status EquipmentStatus) ([]*EquipmentView, error) {
	items, err := s.equipmentRepo.List(ctx, workspaceID, search)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]*EquipmentView, 0, len(items))
	for _, item := range items {
		view := &EquipmentView{EquipmentWithUsage: *item, Status: s.deriveStatus(item, now)}
		if status != "" && view.Status != status {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *equipmentService) deriveStatus(item *models.EquipmentWithUsage, now time.Time) EquipmentStatus {
	if item.HasActiveContract {
		return EquipmentRented
	}
	if item.NextMaintenance != nil && item.NextMaintenance.Before(now) {
		return EquipmentMaintenance
	}
	return EquipmentAvailable
}
