package models

import (
	"time"

	"github.com/google/uuid"
)

type Equipment struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	WorkspaceID     uuid.UUID  `json:"workspace_id" db:"workspace_id"`
	Name            string     `json:"name" db:"name"`
	Mark            *string    `json:"mark" db:"mark"`
	Model           *string    `json:"model" db:"model"`
	SerialNumber    *string    `json:"serial_number" db:"serial_number"`
	DailyRate       *float64   `json:"daily_rate" db:"daily_rate"`
	LastMaintenance *time.Time `json:"last_maintenance" db:"last_maintenance"`
	NextMaintenance *time.Time `json:"next_maintenance" db:"next_maintenance"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// EquipmentWithUsage is a list-row projection: the equipment plus the
// number of ACTIVE contracts currently holding it.
type EquipmentWithUsage struct {
	Equipment
	ActiveContracts   int  `json:"active_contracts"`
	HasActiveContract bool `json:"has_active_contract"`
}
