package models

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractPending  ContractStatus = "PENDING"
	ContractActive   ContractStatus = "ACTIVE"
	ContractFinished ContractStatus = "FINISHED"
	ContractCanceled ContractStatus = "CANCELED"
)

// Contract is a rental agreement binding one piece of equipment to a
// client, optionally attributed to a work.
type Contract struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	WorkspaceID uuid.UUID      `json:"workspace_id" db:"workspace_id"`
	Name        string         `json:"name" db:"name"`
	Description *string        `json:"description" db:"description"`
	ClientName  *string        `json:"client_name" db:"client_name"`
	WorkID      *uuid.UUID     `json:"work_id" db:"work_id"`
	EquipmentID *uuid.UUID     `json:"equipment_id" db:"equipment_id"`
	InitDate    *time.Time     `json:"init_date" db:"init_date"`
	EndDate     *time.Time     `json:"end_date" db:"end_date"`
	DailyValue  *float64       `json:"daily_value" db:"daily_value"`
	AmountDays  *int           `json:"amount_days" db:"amount_days"`
	AmountTotal *float64       `json:"amount_total" db:"amount_total"`
	Status      ContractStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// ContractSummary is the dashboard card for contracts.
type ContractSummary struct {
	Active   int `json:"active"`
	Pending  int `json:"pending"`
	Finished int `json:"finished"`
	Total    int `json:"total"`
}
