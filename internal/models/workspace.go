package models

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant boundary. Every business entity is scoped to
// exactly one workspace; users may belong to several.
type Workspace struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
