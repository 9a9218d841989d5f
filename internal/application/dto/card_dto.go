package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCardRequest entrada para crear una tarjeta del kanban.
// Column vacío asigna la primera etapa del pipeline.
type CreateCardRequest struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Description string           `json:"description"`
	ClientID    *int64           `json:"client_id"`
	AssignedTo  *int64           `json:"assigned_to"`
	Column      string           `json:"column"`
	Priority    string           `json:"priority" validate:"omitempty,oneof=low medium high"`
	Value       *decimal.Decimal `json:"value"`
	DueDate     *time.Time       `json:"due_date"`
}

// UpdateCardRequest campos editables de una tarjeta. La etapa solo cambia con MoveCardRequest.
// Los punteros nil dejan el campo sin cambios; los Clear* quitan la referencia opcional.
type UpdateCardRequest struct {
	Title           *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description"`
	ClientID        *int64           `json:"client_id"`
	AssignedTo      *int64           `json:"assigned_to"`
	Priority        *string          `json:"priority" validate:"omitempty,oneof=low medium high"`
	Value           *decimal.Decimal `json:"value"`
	DueDate         *time.Time       `json:"due_date"`
	ClearClientID   bool             `json:"clear_client_id"`
	ClearAssignedTo bool             `json:"clear_assigned_to"`
	ClearDueDate    bool             `json:"clear_due_date"`
}

// MoveCardRequest cuerpo de POST /api/kanban/cards/:id/move.
type MoveCardRequest struct {
	Column string `json:"column"`
}

// CardResponse salida de una tarjeta.
type CardResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ClientID    *int64          `json:"client_id"`
	AssignedTo  *int64          `json:"assigned_to"`
	Column      string          `json:"column"`
	Priority    string          `json:"priority"`
	Value       decimal.Decimal `json:"value"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

// BoardColumn una columna del kanban con sus tarjetas.
type BoardColumn struct {
	Stage string         `json:"stage"`
	Label string         `json:"label"`
	Cards []CardResponse `json:"cards"`
}
