package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Priority prioridad de una tarjeta; el orden es low < medium < high.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityRank = map[Priority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
}

// Valid indica si la prioridad pertenece a la enumeración.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Less compara dos prioridades según su orden.
func (p Priority) Less(o Priority) bool { return priorityRank[p] < priorityRank[o] }

// Card unidad de trabajo del pipeline de ventas (una columna a la vez).
type Card struct {
	ID          string
	Title       string
	Description string
	ClientID    *int64 // referencia libre: puede quedar colgando si se borra el cliente
	AssignedTo  *int64
	Stage       Stage
	Priority    Priority
	Value       decimal.Decimal // valor estimado del negocio, cero si no se conoce
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *time.Time
}
