// Package pipeline contiene el modelo del kanban de ventas: alta de tarjetas en
// una etapa, movimiento entre etapas, consultas por etapa y agregaciones.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso del pipeline de ventas.
type UseCase struct {
	cards repository.CardRepository
	now   func() time.Time
	newID func() string
}

// Option modifica la construcción del caso de uso (reloj e IDs, útiles en tests).
type Option func(*UseCase)

// WithClock reemplaza el reloj.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// WithIDGenerator reemplaza el generador de IDs de tarjeta.
func WithIDGenerator(gen func() string) Option {
	return func(uc *UseCase) { uc.newID = gen }
}

// NewUseCase construye el caso de uso.
func NewUseCase(cards repository.CardRepository, opts ...Option) *UseCase {
	uc := &UseCase{
		cards: cards,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateCard crea una tarjeta ya ubicada en una etapa.
// Column vacío asigna la primera etapa; una etapa fuera del conjunto fijo devuelve ErrInvalidStage.
func (uc *UseCase) CreateCard(in dto.CreateCardRequest) (*dto.CardResponse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	stage, ok := entity.ParseStage(in.Column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStage, in.Column)
	}
	priority := entity.PriorityMedium
	if in.Priority != "" {
		priority = entity.Priority(in.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: prioridad %q", domain.ErrInvalidInput, in.Priority)
		}
	}
	value := decimal.Zero
	if in.Value != nil {
		if in.Value.IsNegative() {
			return nil, fmt.Errorf("%w: valor negativo", domain.ErrInvalidInput)
		}
		value = *in.Value
	}
	now := uc.now()
	card := &entity.Card{
		ID:          uc.newID(),
		Title:       in.Title,
		Description: in.Description,
		ClientID:    in.ClientID,
		AssignedTo:  in.AssignedTo,
		Stage:       stage,
		Priority:    priority,
		Value:       value,
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     in.DueDate,
	}
	saved, err := uc.cards.Create(card)
	if err != nil {
		return nil, fmt.Errorf("pipeline: crear tarjeta: %w", err)
	}
	return ToCardResponse(saved), nil
}

// Move cambia la etapa de una tarjeta y refresca UpdatedAt; el resto de campos no cambia.
// Etapa inválida → ErrInvalidStage; tarjeta inexistente → ErrNotFound. En ambos casos no hay mutación.
func (uc *UseCase) Move(cardID, column string) error {
	stage := entity.Stage(column)
	if !stage.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStage, column)
	}
	card, err := uc.cards.GetByID(cardID)
	if err != nil {
		return fmt.Errorf("pipeline: obtener tarjeta: %w", err)
	}
	if card == nil {
		return domain.ErrNotFound
	}
	card.Stage = stage
	card.UpdatedAt = uc.now()
	if _, err := uc.cards.Update(card); err != nil {
		return fmt.Errorf("pipeline: mover tarjeta: %w", err)
	}
	metrics.PipelineMovesTotal.WithLabelValues(string(stage)).Inc()
	return nil
}

// ByStage tarjetas de la etapa en orden de inserción.
func (uc *UseCase) ByStage(stage entity.Stage) ([]*entity.Card, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStage, stage)
	}
	return uc.cards.ListBy(func(c *entity.Card) bool { return c.Stage == stage })
}

// All todas las tarjetas en orden de creación.
func (uc *UseCase) All() ([]*entity.Card, error) {
	return uc.cards.List()
}

// Get devuelve una tarjeta; ErrNotFound si no existe.
func (uc *UseCase) Get(id string) (*dto.CardResponse, error) {
	card, err := uc.cards.GetByID(id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}
	return ToCardResponse(card), nil
}

// Update edita los campos informados de la tarjeta. La etapa no se toca aquí.
// ClientID, AssignedTo y DueDate se quitan con los flags Clear* del request.
func (uc *UseCase) Update(id string, in dto.UpdateCardRequest) (*dto.CardResponse, error) {
	card, err := uc.cards.GetByID(id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}
	if (in.ClearClientID && in.ClientID != nil) ||
		(in.ClearAssignedTo && in.AssignedTo != nil) ||
		(in.ClearDueDate && in.DueDate != nil) {
		return nil, fmt.Errorf("%w: no se puede asignar y quitar el mismo campo", domain.ErrInvalidInput)
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, domain.ErrInvalidInput
		}
		card.Title = *in.Title
	}
	if in.Description != nil {
		card.Description = *in.Description
	}
	if in.ClientID != nil {
		card.ClientID = in.ClientID
	}
	if in.AssignedTo != nil {
		card.AssignedTo = in.AssignedTo
	}
	if in.Priority != nil {
		p := entity.Priority(*in.Priority)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: prioridad %q", domain.ErrInvalidInput, *in.Priority)
		}
		card.Priority = p
	}
	if in.Value != nil {
		if in.Value.IsNegative() {
			return nil, fmt.Errorf("%w: valor negativo", domain.ErrInvalidInput)
		}
		card.Value = *in.Value
	}
	if in.DueDate != nil {
		card.DueDate = in.DueDate
	}
	if in.ClearClientID {
		card.ClientID = nil
	}
	if in.ClearAssignedTo {
		card.AssignedTo = nil
	}
	if in.ClearDueDate {
		card.DueDate = nil
	}
	card.UpdatedAt = uc.now()
	saved, err := uc.cards.Update(card)
	if err != nil {
		return nil, fmt.Errorf("pipeline: actualizar tarjeta: %w", err)
	}
	return ToCardResponse(saved), nil
}

// Delete elimina la tarjeta; ErrNotFound si no existe.
func (uc *UseCase) Delete(id string) error {
	return uc.cards.Delete(id)
}

// Board devuelve las cinco columnas en orden con sus tarjetas.
func (uc *UseCase) Board() ([]dto.BoardColumn, error) {
	all, err := uc.cards.List()
	if err != nil {
		return nil, err
	}
	byStage := groupByStage(all)
	out := make([]dto.BoardColumn, 0, len(entity.Stages()))
	for _, st := range entity.Stages() {
		col := dto.BoardColumn{Stage: string(st), Label: st.Label(), Cards: []dto.CardResponse{}}
		for _, c := range byStage[st] {
			col.Cards = append(col.Cards, *ToCardResponse(c))
		}
		out = append(out, col)
	}
	return out, nil
}

// ToCardResponse convierte la entidad en DTO.
func ToCardResponse(c *entity.Card) *dto.CardResponse {
	if c == nil {
		return nil
	}
	return &dto.CardResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ClientID:    c.ClientID,
		AssignedTo:  c.AssignedTo,
		Column:      string(c.Stage),
		Priority:    string(c.Priority),
		Value:       c.Value,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DueDate:     c.DueDate,
	}
}
