package memory

import (
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.CardRepository = (*CardRepo)(nil)

// CardRepo implementación en memoria de CardRepository.
// El ID lo asigna el caso de uso (UUID); el repositorio solo lo valida como clave.
type CardRepo struct {
	store *Store[string, entity.Card]
}

// NewCardRepository construye el repositorio vacío.
func NewCardRepository() *CardRepo {
	return &CardRepo{store: NewStore[string, entity.Card](cloneCard)}
}

func cloneCard(c entity.Card) entity.Card {
	c.ClientID = cloneInt64(c.ClientID)
	c.AssignedTo = cloneInt64(c.AssignedTo)
	if c.DueDate != nil {
		d := *c.DueDate
		c.DueDate = &d
	}
	return c
}

// Create persiste una tarjeta nueva.
func (r *CardRepo) Create(card *entity.Card) (*entity.Card, error) {
	if err := r.store.Insert(card.ID, *card); err != nil {
		return nil, err
	}
	return r.GetByID(card.ID)
}

// GetByID devuelve (nil, nil) si la tarjeta no existe.
func (r *CardRepo) GetByID(id string) (*entity.Card, error) {
	c, ok := r.store.Get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Update reemplaza la tarjeta almacenada.
func (r *CardRepo) Update(card *entity.Card) (*entity.Card, error) {
	if err := r.store.Replace(card.ID, *card); err != nil {
		return nil, err
	}
	return r.GetByID(card.ID)
}

// Delete elimina la tarjeta.
func (r *CardRepo) Delete(id string) error {
	return r.store.Delete(id)
}

// List todas las tarjetas en orden de creación.
func (r *CardRepo) List() ([]*entity.Card, error) {
	return r.ListBy(nil)
}

// ListBy tarjetas que cumplen match, en orden de creación.
func (r *CardRepo) ListBy(match func(*entity.Card) bool) ([]*entity.Card, error) {
	var pred func(entity.Card) bool
	if match != nil {
		pred = func(c entity.Card) bool { return match(&c) }
	}
	return toPointers(r.store.Values(pred)), nil
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func toPointers[V any](vals []V) []*V {
	out := make([]*V, len(vals))
	for i := range vals {
		out[i] = &vals[i]
	}
	return out
}
