package memory

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación en memoria de ClientRepository.
type ClientRepo struct {
	store *Store[int64, entity.Client]
	seq   Sequence
	now   func() time.Time
}

// NewClientRepository construye el repositorio vacío.
func NewClientRepository() *ClientRepo {
	return &ClientRepo{store: NewStore[int64, entity.Client](nil), now: time.Now}
}

// Create asigna ID y marcas de tiempo y persiste el cliente.
func (r *ClientRepo) Create(client *entity.Client) (*entity.Client, error) {
	c := *client
	c.ID = r.seq.Next()
	now := r.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = entity.ClientStatusActive
	}
	if err := r.store.Insert(c.ID, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID devuelve (nil, nil) si el cliente no existe.
func (r *ClientRepo) GetByID(id int64) (*entity.Client, error) {
	c, ok := r.store.Get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Update reemplaza el cliente y refresca UpdatedAt; CreatedAt se conserva.
func (r *ClientRepo) Update(client *entity.Client) (*entity.Client, error) {
	var out entity.Client
	err := r.store.Modify(client.ID, func(cur *entity.Client) error {
		created := cur.CreatedAt
		*cur = *client
		cur.CreatedAt = created
		cur.UpdatedAt = r.now()
		out = *cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina el cliente. Las tarjetas que lo referencian no se tocan.
func (r *ClientRepo) Delete(id int64) error {
	return r.store.Delete(id)
}

// List todos los clientes en orden de alta.
func (r *ClientRepo) List() ([]*entity.Client, error) {
	return r.ListBy(nil)
}

// ListBy clientes que cumplen match.
func (r *ClientRepo) ListBy(match func(*entity.Client) bool) ([]*entity.Client, error) {
	var pred func(entity.Client) bool
	if match != nil {
		pred = func(c entity.Client) bool { return match(&c) }
	}
	return toPointers(r.store.Values(pred)), nil
}

// Count número de clientes.
func (r *ClientRepo) Count() (int, error) {
	return r.store.Len(), nil
}
