package memory

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo implementación en memoria del inbox.
type MessageRepo struct {
	store *Store[int64, entity.Message]
	seq   Sequence
	now   func() time.Time
}

// NewMessageRepository construye el repositorio vacío.
func NewMessageRepository() *MessageRepo {
	return &MessageRepo{
		store: NewStore[int64, entity.Message](func(m entity.Message) entity.Message {
			m.ClientID = cloneInt64(m.ClientID)
			return m
		}),
		now: time.Now,
	}
}

// Create asigna ID y marca de tiempo (si falta) y persiste el mensaje.
func (r *MessageRepo) Create(msg *entity.Message) (*entity.Message, error) {
	m := *msg
	m.ID = r.seq.Next()
	if m.Timestamp.IsZero() {
		m.Timestamp = r.now()
	}
	if err := r.store.Insert(m.ID, m); err != nil {
		return nil, err
	}
	return r.GetByID(m.ID)
}

// GetByID devuelve (nil, nil) si no existe.
func (r *MessageRepo) GetByID(id int64) (*entity.Message, error) {
	m, ok := r.store.Get(id)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// MarkAsRead marca el mensaje como leído; ErrNotFound si no existe.
func (r *MessageRepo) MarkAsRead(id int64) error {
	return r.store.Modify(id, func(m *entity.Message) error {
		m.Read = true
		return nil
	})
}

// List todos los mensajes en orden de llegada.
func (r *MessageRepo) List() ([]*entity.Message, error) {
	return r.ListBy(nil)
}

// ListBy mensajes que cumplen match.
func (r *MessageRepo) ListBy(match func(*entity.Message) bool) ([]*entity.Message, error) {
	var pred func(entity.Message) bool
	if match != nil {
		pred = func(m entity.Message) bool { return match(&m) }
	}
	return toPointers(r.store.Values(pred)), nil
}
