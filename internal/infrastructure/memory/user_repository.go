package memory

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	store *Store[int64, entity.User]
	seq   Sequence
	now   func() time.Time
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{store: NewStore[int64, entity.User](nil), now: time.Now}
}

// Create asigna ID y persiste el usuario. El username duplicado se rechaza con ErrDuplicate.
func (r *UserRepo) Create(user *entity.User) (*entity.User, error) {
	existing, _ := r.GetByUsername(user.Username)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	u := *user
	u.ID = r.seq.Next()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now()
	}
	if err := r.store.Insert(u.ID, u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.store.Get(id)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByUsername búsqueda lineal por username.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	found := r.store.Values(func(u entity.User) bool { return u.Username == username })
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// Update reemplaza el usuario almacenado.
func (r *UserRepo) Update(user *entity.User) (*entity.User, error) {
	if err := r.store.Replace(user.ID, *user); err != nil {
		return nil, err
	}
	return r.GetByID(user.ID)
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(id int64) error {
	return r.store.Delete(id)
}

// List todos los usuarios.
func (r *UserRepo) List() ([]*entity.User, error) {
	return toPointers(r.store.Values(nil)), nil
}
