package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) (*entity.User, error)
	GetByID(id int64) (*entity.User, error)
	// GetByUsername recorre la colección; devuelve (nil, nil) si no existe.
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) (*entity.User, error)
	Delete(id int64) error
	List() ([]*entity.User, error)
}
