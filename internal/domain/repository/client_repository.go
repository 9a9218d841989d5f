package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
// Create asigna el ID; Update refresca UpdatedAt.
type ClientRepository interface {
	Create(client *entity.Client) (*entity.Client, error)
	GetByID(id int64) (*entity.Client, error)
	Update(client *entity.Client) (*entity.Client, error)
	Delete(id int64) error
	List() ([]*entity.Client, error)
	ListBy(match func(*entity.Client) bool) ([]*entity.Client, error)
	Count() (int, error)
}
