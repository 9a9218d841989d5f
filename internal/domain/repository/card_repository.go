package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// CardRepository define el puerto de persistencia para las tarjetas del kanban.
// List y ListBy devuelven las tarjetas en orden de inserción.
type CardRepository interface {
	Create(card *entity.Card) (*entity.Card, error)
	GetByID(id string) (*entity.Card, error)
	Update(card *entity.Card) (*entity.Card, error)
	Delete(id string) error
	List() ([]*entity.Card, error)
	ListBy(match func(*entity.Card) bool) ([]*entity.Card, error)
}
