package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// MessageRepository define el puerto de persistencia del inbox.
type MessageRepository interface {
	Create(msg *entity.Message) (*entity.Message, error)
	GetByID(id int64) (*entity.Message, error)
	MarkAsRead(id int64) error
	List() ([]*entity.Message, error)
	ListBy(match func(*entity.Message) bool) ([]*entity.Message, error)
}
