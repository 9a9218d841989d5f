package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// MessageUseCase casos de uso del inbox de WhatsApp.
// Sin sender los envíos solo se registran localmente (modo simulado).
type MessageUseCase struct {
	messages repository.MessageRepository
	clients  repository.ClientRepository
	sender   ports.MessageSender
}

// NewMessageUseCase construye el caso de uso. sender puede ser nil.
func NewMessageUseCase(messages repository.MessageRepository, clients repository.ClientRepository, sender ports.MessageSender) *MessageUseCase {
	return &MessageUseCase{messages: messages, clients: clients, sender: sender}
}

// List mensajes del más reciente al más antiguo.
func (uc *MessageUseCase) List() ([]*dto.MessageResponse, error) {
	list, err := uc.messages.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	return toMessageResponses(list), nil
}

// ListByClient mensajes asociados a un cliente, en orden de llegada.
func (uc *MessageUseCase) ListByClient(clientID int64) ([]*dto.MessageResponse, error) {
	list, err := uc.messages.ListBy(func(m *entity.Message) bool {
		return m.ClientID != nil && *m.ClientID == clientID
	})
	if err != nil {
		return nil, err
	}
	return toMessageResponses(list), nil
}

// UnreadCount cantidad de mensajes no leídos.
func (uc *MessageUseCase) UnreadCount() (int, error) {
	list, err := uc.messages.ListBy(func(m *entity.Message) bool { return !m.Read })
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Send registra un mensaje saliente firmado con el nombre del usuario.
// Con sender configurado y cliente con teléfono, primero lo entrega por el gateway;
// si la entrega falla el mensaje no se registra.
func (uc *MessageUseCase) Send(ctx context.Context, senderName string, in dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if in.Message == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.sender != nil && in.ClientID != nil {
		client, err := uc.clients.GetByID(*in.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil && client.Phone != "" {
			if _, err := uc.sender.SendMessage(ctx, client.Phone, in.Message); err != nil {
				return nil, fmt.Errorf("inbox: entregar mensaje: %w", err)
			}
		}
	}
	saved, err := uc.messages.Create(&entity.Message{
		Sender:    senderName,
		Body:      in.Message,
		Direction: entity.DirectionSent,
		ClientID:  in.ClientID,
	})
	if err != nil {
		return nil, fmt.Errorf("inbox: guardar mensaje: %w", err)
	}
	return toMessageResponse(saved), nil
}

// Receive registra un mensaje entrante (no leído).
func (uc *MessageUseCase) Receive(sender, body string, clientID *int64) (*dto.MessageResponse, error) {
	saved, err := uc.messages.Create(&entity.Message{
		Sender:    sender,
		Body:      body,
		Direction: entity.DirectionReceived,
		ClientID:  clientID,
	})
	if err != nil {
		return nil, fmt.Errorf("inbox: guardar mensaje: %w", err)
	}
	return toMessageResponse(saved), nil
}

// MarkAsRead marca el mensaje como leído; ErrNotFound si no existe.
func (uc *MessageUseCase) MarkAsRead(id int64) error {
	return uc.messages.MarkAsRead(id)
}

func toMessageResponses(list []*entity.Message) []*dto.MessageResponse {
	out := make([]*dto.MessageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:        m.ID,
		Sender:    m.Sender,
		Message:   m.Body,
		Type:      string(m.Direction),
		ClientID:  m.ClientID,
		Timestamp: m.Timestamp,
		Read:      m.Read,
	}
}
