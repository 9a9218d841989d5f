package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
)

type stubSender struct {
	calls []string
	err   error
}

func (s *stubSender) SendMessage(_ context.Context, to, body string) (*dto.GatewayAck, error) {
	s.calls = append(s.calls, to+"|"+body)
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GatewayAck{ID: "wamid.1"}, nil
}

func TestMessageSend_SinSenderSoloRegistra(t *testing.T) {
	repo := memory.NewMessageRepository()
	uc := usecase.NewMessageUseCase(repo, memory.NewClientRepository(), nil)

	out, err := uc.Send(context.Background(), "João Vendedor", dto.SendMessageRequest{Message: "Bom dia"})
	require.NoError(t, err)
	assert.Equal(t, "João Vendedor", out.Sender)
	assert.Equal(t, string(entity.DirectionSent), out.Type)
	assert.False(t, out.Timestamp.IsZero())

	_, err = uc.Send(context.Background(), "João Vendedor", dto.SendMessageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMessageSend_EntregaAlTelefonoDelCliente(t *testing.T) {
	clients := memory.NewClientRepository()
	client, err := clients.Create(&entity.Client{Name: "Maria", Phone: "(11) 98765-4321"})
	require.NoError(t, err)
	sender := &stubSender{}
	uc := usecase.NewMessageUseCase(memory.NewMessageRepository(), clients, sender)

	_, err = uc.Send(context.Background(), "Admin", dto.SendMessageRequest{Message: "Sua apólice", ClientID: &client.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"(11) 98765-4321|Sua apólice"}, sender.calls)
}

func TestMessageSend_FallaDeEntregaNoRegistra(t *testing.T) {
	clients := memory.NewClientRepository()
	client, err := clients.Create(&entity.Client{Name: "Maria", Phone: "11987654321"})
	require.NoError(t, err)
	repo := memory.NewMessageRepository()
	uc := usecase.NewMessageUseCase(repo, clients, &stubSender{err: domain.ErrGatewayFailure})

	_, err = uc.Send(context.Background(), "Admin", dto.SendMessageRequest{Message: "Olá", ClientID: &client.ID})
	assert.True(t, errors.Is(err, domain.ErrGatewayFailure))

	all, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMessageReceive_NoLeidoYUnread(t *testing.T) {
	uc := usecase.NewMessageUseCase(memory.NewMessageRepository(), memory.NewClientRepository(), nil)

	first, err := uc.Receive("+55 11 98765-4321", "Preciso de ajuda", nil)
	require.NoError(t, err)
	assert.False(t, first.Read)
	assert.Equal(t, string(entity.DirectionReceived), first.Type)
	_, err = uc.Receive("+55 21 91234-5678", "Olá", nil)
	require.NoError(t, err)

	n, err := uc.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, uc.MarkAsRead(first.ID))
	n, _ = uc.UnreadCount()
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, uc.MarkAsRead(999), domain.ErrNotFound)
}

func TestMessageList_MasRecientePrimero(t *testing.T) {
	repo := memory.NewMessageRepository()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clientID := int64(1)
	for i, body := range []string{"primero", "segundo", "tercero"} {
		_, err := repo.Create(&entity.Message{Body: body, Timestamp: base.Add(time.Duration(i) * time.Minute), ClientID: &clientID})
		require.NoError(t, err)
	}
	_, err := repo.Create(&entity.Message{Body: "otro cliente", Timestamp: base.Add(time.Hour)})
	require.NoError(t, err)
	uc := usecase.NewMessageUseCase(repo, memory.NewClientRepository(), nil)

	list, err := uc.List()
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "otro cliente", list[0].Message)
	assert.Equal(t, "primero", list[3].Message)

	byClient, err := uc.ListByClient(clientID)
	require.NoError(t, err)
	require.Len(t, byClient, 3)
	assert.Equal(t, "primero", byClient[0].Message)
}
