package memory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
)

func TestClientRepo_IDsNoSeReutilizan(t *testing.T) {
	repo := memory.NewClientRepository()

	a, err := repo.Create(&entity.Client{Name: "A"})
	require.NoError(t, err)
	b, err := repo.Create(&entity.Client{Name: "B"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Equal(t, entity.ClientStatusActive, a.Status)

	require.NoError(t, repo.Delete(b.ID))
	c, err := repo.Create(&entity.Client{Name: "C"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestClientRepo_GetInexistenteDevuelveNil(t *testing.T) {
	repo := memory.NewClientRepository()

	got, err := repo.GetByID(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientRepo_UpdateConservaCreatedAt(t *testing.T) {
	repo := memory.NewClientRepository()
	created, err := repo.Create(&entity.Client{Name: "A"})
	require.NoError(t, err)

	upd := *created
	upd.Name = "A2"
	upd.CreatedAt = created.CreatedAt.AddDate(-1, 0, 0)
	out, err := repo.Update(&upd)
	require.NoError(t, err)
	assert.Equal(t, "A2", out.Name)
	assert.True(t, out.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, out.UpdatedAt.Before(created.UpdatedAt))

	_, err = repo.Update(&entity.Client{ID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_UsernameDuplicado(t *testing.T) {
	repo := memory.NewUserRepository()
	_, err := repo.Create(&entity.User{Username: "admin"})
	require.NoError(t, err)

	_, err = repo.Create(&entity.User{Username: "admin"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(1), u.ID)

	none, err := repo.GetByUsername("otro")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCardRepo_CRUD(t *testing.T) {
	repo := memory.NewCardRepository()
	clientID := int64(7)
	card := &entity.Card{ID: "c1", Title: "Auto", Stage: entity.StageInitialContact, ClientID: &clientID, Value: decimal.NewFromInt(10)}

	_, err := repo.Create(card)
	require.NoError(t, err)
	_, err = repo.Create(card)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	clientID = 8
	got, err := repo.GetByID("c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), *got.ClientID, "el repositorio guarda su propia copia")

	got.Stage = entity.StageClosed
	_, err = repo.Update(got)
	require.NoError(t, err)

	closed, err := repo.ListBy(func(c *entity.Card) bool { return c.Stage == entity.StageClosed })
	require.NoError(t, err)
	assert.Len(t, closed, 1)

	require.NoError(t, repo.Delete("c1"))
	_, err = repo.Update(got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	missing, err := repo.GetByID("c1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageRepo_MarkAsRead(t *testing.T) {
	repo := memory.NewMessageRepository()
	msg, err := repo.Create(&entity.Message{Sender: "Cliente", Body: "Olá", Direction: entity.DirectionReceived})
	require.NoError(t, err)
	assert.False(t, msg.Timestamp.IsZero())
	assert.False(t, msg.Read)

	require.NoError(t, repo.MarkAsRead(msg.ID))
	got, err := repo.GetByID(msg.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	assert.ErrorIs(t, repo.MarkAsRead(999), domain.ErrNotFound)
}
