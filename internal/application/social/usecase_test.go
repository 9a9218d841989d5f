package social_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/application/social"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
)

// ─── stub gateway ─────────────────────────────────────────────────────────────

type stubGateway struct {
	mu        sync.Mutex
	accounts  map[ports.Platform][]dto.SocialAccount
	failFor   map[ports.Platform]error
	insights  map[string]map[string]any
	inbound   []dto.InboundMessage
	posts     []string
	postToken string
}

func (s *stubGateway) SendMessage(context.Context, string, string) (*dto.GatewayAck, error) {
	return &dto.GatewayAck{ID: "wamid"}, nil
}

func (s *stubGateway) FetchMessages(context.Context, int) ([]dto.InboundMessage, error) {
	if err := s.failFor[ports.PlatformWhatsApp]; err != nil {
		return nil, err
	}
	return s.inbound, nil
}

func (s *stubGateway) MarkMessageRead(context.Context, string) error { return nil }

func (s *stubGateway) FetchAccounts(_ context.Context, p ports.Platform) ([]dto.SocialAccount, error) {
	if err := s.failFor[p]; err != nil {
		return nil, err
	}
	return s.accounts[p], nil
}

func (s *stubGateway) CreatePost(_ context.Context, p ports.Platform, account, token, _, _, _ string) (*dto.GatewayAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, string(p)+":"+account)
	s.postToken = token
	return &dto.GatewayAck{ID: "post-1"}, nil
}

func (s *stubGateway) FetchInsights(_ context.Context, _ ports.Platform, account, _ string) (map[string]any, error) {
	raw, ok := s.insights[account]
	if !ok {
		return nil, fmt.Errorf("%w: HTTP 400", domain.ErrGatewayFailure)
	}
	return raw, nil
}

func (s *stubGateway) FetchMedia(context.Context, string, int) (map[string]any, error) {
	return map[string]any{"data": []any{}}, nil
}

func newSocial(gw ports.SocialGateway) (*social.UseCase, *usecase.MessageUseCase) {
	inbox := usecase.NewMessageUseCase(memory.NewMessageRepository(), memory.NewClientRepository(), nil)
	return social.NewUseCase(gw, inbox, zerolog.Nop()), inbox
}

// ─── tests ────────────────────────────────────────────────────────────────────

func TestAccounts_FallaPorPlataformaQuedaNil(t *testing.T) {
	gw := &stubGateway{
		accounts: map[ports.Platform][]dto.SocialAccount{
			ports.PlatformWhatsApp: {{ID: "B1", Name: "Monteiro"}},
			ports.PlatformFacebook: {{ID: "P1", Name: "Página"}},
		},
		failFor: map[ports.Platform]error{ports.PlatformInstagram: domain.ErrGatewayFailure},
	}
	uc, _ := newSocial(gw)

	out, err := uc.Accounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.WhatsApp, 1)
	assert.Nil(t, out.Instagram)
	assert.Len(t, out.Facebook, 1)
}

func TestAccounts_GatewayNoConfigurado(t *testing.T) {
	gw := &stubGateway{failFor: map[ports.Platform]error{
		ports.PlatformWhatsApp:  domain.ErrGatewayNotConfigured,
		ports.PlatformInstagram: domain.ErrGatewayNotConfigured,
		ports.PlatformFacebook:  domain.ErrGatewayNotConfigured,
	}}
	uc, _ := newSocial(gw)

	_, err := uc.Accounts(context.Background())
	assert.ErrorIs(t, err, domain.ErrGatewayNotConfigured)
}

func TestInsights_Unificados(t *testing.T) {
	gw := &stubGateway{
		accounts: map[ports.Platform][]dto.SocialAccount{
			ports.PlatformInstagram: {{ID: "P0"}, {ID: "P1", InstagramID: "IG1"}},
			ports.PlatformFacebook:  {{ID: "P1", Name: "Monteiro", AccessToken: "ptok"}, {ID: "P2", Name: "Sem métricas"}},
		},
		insights: map[string]map[string]any{
			"IG1": {"data": []any{}},
			"P1":  {"data": []any{}},
		},
	}
	uc, _ := newSocial(gw)

	out, err := uc.Insights(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out.Instagram)
	require.Len(t, out.Facebook, 1, "la página cuyo insight falla se omite")
	assert.Equal(t, "Monteiro", out.Facebook[0].PageName)
}

func TestInsights_InstagramSinCuentaVinculadaEsNil(t *testing.T) {
	gw := &stubGateway{accounts: map[ports.Platform][]dto.SocialAccount{
		ports.PlatformInstagram: {{ID: "P0"}},
	}}
	uc, _ := newSocial(gw)

	out, err := uc.Insights(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out.Instagram)
	assert.Empty(t, out.Facebook)
}

func TestCreatePost_InstagramExigeImagen(t *testing.T) {
	gw := &stubGateway{}
	uc, _ := newSocial(gw)

	_, err := uc.CreatePost(context.Background(), dto.CreatePostRequest{Platform: "instagram", Account: "IG1", Message: "Oi"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, gw.posts)
}

func TestCreatePost_FacebookUsaTokenDePagina(t *testing.T) {
	gw := &stubGateway{accounts: map[ports.Platform][]dto.SocialAccount{
		ports.PlatformFacebook: {{ID: "P1", AccessToken: "ptok"}},
	}}
	uc, _ := newSocial(gw)

	ack, err := uc.CreatePost(context.Background(), dto.CreatePostRequest{Platform: "facebook", Account: "P1", Message: "Promoção"})
	require.NoError(t, err)
	assert.Equal(t, "post-1", ack.ID)
	assert.Equal(t, []string{"facebook:P1"}, gw.posts)
	assert.Equal(t, "ptok", gw.postToken)
}

func TestSyncInbox_RegistraMensajesRecibidos(t *testing.T) {
	gw := &stubGateway{inbound: []dto.InboundMessage{
		{ID: "w1", From: "5511999990000", Body: "Olá, quero uma cotação"},
		{ID: "w2", From: "5511888880000", Body: ""},
	}}
	uc, inbox := newSocial(gw)

	n, err := uc.SyncInbox(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "los mensajes sin texto se ignoran")

	unread, err := inbox.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	list, err := inbox.List()
	require.NoError(t, err)
	assert.Equal(t, "received", list[0].Type)
}

func TestSyncInbox_GatewayNoConfigurado(t *testing.T) {
	gw := &stubGateway{failFor: map[ports.Platform]error{ports.PlatformWhatsApp: domain.ErrGatewayNotConfigured}}
	uc, _ := newSocial(gw)

	_, err := uc.SyncInbox(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrGatewayNotConfigured)
}
