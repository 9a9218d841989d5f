package ports

import (
	"context"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// Platform red social soportada por el gateway.
type Platform string

const (
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

// MessageSender entrega un mensaje de WhatsApp a un número.
type MessageSender interface {
	SendMessage(ctx context.Context, to, body string) (*dto.GatewayAck, error)
}

// SocialGateway puerto de salida hacia la Graph API (WhatsApp, Instagram, Facebook).
// Cada llamada es un único round trip: sin reintentos, sin backoff, sin clave de idempotencia.
// Sin token configurado todas las llamadas fallan con domain.ErrGatewayNotConfigured.
type SocialGateway interface {
	MessageSender
	FetchMessages(ctx context.Context, limit int) ([]dto.InboundMessage, error)
	MarkMessageRead(ctx context.Context, messageID string) error
	FetchAccounts(ctx context.Context, platform Platform) ([]dto.SocialAccount, error)
	// CreatePost publica en la cuenta indicada. Para Facebook account es el ID de página
	// y accessToken el token de página; para Instagram se usa imageURL.
	CreatePost(ctx context.Context, platform Platform, account, accessToken, body, imageURL, link string) (*dto.GatewayAck, error)
	FetchInsights(ctx context.Context, platform Platform, account, accessToken string) (map[string]any, error)
	FetchMedia(ctx context.Context, account string, limit int) (map[string]any, error)
}
