// Package meta implementa el gateway social sobre la Graph API de Meta
// (WhatsApp Business, Instagram Business y Facebook Pages).
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/pkg/metrics"
)

// Verificar en tiempo de compilación que GraphClient implementa SocialGateway.
var _ ports.SocialGateway = (*GraphClient)(nil)

const (
	// DefaultBaseURL versión de la Graph API usada por defecto.
	DefaultBaseURL = "https://graph.facebook.com/v18.0"

	countryPrefix = "55"

	instagramMediaFields = "id,caption,media_type,media_url,thumbnail_url,timestamp,like_count,comments_count"
	instagramMetrics     = "impressions,reach,profile_views,website_clicks"
	facebookPageFields   = "id,name,access_token,category,fan_count"
	facebookPageMetrics  = "page_impressions,page_engaged_users,page_post_engagements,page_fans"
)

// Config parámetros del cliente.
type Config struct {
	Token   string // bearer token; vacío = todas las llamadas fallan
	BaseURL string
	PhoneID string // ID del número de WhatsApp Business
	Timeout time.Duration
}

// GraphClient adaptador HTTP de la Graph API. Cada método es un único round trip
// (la publicación en Instagram son dos: contenedor + publish), sin reintentos.
type GraphClient struct {
	token      string
	baseURL    string
	phoneID    string
	httpClient *http.Client
}

// NewGraphClient construye el adaptador.
func NewGraphClient(cfg Config) *GraphClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GraphClient{
		token:      cfg.Token,
		baseURL:    base,
		phoneID:    cfg.PhoneID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured indica si hay token.
func (c *GraphClient) Configured() bool { return c.token != "" }

// ── Estructuras del protocolo Graph API ──────────────────────────────────────

type graphError struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type idResponse struct {
	ID string `json:"id"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type accountsResponse struct {
	Data []struct {
		ID                       string `json:"id"`
		Name                     string `json:"name"`
		AccessToken              string `json:"access_token"`
		Category                 string `json:"category"`
		FanCount                 int64  `json:"fan_count"`
		InstagramBusinessAccount *struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	} `json:"data"`
}

type messagesResponse struct {
	Data []struct {
		ID        string `json:"id"`
		From      string `json:"from"`
		Timestamp string `json:"timestamp"`
		Text      struct {
			Body string `json:"body"`
		} `json:"text"`
	} `json:"data"`
}

// ── WhatsApp ─────────────────────────────────────────────────────────────────

// NormalizePhone deja solo dígitos y antepone el código de país si falta.
func NormalizePhone(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if !strings.HasPrefix(digits, countryPrefix) {
		digits = countryPrefix + digits
	}
	return digits
}

// SendMessage envía un mensaje de texto por WhatsApp Business.
func (c *GraphClient) SendMessage(ctx context.Context, to, body string) (*dto.GatewayAck, error) {
	if c.phoneID == "" && c.token != "" {
		return nil, fmt.Errorf("%w: META_WHATSAPP_PHONE_ID vacío", domain.ErrGatewayNotConfigured)
	}
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                NormalizePhone(to),
		"type":              "text",
		"text":              map[string]string{"body": body},
	}
	var raw map[string]any
	if err := c.do(ctx, "send_message", http.MethodPost, "/"+c.phoneID+"/messages", c.token, nil, payload, &raw); err != nil {
		return nil, err
	}
	var parsed sendResponse
	_ = remarshal(raw, &parsed)
	ack := &dto.GatewayAck{Raw: raw}
	if len(parsed.Messages) > 0 {
		ack.ID = parsed.Messages[0].ID
	}
	return ack, nil
}

// FetchMessages lee los mensajes recibidos del número de WhatsApp.
func (c *GraphClient) FetchMessages(ctx context.Context, limit int) ([]dto.InboundMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var resp messagesResponse
	if err := c.do(ctx, "fetch_messages", http.MethodGet, "/"+c.phoneID+"/messages", c.token, q, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]dto.InboundMessage, 0, len(resp.Data))
	for _, m := range resp.Data {
		out = append(out, dto.InboundMessage{ID: m.ID, From: m.From, Body: m.Text.Body, Timestamp: m.Timestamp})
	}
	return out, nil
}

// MarkMessageRead marca un mensaje de WhatsApp como leído.
func (c *GraphClient) MarkMessageRead(ctx context.Context, messageID string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"status":            "read",
		"message_id":        messageID,
	}
	return c.do(ctx, "mark_read", http.MethodPost, "/"+c.phoneID+"/messages", c.token, nil, payload, nil)
}

// ── Cuentas, publicaciones e insights ────────────────────────────────────────

// FetchAccounts lista las cuentas conectadas de la plataforma.
func (c *GraphClient) FetchAccounts(ctx context.Context, platform ports.Platform) ([]dto.SocialAccount, error) {
	var path string
	q := url.Values{}
	switch platform {
	case ports.PlatformWhatsApp:
		path = "/me/businesses"
	case ports.PlatformInstagram:
		path = "/me/accounts"
		q.Set("fields", "instagram_business_account")
	case ports.PlatformFacebook:
		path = "/me/accounts"
		q.Set("fields", facebookPageFields)
	default:
		return nil, fmt.Errorf("%w: plataforma %q", domain.ErrInvalidInput, platform)
	}
	var resp accountsResponse
	if err := c.do(ctx, "fetch_accounts_"+string(platform), http.MethodGet, path, c.token, q, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]dto.SocialAccount, 0, len(resp.Data))
	for _, a := range resp.Data {
		acc := dto.SocialAccount{
			ID:          a.ID,
			Name:        a.Name,
			Category:    a.Category,
			AccessToken: a.AccessToken,
			FanCount:    a.FanCount,
		}
		if a.InstagramBusinessAccount != nil {
			acc.InstagramID = a.InstagramBusinessAccount.ID
		}
		out = append(out, acc)
	}
	return out, nil
}

// CreatePost publica en Instagram (contenedor + publish) o en el feed de una página de Facebook.
func (c *GraphClient) CreatePost(ctx context.Context, platform ports.Platform, account, accessToken, body, imageURL, link string) (*dto.GatewayAck, error) {
	switch platform {
	case ports.PlatformInstagram:
		var container idResponse
		payload := map[string]any{"image_url": imageURL, "caption": body}
		if err := c.do(ctx, "create_post_instagram", http.MethodPost, "/"+account+"/media", c.token, nil, payload, &container); err != nil {
			return nil, err
		}
		var raw map[string]any
		publish := map[string]any{"creation_id": container.ID}
		if err := c.do(ctx, "publish_post_instagram", http.MethodPost, "/"+account+"/media_publish", c.token, nil, publish, &raw); err != nil {
			return nil, err
		}
		return ackFromRaw(raw), nil
	case ports.PlatformFacebook:
		payload := map[string]any{"message": body}
		if link != "" {
			payload["link"] = link
		}
		var raw map[string]any
		if err := c.do(ctx, "create_post_facebook", http.MethodPost, "/"+account+"/feed", c.pageToken(accessToken), nil, payload, &raw); err != nil {
			return nil, err
		}
		return ackFromRaw(raw), nil
	default:
		return nil, fmt.Errorf("%w: plataforma %q no admite publicaciones", domain.ErrInvalidInput, platform)
	}
}

// FetchInsights devuelve las métricas crudas de la cuenta.
func (c *GraphClient) FetchInsights(ctx context.Context, platform ports.Platform, account, accessToken string) (map[string]any, error) {
	q := url.Values{}
	token := c.token
	switch platform {
	case ports.PlatformInstagram:
		q.Set("metric", instagramMetrics)
		q.Set("period", "day")
	case ports.PlatformFacebook:
		q.Set("metric", facebookPageMetrics)
		token = c.pageToken(accessToken)
	default:
		return nil, fmt.Errorf("%w: plataforma %q sin insights", domain.ErrInvalidInput, platform)
	}
	var raw map[string]any
	if err := c.do(ctx, "fetch_insights_"+string(platform), http.MethodGet, "/"+account+"/insights", token, q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// FetchMedia lista la media publicada en una cuenta de Instagram Business.
func (c *GraphClient) FetchMedia(ctx context.Context, account string, limit int) (map[string]any, error) {
	if limit <= 0 {
		limit = 25
	}
	q := url.Values{"fields": {instagramMediaFields}, "limit": {strconv.Itoa(limit)}}
	var raw map[string]any
	if err := c.do(ctx, "fetch_media", http.MethodGet, "/"+account+"/media", c.token, q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// pageToken usa el token de página si existe; si no, el token de la app.
func (c *GraphClient) pageToken(pageToken string) string {
	if pageToken != "" {
		return pageToken
	}
	return c.token
}

// ── Transporte ───────────────────────────────────────────────────────────────

// do ejecuta un único request JSON. Sin token → ErrGatewayNotConfigured;
// status no 2xx → ErrGatewayFailure con el mensaje de la API.
func (c *GraphClient) do(ctx context.Context, op, method, path, token string, query url.Values, payload, out any) (err error) {
	defer func() {
		result := "ok"
		switch {
		case errors.Is(err, domain.ErrGatewayNotConfigured):
			result = "not_configured"
		case err != nil:
			result = "error"
		}
		metrics.GatewayRequestsTotal.WithLabelValues(op, result).Inc()
	}()

	if c.token == "" || token == "" {
		return fmt.Errorf("%w: META_API_TOKEN vacío", domain.ErrGatewayNotConfigured)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("meta: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("meta: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrGatewayFailure, ctx.Err())
		}
		return fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrGatewayFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var gerr graphError
		if jsonErr := json.Unmarshal(rawBody, &gerr); jsonErr == nil && gerr.Error != nil {
			return fmt.Errorf("%w: HTTP %d (%s): %s", domain.ErrGatewayFailure, resp.StatusCode, gerr.Error.Type, gerr.Error.Message)
		}
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrGatewayFailure, resp.StatusCode, string(rawBody))
	}

	if out == nil || len(rawBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("%w: deserializar respuesta: %v", domain.ErrGatewayFailure, err)
	}
	return nil
}

func ackFromRaw(raw map[string]any) *dto.GatewayAck {
	ack := &dto.GatewayAck{Raw: raw}
	if id, ok := raw["id"].(string); ok {
		ack.ID = id
	}
	return ack
}

func remarshal(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
