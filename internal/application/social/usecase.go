// Package social orquesta las cuentas, métricas, publicaciones y la sincronización
// del inbox contra el gateway de redes sociales.
package social

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
)

// DefaultSyncLimit mensajes leídos por sincronización.
const DefaultSyncLimit = 50

// Inbox destino de los mensajes entrantes sincronizados.
type Inbox interface {
	Receive(sender, body string, clientID *int64) (*dto.MessageResponse, error)
}

// UseCase casos de uso de redes sociales.
type UseCase struct {
	gw    ports.SocialGateway
	inbox Inbox
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(gw ports.SocialGateway, inbox Inbox, log zerolog.Logger) *UseCase {
	return &UseCase{gw: gw, inbox: inbox, log: log}
}

// Accounts consulta las tres plataformas en paralelo. Una plataforma que falla
// queda en nil; solo se devuelve error si el gateway no está configurado.
func (uc *UseCase) Accounts(ctx context.Context) (*dto.SocialAccountsDTO, error) {
	platforms := []ports.Platform{ports.PlatformWhatsApp, ports.PlatformInstagram, ports.PlatformFacebook}
	results := make([][]dto.SocialAccount, len(platforms))

	var (
		mu            sync.Mutex
		notConfigured bool
	)
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range platforms {
		g.Go(func() error {
			accounts, err := uc.gw.FetchAccounts(gctx, p)
			if err != nil {
				uc.logFailure(err, "fetch_accounts", p)
				if errors.Is(err, domain.ErrGatewayNotConfigured) {
					mu.Lock()
					notConfigured = true
					mu.Unlock()
				}
				return nil
			}
			results[i] = accounts
			return nil
		})
	}
	_ = g.Wait()

	if notConfigured {
		return nil, domain.ErrGatewayNotConfigured
	}
	return &dto.SocialAccountsDTO{
		WhatsApp:  results[0],
		Instagram: results[1],
		Facebook:  results[2],
	}, nil
}

// Insights métricas unificadas: Instagram de la primera página con cuenta
// Business vinculada y Facebook por cada página. Las fallas quedan en nil.
func (uc *UseCase) Insights(ctx context.Context) (*dto.SocialInsightsDTO, error) {
	out := &dto.SocialInsightsDTO{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Instagram = uc.instagramInsights(gctx)
		return nil
	})
	g.Go(func() error {
		pages, err := uc.gw.FetchAccounts(gctx, ports.PlatformFacebook)
		if err != nil {
			uc.logFailure(err, "fetch_accounts", ports.PlatformFacebook)
			if errors.Is(err, domain.ErrGatewayNotConfigured) {
				return err
			}
			return nil
		}
		out.Facebook = uc.pageInsights(gctx, pages)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UseCase) instagramInsights(ctx context.Context) map[string]any {
	accounts, err := uc.gw.FetchAccounts(ctx, ports.PlatformInstagram)
	if err != nil {
		uc.logFailure(err, "fetch_accounts", ports.PlatformInstagram)
		return nil
	}
	for _, a := range accounts {
		if a.InstagramID == "" {
			continue
		}
		raw, err := uc.gw.FetchInsights(ctx, ports.PlatformInstagram, a.InstagramID, "")
		if err != nil {
			uc.logFailure(err, "fetch_insights", ports.PlatformInstagram)
			return nil
		}
		return raw
	}
	return nil
}

func (uc *UseCase) pageInsights(ctx context.Context, pages []dto.SocialAccount) []dto.PageInsights {
	out := make([]dto.PageInsights, 0, len(pages))
	for _, p := range pages {
		raw, err := uc.gw.FetchInsights(ctx, ports.PlatformFacebook, p.ID, p.AccessToken)
		if err != nil {
			uc.logFailure(err, "fetch_insights", ports.PlatformFacebook)
			continue
		}
		out = append(out, dto.PageInsights{PageID: p.ID, PageName: p.Name, Insights: raw})
	}
	return out
}

// Media publicaciones recientes de una cuenta de Instagram Business.
func (uc *UseCase) Media(ctx context.Context, account string, limit int) (map[string]any, error) {
	if account == "" {
		return nil, fmt.Errorf("%w: cuenta de Instagram requerida", domain.ErrInvalidInput)
	}
	raw, err := uc.gw.FetchMedia(ctx, account, limit)
	if err != nil {
		uc.logFailure(err, "fetch_media", ports.PlatformInstagram)
		return nil, fmt.Errorf("social: media: %w", err)
	}
	return raw, nil
}

// CreatePost publica en Instagram (exige image_url) o en una página de Facebook
// (usa el token de la página si aparece entre las cuentas).
func (uc *UseCase) CreatePost(ctx context.Context, in dto.CreatePostRequest) (*dto.GatewayAck, error) {
	platform := ports.Platform(in.Platform)
	var pageToken string
	switch platform {
	case ports.PlatformInstagram:
		if in.ImageURL == "" {
			return nil, fmt.Errorf("%w: Instagram exige image_url", domain.ErrInvalidInput)
		}
	case ports.PlatformFacebook:
		pages, err := uc.gw.FetchAccounts(ctx, ports.PlatformFacebook)
		if err != nil {
			uc.logFailure(err, "fetch_accounts", platform)
			return nil, fmt.Errorf("social: publicar: %w", err)
		}
		for _, p := range pages {
			if p.ID == in.Account {
				pageToken = p.AccessToken
				break
			}
		}
	default:
		return nil, fmt.Errorf("%w: plataforma %q", domain.ErrInvalidInput, in.Platform)
	}

	ack, err := uc.gw.CreatePost(ctx, platform, in.Account, pageToken, in.Message, in.ImageURL, in.Link)
	if err != nil {
		uc.logFailure(err, "create_post", platform)
		return nil, fmt.Errorf("social: publicar: %w", err)
	}
	uc.log.Info().Str("platform", string(platform)).Str("account", in.Account).Str("post_id", ack.ID).Msg("publicación creada")
	return ack, nil
}

// SyncInbox trae los mensajes entrantes del gateway y los registra en el inbox.
// Devuelve cuántos se registraron.
func (uc *UseCase) SyncInbox(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultSyncLimit
	}
	inbound, err := uc.gw.FetchMessages(ctx, limit)
	if err != nil {
		uc.logFailure(err, "fetch_messages", ports.PlatformWhatsApp)
		return 0, fmt.Errorf("social: sincronizar inbox: %w", err)
	}
	stored := 0
	for _, m := range inbound {
		if m.Body == "" {
			continue
		}
		if _, err := uc.inbox.Receive(m.From, m.Body, nil); err != nil {
			return stored, fmt.Errorf("social: sincronizar inbox: %w", err)
		}
		stored++
	}
	uc.log.Info().Int("fetched", len(inbound)).Int("stored", stored).Msg("inbox sincronizado")
	return stored, nil
}

func (uc *UseCase) logFailure(err error, op string, p ports.Platform) {
	ev := uc.log.Warn()
	if !errors.Is(err, domain.ErrGatewayNotConfigured) {
		ev = uc.log.Error()
	}
	ev.Err(err).Str("operation", op).Str("platform", string(p)).Msg("falla en el gateway social")
}
