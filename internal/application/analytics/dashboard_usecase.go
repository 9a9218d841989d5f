// Package analytics contiene los casos de uso del dashboard y del resumen de reportes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// DashboardUseCase genera los indicadores del dashboard a partir del estado vivo del store.
type DashboardUseCase struct {
	cards    repository.CardRepository
	clients  repository.ClientRepository
	messages repository.MessageRepository
	loc      *time.Location
}

// NewDashboardUseCase construye el caso de uso. loc define el mes de las series mensuales.
func NewDashboardUseCase(
	cards repository.CardRepository,
	clients repository.ClientRepository,
	messages repository.MessageRepository,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{cards: cards, clients: clients, messages: messages, loc: loc}
}

// GetDashboard totales, conteos por etapa, conversión y las 5 tarjetas más recientes.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cards, err := uc.cards.List()
	if err != nil {
		return nil, fmt.Errorf("dashboard: tarjetas: %w", err)
	}
	totalClients, err := uc.clients.Count()
	if err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", err)
	}
	unread, err := uc.messages.ListBy(func(m *entity.Message) bool { return !m.Read })
	if err != nil {
		return nil, fmt.Errorf("dashboard: mensajes: %w", err)
	}

	recent := pipeline.Recent(cards, pipeline.RecentLimit)
	recentOut := make([]dto.CardResponse, 0, len(recent))
	for _, c := range recent {
		recentOut = append(recentOut, *pipeline.ToCardResponse(c))
	}

	return &dto.DashboardDTO{
		TotalClients:   totalClients,
		TotalCards:     len(cards),
		UnreadMessages: len(unread),
		PipelineStats:  pipeline.StageCounts(cards),
		ConversionRate: pipeline.ConversionRate(cards),
		RecentCards:    recentOut,
	}, nil
}

// GetReportsSummary total de clientes, ventas cerradas, embudo y serie mensual.
func (uc *DashboardUseCase) GetReportsSummary(ctx context.Context) (*dto.ReportsSummaryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cards, err := uc.cards.List()
	if err != nil {
		return nil, fmt.Errorf("reportes: tarjetas: %w", err)
	}
	totalClients, err := uc.clients.Count()
	if err != nil {
		return nil, fmt.Errorf("reportes: clientes: %w", err)
	}
	funnel := pipeline.Funnel(cards)
	return &dto.ReportsSummaryDTO{
		TotalClients:       totalClients,
		TotalSales:         funnel.Closed,
		PipelineConversion: funnel,
		MonthlyPerformance: pipeline.MonthlySales(cards, uc.loc),
	}, nil
}
