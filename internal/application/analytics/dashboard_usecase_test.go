package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
)

type fixture struct {
	cards    *memory.CardRepo
	clients  *memory.ClientRepo
	messages *memory.MessageRepo
	uc       *appanalytics.DashboardUseCase
}

func newFixture() *fixture {
	f := &fixture{
		cards:    memory.NewCardRepository(),
		clients:  memory.NewClientRepository(),
		messages: memory.NewMessageRepository(),
	}
	f.uc = appanalytics.NewDashboardUseCase(f.cards, f.clients, f.messages, time.UTC)
	return f
}

func (f *fixture) addCards(t *testing.T, stages ...entity.Stage) {
	t.Helper()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, st := range stages {
		_, err := f.cards.Create(&entity.Card{
			ID:        fmt.Sprintf("c%d", i+1),
			Title:     fmt.Sprintf("Tarjeta %d", i+1),
			Stage:     st,
			Priority:  entity.PriorityMedium,
			Value:     decimal.NewFromInt(int64(100 * (i + 1))),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
}

func TestGetDashboard_EscenarioCompleto(t *testing.T) {
	f := newFixture()
	f.addCards(t,
		entity.StageInitialContact, entity.StageInitialContact,
		entity.StageProposalSent, entity.StageInProgress, entity.StageClosed,
		entity.StagePostSale,
	)
	_, err := f.clients.Create(&entity.Client{Name: "Maria"})
	require.NoError(t, err)
	read, err := f.messages.Create(&entity.Message{Body: "lido"})
	require.NoError(t, err)
	require.NoError(t, f.messages.MarkAsRead(read.ID))
	_, err = f.messages.Create(&entity.Message{Body: "novo"})
	require.NoError(t, err)

	out, err := f.uc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, out.TotalClients)
	assert.Equal(t, 6, out.TotalCards)
	assert.Equal(t, 1, out.UnreadMessages)
	require.Len(t, out.PipelineStats, 5)
	assert.Equal(t, 2, out.PipelineStats[0].Count)
	assert.Equal(t, "16.67", out.ConversionRate.String())

	require.Len(t, out.RecentCards, 5)
	assert.Equal(t, "c6", out.RecentCards[0].ID)
	assert.Equal(t, "c2", out.RecentCards[4].ID)
}

func TestGetDashboard_Vacio(t *testing.T) {
	out, err := newFixture().uc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, out.TotalCards)
	assert.True(t, out.ConversionRate.IsZero())
	assert.NotNil(t, out.RecentCards)
	assert.Empty(t, out.RecentCards)
	for _, s := range out.PipelineStats {
		assert.Zero(t, s.Count)
	}
}

func TestGetDashboard_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFixture().uc.GetDashboard(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetReportsSummary(t *testing.T) {
	f := newFixture()
	f.addCards(t, entity.StageInitialContact, entity.StageClosed, entity.StageClosed, entity.StagePostSale)

	out, err := f.uc.GetReportsSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalSales)
	assert.Equal(t, 1, out.PipelineConversion.Leads)
	require.Len(t, out.MonthlyPerformance, 1)
	assert.Equal(t, "Março 2026", out.MonthlyPerformance[0].Month)
	assert.Equal(t, "500", out.MonthlyPerformance[0].Revenue.String())
	assert.Equal(t, "250", out.MonthlyPerformance[0].AverageTicket.String())
}
