package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecentLimit número de tarjetas en "actividad reciente".
const RecentLimit = 5

var hundred = decimal.NewFromInt(100)

func groupByStage(cards []*entity.Card) map[entity.Stage][]*entity.Card {
	out := make(map[entity.Stage][]*entity.Card, len(entity.Stages()))
	for _, c := range cards {
		out[c.Stage] = append(out[c.Stage], c)
	}
	return out
}

// CountByStage cantidad de tarjetas por etapa; todas las etapas están presentes.
func CountByStage(cards []*entity.Card) map[entity.Stage]int {
	out := make(map[entity.Stage]int, len(entity.Stages()))
	for _, st := range entity.Stages() {
		out[st] = 0
	}
	for _, c := range cards {
		out[c.Stage]++
	}
	return out
}

// StageCounts conteos por etapa en orden de proceso. La suma es len(cards).
func StageCounts(cards []*entity.Card) []dto.StageCount {
	counts := CountByStage(cards)
	out := make([]dto.StageCount, 0, len(counts))
	for _, st := range entity.Stages() {
		out = append(out, dto.StageCount{Stage: string(st), Label: st.Label(), Count: counts[st]})
	}
	return out
}

// Percentage count / max(total, 1) * 100 con places decimales.
// Un total cero da 0 en lugar de una división por cero.
func Percentage(count, total int, places int32) decimal.Decimal {
	if total < 1 {
		total = 1
	}
	return decimal.NewFromInt(int64(count)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(places)
}

// ConversionRate porcentaje de tarjetas en la etapa cerrada, dos decimales.
func ConversionRate(cards []*entity.Card) decimal.Decimal {
	return Percentage(CountByStage(cards)[entity.StageClosed], len(cards), 2)
}

// Recent las n tarjetas actualizadas más recientemente.
// Empates de UpdatedAt se resuelven por orden de inserción (la creada antes va primero).
func Recent(cards []*entity.Card, n int) []*entity.Card {
	sorted := make([]*entity.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MonthlySales agrupa las ventas cerradas por mes de UpdatedAt (en loc), en orden cronológico.
func MonthlySales(cards []*entity.Card, loc *time.Location) []dto.MonthlySalesDTO {
	if loc == nil {
		loc = time.Local
	}
	type bucket struct {
		start   time.Time
		sales   int
		revenue decimal.Decimal
	}
	buckets := map[time.Time]*bucket{}
	for _, c := range cards {
		if c.Stage != entity.StageClosed {
			continue
		}
		t := c.UpdatedAt.In(loc)
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		b, ok := buckets[start]
		if !ok {
			b = &bucket{start: start, revenue: decimal.Zero}
			buckets[start] = b
		}
		b.sales++
		b.revenue = b.revenue.Add(c.Value)
	}
	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].start.Before(ordered[j].start) })

	out := make([]dto.MonthlySalesDTO, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, dto.MonthlySalesDTO{
			Month:         MonthLabel(b.start),
			Sales:         b.sales,
			Revenue:       b.revenue.Round(2),
			AverageTicket: AverageTicket(b.revenue, b.sales),
		})
	}
	return out
}

// AverageTicket revenue / max(sales, 1), dos decimales.
func AverageTicket(revenue decimal.Decimal, sales int) decimal.Decimal {
	if sales < 1 {
		sales = 1
	}
	return revenue.Div(decimal.NewFromInt(int64(sales))).Round(2)
}

// Funnel embudo de conversión: leads, propuestas, en curso, cerradas.
func Funnel(cards []*entity.Card) dto.PipelineFunnelDTO {
	counts := CountByStage(cards)
	return dto.PipelineFunnelDTO{
		Leads:      counts[entity.StageInitialContact],
		Proposals:  counts[entity.StageProposalSent],
		InProgress: counts[entity.StageInProgress],
		Closed:     counts[entity.StageClosed],
	}
}

// MonthLabel etiqueta legible del mes, ej: "Março 2026".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
