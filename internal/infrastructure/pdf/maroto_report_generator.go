// Package pdf genera los reportes PDF del CRM con Maroto v2.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO: Relatório de ... - <empresa>                        │
//	│  Gerado em: dd/mm/aaaa às hh:mm                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN: encabezado + texto de resumen                      │
//	│  TABLA: cabecera con fondo de color + filas                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

var (
	_ ports.ReportRenderer       = (*MarotoReportGenerator)(nil)
	_ ports.SocialReportRenderer = (*MarotoReportGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 253} // #0d6efd
	colorSuccess = &props.Color{Red: 25, Green: 135, Blue: 84}  // #198754
	colorInfo    = &props.Color{Red: 13, Green: 202, Blue: 240} // #0dcaf0
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorBeige   = &props.Color{Red: 245, Green: 245, Blue: 220}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportRenderer y ports.SocialReportRenderer.
type MarotoReportGenerator struct {
	company string
	now     func() time.Time
}

// NewMarotoReportGenerator construye el generador. company aparece en el título.
func NewMarotoReportGenerator(company string, now func() time.Time) *MarotoReportGenerator {
	if now == nil {
		now = time.Now
	}
	return &MarotoReportGenerator{company: company, now: now}
}

// ClientReport: resumen ejecutivo + lista detallada de clientes.
func (g *MarotoReportGenerator) ClientReport(_ context.Context, clients []*entity.Client) ([]byte, error) {
	m := g.newDocument("Relatório de Clientes")

	m.AddRows(sectionRow("Resumo Executivo"))
	latest := "N/A"
	if last := latestClient(clients); last != nil {
		latest = last.CreatedAt.Format("02/01/2006")
	}
	m.AddRows(
		textRow(fmt.Sprintf("Total de clientes cadastrados: %d", len(clients))),
		textRow("Tipos de seguro mais procurados: "+formatTopTypes(topInsuranceTypes(clients, 3))),
		textRow("Data de cadastro mais recente: "+latest),
		row.New(6),
	)

	m.AddRows(sectionRow("Lista Detalhada de Clientes"))
	widths := []int{3, 3, 2, 2, 2}
	m.AddRows(tableHeaderRow(colorPrimary, widths, "Nome", "Email", "Telefone", "Tipo Seguro", "Data Cadastro"))
	for _, c := range clients {
		m.AddRows(tableRow(widths,
			truncate(c.Name, 25),
			truncate(c.Email, 30),
			c.Phone,
			nonEmpty(c.InsuranceType, "-"),
			c.CreatedAt.Format("02/01/2006"),
		))
	}

	return generate(m)
}

// SalesReport: métricas principales, distribución del pipeline y performance mensual opcional.
func (g *MarotoReportGenerator) SalesReport(_ context.Context, cards []*entity.Card, monthly []dto.MonthlySalesDTO) ([]byte, error) {
	m := g.newDocument("Relatório de Vendas")

	counts := pipeline.CountByStage(cards)
	total := len(cards)

	m.AddRows(sectionRow("Métricas Principais"))
	m.AddRows(
		textRow(fmt.Sprintf("Total de operações no pipeline: %d", total)),
		textRow(fmt.Sprintf("Vendas concluídas: %d", counts[entity.StageClosed])),
		textRow(fmt.Sprintf("Taxa de conversão: %s%%", pipeline.Percentage(counts[entity.StageClosed], total, 1).StringFixed(1))),
		textRow(fmt.Sprintf("Operações em andamento: %d", counts[entity.StageInProgress])),
		row.New(6),
	)

	m.AddRows(sectionRow("Distribuição do Pipeline"))
	widths := []int{6, 3, 3}
	m.AddRows(tableHeaderRow(colorSuccess, widths, "Etapa", "Quantidade", "Percentual"))
	for _, st := range entity.Stages() {
		m.AddRows(tableRow(widths,
			st.Label(),
			strconv.Itoa(counts[st]),
			pipeline.Percentage(counts[st], total, 1).StringFixed(1)+"%",
		))
	}

	if len(monthly) > 0 {
		m.AddRows(row.New(6), sectionRow("Performance Mensal"))
		mw := []int{3, 2, 4, 3}
		m.AddRows(tableHeaderRow(colorInfo, mw, "Mês", "Vendas", "Receita", "Ticket Médio"))
		for _, ms := range monthly {
			m.AddRows(tableRow(mw,
				ms.Month,
				strconv.Itoa(ms.Sales),
				formatBRL(ms.Revenue),
				formatBRL(pipeline.AverageTicket(ms.Revenue, ms.Sales)),
			))
		}
	}

	return generate(m)
}

// SocialReport: una sección por plataforma con datos; WhatsApp siempre aparece.
func (g *MarotoReportGenerator) SocialReport(_ context.Context, insights *dto.SocialInsightsDTO) ([]byte, error) {
	m := g.newDocument("Relatório de Redes Sociais")

	if insights != nil && len(insights.Instagram) > 0 {
		m.AddRows(sectionRow("Instagram Business"))
		m.AddRows(textRow("Métricas do Instagram incluindo alcance, impressões e engajamento."))
		for _, metric := range metricLines(insights.Instagram) {
			m.AddRows(bulletRow(metric))
		}
		m.AddRows(row.New(4))
	}

	if insights != nil && len(insights.Facebook) > 0 {
		m.AddRows(sectionRow("Facebook Pages"))
		m.AddRows(textRow("Estatísticas das páginas do Facebook conectadas."))
		for _, page := range insights.Facebook {
			m.AddRows(textRow(nonEmpty(page.PageName, page.PageID)))
			for _, metric := range metricLines(page.Insights) {
				m.AddRows(bulletRow(metric))
			}
		}
		m.AddRows(row.New(4))
	}

	m.AddRows(sectionRow("WhatsApp Business"))
	m.AddRows(textRow("Status da integração com WhatsApp Business API."))

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) newDocument(title string) core.Maroto {
	fullTitle := title
	if g.company != "" {
		fullTitle += " - " + g.company
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fullTitle, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(
		row.New(12).Add(col.New(12).Add(text.New(fullTitle, props.Text{
			Style: fontstyle.Bold, Size: 15, Align: align.Center, Color: colorPrimary, Top: 2,
		}))),
		row.New(8).Add(col.New(12).Add(text.New("Gerado em: "+g.now().Format("02/01/2006")+" às "+g.now().Format("15:04"), props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 1,
		}))),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
		row.New(4),
	)
	return m
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 2,
	})))
}

func textRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{Size: 9, Top: 1})))
}

func bulletRow(s string) core.Row {
	return row.New(5).Add(col.New(12).Add(text.New("• "+s, props.Text{Size: 8, Top: 0.5, Left: 4, Color: colorGray})))
}

// tableHeaderRow: cabecera de tabla con fondo de color y texto blanco.
func tableHeaderRow(bg *props.Color, widths []int, labels ...string) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, col.New(widths[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: bg})
}

func tableRow(widths []int, values ...string) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(widths[i]).Add(text.New(v, props.Text{
			Size: 8, Align: align.Center, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorBeige})
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

type typeCount struct {
	Type  string
	Count int
}

// topInsuranceTypes los n tipos de seguro más frecuentes; empate → alfabético.
func topInsuranceTypes(clients []*entity.Client, n int) []typeCount {
	counts := make(map[string]int)
	for _, c := range clients {
		if c.InsuranceType != "" {
			counts[c.InsuranceType]++
		}
	}
	out := make([]typeCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, typeCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func formatTopTypes(types []typeCount) string {
	if len(types) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", t.Type, t.Count))
	}
	return strings.Join(parts, ", ")
}

func latestClient(clients []*entity.Client) *entity.Client {
	var last *entity.Client
	for _, c := range clients {
		if last == nil || c.CreatedAt.After(last.CreatedAt) {
			last = c
		}
	}
	return last
}

// metricLines aplana la respuesta de insights de la Graph API
// ({"data":[{"name":..,"values":[{"value":..}]}]}) en "nombre: valor".
func metricLines(raw map[string]any) []string {
	data, _ := raw["data"].([]any)
	lines := make([]string, 0, len(data))
	for _, item := range data {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		if name == "" {
			continue
		}
		value := "-"
		if values, ok := entry["values"].([]any); ok && len(values) > 0 {
			if last, ok := values[len(values)-1].(map[string]any); ok {
				value = fmt.Sprint(last["value"])
			}
		}
		lines = append(lines, name+": "+value)
	}
	return lines
}

// truncate corta a n runas y agrega "..." si hubo corte.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatBRL formatea un monto como "R$ 1.234,56".
func formatBRL(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "R$ " + sign + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
