// Package excel genera los reportes de planilla (.xlsx) con excelize.
package excel

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

var _ ports.ReportRenderer = (*ExcelizeReportGenerator)(nil)

const (
	SheetClients      = "Clientes"
	SheetSalesSummary = "Resumo Vendas"
	SheetSalesDetails = "Detalhes Operações"
	SheetCharts       = "Gráficos"

	headerColor  = "0D6EFD"
	maxColWidth  = 50
	dateTimeFmt  = "02/01/2006 15:04"
	defaultSheet = "Sheet1"
)

// ClientHeaders columnas de la planilla de clientes.
var ClientHeaders = []any{"ID", "Nome", "Email", "Telefone", "CPF/CNPJ", "Tipo de Seguro", "Endereço", "Data Cadastro", "Status"}

var detailHeaders = []any{"ID", "Título", "Descrição", "Cliente ID", "Responsável", "Coluna", "Prioridade", "Valor", "Criado em", "Atualizado em"}

// ExcelizeReportGenerator implementa ports.ReportRenderer. Sin estado.
type ExcelizeReportGenerator struct{}

// NewExcelizeReportGenerator construye el generador.
func NewExcelizeReportGenerator() *ExcelizeReportGenerator { return &ExcelizeReportGenerator{} }

// ClientReport una hoja con todos los clientes.
func (g *ExcelizeReportGenerator) ClientReport(_ context.Context, clients []*entity.Client) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetClients); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	rows := make([][]any, 0, len(clients)+1)
	rows = append(rows, ClientHeaders)
	for _, c := range clients {
		rows = append(rows, []any{
			c.ID,
			c.Name,
			c.Email,
			c.Phone,
			c.TaxID,
			c.InsuranceType,
			c.Address,
			c.CreatedAt.Format(dateTimeFmt),
			string(c.Status),
		})
	}
	if err := writeStyledSheet(f, SheetClients, rows); err != nil {
		return nil, err
	}
	return toBytes(f)
}

// SalesReport resumen + detalle de operaciones + hoja de gráficos con el pipeline.
func (g *ExcelizeReportGenerator) SalesReport(_ context.Context, cards []*entity.Card, _ []dto.MonthlySalesDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	counts := pipeline.CountByStage(cards)
	total := len(cards)

	// Resumen
	if err := f.SetSheetName(defaultSheet, SheetSalesSummary); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	summary := [][]any{{"Métrica", "Valor"}, {"Total de Operações", total}}
	for _, st := range entity.Stages() {
		summary = append(summary, []any{st.Label(), counts[st]})
	}
	summary = append(summary, []any{"Taxa de Conversão (%)", pipeline.ConversionRate(cards).InexactFloat64()})
	if err := writeStyledSheet(f, SheetSalesSummary, summary); err != nil {
		return nil, err
	}

	// Detalle
	if _, err := f.NewSheet(SheetSalesDetails); err != nil {
		return nil, fmt.Errorf("excel: crear hoja %s: %w", SheetSalesDetails, err)
	}
	details := make([][]any, 0, len(cards)+1)
	details = append(details, detailHeaders)
	for _, c := range cards {
		details = append(details, []any{
			c.ID,
			c.Title,
			c.Description,
			optionalID(c.ClientID),
			optionalID(c.AssignedTo),
			c.Stage.Label(),
			string(c.Priority),
			c.Value.InexactFloat64(),
			c.CreatedAt.Format(dateTimeFmt),
			c.UpdatedAt.Format(dateTimeFmt),
		})
	}
	if err := writeStyledSheet(f, SheetSalesDetails, details); err != nil {
		return nil, err
	}

	// Gráficos
	if err := addPipelineChart(f, counts); err != nil {
		return nil, err
	}
	return toBytes(f)
}

// addPipelineChart escribe la tabla Etapa/Quantidade y un gráfico de barras sobre ella.
func addPipelineChart(f *excelize.File, counts map[entity.Stage]int) error {
	if _, err := f.NewSheet(SheetCharts); err != nil {
		return fmt.Errorf("excel: crear hoja %s: %w", SheetCharts, err)
	}
	data := [][]any{{"Etapa", "Quantidade"}}
	for _, st := range entity.Stages() {
		data = append(data, []any{st.Label(), counts[st]})
	}
	if err := writeStyledSheet(f, SheetCharts, data); err != nil {
		return err
	}

	last := len(data)
	ref := func(col string) string { return fmt.Sprintf("'%s'!$%s$2:$%s$%d", SheetCharts, col, col, last) }
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", SheetCharts),
			Categories: ref("A"),
			Values:     ref("B"),
		}},
		Title: []excelize.RichTextRun{{Text: "Pipeline de Vendas"}},
	}
	if err := f.AddChart(SheetCharts, "D2", chart); err != nil {
		return fmt.Errorf("excel: agregar gráfico: %w", err)
	}
	return nil
}

// writeStyledSheet escribe las filas, aplica estilo a la cabecera, bordes finos
// y ancho de columna min(largo+2, 50).
func writeStyledSheet(f *excelize.File, sheet string, rows [][]any) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := r
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("excel: escribir fila %d de %s: %w", i+1, sheet, err)
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return fmt.Errorf("excel: estilo cuerpo: %w", err)
	}

	ncols := len(rows[0])
	lastCol, err := excelize.ColumnNumberToName(ncols)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if len(rows) > 1 {
		if err := f.SetCellStyle(sheet, "A2", fmt.Sprintf("%s%d", lastCol, len(rows)), bodyStyle); err != nil {
			return err
		}
	}

	for i, w := range ColumnWidths(rows) {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(w)); err != nil {
			return err
		}
	}
	return nil
}

// ColumnWidths ancho por columna: largo del valor más largo + 2, tope 50.
func ColumnWidths(rows [][]any) []int {
	var widths []int
	for _, r := range rows {
		for i, v := range r {
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i]+2, maxColWidth)
	}
	return widths
}

func optionalID(id *int64) any {
	if id == nil {
		return "-"
	}
	return *id
}

func toBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
