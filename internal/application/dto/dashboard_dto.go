package dto

import "github.com/shopspring/decimal"

// StageCount cantidad de tarjetas de una etapa.
type StageCount struct {
	Stage string `json:"stage"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	TotalClients   int             `json:"total_clients"`
	TotalCards     int             `json:"total_cards"`
	UnreadMessages int             `json:"unread_messages"`
	PipelineStats  []StageCount    `json:"pipeline_stats"`
	ConversionRate decimal.Decimal `json:"conversion_rate"` // porcentaje, dos decimales
	RecentCards    []CardResponse  `json:"recent_cards"`
}

// MonthlySalesDTO ventas cerradas de un mes.
type MonthlySalesDTO struct {
	Month         string          `json:"month"` // ej: "Março 2026"
	Sales         int             `json:"sales"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// PipelineFunnelDTO embudo de conversión usado en la página de reportes.
type PipelineFunnelDTO struct {
	Leads      int `json:"leads"`
	Proposals  int `json:"proposals"`
	InProgress int `json:"in_progress"`
	Closed     int `json:"closed"`
}

// ReportsSummaryDTO respuesta de GET /api/reports.
type ReportsSummaryDTO struct {
	TotalClients       int               `json:"total_clients"`
	TotalSales         int               `json:"total_sales"`
	PipelineConversion PipelineFunnelDTO `json:"pipeline_conversion"`
	MonthlyPerformance []MonthlySalesDTO `json:"monthly_performance"`
}

// ReportFile reporte exportado: ruta escrita y contenido para la descarga.
type ReportFile struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}
