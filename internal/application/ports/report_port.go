package ports

import (
	"context"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ReportRenderer genera documentos a partir de datos ya agregados.
// Es una función pura de la entrada: no guarda estado entre llamadas.
type ReportRenderer interface {
	ClientReport(ctx context.Context, clients []*entity.Client) ([]byte, error)
	SalesReport(ctx context.Context, cards []*entity.Card, monthly []dto.MonthlySalesDTO) ([]byte, error)
}

// SocialReportRenderer renderiza el reporte de redes sociales (solo PDF).
type SocialReportRenderer interface {
	SocialReport(ctx context.Context, insights *dto.SocialInsightsDTO) ([]byte, error)
}
