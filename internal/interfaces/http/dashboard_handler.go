package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
)

// DashboardHandler maneja los indicadores del dashboard y el resumen de reportes.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get devuelve totales, conteo por etapa, tasa de conversión y las 5 tarjetas más recientes.
// GET /api/dashboard
//
// Se calcula sobre el estado actual en cada request; nada se cachea.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportsSummary GET /api/reports
func (h *DashboardHandler) ReportsSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetReportsSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
