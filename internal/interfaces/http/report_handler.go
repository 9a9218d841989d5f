package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/report"
)

// ReportHandler descarga de reportes exportados.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ExportClients GET /api/reports/clients/export?type=excel|pdf
func (h *ReportHandler) ExportClients(c *fiber.Ctx) error {
	out, err := h.uc.ExportClients(c.Context(), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return sendReport(c, out)
}

// ExportSales GET /api/reports/sales/export?type=excel|pdf
func (h *ReportHandler) ExportSales(c *fiber.Ctx) error {
	out, err := h.uc.ExportSales(c.Context(), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return sendReport(c, out)
}

// ExportSocial GET /api/reports/social/export (siempre PDF)
func (h *ReportHandler) ExportSocial(c *fiber.Ctx) error {
	out, err := h.uc.ExportSocial(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendReport(c, out)
}

func sendReport(c *fiber.Ctx, f *dto.ReportFile) error {
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Content)
}
