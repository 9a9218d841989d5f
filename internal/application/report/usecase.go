// Package report exporta los reportes de clientes, ventas y redes sociales a archivos.
package report

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/metrics"
)

// Format formato de salida pedido por el usuario (?type=).
type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// Kind tipo de reporte; forma parte del nombre del archivo.
type Kind string

const (
	KindClients Kind = "clientes"
	KindSales   Kind = "vendas"
	KindSocial  Kind = "redes_sociais"
)

var formatMeta = map[Format]struct {
	ext         string
	contentType string
}{
	FormatExcel: {ext: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	FormatPDF:   {ext: "pdf", contentType: "application/pdf"},
}

// ParseFormat valida el tipo pedido; cualquier otro valor → ErrInvalidReportType.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if _, ok := formatMeta[f]; !ok {
		return "", fmt.Errorf("%w: %q (use excel ou pdf)", domain.ErrInvalidReportType, s)
	}
	return f, nil
}

// InsightsProvider fuente de métricas de redes sociales para el reporte social.
type InsightsProvider interface {
	Insights(ctx context.Context) (*dto.SocialInsightsDTO, error)
}

// UseCase genera reportes y los escribe en dir como relatorio_<kind>_<YYYYMMDD_HHMMSS>.<ext>.
// Los archivos nunca se borran.
type UseCase struct {
	clients  repository.ClientRepository
	cards    repository.CardRepository
	excel    ports.ReportRenderer
	pdf      ports.ReportRenderer
	social   ports.SocialReportRenderer
	insights InsightsProvider
	fs       afero.Fs
	dir      string
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

// Deps dependencias del caso de uso.
type Deps struct {
	Clients  repository.ClientRepository
	Cards    repository.CardRepository
	Excel    ports.ReportRenderer
	PDF      ports.ReportRenderer
	Social   ports.SocialReportRenderer
	Insights InsightsProvider
	FS       afero.Fs // nil = sistema de archivos del SO
	Dir      string
	Location *time.Location
	Now      func() time.Time
	Log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		clients:  d.Clients,
		cards:    d.Cards,
		excel:    d.Excel,
		pdf:      d.PDF,
		social:   d.Social,
		insights: d.Insights,
		fs:       d.FS,
		dir:      d.Dir,
		loc:      d.Location,
		now:      d.Now,
		log:      d.Log,
	}
	if uc.fs == nil {
		uc.fs = afero.NewOsFs()
	}
	if uc.dir == "" {
		uc.dir = "reports"
	}
	if uc.loc == nil {
		uc.loc = time.Local
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// ExportClients exporta todos los clientes en el formato pedido.
func (uc *UseCase) ExportClients(ctx context.Context, format string) (*dto.ReportFile, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	clients, err := uc.clients.List()
	if err != nil {
		return nil, fmt.Errorf("reporte clientes: %w", err)
	}
	data, err := uc.renderer(f).ClientReport(ctx, clients)
	if err != nil {
		return nil, uc.renderFailed(KindClients, f, err)
	}
	return uc.write(KindClients, f, data)
}

// ExportSales exporta el pipeline completo con la serie mensual de ventas cerradas.
func (uc *UseCase) ExportSales(ctx context.Context, format string) (*dto.ReportFile, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	cards, err := uc.cards.List()
	if err != nil {
		return nil, fmt.Errorf("reporte vendas: %w", err)
	}
	data, err := uc.renderer(f).SalesReport(ctx, cards, pipeline.MonthlySales(cards, uc.loc))
	if err != nil {
		return nil, uc.renderFailed(KindSales, f, err)
	}
	return uc.write(KindSales, f, data)
}

// ExportSocial exporta las métricas de redes sociales (solo PDF).
func (uc *UseCase) ExportSocial(ctx context.Context) (*dto.ReportFile, error) {
	if uc.insights == nil {
		return nil, domain.ErrGatewayNotConfigured
	}
	insights, err := uc.insights.Insights(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte redes sociais: %w", err)
	}
	data, err := uc.social.SocialReport(ctx, insights)
	if err != nil {
		return nil, uc.renderFailed(KindSocial, FormatPDF, err)
	}
	return uc.write(KindSocial, FormatPDF, data)
}

func (uc *UseCase) renderer(f Format) ports.ReportRenderer {
	if f == FormatExcel {
		return uc.excel
	}
	return uc.pdf
}

func (uc *UseCase) renderFailed(kind Kind, f Format, err error) error {
	uc.log.Error().Err(err).Str("kind", string(kind)).Str("format", string(f)).Msg("falla al generar reporte")
	return fmt.Errorf("reporte %s: generar %s: %w", kind, f, err)
}

// FileName nombre del archivo para kind/formato en el instante t.
func FileName(kind Kind, f Format, t time.Time) string {
	return fmt.Sprintf("relatorio_%s_%s.%s", kind, t.Format("20060102_150405"), formatMeta[f].ext)
}

func (uc *UseCase) write(kind Kind, f Format, data []byte) (*dto.ReportFile, error) {
	name := FileName(kind, f, uc.now().In(uc.loc))
	p := filepath.Join(uc.dir, name)
	if err := uc.fs.MkdirAll(uc.dir, 0o755); err != nil {
		return nil, fmt.Errorf("reporte %s: crear directorio: %w", kind, err)
	}
	if err := afero.WriteFile(uc.fs, p, data, 0o644); err != nil {
		return nil, fmt.Errorf("reporte %s: escribir archivo: %w", kind, err)
	}
	metrics.ReportsGeneratedTotal.WithLabelValues(string(kind), string(f)).Inc()
	uc.log.Info().Str("kind", string(kind)).Str("format", string(f)).Str("path", p).Int("bytes", len(data)).Msg("reporte generado")
	return &dto.ReportFile{
		Path:        p,
		Name:        name,
		ContentType: formatMeta[f].contentType,
		Content:     data,
	}, nil
}
