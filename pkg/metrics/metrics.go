// Package metrics define y registra las métricas Prometheus del CRM.
// Las métricas se registran en el registry por defecto al importar el paquete.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// PipelineMovesTotal movimientos de tarjetas, por etapa destino.
var PipelineMovesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_moves_total",
		Help:      "Total de tarjetas movidas en el kanban, por etapa destino.",
	},
	[]string{"stage"},
)

// ReportsGeneratedTotal reportes exportados.
// Labels:
//   - kind: clientes, vendas, redes_sociais
//   - format: excel, pdf
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total de reportes generados, por tipo y formato.",
	},
	[]string{"kind", "format"},
)

// GatewayRequestsTotal llamadas a la Graph API.
// Label result: "ok", "error" o "not_configured".
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total de llamadas al gateway social, por operación y resultado.",
	},
	[]string{"operation", "result"},
)
