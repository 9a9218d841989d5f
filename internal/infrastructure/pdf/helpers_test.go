package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Maria", truncate("Maria", 25))
	assert.Equal(t, "Conceição...", truncate("ConceiçãoAparecida", 9))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", formatBRL(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,00", formatBRL(decimal.Zero))
	assert.Equal(t, "R$ 1.000.000,00", formatBRL(decimal.NewFromInt(1000000)))
}

func TestTopInsuranceTypes_OrdenYLimite(t *testing.T) {
	clients := []*entity.Client{
		{InsuranceType: "Auto"}, {InsuranceType: "Vida"}, {InsuranceType: "Auto"},
		{InsuranceType: "Casa"}, {InsuranceType: "Empresarial"}, {InsuranceType: ""},
	}

	top := topInsuranceTypes(clients, 3)
	assert.Equal(t, []typeCount{{"Auto", 2}, {"Casa", 1}, {"Empresarial", 1}}, top)
	assert.Equal(t, "Auto: 2, Casa: 1, Empresarial: 1", formatTopTypes(top))
	assert.Equal(t, "-", formatTopTypes(nil))
}

func TestMetricLines(t *testing.T) {
	raw := map[string]any{"data": []any{
		map[string]any{"name": "reach", "values": []any{map[string]any{"value": 10}, map[string]any{"value": 12}}},
		map[string]any{"name": "impressions"},
	}}
	assert.Equal(t, []string{"reach: 12", "impressions: -"}, metricLines(raw))
}
