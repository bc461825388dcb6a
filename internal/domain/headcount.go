package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Regime string

const (
	RegimeCLT Regime = "CLT"
	RegimePJ  Regime = "PJ"
)

type CalcKind string

const (
	CalcManual CalcKind = "MANUAL"
	CalcSpan   CalcKind = "SPAN"
	CalcRateio CalcKind = "RATEIO"
)

// HeadcountEntry é uma linha do quadro de pessoal: quantidade mensal de
// pessoas por (seção, função, regime) dentro de um cenário.
//
// O modelo de cálculo trabalha sempre sobre Months (MonthKey -> quantidade);
// as 12 colunas inline de quadro_pessoal são um detalhe de armazenamento que
// espelha o primeiro ano do cenário.
type HeadcountEntry struct {
	ID                string           `json:"id"`
	ScenarioID        string           `json:"scenario_id"`
	ScenarioSectionID *string          `json:"scenario_section_id,omitempty"`
	FunctionID        string           `json:"function_id"`
	Regime            Regime           `json:"regime"`
	SalaryTableID     *string          `json:"salary_table_id,omitempty"`
	SalaryOverride    *decimal.Decimal `json:"salary_override,omitempty"`
	CalcKind          CalcKind         `json:"calc_kind"`

	// Preenchidos apenas quando CalcKind = SPAN.
	SpanBaseFunctionIDs []string         `json:"span_base_function_ids,omitempty"`
	SpanRatio           *decimal.Decimal `json:"span_ratio,omitempty"`

	// Preenchidos apenas quando CalcKind = RATEIO.
	RateioGroupID *string          `json:"rateio_group_id,omitempty"`
	RateioPercent *decimal.Decimal `json:"rateio_percent,omitempty"`

	Months map[MonthKey]decimal.Decimal `json:"months"`
	Active bool                         `json:"active"`
}

// Quantity devolve a quantidade do mês, zero quando ausente.
func (h *HeadcountEntry) Quantity(mk MonthKey) decimal.Decimal {
	if h.Months == nil {
		return decimal.Zero
	}
	return h.Months[mk]
}

// IsSpan indica se a linha tem quantidade derivada por span de supervisão.
func (h *HeadcountEntry) IsSpan() bool {
	return h.CalcKind == CalcSpan
}

// HeadcountMonth é a linha persistida em quadro_pessoal_mes, fonte
// autoritativa de quantidade em horizontes multi-ano.
type HeadcountMonth struct {
	HeadcountID string          `json:"headcount_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CanonicalFunctionID normaliza ids de função para comparação. Ids chegam
// como string de sistemas distintos, com caixa e hífens inconsistentes.
func CanonicalFunctionID(id string) string {
	return strings.ToLower(strings.ReplaceAll(id, "-", ""))
}
