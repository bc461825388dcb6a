package domain

import "github.com/shopspring/decimal"

// CostRow é uma linha do razão de custos (custos_calculados), identificada
// pela chave composta (cenário, seção, centro de custo, rubrica, ano, mês).
type CostRow struct {
	ID                string          `json:"id"`
	ScenarioID        string          `json:"scenario_id"`
	ScenarioSectionID string          `json:"scenario_section_id"`
	CostCenterID      string          `json:"cost_center_id"`
	RubricCode        string          `json:"rubric_code"`
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	QuantityBase      decimal.Decimal `json:"quantity_base"`
	UnitValue         decimal.Decimal `json:"unit_value"`
	Amount            decimal.Decimal `json:"amount"`
	Regime            Regime          `json:"regime"`

	// Parameters carrega metadados do cálculo (fator de hora extra, teto de
	// VT, grupo de rateio de origem). O motor não ramifica sobre o conteúdo.
	Parameters map[string]any `json:"parameters,omitempty"`
}

func (r *CostRow) MonthKey() MonthKey {
	return MonthKey{Year: r.Year, Month: r.Month}
}

// ComputeResult resume um recálculo de custos de cenário.
type ComputeResult struct {
	RowsWritten int             `json:"rows_written"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Warnings    []string        `json:"warnings,omitempty"`
}

// RevenueEntry é a receita mensal prevista por seção do cenário, base das
// rubricas PERCENT_OF_REVENUE (PLR, prêmios).
type RevenueEntry struct {
	ID                string          `json:"id"`
	ScenarioID        string          `json:"scenario_id"`
	ScenarioSectionID string          `json:"scenario_section_id"`
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	Amount            decimal.Decimal `json:"amount"`
}
