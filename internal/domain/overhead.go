package domain

import "github.com/shopspring/decimal"

// OverheadMonth é a linha mensal do relatório de ineficiência: quanto quadro
// adicional os índices de absenteísmo, turnover e férias exigem sobre o
// quadro produtivo.
type OverheadMonth struct {
	MonthKey
	Productive decimal.Decimal `json:"productive"`
	Required   decimal.Decimal `json:"required"`
	Overhead   decimal.Decimal `json:"overhead"`
}

type OverheadFactors struct {
	Absenteeism decimal.Decimal `json:"absenteeism"`
	Turnover    decimal.Decimal `json:"turnover"`
	Vacation    decimal.Decimal `json:"vacation"`
	Total       decimal.Decimal `json:"total"`
}

// OverheadReport é somente leitura; não altera o razão de custos.
type OverheadReport struct {
	ScenarioID string          `json:"scenario_id"`
	PerMonth   []OverheadMonth `json:"per_month"`
	Factors    OverheadFactors `json:"factors"`
}
