package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ScenarioStatus string

const (
	ScenarioDraft    ScenarioStatus = "DRAFT"
	ScenarioActive   ScenarioStatus = "ACTIVE"
	ScenarioArchived ScenarioStatus = "ARCHIVED"
)

// Scenario é um plano orçamentário versionado sobre um intervalo de meses
// para um conjunto de empresas. Enquanto DRAFT pode ser alterado; ao ser
// arquivado fica congelado.
type Scenario struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	StartYear  int            `json:"start_year"`
	StartMonth int            `json:"start_month"`
	EndYear    int            `json:"end_year"`
	EndMonth   int            `json:"end_month"`
	BaseYear   int            `json:"base_year"`
	Status     ScenarioStatus `json:"status"`
	CompanyIDs []string       `json:"company_ids"`
	Sections   []*ScenarioSection `json:"sections,omitempty"`
	Premises   Premises       `json:"premises"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Premises concentra os índices de ineficiência usados pelo planejador de
// overhead. Taxas em percentual (0..100).
type Premises struct {
	AbsenteeismRate decimal.Decimal `json:"absenteeism_rate"`
	TurnoverRate    decimal.Decimal `json:"turnover_rate"`
	VacationIndex   decimal.Decimal `json:"vacation_index"`
}

// Horizon devolve todos os meses de competência do cenário, em ordem.
func (s *Scenario) Horizon() []MonthKey {
	var keys []MonthKey
	mk := MonthKey{Year: s.StartYear, Month: s.StartMonth}
	end := MonthKey{Year: s.EndYear, Month: s.EndMonth}
	for !end.Before(mk) {
		keys = append(keys, mk)
		mk = mk.Next()
	}
	return keys
}

// HorizonForYear restringe o horizonte a um único ano.
func (s *Scenario) HorizonForYear(year int) []MonthKey {
	var keys []MonthKey
	for _, mk := range s.Horizon() {
		if mk.Year == year {
			keys = append(keys, mk)
		}
	}
	return keys
}

// MultiYear indica se o horizonte ultrapassa um ano. Nesse caso a fonte
// autoritativa de quantidades é a tabela quadro_pessoal_mes.
func (s *Scenario) MultiYear() bool {
	return s.EndYear > s.StartYear
}

// WorkdayPolicy define quais tipos de dia a seção trabalha. Flag ligada
// significa que o dia conta como útil.
type WorkdayPolicy struct {
	Saturday           bool `json:"saturday"`
	Sunday             bool `json:"sunday"`
	NationalHolidays   bool `json:"national_holidays"`
	StateHolidays      bool `json:"state_holidays"`
	MunicipalHolidays  bool `json:"municipal_holidays"`
}

// ScenarioSection vincula uma seção do catálogo a um cenário, com o cliente,
// a localidade (para feriados) e o fator de PA usados nos cálculos.
type ScenarioSection struct {
	ID           string          `json:"id"`
	ScenarioID   string          `json:"scenario_id"`
	SectionID    string          `json:"section_id"`
	CostCenterID string          `json:"cost_center_id"`
	CompanyID    string          `json:"company_id"`
	ClientCode   *string         `json:"client_code,omitempty"`
	Workdays     WorkdayPolicy   `json:"workdays"`
	State        string          `json:"state"`
	City         string          `json:"city"`
	PAFactor     decimal.Decimal `json:"pa_factor"`
}
