package domain

import "github.com/shopspring/decimal"

type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}

type Section struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}

type CostCenterType string

const (
	CostCenterPool        CostCenterType = "POOL"
	CostCenterOperational CostCenterType = "OPERATIONAL"
)

// CostCenter é o portador de custo. Centros POOL acumulam custos
// compartilhados que o rateio redistribui para os OPERATIONAL.
type CostCenter struct {
	ID     string          `json:"id"`
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Type   CostCenterType  `json:"type"`
	AreaM2 decimal.Decimal `json:"area_m2"`
}

type Function struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// SalaryTable define o salário base de uma função por regime.
type SalaryTable struct {
	ID         string           `json:"id"`
	FunctionID string           `json:"function_id"`
	Regime     Regime           `json:"regime"`
	BandID     *string          `json:"band_id,omitempty"`
	PolicyID   *string          `json:"policy_id,omitempty"`
	BaseSalary decimal.Decimal  `json:"base_salary"`
	VTOverride *decimal.Decimal `json:"vt_override,omitempty"`
	VROverride *decimal.Decimal `json:"vr_override,omitempty"`
}

type WorkSchedule string

const (
	Schedule5x2   WorkSchedule = "5x2"
	Schedule6x1   WorkSchedule = "6x1"
	Schedule12x36 WorkSchedule = "12x36"
)

// BenefitPolicy agrega os valores de benefício aplicáveis a um regime/escala.
type BenefitPolicy struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Regime           Regime          `json:"regime"`
	Schedule         WorkSchedule    `json:"schedule"`
	MonthlyHours     int             `json:"monthly_hours"`
	VTPerDay         decimal.Decimal `json:"vt_per_day"`
	VT6PercentCap    bool            `json:"vt_6pct_cap"`
	VRPerDay         decimal.Decimal `json:"vr_per_day"`
	VAPerDay         decimal.Decimal `json:"va_per_day"`
	Health           decimal.Decimal `json:"health"`
	Dental           decimal.Decimal `json:"dental"`
	Life             decimal.Decimal `json:"life"`
	ChildcareValue   decimal.Decimal `json:"childcare_value"`
	ChildcarePercent decimal.Decimal `json:"childcare_percent"`
	HomeOffice       decimal.Decimal `json:"home_office"`
	TrainingDays     int             `json:"training_days"`
}

type ChargeBaseKind string

const (
	ChargeBaseSalary    ChargeBaseKind = "SALARY"
	ChargeBaseTotal     ChargeBaseKind = "TOTAL"
	ChargeBaseProvision ChargeBaseKind = "PROVISION"
)

// Charge é um encargo patronal percentual sobre a folha (ex.: INSS patronal).
// A base varia: salário, salário + benefícios, ou total de provisões.
type Charge struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Regime    Regime          `json:"regime"`
	Code      string          `json:"code"`
	BaseKind  ChargeBaseKind  `json:"base_kind"`
	Rate      decimal.Decimal `json:"rate"`
	Order     int             `json:"order"`
}

// Provision é o provisionamento de obrigações diferidas (férias, 13º).
// Quando IncidesCharges, os encargos sobre salário refletem na provisão.
type Provision struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Rate           decimal.Decimal `json:"rate"`
	IncidesCharges bool            `json:"incides_charges"`
}

type HolidayScope string

const (
	HolidayNational  HolidayScope = "NATIONAL"
	HolidayState     HolidayScope = "STATE"
	HolidayMunicipal HolidayScope = "MUNICIPAL"
)

// Holiday representa um feriado do catálogo. Year nulo indica feriado
// recorrente, projetado em todos os anos cobertos pelo cenário.
type Holiday struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Scope HolidayScope `json:"scope"`
	State string       `json:"state,omitempty"`
	City  string       `json:"city,omitempty"`
	Day   int          `json:"day"`
	Month int          `json:"month"`
	Year  *int         `json:"year,omitempty"`
}

// AppliesTo verifica se o feriado vale para a localidade da seção.
func (h *Holiday) AppliesTo(state, city string) bool {
	switch h.Scope {
	case HolidayNational:
		return true
	case HolidayState:
		return h.State == state
	case HolidayMunicipal:
		return h.State == state && h.City == city
	}
	return false
}

type RubricCategory string

const (
	CategoryRemuneration RubricCategory = "REMUNERATION"
	CategoryBenefit      RubricCategory = "BENEFIT"
	CategoryCharge       RubricCategory = "CHARGE"
	CategoryProvision    RubricCategory = "PROVISION"
	CategoryBonus        RubricCategory = "BONUS"
	CategoryDeduction    RubricCategory = "DEDUCTION"
)

type RubricCalcKind string

const (
	RubricHCxSalary        RubricCalcKind = "HC_X_SALARY"
	RubricHCxValue         RubricCalcKind = "HC_X_VALUE"
	RubricPercentOfRubric  RubricCalcKind = "PERCENT_OF_RUBRIC"
	RubricPercentOfRevenue RubricCalcKind = "PERCENT_OF_REVENUE"
	RubricFormula          RubricCalcKind = "FORMULA"
)

// Rubric é a rubrica do razão de custos (tipo_custo). A ordem de avaliação
// dentro de cada categoria é estável: Order, depois Code.
type Rubric struct {
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Category       RubricCategory   `json:"category"`
	CalcKind       RubricCalcKind   `json:"calc_kind"`
	DefaultRate    *decimal.Decimal `json:"default_rate,omitempty"`
	IncidesFGTS    bool             `json:"incides_fgts"`
	IncidesINSS    bool             `json:"incides_inss"`
	ReflexVacation bool             `json:"reflex_vacation"`
	Reflex13th     bool             `json:"reflex_13th"`
	Order          int              `json:"order"`
}
