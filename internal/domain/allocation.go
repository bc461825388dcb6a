package domain

import "github.com/shopspring/decimal"

type AllocationMethod string

const (
	AllocationManual AllocationMethod = "MANUAL"
	AllocationHC     AllocationMethod = "HC"
	AllocationArea   AllocationMethod = "AREA"
	AllocationPA     AllocationMethod = "PA"
)

// AllocationGroup (rateio_grupo) define como os custos de um centro POOL são
// redistribuídos. Para MANUAL os pesos vêm gravados e devem somar 100;
// para HC/AREA/PA são derivados no momento da aplicação.
type AllocationGroup struct {
	ID                 string                  `json:"id"`
	ScenarioID         string                  `json:"scenario_id"`
	SourceCostCenterID string                  `json:"source_cost_center_id"`
	Method             AllocationMethod        `json:"method"`
	Destinations       []AllocationDestination `json:"destinations"`
}

type AllocationDestination struct {
	CostCenterID string          `json:"cost_center_id"`
	Weight       decimal.Decimal `json:"weight"`
}

// AllocationResult resume a aplicação de rateio sobre um cenário.
type AllocationResult struct {
	GroupsApplied         int      `json:"groups_applied"`
	SourceZeroed          int      `json:"source_zeroed"`
	DestinationsIncreased int      `json:"destinations_increased"`
	ResidualCents         int64    `json:"residual_cents"`
	Warnings              []string `json:"warnings,omitempty"`
}
