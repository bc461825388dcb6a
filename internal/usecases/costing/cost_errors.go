package costing

import (
	"errors"
	"fmt"
)

// Erros do motor de custos
var (
	ErrScenarioNotFound = errors.New("cenário não encontrado")
	ErrScenarioLocked   = errors.New("cenário em cálculo por outra operação")
)

// ComputeError acrescenta o escopo (cenário/seção) ao erro propagado.
type ComputeError struct {
	Err        error
	ScenarioID string
	SectionID  string
}

func (e *ComputeError) Error() string {
	if e.SectionID != "" {
		return fmt.Sprintf("%s (cenário %s, seção %s)", e.Err.Error(), e.ScenarioID, e.SectionID)
	}
	return fmt.Sprintf("%s (cenário %s)", e.Err.Error(), e.ScenarioID)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}
