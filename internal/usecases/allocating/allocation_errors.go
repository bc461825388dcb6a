package allocating

import (
	"errors"
	"fmt"
)

var (
	ErrScenarioNotFound = errors.New("cenário não encontrado")
	ErrScenarioLocked   = errors.New("cenário já está sendo processado")
	ErrGroupNotFound    = errors.New("grupo de rateio não encontrado")

	// ErrInvalidManualWeights indica pesos MANUAL que não somam 100 ± 0.01.
	ErrInvalidManualWeights = errors.New("pesos manuais não somam 100")

	// ErrNegativeWeights indica soma de pesos derivados negativa; o grupo é
	// inconsistente e o rateio inteiro é abortado.
	ErrNegativeWeights = errors.New("soma de pesos do rateio é negativa")
)

// AllocationError contextualiza falhas do rateio com o grupo envolvido.
type AllocationError struct {
	Err        error
	ScenarioID string
	GroupID    string
}

func (e *AllocationError) Error() string {
	if e.GroupID != "" {
		return fmt.Sprintf("rateio do cenário %s (grupo %s): %v", e.ScenarioID, e.GroupID, e.Err)
	}
	return fmt.Sprintf("rateio do cenário %s: %v", e.ScenarioID, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}
