package spanning

import (
	"errors"
	"fmt"
)

// Erros específicos da resolução de spans
var (
	ErrScenarioNotFound = errors.New("cenário não encontrado")
	ErrEntryNotFound    = errors.New("linha de quadro de pessoal não encontrada")
	ErrNotSpanEntry     = errors.New("linha de quadro de pessoal não é calculada por span")
	ErrSpanCycle        = errors.New("ciclo de dependência entre spans")
	ErrScenarioLocked   = errors.New("cenário em cálculo por outra operação")
)

// SpanError carrega o contexto da entrada que disparou a falha.
type SpanError struct {
	Err         error
	HeadcountID string
	FunctionID  string
}

func (e *SpanError) Error() string {
	if e.HeadcountID != "" {
		return fmt.Sprintf("%s (quadro %s, função %s)", e.Err.Error(), e.HeadcountID, e.FunctionID)
	}
	return e.Err.Error()
}

func (e *SpanError) Unwrap() error {
	return e.Err
}
