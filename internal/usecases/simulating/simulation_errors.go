package simulating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidScenario  = errors.New("cenário inválido, use REAL ou SIM")
	ErrInvalidEditMode  = errors.New("modo de edição inválido, use value ou percent")
	ErrUnknownField     = errors.New("campo do DRE desconhecido")
	ErrFieldNotEditable = errors.New("campo não editável neste cenário")
	ErrMissingOwner     = errors.New("usuário não autenticado")
	ErrInvalidRate      = errors.New("taxa deve estar entre 0 e 100")
)

// SimulationError associa o erro ao código da API e ao mês envolvido
type SimulationError struct {
	Err      error
	Code     string
	MonthKey string
}

func (e *SimulationError) Error() string {
	if e.MonthKey != "" {
		return fmt.Sprintf("%s (%s)", e.Err.Error(), e.MonthKey)
	}
	return e.Err.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Err
}

func NewSimulationError(baseErr error, code string, monthKey string) *SimulationError {
	return &SimulationError{
		Err:      baseErr,
		Code:     code,
		MonthKey: monthKey,
	}
}
