package ranking

import "errors"

var (
	ErrMissingOwner      = errors.New("usuário não autenticado")
	ErrInvalidGoal       = errors.New("meta deve ser um valor não negativo")
	ErrMissingSeller     = errors.New("nome do vendedor é obrigatório")
	ErrInvalidDetailKind = errors.New("detalhe deve ser por seller ou client")
)
