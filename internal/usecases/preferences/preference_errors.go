package preferences

import "errors"

var (
	ErrMissingOwner = errors.New("usuário não autenticado")
	ErrInvalidView  = errors.New("nome de visão inválido")
	ErrInvalidTab   = errors.New("aba inválida")
)
