package importing

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySpreadsheet   = errors.New("planilha vazia")
	ErrInvalidSpreadsheet = errors.New("arquivo de planilha inválido")
	ErrBatchFailed        = errors.New("falha ao gravar lote de vendas")
	ErrMissingOwner       = errors.New("usuário não autenticado")
)

// ImportError carrega o código da API e quanto da importação já ficou gravado
type ImportError struct {
	Err              error
	Code             string
	BatchesCommitted int
	RowsCommitted    int
	Details          string
}

func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func NewImportError(baseErr error, code string, details string) *ImportError {
	return &ImportError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
