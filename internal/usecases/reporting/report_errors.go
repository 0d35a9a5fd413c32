package reporting

import "errors"

var (
	ErrInvalidYear     = errors.New("ano inválido")
	ErrInvalidScenario = errors.New("modo inválido, use REAL ou SIM")
	ErrMissingOwner    = errors.New("usuário não autenticado")
	ErrExportFailed    = errors.New("erro ao gerar a planilha do DRE anual")
)

// ReportError associa o erro ao código da API
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(baseErr error, code string, details string) *ReportError {
	return &ReportError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
