package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonthKey indica um month-key fora do formato YYYY-MM
var ErrInvalidMonthKey = errors.New("month-key inválido, esperado YYYY-MM")

// MonthKey identifica um mês no formato YYYY-MM
type MonthKey string

const monthKeyLayout = "2006-01"

func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, int(month)))
}

func MonthKeyOf(t time.Time) MonthKey {
	return NewMonthKey(t.Year(), t.Month())
}

func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthKey, s)
	}
	return MonthKeyOf(t), nil
}

func (k MonthKey) String() string {
	return string(k)
}

// Range retorna o primeiro e o último dia do mês
func (k MonthKey) Range() (time.Time, time.Time, error) {
	t, err := time.Parse(monthKeyLayout, string(k))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonthKey, string(k))
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// Year retorna o ano do month-key, ou 0 se inválido
func (k MonthKey) Year() int {
	t, err := time.Parse(monthKeyLayout, string(k))
	if err != nil {
		return 0
	}
	return t.Year()
}

var ptBRMonths = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// ShortMonthName retorna a abreviação pt-BR do mês (jan, fev, ...)
func ShortMonthName(m time.Month) string {
	return ptBRMonths[m-1]
}
