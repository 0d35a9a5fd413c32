package domain

import (
	"errors"
	"time"

	"github.com/grupold/bi-marmoraria-api/pkg/utils"
)

// ErrInvalidFilter indica modo desconhecido ou datas inválidas no filtro
var ErrInvalidFilter = errors.New("filtro de datas inválido")

// FilterMode define se o filtro é por mês fechado ou por intervalo livre
type FilterMode string

const (
	FilterModeMonth FilterMode = "month"
	FilterModeRange FilterMode = "range"
)

// FilterState é o filtro de datas salvo por visão (aba) do painel
type FilterState struct {
	View      string     `json:"view"`
	Mode      FilterMode `json:"mode"`
	Month     MonthKey   `json:"month,omitempty"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Preferences struct {
	ActiveTab string                 `json:"active_tab"`
	Filters   map[string]FilterState `json:"filters"`
}

// SalesFilter converte o filtro salvo em limites de data. No modo mês o
// intervalo vai do primeiro ao último dia; no modo intervalo usa as datas como vieram.
func (f FilterState) SalesFilter() (SalesFilter, error) {
	switch f.Mode {
	case FilterModeMonth:
		first, last, err := f.Month.Range()
		if err != nil {
			return SalesFilter{}, err
		}
		return SalesFilter{StartDate: &first, EndDate: &last}, nil
	case FilterModeRange:
		start, err := utils.ParseDateParam(f.StartDate)
		if err != nil {
			return SalesFilter{}, ErrInvalidFilter
		}
		end, err := utils.ParseDateParam(f.EndDate)
		if err != nil {
			return SalesFilter{}, ErrInvalidFilter
		}
		filter := SalesFilter{StartDate: start, EndDate: end}
		if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
			return SalesFilter{}, ErrInvalidFilter
		}
		return filter, nil
	default:
		return SalesFilter{}, ErrInvalidFilter
	}
}
