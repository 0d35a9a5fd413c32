package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_SalesFilter(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		state     FilterState
		wantErr   bool
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{
			name:      "mês de 31 dias",
			state:     FilterState{Mode: FilterModeMonth, Month: "2024-01"},
			wantStart: ptrTime(day(2024, 1, 1)),
			wantEnd:   ptrTime(day(2024, 1, 31)),
		},
		{
			name:      "fevereiro bissexto",
			state:     FilterState{Mode: FilterModeMonth, Month: "2024-02"},
			wantStart: ptrTime(day(2024, 2, 1)),
			wantEnd:   ptrTime(day(2024, 2, 29)),
		},
		{
			name:    "mês inválido",
			state:   FilterState{Mode: FilterModeMonth, Month: "2024-2"},
			wantErr: true,
		},
		{
			name:      "intervalo completo",
			state:     FilterState{Mode: FilterModeRange, StartDate: "2024-01-15", EndDate: "2024-02-10"},
			wantStart: ptrTime(day(2024, 1, 15)),
			wantEnd:   ptrTime(day(2024, 2, 10)),
		},
		{
			name:      "intervalo só com início",
			state:     FilterState{Mode: FilterModeRange, StartDate: "2024-01-15"},
			wantStart: ptrTime(day(2024, 1, 15)),
		},
		{
			name:      "mesmo dia no início e no fim",
			state:     FilterState{Mode: FilterModeRange, StartDate: "2024-01-15", EndDate: "2024-01-15"},
			wantStart: ptrTime(day(2024, 1, 15)),
			wantEnd:   ptrTime(day(2024, 1, 15)),
		},
		{
			name:    "fim antes do início",
			state:   FilterState{Mode: FilterModeRange, StartDate: "2024-02-01", EndDate: "2024-01-31"},
			wantErr: true,
		},
		{
			name:    "data mal formatada",
			state:   FilterState{Mode: FilterModeRange, EndDate: "31/01/2024"},
			wantErr: true,
		},
		{
			name:    "modo desconhecido",
			state:   FilterState{Mode: "semana"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := tt.state.SalesFilter()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, filter.StartDate)
			assert.Equal(t, tt.wantEnd, filter.EndDate)
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
