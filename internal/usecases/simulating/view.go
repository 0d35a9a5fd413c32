package simulating

import "github.com/grupold/bi-marmoraria-api/internal/domain"

// MonthView é o que a tela do simulador recebe: os dois cenários lado a lado
type MonthView struct {
	MonthKey   domain.MonthKey                `json:"month_key"`
	Real       domain.DRE                     `json:"real"`
	Simulated  domain.DRE                     `json:"simulated"`
	ProfitDiff float64                        `json:"profit_diff"`
	Global     *domain.GlobalFinancialConfig  `json:"global,omitempty"`
	Record     *domain.MonthlyFinancialRecord `json:"record"`
	SaveStatus SaveStatus                     `json:"save_status"`
}

func buildView(month domain.MonthKey, d *Draft, status SaveStatus) MonthView {
	realDRE := domain.ComputeDRE(d.Real())
	simDRE := domain.ComputeDRE(d.Simulated())

	return MonthView{
		MonthKey:   month,
		Real:       realDRE,
		Simulated:  simDRE,
		ProfitDiff: simDRE.NetProfit - realDRE.NetProfit,
		Global:     d.sources.Global,
		Record:     d.Snapshot(),
		SaveStatus: status,
	}
}
