package domain

// Scenario diferencia o DRE real do simulado
type Scenario string

const (
	ScenarioReal      Scenario = "REAL"
	ScenarioSimulated Scenario = "SIM"
)

func (s Scenario) Valid() bool {
	return s == ScenarioReal || s == ScenarioSimulated
}

// DREInputs são as oito entradas do DRE. Taxas em percentual (6 = 6%).
type DREInputs struct {
	Revenue         float64 `json:"revenue"`
	CostChapa       float64 `json:"cost_chapa"`
	CostFreight     float64 `json:"cost_freight"`
	TaxRate         float64 `json:"tax_rate"`
	DelinquencyRate float64 `json:"default_rate"`
	CommissionRate  float64 `json:"commission_rate"`
	VariableCost    float64 `json:"variable_cost"`
	FixedCost       float64 `json:"fixed_cost"`
}

type DRE struct {
	DREInputs
	TaxAmount          float64 `json:"tax_amount"`
	DelinquencyAmount  float64 `json:"delinquency_amount"`
	NetRevenue         float64 `json:"net_revenue"`
	CommissionAmount   float64 `json:"commission_amount"`
	GrossProfit        float64 `json:"gross_profit"`
	ContributionMargin float64 `json:"contribution_margin"`
	MarginPct          float64 `json:"margin_pct"`
	NetProfit          float64 `json:"net_profit"`
	ProfitPct          float64 `json:"profit_pct"`
}

// ComputeDRE calcula as linhas derivadas do demonstrativo
func ComputeDRE(in DREInputs) DRE {
	rev := in.Revenue

	out := DRE{DREInputs: in}
	out.TaxAmount = RateAmount(rev, in.TaxRate)
	out.DelinquencyAmount = RateAmount(rev, in.DelinquencyRate)
	out.NetRevenue = rev - out.TaxAmount - out.DelinquencyAmount
	out.CommissionAmount = RateAmount(rev, in.CommissionRate)
	out.GrossProfit = out.NetRevenue - in.CostChapa - in.CostFreight
	out.ContributionMargin = out.GrossProfit - out.CommissionAmount - in.VariableCost
	out.NetProfit = out.ContributionMargin - in.FixedCost
	out.MarginPct = Percentage(out.ContributionMargin, rev)
	out.ProfitPct = Percentage(out.NetProfit, rev)

	return out
}

// RateAmount converte percentual em valor sobre a receita
func RateAmount(revenue, pct float64) float64 {
	return revenue * pct / 100
}

// Percentage retorna value / base * 100, ou 0 quando a base é zero
func Percentage(value, base float64) float64 {
	if base == 0 {
		return 0
	}
	return value / base * 100
}
