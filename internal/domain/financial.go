package domain

import "time"

// GlobalFinancialConfig guarda as taxas padrão do dono, usadas quando o mês não tem valor próprio
type GlobalFinancialConfig struct {
	OwnerID         int       `json:"owner_id"`
	TaxRate         float64   `json:"tax_rate"`
	DelinquencyRate float64   `json:"default_rate"`
	CommissionRate  float64   `json:"commission_rate"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MonthlyFinancialRecord é a linha persistida de um mês. Todo campo é anulável:
// nil significa "usar o valor de origem" (global, agregado da planilha ou valor real).
type MonthlyFinancialRecord struct {
	OwnerID  int      `json:"owner_id"`
	MonthKey MonthKey `json:"month_key"`

	TaxRate         *float64 `json:"tax_rate"`
	DelinquencyRate *float64 `json:"default_rate"`
	CommissionRate  *float64 `json:"commission_rate"`
	FixedCost       *float64 `json:"fixed_cost"`
	VariableCost    *float64 `json:"variable_cost"`

	SimRevenue         *float64 `json:"sim_revenue"`
	SimCostChapa       *float64 `json:"sim_cost_chapa"`
	SimCostFreight     *float64 `json:"sim_cost_freight"`
	SimTaxRate         *float64 `json:"sim_tax_rate"`
	SimDelinquencyRate *float64 `json:"sim_default_rate"`
	SimCommissionRate  *float64 `json:"sim_commission_rate"`
	SimFixedCost       *float64 `json:"sim_fixed_cost"`
	SimVariableCost    *float64 `json:"sim_variable_cost"`

	UpdatedAt time.Time `json:"updated_at"`
}

// SellerGoal é a meta mensal de faturamento de um vendedor
type SellerGoal struct {
	OwnerID    int     `json:"owner_id"`
	SellerName string  `json:"seller_name"`
	GoalValue  float64 `json:"goal_value"`
}

// Float64Ptr facilita a montagem dos campos anuláveis
func Float64Ptr(v float64) *float64 {
	return &v
}
