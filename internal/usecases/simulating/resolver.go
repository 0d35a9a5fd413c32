package simulating

import (
	"github.com/grupold/bi-marmoraria-api/internal/config"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
)

// Defaults são os valores usados quando nem o mês nem a configuração global têm o campo
type Defaults struct {
	TaxRate                float64
	DelinquencyRate        float64
	CommissionRate         float64
	FixedCost              float64
	VariableCost           float64
	RevenueIncludesFreight bool
}

func DefaultsFromConfig(cfg config.Financial) Defaults {
	return Defaults{
		TaxRate:                cfg.DefaultTaxRate,
		DelinquencyRate:        cfg.DefaultDelinquencyRate,
		CommissionRate:         cfg.DefaultCommissionRate,
		FixedCost:              cfg.DefaultFixedCost,
		VariableCost:           cfg.DefaultVariableCost,
		RevenueIncludesFreight: cfg.RevenueIncludesFreight,
	}
}

// Sources reúne o que alimenta o DRE de um mês. Record e Global podem ser nil.
type Sources struct {
	Aggregate domain.MonthlyAggregate
	Record    *domain.MonthlyFinancialRecord
	Global    *domain.GlobalFinancialConfig
}

// ResolveReal monta as entradas do cenário real: agregado da planilha para
// receita e custos, valor do mês ou global para taxas, valor do mês ou padrão para custos.
func ResolveReal(src Sources, d Defaults) domain.DREInputs {
	revenue := src.Aggregate.Revenue
	if d.RevenueIncludesFreight {
		revenue += src.Aggregate.Freight
	}

	taxRate, delinquencyRate, commissionRate := d.TaxRate, d.DelinquencyRate, d.CommissionRate
	if src.Global != nil {
		taxRate = src.Global.TaxRate
		delinquencyRate = src.Global.DelinquencyRate
		commissionRate = src.Global.CommissionRate
	}

	in := domain.DREInputs{
		Revenue:         revenue,
		CostChapa:       src.Aggregate.Cost,
		CostFreight:     src.Aggregate.Freight,
		TaxRate:         taxRate,
		DelinquencyRate: delinquencyRate,
		CommissionRate:  commissionRate,
		FixedCost:       d.FixedCost,
		VariableCost:    d.VariableCost,
	}

	if rec := src.Record; rec != nil {
		in.TaxRate = valueOr(rec.TaxRate, in.TaxRate)
		in.DelinquencyRate = valueOr(rec.DelinquencyRate, in.DelinquencyRate)
		in.CommissionRate = valueOr(rec.CommissionRate, in.CommissionRate)
		in.FixedCost = valueOr(rec.FixedCost, in.FixedCost)
		in.VariableCost = valueOr(rec.VariableCost, in.VariableCost)
	}

	return in
}

// ResolveSimulated usa o override simulado de cada campo, senão o valor real
func ResolveSimulated(src Sources, d Defaults) domain.DREInputs {
	in := ResolveReal(src, d)

	rec := src.Record
	if rec == nil {
		return in
	}

	return domain.DREInputs{
		Revenue:         valueOr(rec.SimRevenue, in.Revenue),
		CostChapa:       valueOr(rec.SimCostChapa, in.CostChapa),
		CostFreight:     valueOr(rec.SimCostFreight, in.CostFreight),
		TaxRate:         valueOr(rec.SimTaxRate, in.TaxRate),
		DelinquencyRate: valueOr(rec.SimDelinquencyRate, in.DelinquencyRate),
		CommissionRate:  valueOr(rec.SimCommissionRate, in.CommissionRate),
		FixedCost:       valueOr(rec.SimFixedCost, in.FixedCost),
		VariableCost:    valueOr(rec.SimVariableCost, in.VariableCost),
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
