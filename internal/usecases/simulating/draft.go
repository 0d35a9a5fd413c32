package simulating

import "github.com/grupold/bi-marmoraria-api/internal/domain"

// EditField é a linha do DRE sendo editada
type EditField string

const (
	FieldRevenue      EditField = "revenue"
	FieldCostChapa    EditField = "cost_chapa"
	FieldCostFreight  EditField = "cost_freight"
	FieldTax          EditField = "tax"
	FieldDelinquency  EditField = "delinquency"
	FieldCommission   EditField = "commission"
	FieldVariableCost EditField = "variable_cost"
	FieldFixedCost    EditField = "fixed_cost"
)

// EditMode diz se o número digitado é um valor em reais ou um percentual da receita
type EditMode string

const (
	ModeValue   EditMode = "value"
	ModePercent EditMode = "percent"
)

type Edit struct {
	Scenario domain.Scenario `json:"scenario"`
	Field    EditField       `json:"field"`
	Mode     EditMode        `json:"mode"`
	Value    float64         `json:"value"`
}

func isRateField(f EditField) bool {
	return f == FieldTax || f == FieldDelinquency || f == FieldCommission
}

// Draft é o acumulador mutável de um mês em edição. Toda edição altera o
// registro aqui antes de qualquer gravação, e o save lê sempre deste registro.
type Draft struct {
	record   domain.MonthlyFinancialRecord
	sources  Sources
	defaults Defaults
}

func NewDraft(record domain.MonthlyFinancialRecord, sources Sources, defaults Defaults) *Draft {
	return &Draft{
		record:   cloneRecord(record),
		sources:  sources,
		defaults: defaults,
	}
}

func (d *Draft) currentSources() Sources {
	src := d.sources
	rec := d.record
	src.Record = &rec
	return src
}

func (d *Draft) Real() domain.DREInputs {
	return ResolveReal(d.currentSources(), d.defaults)
}

func (d *Draft) Simulated() domain.DREInputs {
	return ResolveSimulated(d.currentSources(), d.defaults)
}

// Apply aplica uma edição. No cenário real só os custos fixo e variável do mês
// são editáveis; taxas reais vêm da configuração global.
func (d *Draft) Apply(e Edit) error {
	if e.Mode == "" {
		e.Mode = ModeValue
	}
	if e.Mode != ModeValue && e.Mode != ModePercent {
		return ErrInvalidEditMode
	}

	switch e.Scenario {
	case domain.ScenarioReal:
		return d.applyReal(e)
	case domain.ScenarioSimulated:
		return d.applySimulated(e)
	default:
		return ErrInvalidScenario
	}
}

func (d *Draft) applyReal(e Edit) error {
	if e.Mode != ModeValue {
		return ErrFieldNotEditable
	}

	switch e.Field {
	case FieldFixedCost:
		d.SetRealFixed(e.Value)
	case FieldVariableCost:
		d.SetRealVariable(e.Value)
	default:
		return ErrFieldNotEditable
	}
	return nil
}

func (d *Draft) applySimulated(e Edit) error {
	if isRateField(e.Field) {
		if e.Mode == ModePercent {
			d.SetRate(e.Field, e.Value)
		} else {
			d.SetRateAmount(e.Field, e.Value)
		}
		return nil
	}

	switch e.Field {
	case FieldRevenue:
		if e.Mode == ModePercent {
			return ErrFieldNotEditable
		}
	case FieldCostChapa, FieldCostFreight, FieldVariableCost, FieldFixedCost:
	default:
		return ErrUnknownField
	}

	if e.Mode == ModePercent {
		d.SetValueAsPercent(e.Field, e.Value)
	} else {
		d.SetValue(e.Field, e.Value)
	}
	return nil
}

// SetValue grava um valor absoluto no override simulado
func (d *Draft) SetValue(field EditField, value float64) {
	v := domain.Float64Ptr(value)
	switch field {
	case FieldRevenue:
		d.record.SimRevenue = v
	case FieldCostChapa:
		d.record.SimCostChapa = v
	case FieldCostFreight:
		d.record.SimCostFreight = v
	case FieldVariableCost:
		d.record.SimVariableCost = v
	case FieldFixedCost:
		d.record.SimFixedCost = v
	}
}

// SetValueAsPercent converte o percentual em valor sobre a receita simulada atual.
// O valor fica gravado em reais: mudar a receita depois não o reescala.
func (d *Draft) SetValueAsPercent(field EditField, pct float64) {
	d.SetValue(field, domain.RateAmount(d.Simulated().Revenue, pct))
}

// SetRate grava a taxa simulada em percentual
func (d *Draft) SetRate(field EditField, pct float64) {
	v := domain.Float64Ptr(pct)
	switch field {
	case FieldTax:
		d.record.SimTaxRate = v
	case FieldDelinquency:
		d.record.SimDelinquencyRate = v
	case FieldCommission:
		d.record.SimCommissionRate = v
	}
}

// SetRateAmount recebe o valor em reais e guarda a taxa equivalente sobre a receita simulada
func (d *Draft) SetRateAmount(field EditField, amount float64) {
	d.SetRate(field, domain.Percentage(amount, d.Simulated().Revenue))
}

func (d *Draft) SetRealFixed(value float64) {
	d.record.FixedCost = domain.Float64Ptr(value)
}

func (d *Draft) SetRealVariable(value float64) {
	d.record.VariableCost = domain.Float64Ptr(value)
}

// ApplyGlobal grava as novas taxas globais como taxas reais do mês e descarta
// os overrides simulados de taxa, que voltam a espelhar o real.
func (d *Draft) ApplyGlobal(cfg domain.GlobalFinancialConfig) {
	global := cfg
	d.sources.Global = &global

	d.record.TaxRate = domain.Float64Ptr(cfg.TaxRate)
	d.record.DelinquencyRate = domain.Float64Ptr(cfg.DelinquencyRate)
	d.record.CommissionRate = domain.Float64Ptr(cfg.CommissionRate)

	d.record.SimTaxRate = nil
	d.record.SimDelinquencyRate = nil
	d.record.SimCommissionRate = nil
}

// Reset limpa todos os overrides simulados
func (d *Draft) Reset() {
	d.record.SimRevenue = nil
	d.record.SimCostChapa = nil
	d.record.SimCostFreight = nil
	d.record.SimTaxRate = nil
	d.record.SimDelinquencyRate = nil
	d.record.SimCommissionRate = nil
	d.record.SimFixedCost = nil
	d.record.SimVariableCost = nil
}

// Refresh troca as fontes (agregado e global) sem mexer nas edições pendentes
func (d *Draft) Refresh(sources Sources) {
	d.sources.Aggregate = sources.Aggregate
	d.sources.Global = sources.Global
}

// Snapshot devolve uma cópia independente do registro para gravação
func (d *Draft) Snapshot() *domain.MonthlyFinancialRecord {
	rec := cloneRecord(d.record)
	return &rec
}

func cloneRecord(rec domain.MonthlyFinancialRecord) domain.MonthlyFinancialRecord {
	out := rec
	for _, p := range []struct{ dst, src **float64 }{
		{&out.TaxRate, &rec.TaxRate},
		{&out.DelinquencyRate, &rec.DelinquencyRate},
		{&out.CommissionRate, &rec.CommissionRate},
		{&out.FixedCost, &rec.FixedCost},
		{&out.VariableCost, &rec.VariableCost},
		{&out.SimRevenue, &rec.SimRevenue},
		{&out.SimCostChapa, &rec.SimCostChapa},
		{&out.SimCostFreight, &rec.SimCostFreight},
		{&out.SimTaxRate, &rec.SimTaxRate},
		{&out.SimDelinquencyRate, &rec.SimDelinquencyRate},
		{&out.SimCommissionRate, &rec.SimCommissionRate},
		{&out.SimFixedCost, &rec.SimFixedCost},
		{&out.SimVariableCost, &rec.SimVariableCost},
	} {
		if *p.src != nil {
			*p.dst = domain.Float64Ptr(**p.src)
		}
	}
	return out
}
