// Package reporting monta os indicadores do painel e o DRE anual
package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/grupold/bi-marmoraria-api/infrastructure/repository"
	"github.com/grupold/bi-marmoraria-api/infrastructure/spreadsheet"
	"github.com/grupold/bi-marmoraria-api/internal/config"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/simulating"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/grupold/bi-marmoraria-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const annualSheetName = "DRE Anual"

var annualHeaders = []string{
	"Mês",
	"Faturamento Bruto",
	"Impostos",
	"Inadimplência",
	"Receita Líquida",
	"CMV (Chapa)",
	"Frete",
	"Comissões",
	"Outros Var.",
	"Mg. Contribuição",
	"Fixos",
	"Lucro Líquido",
	"Margem %",
}

type Reporter interface {
	Overview(ctx context.Context, ownerID int, filter domain.SalesFilter) (*domain.Overview, error)
	RevenueSeries(ctx context.Context, ownerID int, filter domain.SalesFilter) ([]domain.RevenuePoint, error)
	AvailableYears(ctx context.Context, ownerID int) ([]int, error)
	AnnualDRE(ctx context.Context, ownerID int, year int, scenario domain.Scenario) (*domain.AnnualDREReport, error)
	ExportAnnualDRE(ctx context.Context, ownerID int, year int, scenario domain.Scenario) (*Export, error)
}

// Export é a planilha pronta para download
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Service struct {
	salesRepo   repository.SalesRecordRepository
	globalRepo  repository.GlobalConfigRepository
	monthlyRepo repository.MonthlyFinancialRepository
	defaults    simulating.Defaults
	now         func() time.Time
}

// NewService usa os mesmos padrões do simulador mensal: um mês sem registro
// gravado entra no relatório anual com o custo fixo padrão, como se fosse aberto no DRE.
func NewService(
	salesRepo repository.SalesRecordRepository,
	globalRepo repository.GlobalConfigRepository,
	monthlyRepo repository.MonthlyFinancialRepository,
	cfg *config.Config,
) *Service {
	return &Service{
		salesRepo:   salesRepo,
		globalRepo:  globalRepo,
		monthlyRepo: monthlyRepo,
		defaults:    simulating.DefaultsFromConfig(cfg.Financial),
		now:         time.Now,
	}
}

// Overview soma faturamento, custo e frete do período
func (s *Service) Overview(ctx context.Context, ownerID int, filter domain.SalesFilter) (*domain.Overview, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}

	sales, err := s.salesRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	revenue, cost, freight := decimal.Zero, decimal.Zero, decimal.Zero
	for _, sale := range sales {
		revenue = revenue.Add(decimal.NewFromFloat(sale.Revenue))
		cost = cost.Add(decimal.NewFromFloat(sale.Cost))
		freight = freight.Add(decimal.NewFromFloat(sale.Freight))
	}

	overview := &domain.Overview{
		TotalRevenue:    revenue.InexactFloat64(),
		TotalCost:       cost.InexactFloat64(),
		TotalFreight:    freight.InexactFloat64(),
		EstimatedProfit: revenue.Sub(cost).Sub(freight).InexactFloat64(),
		SalesCount:      len(sales),
	}
	if len(sales) > 0 {
		overview.AverageTicket = revenue.Div(decimal.NewFromInt(int64(len(sales)))).InexactFloat64()
	}

	return overview, nil
}

// RevenueSeries agrupa as vendas por mês em ordem cronológica
func (s *Service) RevenueSeries(ctx context.Context, ownerID int, filter domain.SalesFilter) ([]domain.RevenuePoint, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}

	sales, err := s.salesRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		revenue, cost, freight decimal.Decimal
	}
	buckets := make(map[domain.MonthKey]*bucket)
	for _, sale := range sales {
		key := domain.MonthKeyOf(sale.SaleDate)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.revenue = b.revenue.Add(decimal.NewFromFloat(sale.Revenue))
		b.cost = b.cost.Add(decimal.NewFromFloat(sale.Cost))
		b.freight = b.freight.Add(decimal.NewFromFloat(sale.Freight))
	}

	points := make([]domain.RevenuePoint, 0, len(buckets))
	for key, b := range buckets {
		first, _, err := key.Range()
		if err != nil {
			continue
		}
		points = append(points, domain.RevenuePoint{
			Label:    fmt.Sprintf("%s/%d", domain.ShortMonthName(first.Month()), first.Year()),
			MonthKey: key,
			Revenue:  b.revenue.InexactFloat64(),
			Profit:   b.revenue.Sub(b.freight).Sub(b.cost).InexactFloat64(),
		})
	}

	// YYYY-MM ordena cronologicamente como texto
	sort.Slice(points, func(i, j int) bool {
		return points[i].MonthKey < points[j].MonthKey
	})

	return points, nil
}

// AvailableYears lista os anos com vendas, do mais recente ao mais antigo.
// Sem vendas, devolve o ano corrente.
func (s *Service) AvailableYears(ctx context.Context, ownerID int) ([]int, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}

	years, err := s.salesRepo.AvailableYears(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if len(years) == 0 {
		return []int{s.now().Year()}, nil
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// AnnualDRE roda o DRE de cada um dos 12 meses do ano com a mesma cadeia de
// fallback do simulador, e soma o ano.
func (s *Service) AnnualDRE(ctx context.Context, ownerID int, year int, scenario domain.Scenario) (*domain.AnnualDREReport, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}
	if year < 1900 || year > 9999 {
		return nil, NewReportError(ErrInvalidYear, apiErrors.ErrInvalidRequest, fmt.Sprint(year))
	}
	if scenario == "" {
		scenario = domain.ScenarioReal
	}
	if !scenario.Valid() {
		return nil, NewReportError(ErrInvalidScenario, apiErrors.ErrInvalidRequest, string(scenario))
	}

	aggregates, err := s.salesRepo.AggregateYear(ctx, ownerID, year)
	if err != nil {
		return nil, err
	}

	records, err := s.monthlyRepo.ListByYear(ctx, ownerID, year)
	if err != nil {
		return nil, err
	}

	global, err := s.globalRepo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := &domain.AnnualDREReport{
		Year:     year,
		Scenario: scenario,
		Rows:     make([]domain.AnnualDRERow, 0, 12),
	}

	var totals dreTotals
	for month := time.January; month <= time.December; month++ {
		key := domain.NewMonthKey(year, month)

		src := simulating.Sources{
			Aggregate: aggregates[key],
			Record:    records[key],
			Global:    global,
		}
		src.Aggregate.MonthKey = key

		var in domain.DREInputs
		if scenario == domain.ScenarioSimulated {
			in = simulating.ResolveSimulated(src, s.defaults)
		} else {
			in = simulating.ResolveReal(src, s.defaults)
		}

		dre := domain.ComputeDRE(in)
		totals.add(dre)

		report.Rows = append(report.Rows, domain.AnnualDRERow{
			Month:     int(month),
			MonthName: strings.ToUpper(domain.ShortMonthName(month)),
			MonthKey:  key,
			DRE:       dre,
		})
	}

	report.Totals = totals.dre()
	report.ProfitPct = report.Totals.ProfitPct

	return report, nil
}

// ExportAnnualDRE gera o .xlsx do DRE anual, uma linha por mês
func (s *Service) ExportAnnualDRE(ctx context.Context, ownerID int, year int, scenario domain.Scenario) (*Export, error) {
	report, err := s.AnnualDRE(ctx, ownerID, year, scenario)
	if err != nil {
		return nil, err
	}

	cents := utils.RoundWithTwoDecimalPlace
	rows := make([][]any, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []any{
			r.MonthName,
			cents(r.Revenue),
			cents(r.TaxAmount),
			cents(r.DelinquencyAmount),
			cents(r.NetRevenue),
			cents(r.CostChapa),
			cents(r.CostFreight),
			cents(r.CommissionAmount),
			cents(r.VariableCost),
			cents(r.ContributionMargin),
			cents(r.FixedCost),
			cents(r.NetProfit),
			r.ProfitPct / 100,
		})
	}

	content, err := spreadsheet.WriteTable(spreadsheet.Table{
		Sheet:          annualSheetName,
		Headers:        annualHeaders,
		Rows:           rows,
		PercentColumns: []int{len(annualHeaders) - 1},
		TextColumns:    []int{0},
	})
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", ownerID).Error("Falha ao gerar planilha do DRE anual")
		return nil, NewReportError(errors.Wrap(ErrExportFailed, err.Error()), apiErrors.ErrInternalServer, "")
	}

	return &Export{
		Filename:    fmt.Sprintf("DRE_%d_%s.xlsx", report.Year, report.Scenario),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

// dreTotals soma as linhas monetárias do ano em decimal
type dreTotals struct {
	revenue, costChapa, costFreight, variableCost, fixedCost decimal.Decimal
	tax, delinquency, commission                             decimal.Decimal
	netRevenue, grossProfit, contribution, netProfit         decimal.Decimal
}

func (t *dreTotals) add(d domain.DRE) {
	t.revenue = t.revenue.Add(decimal.NewFromFloat(d.Revenue))
	t.costChapa = t.costChapa.Add(decimal.NewFromFloat(d.CostChapa))
	t.costFreight = t.costFreight.Add(decimal.NewFromFloat(d.CostFreight))
	t.variableCost = t.variableCost.Add(decimal.NewFromFloat(d.VariableCost))
	t.fixedCost = t.fixedCost.Add(decimal.NewFromFloat(d.FixedCost))
	t.tax = t.tax.Add(decimal.NewFromFloat(d.TaxAmount))
	t.delinquency = t.delinquency.Add(decimal.NewFromFloat(d.DelinquencyAmount))
	t.commission = t.commission.Add(decimal.NewFromFloat(d.CommissionAmount))
	t.netRevenue = t.netRevenue.Add(decimal.NewFromFloat(d.NetRevenue))
	t.grossProfit = t.grossProfit.Add(decimal.NewFromFloat(d.GrossProfit))
	t.contribution = t.contribution.Add(decimal.NewFromFloat(d.ContributionMargin))
	t.netProfit = t.netProfit.Add(decimal.NewFromFloat(d.NetProfit))
}

// dre devolve os totais do ano; os percentuais são ponderados pela receita
func (t *dreTotals) dre() domain.DRE {
	revenue := t.revenue.InexactFloat64()
	tax := t.tax.InexactFloat64()
	delinquency := t.delinquency.InexactFloat64()
	commission := t.commission.InexactFloat64()
	contribution := t.contribution.InexactFloat64()
	netProfit := t.netProfit.InexactFloat64()

	return domain.DRE{
		DREInputs: domain.DREInputs{
			Revenue:         revenue,
			CostChapa:       t.costChapa.InexactFloat64(),
			CostFreight:     t.costFreight.InexactFloat64(),
			TaxRate:         domain.Percentage(tax, revenue),
			DelinquencyRate: domain.Percentage(delinquency, revenue),
			CommissionRate:  domain.Percentage(commission, revenue),
			VariableCost:    t.variableCost.InexactFloat64(),
			FixedCost:       t.fixedCost.InexactFloat64(),
		},
		TaxAmount:          tax,
		DelinquencyAmount:  delinquency,
		NetRevenue:         t.netRevenue.InexactFloat64(),
		CommissionAmount:   commission,
		GrossProfit:        t.grossProfit.InexactFloat64(),
		ContributionMargin: contribution,
		MarginPct:          domain.Percentage(contribution, revenue),
		NetProfit:          netProfit,
		ProfitPct:          domain.Percentage(netProfit, revenue),
	}
}
