package simulating

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/grupold/bi-marmoraria-api/infrastructure/repository/mocks"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeMonthlyRepo guarda os registros em memória com a mesma chave única do banco
type fakeMonthlyRepo struct {
	mu       sync.Mutex
	records  map[sessionKey]domain.MonthlyFinancialRecord
	upserts  int
	failWith error
}

func newFakeMonthlyRepo() *fakeMonthlyRepo {
	return &fakeMonthlyRepo{records: make(map[sessionKey]domain.MonthlyFinancialRecord)}
}

func (f *fakeMonthlyRepo) Get(_ context.Context, ownerID int, month domain.MonthKey) (*domain.MonthlyFinancialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[sessionKey{ownerID, month}]
	if !ok {
		return nil, nil
	}
	out := cloneRecord(rec)
	return &out, nil
}

func (f *fakeMonthlyRepo) ListByYear(_ context.Context, ownerID int, year int) (map[domain.MonthKey]*domain.MonthlyFinancialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[domain.MonthKey]*domain.MonthlyFinancialRecord)
	for key, rec := range f.records {
		if key.ownerID == ownerID && key.month.Year() == year {
			c := cloneRecord(rec)
			out[key.month] = &c
		}
	}
	return out, nil
}

func (f *fakeMonthlyRepo) InsertIfAbsent(_ context.Context, record *domain.MonthlyFinancialRecord) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := sessionKey{record.OwnerID, record.MonthKey}
	if _, ok := f.records[key]; ok {
		return false, nil
	}
	f.records[key] = cloneRecord(*record)
	return true, nil
}

func (f *fakeMonthlyRepo) Upsert(_ context.Context, record *domain.MonthlyFinancialRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.upserts++
	if f.failWith != nil {
		return f.failWith
	}
	f.records[sessionKey{record.OwnerID, record.MonthKey}] = cloneRecord(*record)
	return nil
}

func (f *fakeMonthlyRepo) stored(ownerID int, month domain.MonthKey) (domain.MonthlyFinancialRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[sessionKey{ownerID, month}]
	return rec, ok
}

func (f *fakeMonthlyRepo) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

func (f *fakeMonthlyRepo) setFailure(err error) {
	f.mu.Lock()
	f.failWith = err
	f.mu.Unlock()
}

type fixture struct {
	service *Service
	sales   *mocks.MockSalesRecordRepository
	global  *mocks.MockGlobalConfigRepository
	monthly *fakeMonthlyRepo
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		sales:   mocks.NewMockSalesRecordRepository(ctrl),
		global:  mocks.NewMockGlobalConfigRepository(ctrl),
		monthly: newFakeMonthlyRepo(),
	}

	f.sales.EXPECT().AggregateMonth(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int, month domain.MonthKey) (*domain.MonthlyAggregate, error) {
			return &domain.MonthlyAggregate{MonthKey: month, Revenue: 90000, Cost: 30000, Freight: 10000, Count: 5}, nil
		}).AnyTimes()

	f.service = &Service{
		salesRepo:   f.sales,
		globalRepo:  f.global,
		monthlyRepo: f.monthly,
		defaults:    testDefaults,
		delay:       20 * time.Millisecond,
		now:         time.Now,
		sessions:    make(map[sessionKey]*session),
	}

	t.Cleanup(func() { f.service.FlushAll(context.Background()) })
	return f
}

func (f *fixture) withGlobal(cfg *domain.GlobalFinancialConfig) {
	f.global.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cfg, nil).AnyTimes()
}

func TestService_OpenMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("primeira visita cria o registro com valores reais e simulados vazios", func(t *testing.T) {
		f := newFixture(t)
		f.global.EXPECT().Get(ctx, 1).Return(nil, nil)
		f.global.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, cfg *domain.GlobalFinancialConfig) error {
				assert.Equal(t, 6.0, cfg.TaxRate)
				assert.Equal(t, 1.5, cfg.DelinquencyRate)
				return nil
			})

		view, err := f.service.OpenMonth(ctx, 1, "2024-05")
		require.NoError(t, err)

		rec, ok := f.monthly.stored(1, "2024-05")
		require.True(t, ok)
		assert.Equal(t, 6.0, *rec.TaxRate)
		assert.Equal(t, 85000.0, *rec.FixedCost)
		assert.Equal(t, 0.0, *rec.VariableCost)
		assert.Nil(t, rec.SimRevenue)
		assert.Nil(t, rec.SimTaxRate)
		assert.Nil(t, rec.SimFixedCost)

		assert.Equal(t, 100000.0, view.Real.Revenue)
		assert.Equal(t, view.Real, view.Simulated)
		assert.Zero(t, view.ProfitDiff)
		assert.Equal(t, StatusIdle, view.SaveStatus)
	})

	t.Run("registro existente não é recriado", func(t *testing.T) {
		f := newFixture(t)
		f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 8})

		existing := baseRecord()
		existing.SimRevenue = domain.Float64Ptr(120000)
		_, _ = f.monthly.InsertIfAbsent(ctx, &existing)

		view, err := f.service.OpenMonth(ctx, 1, "2024-05")
		require.NoError(t, err)
		assert.Equal(t, 120000.0, view.Simulated.Revenue)
		assert.Equal(t, 100000.0, view.Real.Revenue)
		assert.Equal(t, 0, f.monthly.upsertCount())
	})

	t.Run("mês inválido", func(t *testing.T) {
		f := newFixture(t)

		view, err := f.service.OpenMonth(ctx, 1, "2024-13")
		assert.Nil(t, view)

		var simErr *SimulationError
		require.True(t, errors.As(err, &simErr))
		assert.Equal(t, apiErrors.ErrInvalidMonth, simErr.Code)
		assert.ErrorIs(t, err, domain.ErrInvalidMonthKey)
	})

	t.Run("sem dono autenticado", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.OpenMonth(ctx, 0, "2024-05")
		assert.ErrorIs(t, err, ErrMissingOwner)
	})
}

func TestService_ApplyEdit_Debounce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6, DelinquencyRate: 1.5})

	for _, value := range []float64{100, 200, 300, 400, 500} {
		view, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{
			Scenario: domain.ScenarioSimulated,
			Field:    FieldRevenue,
			Value:    value,
		})
		require.NoError(t, err)
		assert.Equal(t, value, view.Simulated.Revenue)
		assert.Equal(t, StatusPending, view.SaveStatus)
	}

	assert.Eventually(t, func() bool {
		return f.monthly.upsertCount() == 1
	}, time.Second, 5*time.Millisecond)

	rec, ok := f.monthly.stored(1, "2024-05")
	require.True(t, ok)
	assert.Equal(t, 500.0, *rec.SimRevenue)

	// nada pendente: não grava de novo
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, f.monthly.upsertCount())

	view, err := f.service.OpenMonth(ctx, 1, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, StatusSaved, view.SaveStatus)
}

func TestService_ApplyEdit_Invalida(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6})

	_, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioReal, Field: FieldTax, Value: 1})

	var simErr *SimulationError
	require.True(t, errors.As(err, &simErr))
	assert.Equal(t, apiErrors.ErrInvalidRequest, simErr.Code)
	assert.ErrorIs(t, err, ErrFieldNotEditable)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, f.monthly.upsertCount())
}

func TestService_UpsertUmaLinhaPorMes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6})

	for i := 0; i < 3; i++ {
		_, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldFixedCost, Value: float64(i)})
		require.NoError(t, err)
		f.service.FlushAll(ctx)
	}

	assert.Equal(t, 3, f.monthly.upsertCount())

	all, err := f.monthly.ListByYear(ctx, 1, 2024)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2.0, *all["2024-05"].SimFixedCost)
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6})
	f.service.delay = time.Hour

	_, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldRevenue, Value: 1})
	require.NoError(t, err)
	_, err = f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldTax, Mode: ModePercent, Value: 20})
	require.NoError(t, err)

	view, err := f.service.Reset(ctx, 1, "2024-05")
	require.NoError(t, err)

	// gravado na hora, sem esperar o debounce
	assert.Equal(t, 1, f.monthly.upsertCount())
	rec, _ := f.monthly.stored(1, "2024-05")
	assert.Nil(t, rec.SimRevenue)
	assert.Nil(t, rec.SimTaxRate)

	assert.Equal(t, view.Real, view.Simulated)
	assert.Equal(t, StatusSaved, view.SaveStatus)
}

func TestService_SaveGlobal(t *testing.T) {
	ctx := context.Background()

	t.Run("propaga para o mês aberto e não mexe nos outros", func(t *testing.T) {
		f := newFixture(t)
		f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6, DelinquencyRate: 1.5})

		other := baseRecord()
		other.MonthKey = "2024-04"
		_, _ = f.monthly.InsertIfAbsent(ctx, &other)

		_, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldTax, Mode: ModePercent, Value: 15})
		require.NoError(t, err)

		var saved *domain.MonthlyFinancialRecord
		f.global.EXPECT().UpsertWithMonth(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cfg *domain.GlobalFinancialConfig, month *domain.MonthlyFinancialRecord) error {
				assert.Equal(t, 1, cfg.OwnerID)
				assert.Equal(t, 10.0, cfg.TaxRate)
				saved = month
				return nil
			})

		result, err := f.service.SaveGlobal(ctx, 1, GlobalInput{TaxRate: 10, DelinquencyRate: 2, CommissionRate: 5, MonthKey: "2024-05"})
		require.NoError(t, err)
		require.NotNil(t, result.Month)
		assert.Equal(t, 10.0, result.Month.Real.TaxRate)
		assert.Equal(t, 10.0, result.Month.Simulated.TaxRate)
		assert.Equal(t, StatusSaved, result.Month.SaveStatus)

		require.NotNil(t, saved)
		assert.Equal(t, domain.MonthKey("2024-05"), saved.MonthKey)
		assert.Equal(t, 10.0, *saved.TaxRate)
		assert.Equal(t, 2.0, *saved.DelinquencyRate)
		assert.Equal(t, 5.0, *saved.CommissionRate)
		assert.Nil(t, saved.SimTaxRate)

		untouched, _ := f.monthly.stored(1, "2024-04")
		assert.Equal(t, 8.0, *untouched.TaxRate)
	})

	t.Run("falha na transação mantém o mês como estava", func(t *testing.T) {
		f := newFixture(t)
		f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6, DelinquencyRate: 1.5})

		f.service.delay = time.Hour

		before, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldRevenue, Value: 42})
		require.NoError(t, err)

		f.global.EXPECT().UpsertWithMonth(ctx, gomock.Any(), gomock.Any()).Return(errors.New("conexão perdida"))

		_, err = f.service.SaveGlobal(ctx, 1, GlobalInput{TaxRate: 20, MonthKey: "2024-05"})
		require.Error(t, err)

		// o rascunho volta às taxas antigas e a edição pendente continua agendada
		after, err := f.service.OpenMonth(ctx, 1, "2024-05")
		require.NoError(t, err)
		assert.Equal(t, before.Real.TaxRate, after.Real.TaxRate)
		assert.Equal(t, before.Simulated.TaxRate, after.Simulated.TaxRate)
		assert.Equal(t, 42.0, *after.Record.SimRevenue)
		assert.Equal(t, StatusPending, after.SaveStatus)
		assert.Zero(t, f.monthly.upsertCount())
	})

	t.Run("sem mês aberto grava só o global", func(t *testing.T) {
		f := newFixture(t)
		f.global.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

		result, err := f.service.SaveGlobal(ctx, 1, GlobalInput{TaxRate: 7})
		require.NoError(t, err)
		assert.Nil(t, result.Month)
		assert.Zero(t, f.monthly.upsertCount())
	})

	t.Run("taxa fora do intervalo", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.SaveGlobal(ctx, 1, GlobalInput{TaxRate: 120})
		assert.ErrorIs(t, err, ErrInvalidRate)
	})
}

func TestService_FalhaNaGravacao(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6})
	f.monthly.setFailure(errors.New("banco fora do ar"))

	_, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldRevenue, Value: 42})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		view, err := f.service.OpenMonth(ctx, 1, "2024-05")
		return err == nil && view.SaveStatus == StatusFailed
	}, time.Second, 5*time.Millisecond)

	// a edição continua no rascunho e o próximo flush a grava
	f.monthly.setFailure(nil)
	assert.Equal(t, 1, f.service.FlushAll(ctx))

	rec, _ := f.monthly.stored(1, "2024-05")
	assert.Equal(t, 42.0, *rec.SimRevenue)
}

func TestService_EvictIdle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6})

	var mu sync.Mutex
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return clock
	}
	f.service.delay = time.Hour

	_, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldRevenue, Value: 10})
	require.NoError(t, err)
	_, err = f.service.OpenMonth(ctx, 2, "2024-05")
	require.NoError(t, err)

	assert.Zero(t, f.service.EvictIdle(ctx, 30*time.Minute))

	mu.Lock()
	clock = clock.Add(31 * time.Minute)
	mu.Unlock()

	assert.Equal(t, 2, f.service.EvictIdle(ctx, 30*time.Minute))
	assert.Empty(t, f.service.allSessions())

	// a edição pendente foi gravada antes de descartar
	rec, ok := f.monthly.stored(1, "2024-05")
	require.True(t, ok)
	assert.Equal(t, 10.0, *rec.SimRevenue)
}

func TestService_EvictIdle_NaoRegravaFalha(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 1, TaxRate: 6})
	f.monthly.setFailure(errors.New("banco fora do ar"))

	var mu sync.Mutex
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return clock
	}

	_, err := f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldRevenue, Value: 42})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		view, err := f.service.OpenMonth(ctx, 1, "2024-05")
		return err == nil && view.SaveStatus == StatusFailed
	}, time.Second, 5*time.Millisecond)
	attempts := f.monthly.upsertCount()

	mu.Lock()
	clock = clock.Add(31 * time.Minute)
	mu.Unlock()

	assert.Zero(t, f.service.EvictIdle(ctx, 30*time.Minute))
	assert.Equal(t, attempts, f.monthly.upsertCount())
	assert.Len(t, f.service.allSessions(), 1)

	// a próxima edição agenda uma gravação nova com o rascunho inteiro
	f.monthly.setFailure(nil)
	_, err = f.service.ApplyEdit(ctx, 1, "2024-05", Edit{Scenario: domain.ScenarioSimulated, Field: FieldFixedCost, Value: 7})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		rec, ok := f.monthly.stored(1, "2024-05")
		return ok && rec.SimRevenue != nil && *rec.SimRevenue == 42 && rec.SimFixedCost != nil && *rec.SimFixedCost == 7
	}, time.Second, 5*time.Millisecond)
}

func TestService_EnsureMonthRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withGlobal(&domain.GlobalFinancialConfig{OwnerID: 3, TaxRate: 7, DelinquencyRate: 1, CommissionRate: 2})

	created, err := f.service.EnsureMonthRecord(ctx, 3, "2025-01")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.service.EnsureMonthRecord(ctx, 3, "2025-01")
	require.NoError(t, err)
	assert.False(t, created)

	rec, _ := f.monthly.stored(3, "2025-01")
	assert.Equal(t, 7.0, *rec.TaxRate)
	assert.Nil(t, rec.SimRevenue)
}
