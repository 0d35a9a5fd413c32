// Package simulating mantém o DRE mensal em dois cenários (real e simulado),
// aplica as edições do usuário e grava o mês com debounce.
package simulating

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/grupold/bi-marmoraria-api/infrastructure/repository"
	"github.com/grupold/bi-marmoraria-api/internal/config"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
)

const defaultSaveDebounce = time.Second

type Simulator interface {
	OpenMonth(ctx context.Context, ownerID int, month string) (*MonthView, error)
	ApplyEdit(ctx context.Context, ownerID int, month string, edit Edit) (*MonthView, error)
	Reset(ctx context.Context, ownerID int, month string) (*MonthView, error)
	GetGlobal(ctx context.Context, ownerID int) (*domain.GlobalFinancialConfig, error)
	SaveGlobal(ctx context.Context, ownerID int, input GlobalInput) (*GlobalResult, error)
	EnsureMonthRecord(ctx context.Context, ownerID int, month domain.MonthKey) (bool, error)
	FlushAll(ctx context.Context) int
	EvictIdle(ctx context.Context, ttl time.Duration) int
}

// GlobalInput são as taxas globais enviadas pela tela de configuração.
// MonthKey é o mês aberto no simulador, que recebe as novas taxas como reais.
type GlobalInput struct {
	TaxRate         float64 `json:"tax_rate"`
	DelinquencyRate float64 `json:"default_rate"`
	CommissionRate  float64 `json:"commission_rate"`
	MonthKey        string  `json:"month_key,omitempty"`
}

type GlobalResult struct {
	Global *domain.GlobalFinancialConfig `json:"global"`
	Month  *MonthView                    `json:"month,omitempty"`
}

type Service struct {
	salesRepo   repository.SalesRecordRepository
	globalRepo  repository.GlobalConfigRepository
	monthlyRepo repository.MonthlyFinancialRepository
	defaults    Defaults
	delay       time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[sessionKey]*session
}

func NewService(
	salesRepo repository.SalesRecordRepository,
	globalRepo repository.GlobalConfigRepository,
	monthlyRepo repository.MonthlyFinancialRepository,
	cfg *config.Config,
) *Service {
	delay := cfg.Financial.SaveDebounce
	if delay <= 0 {
		delay = defaultSaveDebounce
	}

	return &Service{
		salesRepo:   salesRepo,
		globalRepo:  globalRepo,
		monthlyRepo: monthlyRepo,
		defaults:    DefaultsFromConfig(cfg.Financial),
		delay:       delay,
		now:         time.Now,
		sessions:    make(map[sessionKey]*session),
	}
}

// OpenMonth carrega o mês para edição. Se o mês ainda não tem registro, cria um
// com os valores reais e os campos simulados vazios, que espelham o real.
// Uma sessão com edições pendentes mantém o rascunho e só atualiza as fontes.
func (s *Service) OpenMonth(ctx context.Context, ownerID int, month string) (*MonthView, error) {
	key, err := s.parseKey(ownerID, month)
	if err != nil {
		return nil, err
	}

	sess, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	view := sess.view()
	return &view, nil
}

// ApplyEdit altera o rascunho e agenda a gravação
func (s *Service) ApplyEdit(ctx context.Context, ownerID int, month string, edit Edit) (*MonthView, error) {
	key, err := s.parseKey(ownerID, month)
	if err != nil {
		return nil, err
	}

	sess, err := s.session(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := sess.edit(s.now(), func(d *Draft) error { return d.Apply(edit) }); err != nil {
		return nil, NewSimulationError(err, apiErrors.ErrInvalidRequest, key.month.String())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":   ownerID,
		"month_key": key.month,
		"scenario":  edit.Scenario,
		"field":     edit.Field,
	}).Debug("Edição aplicada ao DRE")

	view := sess.view()
	return &view, nil
}

// Reset limpa os overrides simulados e grava na hora
func (s *Service) Reset(ctx context.Context, ownerID int, month string) (*MonthView, error) {
	key, err := s.parseKey(ownerID, month)
	if err != nil {
		return nil, err
	}

	sess, err := s.session(ctx, key)
	if err != nil {
		return nil, err
	}

	_ = sess.edit(s.now(), func(d *Draft) error {
		d.Reset()
		return nil
	})

	if err := sess.flush(ctx); err != nil {
		return nil, fmt.Errorf("erro ao salvar o reset do mês: %w", err)
	}

	view := sess.view()
	return &view, nil
}

func (s *Service) GetGlobal(ctx context.Context, ownerID int) (*domain.GlobalFinancialConfig, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}
	return s.ensureGlobal(ctx, ownerID)
}

// SaveGlobal grava as taxas globais e as propaga para o mês aberto.
// Os outros meses mantêm as taxas que já tinham gravadas.
func (s *Service) SaveGlobal(ctx context.Context, ownerID int, input GlobalInput) (*GlobalResult, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}

	for _, rate := range []float64{input.TaxRate, input.DelinquencyRate, input.CommissionRate} {
		if rate < 0 || rate > 100 {
			return nil, NewSimulationError(ErrInvalidRate, apiErrors.ErrInvalidRequest, input.MonthKey)
		}
	}

	global := &domain.GlobalFinancialConfig{
		OwnerID:         ownerID,
		TaxRate:         input.TaxRate,
		DelinquencyRate: input.DelinquencyRate,
		CommissionRate:  input.CommissionRate,
		UpdatedAt:       s.now(),
	}

	result := &GlobalResult{Global: global}

	var openKey *sessionKey
	if input.MonthKey == "" {
		if err := s.globalRepo.Upsert(ctx, global); err != nil {
			return nil, err
		}
	} else {
		key, err := s.parseKey(ownerID, input.MonthKey)
		if err != nil {
			return nil, err
		}
		openKey = &key

		sess, err := s.session(ctx, key)
		if err != nil {
			return nil, err
		}

		// global e mês aberto gravam juntos ou nenhum dos dois
		err = sess.commit(ctx, s.now(),
			func(d *Draft) { d.ApplyGlobal(*global) },
			func(ctx context.Context, month *domain.MonthlyFinancialRecord) error {
				return s.globalRepo.UpsertWithMonth(ctx, global, month)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao gravar taxas globais e o mês %s: %w", key.month, err)
		}

		view := sess.view()
		result.Month = &view
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":         ownerID,
		"month_key":       input.MonthKey,
		"tax_rate":        global.TaxRate,
		"default_rate":    global.DelinquencyRate,
		"commission_rate": global.CommissionRate,
	}).Info("Configuração global atualizada")

	// as outras sessões do dono só atualizam a fonte global
	for _, sess := range s.ownerSessions(ownerID) {
		if openKey != nil && sess.key == *openKey {
			continue
		}
		sess.mu.Lock()
		sess.draft.sources.Global = global
		sess.mu.Unlock()
	}

	return result, nil
}

// EnsureMonthRecord cria o registro do mês se ainda não existir
func (s *Service) EnsureMonthRecord(ctx context.Context, ownerID int, month domain.MonthKey) (bool, error) {
	global, err := s.ensureGlobal(ctx, ownerID)
	if err != nil {
		return false, err
	}

	return s.monthlyRepo.InsertIfAbsent(ctx, s.newMonthRecord(ownerID, month, global))
}

// FlushAll grava todas as sessões com edição pendente. Retorna quantas foram gravadas.
func (s *Service) FlushAll(ctx context.Context) int {
	flushed := 0
	for _, sess := range s.allSessions() {
		if !sess.hasPending() {
			continue
		}
		if err := sess.flush(ctx); err != nil {
			continue
		}
		flushed++
	}

	if flushed > 0 {
		log.ForContext(ctx).Infof("%d meses do simulador gravados", flushed)
	}
	return flushed
}

// EvictIdle descarta sessões sem atividade há mais de ttl, gravando antes o que
// estiver pendente. Sessões cuja gravação falhou ficam na memória sem nova
// tentativa: só a próxima edição do mês dispara outra gravação.
func (s *Service) EvictIdle(ctx context.Context, ttl time.Duration) int {
	now := s.now()
	evicted := 0

	for _, sess := range s.allSessions() {
		if sess.idleSince(now) < ttl || sess.failed() {
			continue
		}
		if err := sess.flush(ctx); err != nil {
			continue
		}

		s.mu.Lock()
		if current, ok := s.sessions[sess.key]; ok && current == sess && !sess.hasPending() {
			delete(s.sessions, sess.key)
			evicted++
		}
		s.mu.Unlock()
	}

	return evicted
}

func (s *Service) parseKey(ownerID int, month string) (sessionKey, error) {
	if ownerID <= 0 {
		return sessionKey{}, ErrMissingOwner
	}

	monthKey, err := domain.ParseMonthKey(month)
	if err != nil {
		return sessionKey{}, NewSimulationError(err, apiErrors.ErrInvalidMonth, month)
	}

	return sessionKey{ownerID: ownerID, month: monthKey}, nil
}

// session devolve a sessão do mês, abrindo-a se ainda não estiver em memória
func (s *Service) session(ctx context.Context, key sessionKey) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[key]
	s.mu.Unlock()

	if ok {
		sess.touch(s.now())
		return sess, nil
	}

	return s.load(ctx, key)
}

// load busca as fontes do mês e cria ou atualiza a sessão
func (s *Service) load(ctx context.Context, key sessionKey) (*session, error) {
	sources, err := s.loadSources(ctx, key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	existing, ok := s.sessions[key]
	s.mu.Unlock()

	if ok && existing.hasPending() {
		existing.refresh(sources)
		existing.touch(s.now())
		return existing, nil
	}

	record, err := s.loadRecord(ctx, key, sources.Global)
	if err != nil {
		return nil, err
	}

	draft := NewDraft(*record, sources, s.defaults)

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.sessions[key]; ok {
		current.mu.Lock()
		if !current.dirty {
			current.draft = draft
		} else {
			current.draft.Refresh(sources)
		}
		current.lastActivity = s.now()
		current.mu.Unlock()
		return current, nil
	}

	sess := newSession(key, draft, s.delay, s.monthlyRepo.Upsert, s.now())
	s.sessions[key] = sess
	return sess, nil
}

func (s *Service) loadSources(ctx context.Context, key sessionKey) (Sources, error) {
	global, err := s.ensureGlobal(ctx, key.ownerID)
	if err != nil {
		return Sources{}, err
	}

	agg, err := s.salesRepo.AggregateMonth(ctx, key.ownerID, key.month)
	if err != nil {
		return Sources{}, err
	}
	if agg == nil {
		agg = &domain.MonthlyAggregate{MonthKey: key.month}
	}

	return Sources{Aggregate: *agg, Global: global}, nil
}

func (s *Service) loadRecord(ctx context.Context, key sessionKey, global *domain.GlobalFinancialConfig) (*domain.MonthlyFinancialRecord, error) {
	record, err := s.monthlyRepo.Get(ctx, key.ownerID, key.month)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	record = s.newMonthRecord(key.ownerID, key.month, global)
	inserted, err := s.monthlyRepo.InsertIfAbsent(ctx, record)
	if err != nil {
		return nil, err
	}

	if !inserted {
		// outra sessão criou o mês no meio do caminho
		stored, err := s.monthlyRepo.Get(ctx, key.ownerID, key.month)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			return stored, nil
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":   key.ownerID,
		"month_key": key.month,
	}).Info("Registro do mês criado")

	return record, nil
}

// newMonthRecord preenche os campos reais; os simulados ficam vazios e espelham o real
func (s *Service) newMonthRecord(ownerID int, month domain.MonthKey, global *domain.GlobalFinancialConfig) *domain.MonthlyFinancialRecord {
	taxRate, delinquencyRate, commissionRate := s.defaults.TaxRate, s.defaults.DelinquencyRate, s.defaults.CommissionRate
	if global != nil {
		taxRate, delinquencyRate, commissionRate = global.TaxRate, global.DelinquencyRate, global.CommissionRate
	}

	return &domain.MonthlyFinancialRecord{
		OwnerID:         ownerID,
		MonthKey:        month,
		TaxRate:         domain.Float64Ptr(taxRate),
		DelinquencyRate: domain.Float64Ptr(delinquencyRate),
		CommissionRate:  domain.Float64Ptr(commissionRate),
		FixedCost:       domain.Float64Ptr(s.defaults.FixedCost),
		VariableCost:    domain.Float64Ptr(s.defaults.VariableCost),
	}
}

// ensureGlobal devolve a configuração global, criando-a com os padrões na primeira vez
func (s *Service) ensureGlobal(ctx context.Context, ownerID int) (*domain.GlobalFinancialConfig, error) {
	global, err := s.globalRepo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if global != nil {
		return global, nil
	}

	global = &domain.GlobalFinancialConfig{
		OwnerID:         ownerID,
		TaxRate:         s.defaults.TaxRate,
		DelinquencyRate: s.defaults.DelinquencyRate,
		CommissionRate:  s.defaults.CommissionRate,
		UpdatedAt:       s.now(),
	}
	if err := s.globalRepo.Insert(ctx, global); err != nil {
		return nil, err
	}

	return global, nil
}

func (s *Service) allSessions() []*session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

func (s *Service) ownerSessions(ownerID int) []*session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*session
	for key, sess := range s.sessions {
		if key.ownerID == ownerID {
			out = append(out, sess)
		}
	}
	return out
}

