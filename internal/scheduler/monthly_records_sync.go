package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/grupold/bi-marmoraria-api/infrastructure/repository"
	"github.com/grupold/bi-marmoraria-api/internal/config"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// MonthRecordEnsurer cria o registro financeiro do mês quando ele ainda não existe
type MonthRecordEnsurer interface {
	EnsureMonthRecord(ctx context.Context, ownerID int, month domain.MonthKey) (bool, error)
}

// MonthlyRecordsSyncConfig representa a configuração do agendador de registros mensais
type MonthlyRecordsSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// MonthlyRecordsSyncService garante, na virada do mês, que cada dono ativo tenha
// o registro financeiro do mês corrente com as taxas globais vigentes
type MonthlyRecordsSyncService struct {
	scheduler           *gocron.Scheduler
	config              MonthlyRecordsSyncConfig
	userRepo            repository.UserRepository
	ensurer             MonthRecordEnsurer
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastCreated         int
}

func NewMonthlyRecordsSyncService(
	userRepo repository.UserRepository,
	ensurer MonthRecordEnsurer,
	appConfig *config.Config,
) *MonthlyRecordsSyncService {
	syncConfig := MonthlyRecordsSyncConfig{
		CronSchedule: appConfig.MonthlyRecordsSync.CronSchedule,
		SyncEnabled:  appConfig.MonthlyRecordsSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de registros mensais carregada")

	return &MonthlyRecordsSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		userRepo:  userRepo,
		ensurer:   ensurer,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *MonthlyRecordsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de registros mensais desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de registros mensais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncMonthlyRecords(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de registros mensais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de registros mensais")
		s.scheduler.Stop()
	}()

	return nil
}

// syncMonthlyRecords cria o registro do mês corrente para todos os donos ativos
func (s *MonthlyRecordsSyncService) syncMonthlyRecords(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de registros mensais já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	month := domain.MonthKeyOf(s.now())
	created, err := s.ensureMonth(ctx, month)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar donos para sincronização de registros mensais")
		return
	}

	s.syncMutex.Lock()
	s.lastCreated = created
	s.lastSyncCompletedAt = s.now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"month_key": month,
		"created":   created,
	}).Info("Sincronização de registros mensais concluída")
}

// ensureMonth percorre os donos ativos; a falha de um dono não interrompe os demais
func (s *MonthlyRecordsSyncService) ensureMonth(ctx context.Context, month domain.MonthKey) (int, error) {
	ownerIDs, err := s.userRepo.ListActiveUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, ownerID := range ownerIDs {
		inserted, err := s.ensurer.EnsureMonthRecord(ctx, ownerID, month)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"user_id":   ownerID,
				"month_key": month,
			}).Error("Erro ao criar registro mensal")
			continue
		}
		if inserted {
			created++
		}
	}

	return created, nil
}

// TriggerManualSync dispara a sincronização fora do agendamento
func (s *MonthlyRecordsSyncService) TriggerManualSync(ctx context.Context) error {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		return fmt.Errorf("sincronização de registros mensais já está em andamento")
	}

	go s.syncMonthlyRecords(context.WithoutCancel(ctx))
	return nil
}

func (s *MonthlyRecordsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":                s.config.SyncEnabled,
		"cron_schedule":          s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_created":           s.lastCreated,
	}
}
