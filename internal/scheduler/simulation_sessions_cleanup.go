package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/grupold/bi-marmoraria-api/internal/config"
	"github.com/sirupsen/logrus"
)

const defaultSessionIdleTTL = 30 * time.Minute

// SessionEvictor descarta sessões do simulador paradas há mais que o ttl
type SessionEvictor interface {
	EvictIdle(ctx context.Context, ttl time.Duration) int
}

// RevocationPurger descarta revogações de tokens já expirados
type RevocationPurger interface {
	PurgeRevoked() int
}

// SessionCleanupService libera periodicamente a memória das sessões de simulação
// ociosas e da lista de tokens revogados
type SessionCleanupService struct {
	scheduler       *gocron.Scheduler
	cronSchedule    string
	enabled         bool
	idleTTL         time.Duration
	evictor         SessionEvictor
	purger          RevocationPurger
	now             func() time.Time
	running         bool
	mutex           sync.Mutex
	lastRunAt       time.Time
	lastEvicted     int
	lastPurgedToken int
}

func NewSessionCleanupService(evictor SessionEvictor, purger RevocationPurger, appConfig *config.Config) *SessionCleanupService {
	ttl := appConfig.Financial.SessionIdleTTL
	if ttl <= 0 {
		ttl = defaultSessionIdleTTL
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.SessionCleanup.CronSchedule,
		"enabled":       appConfig.SessionCleanup.Enabled,
		"idle_ttl":      ttl.String(),
	}).Info("Configuração da limpeza de sessões carregada")

	return &SessionCleanupService{
		scheduler:    gocron.NewScheduler(time.Local),
		cronSchedule: appConfig.SessionCleanup.CronSchedule,
		enabled:      appConfig.SessionCleanup.Enabled,
		idleTTL:      ttl,
		evictor:      evictor,
		purger:       purger,
		now:          time.Now,
	}
}

func (s *SessionCleanupService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("Limpeza de sessões desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.cleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SessionCleanupService) cleanup(ctx context.Context) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		return
	}
	s.running = true
	s.mutex.Unlock()

	evicted := s.evictor.EvictIdle(ctx, s.idleTTL)
	purged := s.purger.PurgeRevoked()

	s.mutex.Lock()
	s.running = false
	s.lastRunAt = s.now()
	s.lastEvicted = evicted
	s.lastPurgedToken = purged
	s.mutex.Unlock()

	if evicted > 0 || purged > 0 {
		logrus.WithFields(logrus.Fields{
			"sessions_evicted": evicted,
			"tokens_purged":    purged,
		}).Info("Limpeza de sessões concluída")
	}
}

// TriggerManualSync executa a limpeza imediatamente
func (s *SessionCleanupService) TriggerManualSync(ctx context.Context) error {
	s.mutex.Lock()
	running := s.running
	s.mutex.Unlock()

	if running {
		return fmt.Errorf("limpeza de sessões já está em andamento")
	}

	s.cleanup(ctx)
	return nil
}

func (s *SessionCleanupService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"enabled":       s.enabled,
		"cron_schedule": s.cronSchedule,
		"idle_ttl":      s.idleTTL.String(),
		"running":       s.running,
		"last_run_at":   s.lastRunAt,
		"last_evicted":  s.lastEvicted,
		"last_purged":   s.lastPurgedToken,
	}
}
