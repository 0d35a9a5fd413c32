package simulating

import (
	"context"
	"sync"
	"time"

	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
)

// SaveStatus descreve o estado da gravação do mês em edição
type SaveStatus string

const (
	StatusIdle    SaveStatus = "idle"
	StatusPending SaveStatus = "pending"
	StatusSaving  SaveStatus = "saving"
	StatusSaved   SaveStatus = "saved"
	StatusFailed  SaveStatus = "failed"
)

type saveFunc func(ctx context.Context, record *domain.MonthlyFinancialRecord) error

type sessionKey struct {
	ownerID int
	month   domain.MonthKey
}

// session guarda o rascunho de um mês e agenda a gravação com debounce.
// Cada edição reinicia o timer; quando ele dispara, o payload é lido do
// rascunho naquele instante, então a última edição sempre é a gravada.
type session struct {
	key   sessionKey
	delay time.Duration
	save  saveFunc

	mu           sync.Mutex
	draft        *Draft
	timer        *time.Timer
	dirty        bool
	status       SaveStatus
	lastErr      error
	lastActivity time.Time

	// saveMu serializa as gravações do mesmo mês
	saveMu sync.Mutex
}

func newSession(key sessionKey, draft *Draft, delay time.Duration, save saveFunc, now time.Time) *session {
	return &session{
		key:          key,
		delay:        delay,
		save:         save,
		draft:        draft,
		status:       StatusIdle,
		lastActivity: now,
	}
}

// edit aplica fn ao rascunho sob o lock e reagenda a gravação
func (s *session) edit(now time.Time, fn func(d *Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.draft); err != nil {
		return err
	}

	s.lastActivity = now
	s.dirty = true
	s.status = StatusPending

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		_ = s.flush(context.Background())
	})

	return nil
}

// flush grava o rascunho imediatamente, se houver algo pendente
func (s *session) flush(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	snapshot := s.draft.Snapshot()
	s.dirty = false
	s.status = StatusSaving
	s.mu.Unlock()

	err := s.save(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id":   s.key.ownerID,
			"month_key": s.key.month,
		}).WithError(err).Error("Falha ao salvar o DRE do mês")

		// mantém pendente para o próximo flush; a próxima edição reagenda o timer
		s.dirty = true
		if s.timer == nil {
			s.status = StatusFailed
		}
		return err
	}

	if s.timer == nil && !s.dirty {
		s.status = StatusSaved
	}
	return nil
}

// commit aplica fn e grava na hora com save, fora do debounce. Se a gravação
// falhar o rascunho volta ao que era antes de fn.
func (s *session) commit(ctx context.Context, now time.Time, fn func(d *Draft), save saveFunc) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	draft := s.draft
	previous := *draft
	previous.record = cloneRecord(draft.record)
	wasDirty, previousStatus := s.dirty, s.status

	fn(draft)
	snapshot := draft.Snapshot()
	s.dirty = false
	s.lastActivity = now
	s.status = StatusSaving
	s.mu.Unlock()

	err := save(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	editedMeanwhile := s.dirty || s.timer != nil
	if err != nil {
		if !editedMeanwhile && s.draft == draft {
			*draft = previous
		}
		if !wasDirty && !editedMeanwhile {
			s.status = previousStatus
			return err
		}

		// devolve ao debounce as edições que ainda não foram gravadas
		s.dirty = true
		s.status = StatusPending
		if s.timer == nil {
			s.timer = time.AfterFunc(s.delay, func() {
				_ = s.flush(context.Background())
			})
		}
		return err
	}

	if !editedMeanwhile {
		s.status = StatusSaved
	}
	return nil
}

func (s *session) view() MonthView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildView(s.key.month, s.draft, s.status)
}

func (s *session) hasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// failed indica que a última gravação falhou e nenhuma edição nova chegou desde então
func (s *session) failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusFailed
}

func (s *session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActivity)
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActivity = now
	s.mu.Unlock()
}

func (s *session) refresh(sources Sources) {
	s.mu.Lock()
	s.draft.Refresh(sources)
	s.mu.Unlock()
}
