// Package preferences guarda a aba ativa e o filtro de datas de cada visão do painel
package preferences

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/grupold/bi-marmoraria-api/infrastructure/repository"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	activeTabKey = "active_tab"
	filterPrefix = "filter:"
)

var namePattern = regexp.MustCompile(`^[a-z0-9_-]{1,40}$`)

type Store interface {
	GetAll(ctx context.Context, ownerID int) (*domain.Preferences, error)
	GetFilter(ctx context.Context, ownerID int, view string) (*domain.FilterState, error)
	SaveFilter(ctx context.Context, ownerID int, view string, state domain.FilterState) (*domain.FilterState, error)
	GetActiveTab(ctx context.Context, ownerID int) (string, error)
	SaveActiveTab(ctx context.Context, ownerID int, tab string) error
}

type Service struct {
	repo repository.PreferenceRepository
	now  func() time.Time
}

func NewService(repo repository.PreferenceRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// GetAll devolve a aba ativa e todos os filtros salvos. Entradas corrompidas são ignoradas.
func (s *Service) GetAll(ctx context.Context, ownerID int) (*domain.Preferences, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}

	entries, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	prefs := &domain.Preferences{Filters: make(map[string]domain.FilterState)}
	for key, raw := range entries {
		switch {
		case key == activeTabKey:
			if err := json.Unmarshal(raw, &prefs.ActiveTab); err != nil {
				log.ForContext(ctx).WithError(err).WithField("user_id", ownerID).Warn("Aba ativa salva está corrompida")
			}
		case strings.HasPrefix(key, filterPrefix):
			var state domain.FilterState
			if err := json.Unmarshal(raw, &state); err != nil {
				log.ForContext(ctx).WithError(err).WithField("user_id", ownerID).Warnf("Filtro salvo %q está corrompido", key)
				continue
			}
			prefs.Filters[strings.TrimPrefix(key, filterPrefix)] = state
		}
	}

	return prefs, nil
}

// GetFilter devolve o filtro salvo da visão, ou nil se não houver
func (s *Service) GetFilter(ctx context.Context, ownerID int, view string) (*domain.FilterState, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}
	if !namePattern.MatchString(view) {
		return nil, ErrInvalidView
	}

	raw, err := s.repo.Get(ctx, ownerID, filterPrefix+view)
	if err != nil || raw == nil {
		return nil, err
	}

	var state domain.FilterState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", ownerID).Warnf("Filtro salvo da visão %s está corrompido", view)
		return nil, nil
	}
	return &state, nil
}

// SaveFilter valida e grava o filtro da visão. No modo mês só o mês é guardado;
// no modo intervalo só as datas.
func (s *Service) SaveFilter(ctx context.Context, ownerID int, view string, state domain.FilterState) (*domain.FilterState, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}
	if !namePattern.MatchString(view) {
		return nil, ErrInvalidView
	}

	switch state.Mode {
	case domain.FilterModeMonth:
		state.StartDate, state.EndDate = "", ""
	case domain.FilterModeRange:
		state.Month = ""
	}
	if _, err := state.SalesFilter(); err != nil {
		return nil, domain.ErrInvalidFilter
	}

	state.View = view
	state.UpdatedAt = s.now()

	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Put(ctx, ownerID, filterPrefix+view, raw); err != nil {
		return nil, err
	}

	return &state, nil
}

func (s *Service) GetActiveTab(ctx context.Context, ownerID int) (string, error) {
	if ownerID <= 0 {
		return "", ErrMissingOwner
	}

	raw, err := s.repo.Get(ctx, ownerID, activeTabKey)
	if err != nil || raw == nil {
		return "", err
	}

	var tab string
	if err := json.Unmarshal(raw, &tab); err != nil {
		return "", nil
	}
	return tab, nil
}

func (s *Service) SaveActiveTab(ctx context.Context, ownerID int, tab string) error {
	if ownerID <= 0 {
		return ErrMissingOwner
	}
	if !namePattern.MatchString(tab) {
		return ErrInvalidTab
	}

	raw, err := json.Marshal(tab)
	if err != nil {
		return err
	}
	return s.repo.Put(ctx, ownerID, activeTabKey, raw)
}
