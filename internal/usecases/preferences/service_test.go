package preferences

import (
	"context"
	"testing"
	"time"

	"github.com/grupold/bi-marmoraria-api/infrastructure/repository/mocks"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockPreferenceRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPreferenceRepository(ctrl)
	return &Service{repo: repo, now: func() time.Time { return fixedNow }}, repo
}

func TestService_SaveFilter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		view     string
		state    domain.FilterState
		setup    func(repo *mocks.MockPreferenceRepository)
		validate func(t *testing.T, saved *domain.FilterState, err error)
	}{
		{
			name:  "modo mês descarta as datas",
			view:  "overview",
			state: domain.FilterState{Mode: domain.FilterModeMonth, Month: "2024-05", StartDate: "2024-01-01"},
			setup: func(repo *mocks.MockPreferenceRepository) {
				repo.EXPECT().Put(ctx, 1, "filter:overview", gomock.Any()).DoAndReturn(
					func(_ context.Context, _ int, _ string, raw []byte) error {
						var state domain.FilterState
						require.NoError(t, json.Unmarshal(raw, &state))
						assert.Equal(t, domain.MonthKey("2024-05"), state.Month)
						assert.Empty(t, state.StartDate)
						return nil
					})
			},
			validate: func(t *testing.T, saved *domain.FilterState, err error) {
				require.NoError(t, err)
				assert.Equal(t, "overview", saved.View)
				assert.Equal(t, fixedNow, saved.UpdatedAt)
			},
		},
		{
			name:  "modo intervalo",
			view:  "sellers",
			state: domain.FilterState{Mode: domain.FilterModeRange, StartDate: "2024-01-01", EndDate: "2024-03-31", Month: "2024-02"},
			setup: func(repo *mocks.MockPreferenceRepository) {
				repo.EXPECT().Put(ctx, 1, "filter:sellers", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, saved *domain.FilterState, err error) {
				require.NoError(t, err)
				assert.Empty(t, saved.Month)
				assert.Equal(t, "2024-03-31", saved.EndDate)
			},
		},
		{
			name:  "intervalo invertido",
			view:  "sellers",
			state: domain.FilterState{Mode: domain.FilterModeRange, StartDate: "2024-03-01", EndDate: "2024-01-01"},
			setup: func(repo *mocks.MockPreferenceRepository) {},
			validate: func(t *testing.T, saved *domain.FilterState, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidFilter)
			},
		},
		{
			name:  "mês inválido",
			view:  "overview",
			state: domain.FilterState{Mode: domain.FilterModeMonth, Month: "maio"},
			setup: func(repo *mocks.MockPreferenceRepository) {},
			validate: func(t *testing.T, saved *domain.FilterState, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidFilter)
			},
		},
		{
			name:  "modo desconhecido",
			view:  "overview",
			state: domain.FilterState{Mode: "semana"},
			setup: func(repo *mocks.MockPreferenceRepository) {},
			validate: func(t *testing.T, saved *domain.FilterState, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidFilter)
			},
		},
		{
			name:  "visão inválida",
			view:  "../etc",
			state: domain.FilterState{Mode: domain.FilterModeMonth, Month: "2024-05"},
			setup: func(repo *mocks.MockPreferenceRepository) {},
			validate: func(t *testing.T, saved *domain.FilterState, err error) {
				assert.ErrorIs(t, err, ErrInvalidView)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			saved, err := service.SaveFilter(ctx, 1, tt.view, tt.state)
			tt.validate(t, saved, err)
		})
	}
}

func TestService_GetAll(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	repo.EXPECT().List(ctx, 1).Return(map[string][]byte{
		"active_tab":        []byte(`"dre"`),
		"filter:overview":   []byte(`{"view":"overview","mode":"month","month":"2024-05"}`),
		"filter:quebrado":   []byte(`{nao e json`),
		"outra_preferencia": []byte(`1`),
	}, nil)

	prefs, err := service.GetAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "dre", prefs.ActiveTab)
	require.Len(t, prefs.Filters, 1)
	assert.Equal(t, domain.MonthKey("2024-05"), prefs.Filters["overview"].Month)
}

func TestService_ActiveTab(t *testing.T) {
	ctx := context.Background()

	t.Run("grava e lê", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().Put(ctx, 1, "active_tab", []byte(`"sellers"`)).Return(nil)
		repo.EXPECT().Get(ctx, 1, "active_tab").Return([]byte(`"sellers"`), nil)

		require.NoError(t, service.SaveActiveTab(ctx, 1, "sellers"))

		tab, err := service.GetActiveTab(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "sellers", tab)
	})

	t.Run("sem aba salva", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().Get(ctx, 1, "active_tab").Return(nil, nil)

		tab, err := service.GetActiveTab(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, tab)
	})

	t.Run("aba inválida", func(t *testing.T) {
		service, _ := newTestService(t)
		assert.ErrorIs(t, service.SaveActiveTab(ctx, 1, ""), ErrInvalidTab)
		assert.ErrorIs(t, service.SaveActiveTab(ctx, 0, "dre"), ErrMissingOwner)
	})
}

func TestService_GetFilter(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	repo.EXPECT().Get(ctx, 1, "filter:annual").Return(nil, nil)

	state, err := service.GetFilter(ctx, 1, "annual")
	require.NoError(t, err)
	assert.Nil(t, state)
}
