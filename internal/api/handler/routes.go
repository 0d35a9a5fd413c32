package handler

import (
	"net/http"

	"github.com/grupold/bi-marmoraria-api/internal/api/handler/router"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/authenticating"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/importing"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/preferences"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/ranking"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/reporting"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/simulating"
	"github.com/grupold/bi-marmoraria-api/pkg/middleware"
)

var ownerOnly = []func(http.Handler) http.Handler{middleware.RequireOwner()}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/logout",
			Method:      http.MethodPost,
			Handler:     Logout(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: ownerOnly,
		},
	}
}

func Imports(service importing.Importer, maxUploadMB int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/imports",
			Method:      http.MethodPost,
			Handler:     ImportSales(service, maxUploadMB),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodDelete,
			Handler:     ClearSales(service),
			Middlewares: ownerOnly,
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/overview",
			Method:      http.MethodGet,
			Handler:     GetOverview(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/reports/revenue-series",
			Method:      http.MethodGet,
			Handler:     GetRevenueSeries(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/reports/years",
			Method:      http.MethodGet,
			Handler:     GetAvailableYears(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/reports/annual/:year",
			Method:      http.MethodGet,
			Handler:     GetAnnualDRE(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/reports/annual/:year/export",
			Method:      http.MethodGet,
			Handler:     ExportAnnualDRE(service),
			Middlewares: ownerOnly,
		},
	}
}

func Rankings(service ranking.Ranker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/rankings/materials",
			Method:      http.MethodGet,
			Handler:     GetMaterialRanking(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/rankings/sellers",
			Method:      http.MethodGet,
			Handler:     GetSellerAnalysis(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/rankings/sellers/detail",
			Method:      http.MethodGet,
			Handler:     GetRankingDetail(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/goals",
			Method:      http.MethodGet,
			Handler:     ListGoals(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/goals",
			Method:      http.MethodPut,
			Handler:     SetGoal(service),
			Middlewares: ownerOnly,
		},
	}
}

func Simulation(service simulating.Simulator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dre/:month",
			Method:      http.MethodGet,
			Handler:     OpenMonth(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/dre/:month",
			Method:      http.MethodPatch,
			Handler:     ApplyEdit(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/dre/:month/reset",
			Method:      http.MethodPost,
			Handler:     ResetMonth(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/financial/global",
			Method:      http.MethodGet,
			Handler:     GetGlobalConfig(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/financial/global",
			Method:      http.MethodPut,
			Handler:     SaveGlobalConfig(service),
			Middlewares: ownerOnly,
		},
	}
}

func Preferences(service preferences.Store) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/preferences",
			Method:      http.MethodGet,
			Handler:     GetPreferences(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/preferences/tab",
			Method:      http.MethodPut,
			Handler:     SaveActiveTab(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/preferences/filters/:view",
			Method:      http.MethodPut,
			Handler:     SaveFilter(service),
			Middlewares: ownerOnly,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: ownerOnly,
		},
	}
}
