package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/reporting"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/grupold/bi-marmoraria-api/pkg/middleware"
	"github.com/pkg/errors"
)

func GetOverview(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		filter, _, err := parseSalesFilter(r)
		if err != nil {
			writeFilterError(w, err)
			return
		}

		overview, err := service.Overview(r.Context(), ownerID, filter)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, overview)
	}
}

func GetRevenueSeries(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		filter, _, err := parseSalesFilter(r)
		if err != nil {
			writeFilterError(w, err)
			return
		}

		series, err := service.RevenueSeries(r.Context(), ownerID, filter)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, series)
	}
}

func GetAvailableYears(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		years, err := service.AvailableYears(r.Context(), ownerID)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"years": years})
	}
}

// GetAnnualDRE devolve os 12 meses do ano no cenário pedido (mode=REAL|SIM)
func GetAnnualDRE(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		year, ok := pathYear(r, "year")
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido", nil)
			return
		}

		report, err := service.AnnualDRE(r.Context(), ownerID, year, scenarioFromQuery(r))
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func ExportAnnualDRE(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		year, ok := pathYear(r, "year")
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido", nil)
			return
		}

		export, err := service.ExportAnnualDRE(r.Context(), ownerID, year, scenarioFromQuery(r))
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(export.Content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar planilha do DRE anual")
		}
	}
}

func scenarioFromQuery(r *http.Request) domain.Scenario {
	mode := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("mode")))
	if mode == "" {
		return domain.ScenarioReal
	}
	return domain.Scenario(mode)
}

func handleReportError(w http.ResponseWriter, r *http.Request, err error) {
	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		if reportErr.Code == apiErrors.ErrInternalServer {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar relatório")
		}
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), reportErr.Details)
		return
	}

	if errors.Is(err, reporting.ErrMissingOwner) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, err.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro ao consultar relatório")
	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar vendas", nil)
}
