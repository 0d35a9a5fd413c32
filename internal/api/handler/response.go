package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// parseSalesFilter lê o período da query. month=YYYY-MM tem prioridade sobre start/end.
// O segundo retorno indica se o filtro é de um mês fechado.
func parseSalesFilter(r *http.Request) (domain.SalesFilter, bool, error) {
	query := r.URL.Query()

	if month := query.Get("month"); month != "" {
		key, err := domain.ParseMonthKey(month)
		if err != nil {
			return domain.SalesFilter{}, false, err
		}
		filter, err := domain.FilterState{Mode: domain.FilterModeMonth, Month: key}.SalesFilter()
		return filter, true, err
	}

	filter, err := domain.FilterState{
		Mode:      domain.FilterModeRange,
		StartDate: query.Get("start"),
		EndDate:   query.Get("end"),
	}.SalesFilter()
	return filter, false, err
}

func writeFilterError(w http.ResponseWriter, err error) {
	apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período inválido", map[string]any{
		"error":  err.Error(),
		"format": time.DateOnly,
	})
}

func pathYear(r *http.Request, name string) (int, bool) {
	year, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName(name))
	if err != nil {
		return 0, false
	}
	return year, true
}
