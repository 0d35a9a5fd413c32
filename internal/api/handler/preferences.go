package handler

import (
	"net/http"

	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/preferences"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/grupold/bi-marmoraria-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

type ActiveTabRequest struct {
	Tab string `json:"tab"`
}

func GetPreferences(service preferences.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		prefs, err := service.GetAll(r.Context(), ownerID)
		if err != nil {
			handlePreferenceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, prefs)
	}
}

func SaveActiveTab(service preferences.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		var req ActiveTabRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := service.SaveActiveTab(r.Context(), ownerID, req.Tab); err != nil {
			handlePreferenceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, req)
	}
}

func SaveFilter(service preferences.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)
		view := httprouter.ParamsFromContext(r.Context()).ByName("view")

		var state domain.FilterState
		if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		saved, err := service.SaveFilter(r.Context(), ownerID, view, state)
		if err != nil {
			handlePreferenceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, saved)
	}
}

func handlePreferenceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, preferences.ErrMissingOwner):
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, err.Error(), nil)

	case errors.Is(err, preferences.ErrInvalidView), errors.Is(err, preferences.ErrInvalidTab):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, domain.ErrInvalidFilter):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro ao acessar preferências")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao acessar preferências", nil)
	}
}
