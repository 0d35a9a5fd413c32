package handler

import (
	"net/http"

	"github.com/grupold/bi-marmoraria-api/internal/usecases/simulating"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/grupold/bi-marmoraria-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// OpenMonth devolve os dois cenários do mês, criando o registro na primeira abertura
func OpenMonth(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)
		month := httprouter.ParamsFromContext(r.Context()).ByName("month")

		view, err := service.OpenMonth(r.Context(), ownerID, month)
		if err != nil {
			handleSimulationError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, view)
	}
}

// ApplyEdit responde já com o DRE recalculado; a gravação acontece depois do debounce
func ApplyEdit(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)
		month := httprouter.ParamsFromContext(r.Context()).ByName("month")

		var edit simulating.Edit
		if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		view, err := service.ApplyEdit(r.Context(), ownerID, month, edit)
		if err != nil {
			handleSimulationError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusAccepted, view)
	}
}

func ResetMonth(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)
		month := httprouter.ParamsFromContext(r.Context()).ByName("month")

		view, err := service.Reset(r.Context(), ownerID, month)
		if err != nil {
			handleSimulationError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, view)
	}
}

func GetGlobalConfig(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		global, err := service.GetGlobal(r.Context(), ownerID)
		if err != nil {
			handleSimulationError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, global)
	}
}

func SaveGlobalConfig(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		var input simulating.GlobalInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.SaveGlobal(r.Context(), ownerID, input)
		if err != nil {
			handleSimulationError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func handleSimulationError(w http.ResponseWriter, r *http.Request, err error) {
	var simErr *simulating.SimulationError
	if errors.As(err, &simErr) {
		apiErrors.WriteError(w, simErr.Code, simErr.Err.Error(), map[string]any{
			"month_key": simErr.MonthKey,
		})
		return
	}

	if errors.Is(err, simulating.ErrMissingOwner) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, err.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro no simulador do DRE")
	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar ou gravar o DRE", nil)
}
