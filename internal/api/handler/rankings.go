package handler

import (
	"net/http"
	"strings"

	"github.com/grupold/bi-marmoraria-api/internal/usecases/ranking"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/grupold/bi-marmoraria-api/pkg/middleware"
	"github.com/pkg/errors"
)

type SetGoalRequest struct {
	SellerName string  `json:"seller_name"`
	GoalValue  float64 `json:"goal_value"`
}

func GetMaterialRanking(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		filter, _, err := parseSalesFilter(r)
		if err != nil {
			writeFilterError(w, err)
			return
		}

		result, err := service.MaterialRanking(r.Context(), ownerID, filter)
		if err != nil {
			handleRankingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

// GetSellerAnalysis aceita seller=<nome> para restringir a um vendedor.
// Metas só entram quando o filtro é por mês.
func GetSellerAnalysis(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		filter, byMonth, err := parseSalesFilter(r)
		if err != nil {
			writeFilterError(w, err)
			return
		}

		result, err := service.SellerAnalysis(r.Context(), ownerID, filter, ranking.SellerOptions{
			Seller:    strings.TrimSpace(r.URL.Query().Get("seller")),
			WithGoals: byMonth,
		})
		if err != nil {
			handleRankingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

// GetRankingDetail detalha por material as vendas de um vendedor ou cliente (kind=seller|client)
func GetRankingDetail(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		filter, _, err := parseSalesFilter(r)
		if err != nil {
			writeFilterError(w, err)
			return
		}

		query := r.URL.Query()
		name := strings.TrimSpace(query.Get("name"))
		if name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro name é obrigatório", nil)
			return
		}

		details, err := service.Detail(r.Context(), ownerID, filter, ranking.DetailKind(query.Get("kind")), name)
		if err != nil {
			handleRankingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, details)
	}
}

func ListGoals(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		goals, err := service.ListGoals(r.Context(), ownerID)
		if err != nil {
			handleRankingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, goals)
	}
}

func SetGoal(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		var req SetGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		goal, err := service.SetGoal(r.Context(), ownerID, req.SellerName, req.GoalValue)
		if err != nil {
			handleRankingError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, goal)
	}
}

func handleRankingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ranking.ErrMissingOwner):
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, err.Error(), nil)

	case errors.Is(err, ranking.ErrMissingSeller):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, ranking.ErrInvalidGoal), errors.Is(err, ranking.ErrInvalidDetailKind):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro ao consultar ranking")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar ranking", nil)
	}
}
