package middleware

import (
	"net/http"

	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// RequireOwner barra a rota quando não há dono autenticado no contexto.
// Todas as operações do painel dependem do owner id das claims.
func RequireOwner() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := OwnerID(r); !ok {
				logrus.WithField("path", r.URL.Path).Warning("Tentativa de acesso sem dono autenticado")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerID extrai o id do dono das claims colocadas pelo AuthMiddleware
func OwnerID(r *http.Request) (int, bool) {
	claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
	if !ok || claims == nil || claims.UserID <= 0 {
		return 0, false
	}
	return claims.UserID, true
}
