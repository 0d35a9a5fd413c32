package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/authenticating"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	authenticating.Authenticator
	claims *domain.Claims
	err    error
}

func (f *fakeAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		auth       *fakeAuthenticator
		wantStatus int
		wantCode   string
		wantOwner  int
	}{
		{
			name:       "rota pública dispensa token",
			path:       "/v1/login",
			auth:       &fakeAuthenticator{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "sem cabeçalho",
			path:       "/v1/dre/2024-01",
			auth:       &fakeAuthenticator{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "sem prefixo Bearer",
			path:       "/v1/dre/2024-01",
			header:     "abc",
			auth:       &fakeAuthenticator{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "token expirado",
			path:       "/v1/dre/2024-01",
			header:     "Bearer abc",
			auth:       &fakeAuthenticator{err: authenticating.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:       "token revogado",
			path:       "/v1/dre/2024-01",
			header:     "Bearer abc",
			auth:       &fakeAuthenticator{err: authenticating.ErrRevokedToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "token válido coloca o dono no contexto",
			path:       "/v1/dre/2024-01",
			header:     "Bearer abc",
			auth:       &fakeAuthenticator{claims: &domain.Claims{UserID: 42}},
			wantStatus: http.StatusOK,
			wantOwner:  42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner int
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOwner, _ = OwnerID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.auth)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var apiErr apiErrors.APIError
				require.NoError(t, jsoniter.NewDecoder(rec.Body).Decode(&apiErr))
				assert.Equal(t, tt.wantCode, apiErr.Code)
			}
			assert.Equal(t, tt.wantOwner, gotOwner)
		})
	}
}

func TestRequireOwner(t *testing.T) {
	handler := RequireOwner()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/goals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/goals", nil)
	req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, &domain.Claims{UserID: 0}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/goals", nil)
	req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, &domain.Claims{UserID: 3}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/goals", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/goals", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/goals", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
