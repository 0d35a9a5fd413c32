package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grupold/bi-marmoraria-api/infrastructure/spreadsheet"
	"github.com/grupold/bi-marmoraria-api/internal/api/handler/router"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/importing"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/simulating"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authenticated(r *http.Request, ownerID int) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, &domain.Claims{UserID: ownerID})
	return r.WithContext(ctx)
}

func decodeAPIError(t *testing.T, body io.Reader) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(body).Decode(&apiErr))
	return apiErr
}

func TestParseSalesFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		byMonth  bool
		wantErr  bool
		validate func(t *testing.T, f domain.SalesFilter)
	}{
		{
			name:    "mês fechado",
			query:   "month=2024-02",
			byMonth: true,
			validate: func(t *testing.T, f domain.SalesFilter) {
				assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *f.StartDate)
				assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *f.EndDate)
			},
		},
		{
			name:  "intervalo livre",
			query: "start=2024-01-10&end=2024-03-05",
			validate: func(t *testing.T, f domain.SalesFilter) {
				assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), *f.StartDate)
				assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *f.EndDate)
			},
		},
		{
			name:  "sem período traz tudo",
			query: "",
			validate: func(t *testing.T, f domain.SalesFilter) {
				assert.Nil(t, f.StartDate)
				assert.Nil(t, f.EndDate)
			},
		},
		{name: "mês inválido", query: "month=2024-13", wantErr: true},
		{name: "fim antes do início", query: "start=2024-03-01&end=2024-02-01", wantErr: true},
		{name: "data em formato brasileiro", query: "start=01/02/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/reports/overview?"+tt.query, nil)
			filter, byMonth, err := parseSalesFilter(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.byMonth, byMonth)
			tt.validate(t, filter)
		})
	}
}

type fakeImporter struct {
	filename string
	content  string
	result   *importing.ImportResult
	err      error
}

func (f *fakeImporter) ImportFile(_ context.Context, _ int, filename string, r io.Reader) (*importing.ImportResult, error) {
	data, _ := io.ReadAll(r)
	f.filename = filename
	f.content = string(data)
	return f.result, f.err
}

func (f *fakeImporter) Import(context.Context, int, []spreadsheet.Row) (*importing.ImportResult, error) {
	return f.result, f.err
}

func (f *fakeImporter) ClearSales(context.Context, int) (int64, error) {
	return 0, f.err
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportSales(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		importer *fakeImporter
		validate func(t *testing.T, rec *httptest.ResponseRecorder, importer *fakeImporter)
	}{
		{
			name:  "planilha importada",
			field: "file",
			importer: &fakeImporter{
				result: &importing.ImportResult{BatchID: "LOTE1", RowsRead: 2, RowsCommitted: 2, BatchesCommitted: 1, BatchesTotal: 1},
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, importer *fakeImporter) {
				assert.Equal(t, http.StatusCreated, rec.Code)
				assert.Equal(t, "vendas.csv", importer.filename)
				assert.Equal(t, "Data;Vendedor\n", importer.content)

				var result importing.ImportResult
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
				assert.Equal(t, "LOTE1", result.BatchID)
			},
		},
		{
			name:  "falha parcial informa o que ficou gravado",
			field: "file",
			importer: &fakeImporter{
				result: &importing.ImportResult{BatchID: "LOTE2", BatchesCommitted: 2, BatchesTotal: 5},
				err: &importing.ImportError{
					Err:              importing.ErrBatchFailed,
					Code:             apiErrors.ErrPartialImport,
					BatchesCommitted: 2,
					RowsCommitted:    2000,
				},
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, importer *fakeImporter) {
				assert.Equal(t, http.StatusBadGateway, rec.Code)

				apiErr := decodeAPIError(t, rec.Body)
				assert.Equal(t, apiErrors.ErrPartialImport, apiErr.Code)
				details := apiErr.Details.(map[string]any)
				assert.EqualValues(t, 2, details["batches_committed"])
				assert.EqualValues(t, 2000, details["rows_committed"])
				assert.Equal(t, "LOTE2", details["batch_id"])
			},
		},
		{
			name:     "campo errado",
			field:    "planilha",
			importer: &fakeImporter{},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, importer *fakeImporter) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec.Body).Code)
				assert.Empty(t, importer.filename)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := router.New(router.WithRoutes(Imports(tt.importer, 1)...))

			body, contentType := multipartBody(t, tt.field, "vendas.csv", "Data;Vendedor\n")
			req := httptest.NewRequest(http.MethodPost, "/v1/imports", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, authenticated(req, 1))

			tt.validate(t, rec, tt.importer)
		})
	}
}

func TestRoutes_SemDono(t *testing.T) {
	rt := router.New(router.WithRoutes(Imports(&fakeImporter{}, 1)...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/sales", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidToken, decodeAPIError(t, rec.Body).Code)
}

func TestRouter_RotaInexistente(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck()...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nada", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthcheck", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type fakeSimulator struct {
	simulating.Simulator
	lastMonth string
	lastEdit  simulating.Edit
	err       error
}

func (f *fakeSimulator) ApplyEdit(_ context.Context, _ int, month string, edit simulating.Edit) (*simulating.MonthView, error) {
	f.lastMonth = month
	f.lastEdit = edit
	if f.err != nil {
		return nil, f.err
	}
	return &simulating.MonthView{MonthKey: domain.MonthKey(month), SaveStatus: simulating.StatusPending}, nil
}

func TestApplyEdit(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		validate func(t *testing.T, rec *httptest.ResponseRecorder, sim *fakeSimulator)
	}{
		{
			name: "edição aceita responde o mês recalculado",
			body: `{"scenario":"SIM","field":"tax","mode":"percent","value":8}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sim *fakeSimulator) {
				assert.Equal(t, http.StatusAccepted, rec.Code)
				assert.Equal(t, "2024-05", sim.lastMonth)
				assert.Equal(t, simulating.Edit{
					Scenario: domain.ScenarioSimulated,
					Field:    simulating.FieldTax,
					Mode:     simulating.ModePercent,
					Value:    8,
				}, sim.lastEdit)
			},
		},
		{
			name: "mês inválido",
			body: `{"scenario":"SIM","field":"tax","mode":"percent","value":8}`,
			err:  simulating.NewSimulationError(domain.ErrInvalidMonthKey, apiErrors.ErrInvalidMonth, "2024-05"),
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sim *fakeSimulator) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidMonth, decodeAPIError(t, rec.Body).Code)
			},
		},
		{
			name: "corpo inválido não chega ao simulador",
			body: `{"value":`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sim *fakeSimulator) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Empty(t, sim.lastMonth)
			},
		},
		{
			name: "erro de banco",
			body: `{"scenario":"REAL","field":"fixed_cost","mode":"value","value":1}`,
			err:  errors.New("conexão recusada"),
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sim *fakeSimulator) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, rec.Body).Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := &fakeSimulator{err: tt.err}
			rt := router.New(router.WithRoutes(Simulation(sim)...))

			req := httptest.NewRequest(http.MethodPatch, "/v1/dre/2024-05", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, authenticated(req, 1))

			tt.validate(t, rec, sim)
		})
	}
}

type fakeCronJob struct {
	triggered int
	err       error
}

func (f *fakeCronJob) TriggerManualSync(context.Context) error {
	f.triggered++
	return f.err
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"triggered": f.triggered}
}

func TestRunCronJob(t *testing.T) {
	monthly := &fakeCronJob{}
	cleanup := &fakeCronJob{err: errors.New("já em andamento")}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{
		MonthlyRecordsSync: monthly,
		SessionCleanup:     cleanup,
	})...))

	run := func(cronType string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/cron/"+cronType+"/run", nil)
		rt.ServeHTTP(rec, authenticated(req, 1))
		return rec
	}

	rec := run("monthly-records")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, monthly.triggered)
	assert.Zero(t, cleanup.triggered)

	rec = run("all")
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	jobs := body["jobs"].(map[string]any)
	assert.Equal(t, "iniciada", jobs["monthly-records"])
	assert.Equal(t, "já em andamento", jobs["session-cleanup"])

	rec = run("meta")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
