package handler

import (
	"net/http"

	"github.com/grupold/bi-marmoraria-api/internal/usecases/importing"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/grupold/bi-marmoraria-api/pkg/middleware"
	"github.com/pkg/errors"
)

const defaultMaxUploadMB = 32

// ImportSales recebe a planilha no campo multipart "file"
func ImportSales(service importing.Importer, maxUploadMB int64) http.HandlerFunc {
	if maxUploadMB <= 0 {
		maxUploadMB = defaultMaxUploadMB
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadMB<<20)
		if err := r.ParseMultipartForm(maxUploadMB << 20); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Envie a planilha no campo file", map[string]any{
				"max_upload_mb": maxUploadMB,
			})
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo não enviado", nil)
			return
		}
		defer file.Close()

		result, err := service.ImportFile(r.Context(), ownerID, header.Filename, file)
		if err != nil {
			handleImportError(w, r, result, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, result)
	}
}

// ClearSales apaga a base de vendas do dono
func ClearSales(service importing.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := middleware.OwnerID(r)

		deleted, err := service.ClearSales(r.Context(), ownerID)
		if err != nil {
			handleImportError(w, r, nil, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"deleted": deleted})
	}
}

func handleImportError(w http.ResponseWriter, r *http.Request, result *importing.ImportResult, err error) {
	var importErr *importing.ImportError
	if errors.As(err, &importErr) {
		details := map[string]any{"details": importErr.Details}
		if importErr.Code == apiErrors.ErrPartialImport {
			details["batches_committed"] = importErr.BatchesCommitted
			details["rows_committed"] = importErr.RowsCommitted
			if result != nil {
				details["batch_id"] = result.BatchID
				details["batches_total"] = result.BatchesTotal
			}
		}
		apiErrors.WriteError(w, importErr.Code, importErr.Error(), details)
		return
	}

	if errors.Is(err, importing.ErrMissingOwner) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, err.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro na importação de vendas")
	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar vendas", nil)
}
