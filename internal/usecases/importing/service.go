// Package importing transforma a planilha de vendas em SalesRecord e grava em lotes
package importing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/grupold/bi-marmoraria-api/infrastructure/repository"
	"github.com/grupold/bi-marmoraria-api/infrastructure/spreadsheet"
	"github.com/grupold/bi-marmoraria-api/internal/config"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/pkg/apiErrors"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/grupold/bi-marmoraria-api/pkg/utils"
	"github.com/pkg/errors"
)

const defaultBatchSize = 1000

type Importer interface {
	ImportFile(ctx context.Context, ownerID int, filename string, r io.Reader) (*ImportResult, error)
	Import(ctx context.Context, ownerID int, rows []spreadsheet.Row) (*ImportResult, error)
	ClearSales(ctx context.Context, ownerID int) (int64, error)
}

// ImportResult resume o que foi lido e gravado
type ImportResult struct {
	BatchID          string `json:"batch_id"`
	RowsRead         int    `json:"rows_read"`
	RowsSkipped      int    `json:"rows_skipped"`
	RowsCommitted    int    `json:"rows_committed"`
	BatchesCommitted int    `json:"batches_committed"`
	BatchesTotal     int    `json:"batches_total"`
}

type Service struct {
	salesRepo repository.SalesRecordRepository
	batchSize int
	threshold float64
	now       func() time.Time
	newID     func() (string, error)
}

func NewService(salesRepo repository.SalesRecordRepository, cfg *config.Config) *Service {
	batchSize := cfg.Import.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	threshold := cfg.Financial.HighValueThreshold
	if threshold <= 0 {
		threshold = domain.DefaultHighValueThreshold
	}

	return &Service{
		salesRepo: salesRepo,
		batchSize: batchSize,
		threshold: threshold,
		now:       time.Now,
		newID:     utils.GenerateID,
	}
}

// ImportFile lê o arquivo enviado e importa suas linhas
func (s *Service) ImportFile(ctx context.Context, ownerID int, filename string, r io.Reader) (*ImportResult, error) {
	rows, err := spreadsheet.ReadRows(filename, r)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Planilha rejeitada")
		return nil, &ImportError{
			Err:     errors.Wrap(ErrInvalidSpreadsheet, err.Error()),
			Code:    apiErrors.ErrInvalidSpreadsheet,
			Details: filename,
		}
	}

	return s.Import(ctx, ownerID, rows)
}

// Import normaliza as linhas e grava em lotes sequenciais. Uma falha em um lote
// interrompe a importação; os lotes anteriores continuam gravados.
func (s *Service) Import(ctx context.Context, ownerID int, rows []spreadsheet.Row) (*ImportResult, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}

	if len(rows) == 0 {
		return nil, NewImportError(ErrEmptySpreadsheet, apiErrors.ErrEmptySpreadsheet, "")
	}

	batchID, err := s.newID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar batch_id")
	}

	now := s.now()
	records := make([]*domain.SalesRecord, 0, len(rows))
	for _, row := range rows {
		raw, ok := ExtractRawSale(row, now)
		if !ok {
			continue
		}
		records = append(records, raw.ToRecord(ownerID, batchID, s.threshold))
	}

	result := &ImportResult{
		BatchID:      batchID,
		RowsRead:     len(rows),
		RowsSkipped:  len(rows) - len(records),
		BatchesTotal: (len(records) + s.batchSize - 1) / s.batchSize,
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":  ownerID,
		"batch_id": batchID,
	})
	logger.Infof("Importando %d vendas (%d linhas sem data ignoradas)", len(records), result.RowsSkipped)

	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))

		if err := s.salesRepo.InsertBatch(ctx, records[start:end]); err != nil {
			logger.WithError(err).Errorf("Falha no lote %d de %d", result.BatchesCommitted+1, result.BatchesTotal)
			return result, &ImportError{
				Err:              errors.Wrap(ErrBatchFailed, err.Error()),
				Code:             apiErrors.ErrPartialImport,
				BatchesCommitted: result.BatchesCommitted,
				RowsCommitted:    result.RowsCommitted,
				Details:          fmt.Sprintf("lote %d de %d", result.BatchesCommitted+1, result.BatchesTotal),
			}
		}

		result.BatchesCommitted++
		result.RowsCommitted += end - start
	}

	logger.Infof("Importação concluída: %d vendas gravadas", result.RowsCommitted)
	return result, nil
}

// ClearSales apaga todas as vendas do dono
func (s *Service) ClearSales(ctx context.Context, ownerID int) (int64, error) {
	if ownerID <= 0 {
		return 0, ErrMissingOwner
	}

	deleted, err := s.salesRepo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	log.ForContext(ctx).WithField("user_id", ownerID).Infof("%d vendas apagadas", deleted)
	return deleted, nil
}
