package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/grupold/bi-marmoraria-api/infrastructure/database/postgres"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/lib/pq"
)

const (
	globalConfigTable = "financial_global_config"

	// código do Postgres para violação de UNIQUE
	uniqueViolation = "23505"
)

type GlobalConfigRepository interface {
	Get(ctx context.Context, ownerID int) (*domain.GlobalFinancialConfig, error)
	Insert(ctx context.Context, cfg *domain.GlobalFinancialConfig) error
	Upsert(ctx context.Context, cfg *domain.GlobalFinancialConfig) error
	UpsertWithMonth(ctx context.Context, cfg *domain.GlobalFinancialConfig, month *domain.MonthlyFinancialRecord) error
}

type globalConfigRepository struct {
	conn postgres.Conn
}

func NewGlobalConfigRepository(conn postgres.Conn) GlobalConfigRepository {
	return &globalConfigRepository{
		conn: conn,
	}
}

func (r *globalConfigRepository) Get(ctx context.Context, ownerID int) (*domain.GlobalFinancialConfig, error) {
	sqlQuery, args, err := squirrel.
		Select("user_id", "tax_rate", "default_rate", "commission_rate", "updated_at").
		From(globalConfigTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	cfg := &domain.GlobalFinancialConfig{}
	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(
		&cfg.OwnerID,
		&cfg.TaxRate,
		&cfg.DelinquencyRate,
		&cfg.CommissionRate,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar configuração global: %w", err)
	}

	return cfg, nil
}

// Insert cria a configuração padrão. Uma corrida com outra sessão não é erro.
func (r *globalConfigRepository) Insert(ctx context.Context, cfg *domain.GlobalFinancialConfig) error {
	sqlQuery, args, err := squirrel.
		Insert(globalConfigTable).
		Columns("user_id", "tax_rate", "default_rate", "commission_rate").
		Values(cfg.OwnerID, cfg.TaxRate, cfg.DelinquencyRate, cfg.CommissionRate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil
		}
		return fmt.Errorf("erro ao inserir configuração global: %w", err)
	}

	return nil
}

func (r *globalConfigRepository) Upsert(ctx context.Context, cfg *domain.GlobalFinancialConfig) error {
	return upsertGlobalConfig(ctx, r.conn, cfg)
}

// UpsertWithMonth grava a configuração global e o mês aberto na mesma transação
func (r *globalConfigRepository) UpsertWithMonth(ctx context.Context, cfg *domain.GlobalFinancialConfig, month *domain.MonthlyFinancialRecord) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := upsertGlobalConfig(ctx, tx, cfg); err != nil {
			return err
		}
		if month == nil {
			return nil
		}
		return upsertMonthlyRecord(ctx, tx, month)
	})
}

func upsertGlobalConfig(ctx context.Context, q postgres.Queryer, cfg *domain.GlobalFinancialConfig) error {
	sqlQuery, args, err := squirrel.
		Insert(globalConfigTable).
		Columns("user_id", "tax_rate", "default_rate", "commission_rate").
		Values(cfg.OwnerID, cfg.TaxRate, cfg.DelinquencyRate, cfg.CommissionRate).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				tax_rate = EXCLUDED.tax_rate,
				default_rate = EXCLUDED.default_rate,
				commission_rate = EXCLUDED.commission_rate,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de upsert: %w", err)
	}

	if _, err = q.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao salvar configuração global: %w", err)
	}

	return nil
}
