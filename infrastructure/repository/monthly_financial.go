package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/grupold/bi-marmoraria-api/infrastructure/database/postgres"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
)

const monthlyDataTable = "financial_monthly_data"

var monthlyDataColumns = []string{
	"user_id",
	"month_key",
	"tax_rate",
	"default_rate",
	"commission_rate",
	"fixed_cost",
	"variable_cost",
	"sim_revenue",
	"sim_cost_chapa",
	"sim_cost_freight",
	"sim_tax_rate",
	"sim_default_rate",
	"sim_commission_rate",
	"sim_fixed_cost",
	"sim_variable_cost",
}

type MonthlyFinancialRepository interface {
	Get(ctx context.Context, ownerID int, month domain.MonthKey) (*domain.MonthlyFinancialRecord, error)
	ListByYear(ctx context.Context, ownerID int, year int) (map[domain.MonthKey]*domain.MonthlyFinancialRecord, error)
	InsertIfAbsent(ctx context.Context, record *domain.MonthlyFinancialRecord) (bool, error)
	Upsert(ctx context.Context, record *domain.MonthlyFinancialRecord) error
}

type monthlyFinancialRepository struct {
	conn postgres.Conn
}

func NewMonthlyFinancialRepository(conn postgres.Conn) MonthlyFinancialRepository {
	return &monthlyFinancialRepository{
		conn: conn,
	}
}

func (r *monthlyFinancialRepository) Get(ctx context.Context, ownerID int, month domain.MonthKey) (*domain.MonthlyFinancialRecord, error) {
	sqlQuery, args, err := squirrel.
		Select(append(monthlyDataColumns, "updated_at")...).
		From(monthlyDataTable).
		Where(squirrel.Eq{"user_id": ownerID, "month_key": string(month)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record, err := scanMonthlyRecord(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar dados do mês: %w", err)
	}

	return record, nil
}

func (r *monthlyFinancialRepository) ListByYear(ctx context.Context, ownerID int, year int) (map[domain.MonthKey]*domain.MonthlyFinancialRecord, error) {
	sqlQuery, args, err := squirrel.
		Select(append(monthlyDataColumns, "updated_at")...).
		From(monthlyDataTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		Where(squirrel.Like{"month_key": fmt.Sprintf("%04d-%%", year)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make(map[domain.MonthKey]*domain.MonthlyFinancialRecord)
	for rows.Next() {
		record, err := scanMonthlyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear dados do mês: %w", err)
		}
		result[record.MonthKey] = record
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

// InsertIfAbsent cria o registro do mês se ainda não existir. Retorna true quando inseriu.
func (r *monthlyFinancialRepository) InsertIfAbsent(ctx context.Context, record *domain.MonthlyFinancialRecord) (bool, error) {
	sqlQuery, args, err := squirrel.
		Insert(monthlyDataTable).
		Columns(monthlyDataColumns...).
		Values(monthlyRecordValues(record)...).
		Suffix("ON CONFLICT (user_id, month_key) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao inserir dados do mês: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, nil
	}

	return affected > 0, nil
}

// Upsert grava a linha inteira do mês. A última escrita vence.
func (r *monthlyFinancialRepository) Upsert(ctx context.Context, record *domain.MonthlyFinancialRecord) error {
	return upsertMonthlyRecord(ctx, r.conn, record)
}

func upsertMonthlyRecord(ctx context.Context, q postgres.Queryer, record *domain.MonthlyFinancialRecord) error {
	sqlQuery, args, err := squirrel.
		Insert(monthlyDataTable).
		Columns(monthlyDataColumns...).
		Values(monthlyRecordValues(record)...).
		Suffix(`
			ON CONFLICT (user_id, month_key) DO UPDATE SET
				tax_rate = EXCLUDED.tax_rate,
				default_rate = EXCLUDED.default_rate,
				commission_rate = EXCLUDED.commission_rate,
				fixed_cost = EXCLUDED.fixed_cost,
				variable_cost = EXCLUDED.variable_cost,
				sim_revenue = EXCLUDED.sim_revenue,
				sim_cost_chapa = EXCLUDED.sim_cost_chapa,
				sim_cost_freight = EXCLUDED.sim_cost_freight,
				sim_tax_rate = EXCLUDED.sim_tax_rate,
				sim_default_rate = EXCLUDED.sim_default_rate,
				sim_commission_rate = EXCLUDED.sim_commission_rate,
				sim_fixed_cost = EXCLUDED.sim_fixed_cost,
				sim_variable_cost = EXCLUDED.sim_variable_cost,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de upsert: %w", err)
	}

	if _, err = q.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao salvar dados do mês: %w", err)
	}

	return nil
}

func monthlyRecordValues(record *domain.MonthlyFinancialRecord) []any {
	return []any{
		record.OwnerID,
		string(record.MonthKey),
		record.TaxRate,
		record.DelinquencyRate,
		record.CommissionRate,
		record.FixedCost,
		record.VariableCost,
		record.SimRevenue,
		record.SimCostChapa,
		record.SimCostFreight,
		record.SimTaxRate,
		record.SimDelinquencyRate,
		record.SimCommissionRate,
		record.SimFixedCost,
		record.SimVariableCost,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMonthlyRecord(row rowScanner) (*domain.MonthlyFinancialRecord, error) {
	var (
		monthKey string
		nulls    [13]sql.NullFloat64
		record   = &domain.MonthlyFinancialRecord{}
	)

	dest := []any{&record.OwnerID, &monthKey}
	for i := range nulls {
		dest = append(dest, &nulls[i])
	}
	dest = append(dest, &record.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	record.MonthKey = domain.MonthKey(monthKey)
	targets := []**float64{
		&record.TaxRate,
		&record.DelinquencyRate,
		&record.CommissionRate,
		&record.FixedCost,
		&record.VariableCost,
		&record.SimRevenue,
		&record.SimCostChapa,
		&record.SimCostFreight,
		&record.SimTaxRate,
		&record.SimDelinquencyRate,
		&record.SimCommissionRate,
		&record.SimFixedCost,
		&record.SimVariableCost,
	}
	for i, target := range targets {
		if nulls[i].Valid {
			v := nulls[i].Float64
			*target = &v
		}
	}

	return record, nil
}
