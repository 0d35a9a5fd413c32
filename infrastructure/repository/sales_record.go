// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/grupold/bi-marmoraria-api/infrastructure/database/postgres"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
)

const (
	salesRecordsTable = "sales_records"
	defaultPageSize   = 1000
)

var salesRecordColumns = []string{
	"id",
	"user_id",
	"batch_id",
	"sale_date",
	"seller_name",
	"client_name",
	"material_name",
	"revenue",
	"cost",
	"freight",
	"m2_total",
	"sale_type",
	"created_at",
}

type SalesRecordRepository interface {
	InsertBatch(ctx context.Context, records []*domain.SalesRecord) error
	ListByOwner(ctx context.Context, ownerID int, filter domain.SalesFilter) ([]*domain.SalesRecord, error)
	DeleteByOwner(ctx context.Context, ownerID int) (int64, error)
	AggregateMonth(ctx context.Context, ownerID int, month domain.MonthKey) (*domain.MonthlyAggregate, error)
	AggregateYear(ctx context.Context, ownerID int, year int) (map[domain.MonthKey]domain.MonthlyAggregate, error)
	AvailableYears(ctx context.Context, ownerID int) ([]int, error)
}

type salesRecordRepository struct {
	conn     postgres.Conn
	pageSize uint64
}

func NewSalesRecordRepository(conn postgres.Conn, pageSize int) SalesRecordRepository {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &salesRecordRepository{
		conn:     conn,
		pageSize: uint64(pageSize),
	}
}

// InsertBatch grava um lote em um único INSERT multi-valores
func (r *salesRecordRepository) InsertBatch(ctx context.Context, records []*domain.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := squirrel.
		Insert(salesRecordsTable).
		Columns(
			"user_id",
			"batch_id",
			"sale_date",
			"seller_name",
			"client_name",
			"material_name",
			"revenue",
			"cost",
			"freight",
			"m2_total",
			"sale_type",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		query = query.Values(
			rec.OwnerID,
			rec.BatchID,
			rec.SaleDate,
			rec.SellerName,
			rec.ClientName,
			rec.MaterialName,
			rec.Revenue,
			rec.Cost,
			rec.Freight,
			rec.AreaM2,
			string(rec.SaleType),
		)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao inserir lote de vendas: %w", err)
	}

	return nil
}

// ListByOwner percorre as vendas em páginas até receber uma página incompleta
func (r *salesRecordRepository) ListByOwner(ctx context.Context, ownerID int, filter domain.SalesFilter) ([]*domain.SalesRecord, error) {
	records := make([]*domain.SalesRecord, 0)

	for offset := uint64(0); ; offset += r.pageSize {
		queryBuilder := squirrel.
			Select(salesRecordColumns...).
			From(salesRecordsTable).
			Where(squirrel.Eq{"user_id": ownerID}).
			OrderBy("sale_date ASC", "id ASC").
			Limit(r.pageSize).
			Offset(offset).
			PlaceholderFormat(squirrel.Dollar)

		if filter.StartDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"sale_date": filter.StartDate.Format("2006-01-02")})
		}
		if filter.EndDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"sale_date": filter.EndDate.Format("2006-01-02")})
		}

		sqlQuery, args, err := queryBuilder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("erro ao construir a query: %w", err)
		}

		page, err := r.queryRecords(ctx, sqlQuery, args...)
		if err != nil {
			return nil, err
		}

		records = append(records, page...)

		if uint64(len(page)) < r.pageSize {
			break
		}
	}

	return records, nil
}

func (r *salesRecordRepository) queryRecords(ctx context.Context, sqlQuery string, args ...any) ([]*domain.SalesRecord, error) {
	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	page := make([]*domain.SalesRecord, 0, r.pageSize)
	for rows.Next() {
		rec := &domain.SalesRecord{}
		var saleType string
		var batchID sql.NullString

		err := rows.Scan(
			&rec.ID,
			&rec.OwnerID,
			&batchID,
			&rec.SaleDate,
			&rec.SellerName,
			&rec.ClientName,
			&rec.MaterialName,
			&rec.Revenue,
			&rec.Cost,
			&rec.Freight,
			&rec.AreaM2,
			&saleType,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}

		rec.BatchID = batchID.String
		rec.SaleType = domain.SaleClass(saleType)
		page = append(page, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return page, nil
}

func (r *salesRecordRepository) DeleteByOwner(ctx context.Context, ownerID int) (int64, error) {
	sqlQuery, args, err := squirrel.
		Delete(salesRecordsTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao apagar vendas: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}

	return affected, nil
}

func (r *salesRecordRepository) AggregateMonth(ctx context.Context, ownerID int, month domain.MonthKey) (*domain.MonthlyAggregate, error) {
	first, last, err := month.Range()
	if err != nil {
		return nil, err
	}

	sqlQuery, args, err := squirrel.
		Select(
			"COALESCE(SUM(revenue), 0)",
			"COALESCE(SUM(cost), 0)",
			"COALESCE(SUM(freight), 0)",
			"COUNT(*)",
		).
		From(salesRecordsTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		Where(squirrel.GtOrEq{"sale_date": first.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"sale_date": last.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	agg := &domain.MonthlyAggregate{MonthKey: month}
	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&agg.Revenue, &agg.Cost, &agg.Freight, &agg.Count)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar vendas do mês: %w", err)
	}

	return agg, nil
}

func (r *salesRecordRepository) AggregateYear(ctx context.Context, ownerID int, year int) (map[domain.MonthKey]domain.MonthlyAggregate, error) {
	sqlQuery, args, err := squirrel.
		Select(
			"TO_CHAR(sale_date, 'YYYY-MM') AS month_key",
			"COALESCE(SUM(revenue), 0)",
			"COALESCE(SUM(cost), 0)",
			"COALESCE(SUM(freight), 0)",
			"COUNT(*)",
		).
		From(salesRecordsTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		Where(squirrel.Expr("EXTRACT(YEAR FROM sale_date) = ?", year)).
		GroupBy("month_key").
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

	result := make(map[domain.MonthKey]domain.MonthlyAggregate)
	for rows.Next() {
		var agg domain.MonthlyAggregate
		var key string
		if err := rows.Scan(&key, &agg.Revenue, &agg.Cost, &agg.Freight, &agg.Count); err != nil {
			return nil, fmt.Errorf("erro ao escanear agregado mensal: %w", err)
		}
		agg.MonthKey = domain.MonthKey(key)
		result[agg.MonthKey] = agg
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *salesRecordRepository) AvailableYears(ctx context.Context, ownerID int) ([]int, error) {
	sqlQuery, args, err := squirrel.
		Select("DISTINCT EXTRACT(YEAR FROM sale_date)::int AS year").
		From(salesRecordsTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("year DESC").
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

	years := make([]int, 0)
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("erro ao escanear ano: %w", err)
		}
		years = append(years, year)
	}

	return years, rows.Err()
}
