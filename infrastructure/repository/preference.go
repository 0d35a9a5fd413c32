package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/grupold/bi-marmoraria-api/infrastructure/database/postgres"
)

const preferencesTable = "user_preferences"

// PreferenceRepository é um armazenamento chave-valor por usuário
type PreferenceRepository interface {
	Get(ctx context.Context, ownerID int, key string) ([]byte, error)
	Put(ctx context.Context, ownerID int, key string, value []byte) error
	List(ctx context.Context, ownerID int) (map[string][]byte, error)
}

type preferenceRepository struct {
	conn postgres.Conn
}

func NewPreferenceRepository(conn postgres.Conn) PreferenceRepository {
	return &preferenceRepository{
		conn: conn,
	}
}

func (r *preferenceRepository) Get(ctx context.Context, ownerID int, key string) ([]byte, error) {
	sqlQuery, args, err := squirrel.
		Select("pref_value").
		From(preferencesTable).
		Where(squirrel.Eq{"user_id": ownerID, "pref_key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var value []byte
	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar preferência: %w", err)
	}

	return value, nil
}

func (r *preferenceRepository) Put(ctx context.Context, ownerID int, key string, value []byte) error {
	sqlQuery, args, err := squirrel.
		Insert(preferencesTable).
		Columns("user_id", "pref_key", "pref_value").
		Values(ownerID, key, string(value)).
		Suffix(`
			ON CONFLICT (user_id, pref_key) DO UPDATE SET
				pref_value = EXCLUDED.pref_value,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de upsert: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao salvar preferência: %w", err)
	}

	return nil
}

func (r *preferenceRepository) List(ctx context.Context, ownerID int) (map[string][]byte, error) {
	sqlQuery, args, err := squirrel.
		Select("pref_key", "pref_value").
		From(preferencesTable).
		Where(squirrel.Eq{"user_id": ownerID}).
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

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("erro ao escanear preferência: %w", err)
		}
		result[key] = value
	}

	return result, rows.Err()
}
