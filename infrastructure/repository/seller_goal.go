package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/grupold/bi-marmoraria-api/infrastructure/database/postgres"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
)

const sellerGoalsTable = "seller_goals"

type SellerGoalRepository interface {
	List(ctx context.Context, ownerID int) ([]*domain.SellerGoal, error)
	Upsert(ctx context.Context, goal *domain.SellerGoal) error
}

type sellerGoalRepository struct {
	conn postgres.Conn
}

func NewSellerGoalRepository(conn postgres.Conn) SellerGoalRepository {
	return &sellerGoalRepository{
		conn: conn,
	}
}

func (r *sellerGoalRepository) List(ctx context.Context, ownerID int) ([]*domain.SellerGoal, error) {
	sqlQuery, args, err := squirrel.
		Select("user_id", "seller_name", "goal_value").
		From(sellerGoalsTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("seller_name ASC").
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

	goals := make([]*domain.SellerGoal, 0)
	for rows.Next() {
		goal := &domain.SellerGoal{}
		if err := rows.Scan(&goal.OwnerID, &goal.SellerName, &goal.GoalValue); err != nil {
			return nil, fmt.Errorf("erro ao escanear meta: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return goals, nil
}

func (r *sellerGoalRepository) Upsert(ctx context.Context, goal *domain.SellerGoal) error {
	sqlQuery, args, err := squirrel.
		Insert(sellerGoalsTable).
		Columns("user_id", "seller_name", "goal_value").
		Values(goal.OwnerID, goal.SellerName, goal.GoalValue).
		Suffix(`
			ON CONFLICT (user_id, seller_name) DO UPDATE SET
				goal_value = EXCLUDED.goal_value,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de upsert: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao salvar meta do vendedor: %w", err)
	}

	return nil
}
