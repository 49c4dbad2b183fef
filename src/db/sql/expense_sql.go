package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rewardmax-server/src/models"
)

func ListExpenses(ctx context.Context, pool *pgxpool.Pool, limit int) ([]models.Expense, error) {
	if limit <= 0 {
		limit = 500
	}
	query := `
		SELECT id, card_id, merchant, amount, category, spent_at
		FROM expenses
		ORDER BY spent_at DESC
		LIMIT $1
	`
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		err := rows.Scan(&e.ID, &e.CardID, &e.Merchant, &e.Amount, &e.Category, &e.SpentAt)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
