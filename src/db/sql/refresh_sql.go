package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rewardmax-server/src/models"
)

func LogRefresh(ctx context.Context, pool *pgxpool.Pool, source, status, detail string) error {
	_, err := pool.Exec(ctx,
		`INSERT INTO refresh_log (source, status, detail) VALUES ($1, $2, $3)`,
		source, status, detail,
	)
	return err
}

func ListRefreshLog(ctx context.Context, pool *pgxpool.Pool, limit int) ([]models.RefreshLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, source, status, detail, refreshed_at
		FROM refresh_log
		ORDER BY refreshed_at DESC
		LIMIT $1
	`
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.RefreshLogEntry
	for rows.Next() {
		var e models.RefreshLogEntry
		err := rows.Scan(&e.ID, &e.Source, &e.Status, &e.Detail, &e.RefreshedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
