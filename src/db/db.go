package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}

// InitSchema creates the tables on first boot. Statements are idempotent so
// restarting against an existing database is safe.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schema := `
	CREATE TABLE IF NOT EXISTS cards (
		card_id TEXT PRIMARY KEY,
		bank TEXT NOT NULL,
		network TEXT NOT NULL,
		base_reward_rate DOUBLE PRECISION NOT NULL,
		monthly_reward_cap DOUBLE PRECISION NOT NULL DEFAULT 0,
		annual_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
		milestone_spend DOUBLE PRECISION NOT NULL DEFAULT 0,
		milestone_bonus DOUBLE PRECISION NOT NULL DEFAULT 0,
		category_multipliers JSONB NOT NULL DEFAULT '{}',
		channel_multipliers JSONB NOT NULL DEFAULT '{}',
		merchant_multipliers JSONB NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS offers (
		offer_id TEXT PRIMARY KEY,
		card_id TEXT NOT NULL REFERENCES cards(card_id) ON DELETE CASCADE,
		merchant TEXT NOT NULL,
		channel TEXT NOT NULL,
		discount_type TEXT NOT NULL,
		discount_value DOUBLE PRECISION NOT NULL,
		min_spend DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_discount DOUBLE PRECISION NOT NULL DEFAULT 0,
		source TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		last_refreshed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS expenses (
		id BIGSERIAL PRIMARY KEY,
		card_id TEXT NOT NULL REFERENCES cards(card_id) ON DELETE CASCADE,
		merchant TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		category TEXT NOT NULL DEFAULT 'other',
		spent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS monthly_usage (
		card_id TEXT NOT NULL REFERENCES cards(card_id) ON DELETE CASCADE,
		month TEXT NOT NULL,
		spend DOUBLE PRECISION NOT NULL DEFAULT 0,
		reward_earned DOUBLE PRECISION NOT NULL DEFAULT 0,
		milestone_credited BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (card_id, month)
	);

	CREATE TABLE IF NOT EXISTS refresh_log (
		id BIGSERIAL PRIMARY KEY,
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		refreshed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_offers_merchant ON offers (LOWER(merchant)) WHERE active;
	CREATE INDEX IF NOT EXISTS idx_expenses_spent_at ON expenses (spent_at DESC);
	`
	_, err := pool.Exec(ctx, schema)
	return err
}
