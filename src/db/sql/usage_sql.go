package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rewardmax-server/src/models"
)

// GetMonthlyUsage returns the usage row for (card, month), or a zero-valued
// row when no expense has been recorded yet this month.
func GetMonthlyUsage(ctx context.Context, pool *pgxpool.Pool, cardID, month string) (models.MonthlyUsage, error) {
	query := `
		SELECT card_id, month, spend, reward_earned, milestone_credited
		FROM monthly_usage
		WHERE card_id = $1 AND month = $2
	`
	var u models.MonthlyUsage
	err := pool.QueryRow(ctx, query, cardID, month).
		Scan(&u.CardID, &u.Month, &u.Spend, &u.RewardEarned, &u.MilestoneCredited)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MonthlyUsage{CardID: cardID, Month: month}, nil
	}
	if err != nil {
		return models.MonthlyUsage{}, err
	}
	return u, nil
}

// ReserveReward records an expense and reserves its reward against the
// card's remaining monthly cap in one transaction. The usage upsert reads,
// clips, and commits the counters in a single statement, so two concurrent
// recordings against the same card and month can never both apply a stale
// remaining-cap value. The statement also flips the milestone flag when this
// expense pushes cumulative spend across the card's threshold.
func ReserveReward(ctx context.Context, pool *pgxpool.Pool, exp models.Expense, month string, rate float64) (models.MonthlyUsage, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return models.MonthlyUsage{}, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO expenses (card_id, merchant, amount, category) VALUES ($1, $2, $3, $4)`,
		exp.CardID, exp.Merchant, exp.Amount, exp.Category,
	)
	if err != nil {
		return models.MonthlyUsage{}, err
	}

	query := `
		INSERT INTO monthly_usage (card_id, month, spend, reward_earned, milestone_credited)
		SELECT c.card_id, $2, $3,
		       CASE WHEN c.monthly_reward_cap > 0
		            THEN LEAST($3 * $4, c.monthly_reward_cap)
		            ELSE $3 * $4 END,
		       c.milestone_spend > 0 AND $3 >= c.milestone_spend
		FROM cards c
		WHERE c.card_id = $1
		ON CONFLICT (card_id, month) DO UPDATE SET
			spend = monthly_usage.spend + $3,
			reward_earned = monthly_usage.reward_earned + CASE
				WHEN (SELECT monthly_reward_cap FROM cards WHERE card_id = $1) > 0
				THEN LEAST($3 * $4, GREATEST(
					(SELECT monthly_reward_cap FROM cards WHERE card_id = $1) - monthly_usage.reward_earned, 0))
				ELSE $3 * $4 END,
			milestone_credited = monthly_usage.milestone_credited OR (
				(SELECT milestone_spend FROM cards WHERE card_id = $1) > 0 AND
				monthly_usage.spend + $3 >= (SELECT milestone_spend FROM cards WHERE card_id = $1))
		RETURNING card_id, month, spend, reward_earned, milestone_credited
	`
	var u models.MonthlyUsage
	err = tx.QueryRow(ctx, query, exp.CardID, month, exp.Amount, rate).
		Scan(&u.CardID, &u.Month, &u.Spend, &u.RewardEarned, &u.MilestoneCredited)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MonthlyUsage{}, fmt.Errorf("card %s not found", exp.CardID)
	}
	if err != nil {
		return models.MonthlyUsage{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.MonthlyUsage{}, err
	}
	return u, nil
}
