package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rewardmax-server/src/models"
)

// UpsertCards inserts or replaces card profiles in one transaction so a
// partial upload never leaves the wallet half-updated.
func UpsertCards(ctx context.Context, pool *pgxpool.Pool, cards []models.CardProfile) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO cards (
			card_id, bank, network, base_reward_rate, monthly_reward_cap,
			annual_fee, milestone_spend, milestone_bonus,
			category_multipliers, channel_multipliers, merchant_multipliers
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (card_id) DO UPDATE SET
			bank = EXCLUDED.bank,
			network = EXCLUDED.network,
			base_reward_rate = EXCLUDED.base_reward_rate,
			monthly_reward_cap = EXCLUDED.monthly_reward_cap,
			annual_fee = EXCLUDED.annual_fee,
			milestone_spend = EXCLUDED.milestone_spend,
			milestone_bonus = EXCLUDED.milestone_bonus,
			category_multipliers = EXCLUDED.category_multipliers,
			channel_multipliers = EXCLUDED.channel_multipliers,
			merchant_multipliers = EXCLUDED.merchant_multipliers
	`
	for _, card := range cards {
		category, err := marshalMultipliers(card.CategoryMultipliers)
		if err != nil {
			return err
		}
		channel, err := marshalMultipliers(card.ChannelMultipliers)
		if err != nil {
			return err
		}
		merchant, err := marshalMultipliers(card.MerchantMultipliers)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, query,
			card.CardID, card.Bank, card.Network, card.BaseRewardRate, card.MonthlyRewardCap,
			card.AnnualFee, card.MilestoneSpend, card.MilestoneBonus,
			category, channel, merchant,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func ListCards(ctx context.Context, pool *pgxpool.Pool) ([]models.CardProfile, error) {
	query := `
		SELECT card_id, bank, network, base_reward_rate, monthly_reward_cap,
		       annual_fee, milestone_spend, milestone_bonus,
		       category_multipliers, channel_multipliers, merchant_multipliers
		FROM cards
		ORDER BY card_id
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.CardProfile
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func scanCard(row pgx.Row) (models.CardProfile, error) {
	var c models.CardProfile
	var category, channel, merchant []byte
	err := row.Scan(
		&c.CardID, &c.Bank, &c.Network, &c.BaseRewardRate, &c.MonthlyRewardCap,
		&c.AnnualFee, &c.MilestoneSpend, &c.MilestoneBonus,
		&category, &channel, &merchant,
	)
	if err != nil {
		return models.CardProfile{}, err
	}
	if c.CategoryMultipliers, err = unmarshalMultipliers(category); err != nil {
		return models.CardProfile{}, err
	}
	if c.ChannelMultipliers, err = unmarshalMultipliers(channel); err != nil {
		return models.CardProfile{}, err
	}
	if c.MerchantMultipliers, err = unmarshalMultipliers(merchant); err != nil {
		return models.CardProfile{}, err
	}
	return c, nil
}

func DeleteCard(ctx context.Context, pool *pgxpool.Pool, cardID string) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM cards WHERE card_id = $1`, cardID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("card not found")
	}
	return nil
}

func HasCards(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cards`).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Multiplier keys are stored lower-cased so lookups never depend on upload
// casing.
func marshalMultipliers(m map[string]float64) ([]byte, error) {
	lowered := make(map[string]float64, len(m))
	for k, v := range m {
		lowered[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return json.Marshal(lowered)
}

func unmarshalMultipliers(raw []byte) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}
