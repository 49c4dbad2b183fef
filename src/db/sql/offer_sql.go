package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rewardmax-server/src/models"
)

// ReplaceOffers swaps out a source's offer set: everything the source
// published before is deactivated, then the fresh batch is upserted active.
// One transaction, so readers never see a source half-replaced.
func ReplaceOffers(ctx context.Context, pool *pgxpool.Pool, offers []models.Offer, source string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE offers SET active = FALSE WHERE source = $1`, source); err != nil {
		return err
	}

	query := `
		INSERT INTO offers (
			offer_id, card_id, merchant, channel, discount_type, discount_value,
			min_spend, max_discount, source, active, last_refreshed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW())
		ON CONFLICT (offer_id) DO UPDATE SET
			card_id = EXCLUDED.card_id,
			merchant = EXCLUDED.merchant,
			channel = EXCLUDED.channel,
			discount_type = EXCLUDED.discount_type,
			discount_value = EXCLUDED.discount_value,
			min_spend = EXCLUDED.min_spend,
			max_discount = EXCLUDED.max_discount,
			source = EXCLUDED.source,
			active = TRUE,
			last_refreshed_at = NOW()
	`
	for _, o := range offers {
		_, err := tx.Exec(ctx, query,
			o.OfferID, o.CardID, o.Merchant, o.Channel, o.DiscountType, o.DiscountValue,
			o.MinSpend, o.MaxDiscount, source,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListActiveOffers returns the active offers, optionally filtered to one
// merchant (case-insensitive).
func ListActiveOffers(ctx context.Context, pool *pgxpool.Pool, merchant string) ([]models.Offer, error) {
	query := `
		SELECT offer_id, card_id, merchant, channel, discount_type, discount_value,
		       min_spend, max_discount, source, active, last_refreshed_at
		FROM offers
		WHERE active
	`
	args := []interface{}{}
	if merchant != "" {
		query += ` AND LOWER(merchant) = LOWER($1)`
		args = append(args, merchant)
	}
	query += ` ORDER BY offer_id`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var o models.Offer
		err := rows.Scan(
			&o.OfferID, &o.CardID, &o.Merchant, &o.Channel, &o.DiscountType, &o.DiscountValue,
			&o.MinSpend, &o.MaxDiscount, &o.Source, &o.Active, &o.LastRefreshed,
		)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
