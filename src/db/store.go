package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	sql "rewardmax-server/src/db/sql"
	"rewardmax-server/src/models"
)

// Store adapts the SQL layer to the engine's storage interface, with a
// ristretto read-through cache in front of the hot wallet and offer lookups.
// Mutating paths (card upload, offer refresh) are responsible for clearing
// the matching cache entries.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

func (s *Store) ListCards(ctx context.Context) ([]models.CardProfile, error) {
	if v, ok := GetCardsCache(); ok {
		if cards, ok := v.([]models.CardProfile); ok {
			return cards, nil
		}
	}
	cards, err := sql.ListCards(ctx, s.Pool)
	if err != nil {
		return nil, err
	}
	SetCardsCache(cards)
	return cards, nil
}

func (s *Store) ListActiveOffers(ctx context.Context, merchant string) ([]models.Offer, error) {
	key := "offers:" + strings.ToLower(strings.TrimSpace(merchant))
	if v, ok := GetOfferCache(key); ok {
		if offers, ok := v.([]models.Offer); ok {
			return offers, nil
		}
	}
	offers, err := sql.ListActiveOffers(ctx, s.Pool, merchant)
	if err != nil {
		return nil, err
	}
	SetOfferCache(key, offers)
	return offers, nil
}

func (s *Store) GetMonthlyUsage(ctx context.Context, cardID, month string) (models.MonthlyUsage, error) {
	// Usage counters are never cached: a stale remaining-cap read here would
	// surface wrong savings right after an expense is recorded.
	return sql.GetMonthlyUsage(ctx, s.Pool, cardID, month)
}

func (s *Store) ReserveReward(ctx context.Context, exp models.Expense, month string, rate float64) (models.MonthlyUsage, error) {
	return sql.ReserveReward(ctx, s.Pool, exp, month, rate)
}
