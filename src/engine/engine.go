package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rewardmax-server/src/models"
)

// Store is the storage collaborator the engine reads wallet state from.
// GetMonthlyUsage returns a zero-valued row when no expense has been recorded
// for the card this month. ReserveReward must be atomic: it records the
// expense, increments the month's spend, clips the committed reward to the
// card's remaining cap, and flips the milestone flag in a single transaction,
// so two concurrent recordings can never both read a stale counter.
type Store interface {
	ListCards(ctx context.Context) ([]models.CardProfile, error)
	ListActiveOffers(ctx context.Context, merchant string) ([]models.Offer, error)
	GetMonthlyUsage(ctx context.Context, cardID, month string) (models.MonthlyUsage, error)
	ReserveReward(ctx context.Context, exp models.Expense, month string, rate float64) (models.MonthlyUsage, error)
}

// Engine is the recommendation and split-optimization core. Recommend is
// read-only and safe to call concurrently; RecordExpense is the only
// mutating entry point.
type Engine struct {
	store Store
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

// CurrentMonth is the calendar-month key usage rows are tracked under.
func CurrentMonth() string {
	return time.Now().UTC().Format("2006-01")
}

// Recommend ranks every card in the wallet for the transaction and, when
// split is requested, also partitions the amount across the ranking.
func (e *Engine) Recommend(ctx context.Context, txn models.TransactionContext, split bool) (models.RecommendResult, error) {
	if err := validateTxn(txn); err != nil {
		return models.RecommendResult{}, err
	}

	cards, err := e.store.ListCards(ctx)
	if err != nil {
		return models.RecommendResult{}, fmt.Errorf("list cards: %w", err)
	}
	if len(cards) == 0 {
		return models.RecommendResult{}, ErrNoCards
	}

	month := CurrentMonth()
	usages := make(map[string]models.MonthlyUsage, len(cards))
	byID := make(map[string]models.CardProfile, len(cards))
	for _, card := range cards {
		usage, err := e.store.GetMonthlyUsage(ctx, card.CardID, month)
		if err != nil {
			return models.RecommendResult{}, fmt.Errorf("monthly usage for %s: %w", card.CardID, err)
		}
		usages[card.CardID] = usage
		byID[card.CardID] = card
	}

	offers, err := e.store.ListActiveOffers(ctx, txn.Merchant)
	if err != nil {
		return models.RecommendResult{}, fmt.Errorf("active offers: %w", err)
	}

	result := models.RecommendResult{
		Recommendations: Rank(cards, usages, offers, txn),
	}
	if split {
		result.Allocation = Allocate(result.Recommendations, byID, usages, txn)
	}
	return result, nil
}

// RecordExpense charges a transaction to one card, atomically reserving
// reward against the card's remaining monthly cap. It returns the updated
// usage snapshot for the card's current month.
func (e *Engine) RecordExpense(ctx context.Context, cardID string, txn models.TransactionContext) (models.MonthlyUsage, error) {
	if err := validateTxn(txn); err != nil {
		return models.MonthlyUsage{}, err
	}
	if strings.TrimSpace(cardID) == "" {
		return models.MonthlyUsage{}, fmt.Errorf("%w: card_id is required", ErrInvalidInput)
	}

	cards, err := e.store.ListCards(ctx)
	if err != nil {
		return models.MonthlyUsage{}, fmt.Errorf("list cards: %w", err)
	}
	var card models.CardProfile
	found := false
	for _, c := range cards {
		if c.CardID == cardID {
			card = c
			found = true
			break
		}
	}
	if !found {
		return models.MonthlyUsage{}, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}

	rate, _, _ := ResolveRate(card, txn)
	category := txn.Category
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	usage, err := e.store.ReserveReward(ctx, models.Expense{
		CardID:   cardID,
		Merchant: txn.Merchant,
		Amount:   txn.Amount,
		Category: category,
	}, CurrentMonth(), rate)
	if err != nil {
		return models.MonthlyUsage{}, fmt.Errorf("reserve reward: %w", err)
	}
	return usage, nil
}

func validateTxn(txn models.TransactionContext) error {
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(txn.Merchant) == "" {
		return fmt.Errorf("%w: merchant is required", ErrInvalidInput)
	}
	return nil
}
