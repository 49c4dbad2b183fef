package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardmax-server/src/models"
)

func splitFixture() ([]models.CardProfile, map[string]models.CardProfile, map[string]models.MonthlyUsage) {
	cards := []models.CardProfile{
		{CardID: "card-a", BaseRewardRate: 0.05, MonthlyRewardCap: 100},
		{CardID: "card-b", BaseRewardRate: 0.02},
	}
	byID := map[string]models.CardProfile{}
	for _, c := range cards {
		byID[c.CardID] = c
	}
	return cards, byID, map[string]models.MonthlyUsage{}
}

func TestAllocate_GreedyByRateRespectingCaps(t *testing.T) {
	cards, byID, usages := splitFixture()
	txn := models.TransactionContext{Merchant: "dmart", Amount: 3000}

	ranked := Rank(cards, usages, nil, txn)
	require.Equal(t, "card-a", ranked[0].CardID)

	alloc := Allocate(ranked, byID, usages, txn)

	require.Len(t, alloc, 2)
	// card-a's remaining ₹100 cap at 5% covers exactly ₹2000 of spend.
	assert.Equal(t, "card-a", alloc[0].CardID)
	assert.Equal(t, 2000.0, alloc[0].Amount)
	assert.Equal(t, 100.0, alloc[0].Savings)
	assert.Equal(t, "card-b", alloc[1].CardID)
	assert.Equal(t, 1000.0, alloc[1].Amount)
	assert.Equal(t, 20.0, alloc[1].Savings)
}

func TestAllocate_SumAlwaysEqualsAmount(t *testing.T) {
	cards, byID, usages := splitFixture()
	for _, amount := range []float64{0.01, 99.99, 1234.56, 3000, 100000} {
		txn := models.TransactionContext{Merchant: "dmart", Amount: amount}
		ranked := Rank(cards, usages, nil, txn)

		alloc := Allocate(ranked, byID, usages, txn)

		total := 0.0
		for _, line := range alloc {
			total += line.Amount
		}
		assert.InDelta(t, amount, total, 1e-9, "amount %v", amount)
	}
}

func TestAllocate_ResidualGoesToTopCardWhenAllCapped(t *testing.T) {
	cards := []models.CardProfile{
		{CardID: "a", BaseRewardRate: 0.05, MonthlyRewardCap: 50},
		{CardID: "b", BaseRewardRate: 0.02, MonthlyRewardCap: 10},
	}
	byID := map[string]models.CardProfile{"a": cards[0], "b": cards[1]}
	usages := map[string]models.MonthlyUsage{}
	txn := models.TransactionContext{Merchant: "dmart", Amount: 10000}

	ranked := Rank(cards, usages, nil, txn)
	alloc := Allocate(ranked, byID, usages, txn)

	require.Len(t, alloc, 2)
	// a covers 1000 from its cap, b covers 500, residual 8500 returns to a.
	assert.Equal(t, "a", alloc[0].CardID)
	assert.Equal(t, 9500.0, alloc[0].Amount)
	assert.Equal(t, 500.0, alloc[1].Amount)

	total := 0.0
	for _, line := range alloc {
		total += line.Amount
	}
	assert.Equal(t, 10000.0, total)
}

func TestAllocate_SingleUncappedCardTakesEverything(t *testing.T) {
	cards := []models.CardProfile{{CardID: "only", BaseRewardRate: 0.02}}
	byID := map[string]models.CardProfile{"only": cards[0]}
	usages := map[string]models.MonthlyUsage{}
	txn := models.TransactionContext{Merchant: "dmart", Amount: 500}

	alloc := Allocate(Rank(cards, usages, nil, txn), byID, usages, txn)

	require.Len(t, alloc, 1)
	assert.Equal(t, 500.0, alloc[0].Amount)
	assert.Equal(t, 10.0, alloc[0].Savings)
}

func TestAllocate_FullyExhaustedWalletStillChargesTopCard(t *testing.T) {
	cards := []models.CardProfile{{CardID: "spent", BaseRewardRate: 0.05, MonthlyRewardCap: 100}}
	byID := map[string]models.CardProfile{"spent": cards[0]}
	usages := map[string]models.MonthlyUsage{"spent": {RewardEarned: 100}}
	txn := models.TransactionContext{Merchant: "dmart", Amount: 800}

	alloc := Allocate(Rank(cards, usages, nil, txn), byID, usages, txn)

	require.Len(t, alloc, 1)
	assert.Equal(t, "spent", alloc[0].CardID)
	assert.Equal(t, 800.0, alloc[0].Amount)
	assert.Equal(t, 0.0, alloc[0].Savings)
}

func TestAllocate_RoundingKeepsExactSum(t *testing.T) {
	cards := []models.CardProfile{
		{CardID: "a", BaseRewardRate: 0.03, MonthlyRewardCap: 1},
		{CardID: "b", BaseRewardRate: 0.02},
	}
	byID := map[string]models.CardProfile{"a": cards[0], "b": cards[1]}
	usages := map[string]models.MonthlyUsage{}
	txn := models.TransactionContext{Merchant: "dmart", Amount: 100.01}

	alloc := Allocate(Rank(cards, usages, nil, txn), byID, usages, txn)

	total := 0.0
	for _, line := range alloc {
		total += line.Amount
	}
	assert.Equal(t, 100.01, Round2(total))
}
