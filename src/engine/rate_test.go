package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rewardmax-server/src/models"
)

func testCard() models.CardProfile {
	return models.CardProfile{
		CardID:         "hdfc-millennia",
		Bank:           "HDFC",
		Network:        "Visa",
		BaseRewardRate: 0.01,
		CategoryMultipliers: map[string]float64{
			"dining": 3,
			"other":  1.5,
		},
		ChannelMultipliers: map[string]float64{
			"swiggy": 2,
		},
		MerchantMultipliers: map[string]float64{
			"zomato": 5,
		},
	}
}

func TestResolveRate_MerchantWinsOverCategoryAndChannel(t *testing.T) {
	rate, tier, mult := ResolveRate(testCard(), models.TransactionContext{
		Merchant: "Zomato",
		Category: "dining",
		Channel:  "swiggy",
		Amount:   500,
	})

	assert.Equal(t, TierMerchant, tier)
	assert.Equal(t, 5.0, mult)
	assert.InDelta(t, 0.05, rate, 1e-9)
}

func TestResolveRate_FallsBackThroughTiers(t *testing.T) {
	card := testCard()

	rate, tier, _ := ResolveRate(card, models.TransactionContext{Merchant: "dmart", Category: "dining", Amount: 100})
	assert.Equal(t, TierCategory, tier)
	assert.InDelta(t, 0.03, rate, 1e-9)

	rate, tier, _ = ResolveRate(card, models.TransactionContext{Merchant: "dmart", Category: "travel", Channel: "swiggy", Amount: 100})
	assert.Equal(t, TierChannel, tier)
	assert.InDelta(t, 0.02, rate, 1e-9)

	rate, tier, _ = ResolveRate(card, models.TransactionContext{Merchant: "dmart", Category: "travel", Channel: "web", Amount: 100})
	assert.Equal(t, TierBase, tier)
	assert.InDelta(t, 0.01, rate, 1e-9)
}

func TestResolveRate_BlankCategoryDefaultsToOther(t *testing.T) {
	rate, tier, mult := ResolveRate(testCard(), models.TransactionContext{Merchant: "dmart", Amount: 100})

	assert.Equal(t, TierCategory, tier)
	assert.Equal(t, 1.5, mult)
	assert.InDelta(t, 0.015, rate, 1e-9)
}

func TestResolveRate_ChannelAllMeansNoChannel(t *testing.T) {
	card := models.CardProfile{
		BaseRewardRate:     0.02,
		ChannelMultipliers: map[string]float64{"all": 10},
	}

	rate, tier, _ := ResolveRate(card, models.TransactionContext{Merchant: "dmart", Channel: "all", Amount: 100})

	assert.Equal(t, TierBase, tier)
	assert.InDelta(t, 0.02, rate, 1e-9)
}

func TestResolveRate_NoMultipliersUsesBaseRate(t *testing.T) {
	card := models.CardProfile{BaseRewardRate: 0.02}

	rate, tier, _ := ResolveRate(card, models.TransactionContext{Merchant: "anything", Category: "anything", Channel: "anything", Amount: 100})

	assert.Equal(t, TierBase, tier)
	assert.InDelta(t, 0.02, rate, 1e-9)
}
