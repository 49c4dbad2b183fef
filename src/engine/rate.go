package engine

import (
	"strings"

	"rewardmax-server/src/models"
)

// Rate tiers, named after the multiplier map that fired.
const (
	TierMerchant = "merchant"
	TierCategory = "category"
	TierChannel  = "channel"
	TierBase     = "base"
)

// DefaultCategory is substituted for a blank category so generic "other"
// multipliers still apply.
const DefaultCategory = "other"

// ResolveRate computes the effective reward rate a card earns on the given
// transaction. Precedence, highest wins: merchant > category > channel > base.
// Multipliers scale the card's base rate; lookups are case-insensitive and a
// missing key falls through to the next tier. A channel of "" or "all" means
// no channel was supplied. ResolveRate never fails; with no matching
// multiplier the base rate applies.
func ResolveRate(card models.CardProfile, txn models.TransactionContext) (rate float64, tier string, multiplier float64) {
	if m, ok := lookupMultiplier(card.MerchantMultipliers, txn.Merchant); ok {
		return card.BaseRewardRate * m, TierMerchant, m
	}

	category := txn.Category
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	if m, ok := lookupMultiplier(card.CategoryMultipliers, category); ok {
		return card.BaseRewardRate * m, TierCategory, m
	}

	if channel := strings.ToLower(strings.TrimSpace(txn.Channel)); channel != "" && channel != "all" {
		if m, ok := lookupMultiplier(card.ChannelMultipliers, channel); ok {
			return card.BaseRewardRate * m, TierChannel, m
		}
	}

	return card.BaseRewardRate, TierBase, 1
}

func lookupMultiplier(multipliers map[string]float64, key string) (float64, bool) {
	if len(multipliers) == 0 {
		return 0, false
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return 0, false
	}
	if m, ok := multipliers[key]; ok {
		return m, true
	}
	// Maps decoded from storage are lower-cased already; this covers maps
	// built in code with mixed-case keys.
	for k, m := range multipliers {
		if strings.ToLower(k) == key {
			return m, true
		}
	}
	return 0, false
}
