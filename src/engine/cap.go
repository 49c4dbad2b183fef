package engine

import "rewardmax-server/src/models"

// ClipToCap limits the reward obtainable from a transaction by the card's
// remaining monthly reward budget. usableAmount is the portion of spend that
// still earns reward; the excess can still be charged to the card, it just
// earns nothing, which matters for split allocation. A cap of 0 means
// uncapped.
func ClipToCap(card models.CardProfile, usage models.MonthlyUsage, amount, rate float64) (usableAmount, cappedReward float64) {
	reward := amount * rate
	if card.MonthlyRewardCap <= 0 {
		return amount, reward
	}

	remaining := card.MonthlyRewardCap - usage.RewardEarned
	if remaining < 0 {
		remaining = 0
	}
	if reward <= remaining {
		return amount, reward
	}
	if rate == 0 {
		return 0, 0
	}
	return remaining / rate, remaining
}
