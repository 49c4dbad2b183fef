package engine

import "rewardmax-server/src/models"

// MilestoneCredit returns the marginal milestone value of this transaction.
// Attribution is all-or-nothing: the single transaction whose projected spend
// crosses the milestone threshold is credited the full bonus; once the cycle's
// milestone has been credited, later transactions earn nothing extra. This
// intentionally does not amortize the bonus across the cycle.
func MilestoneCredit(card models.CardProfile, usage models.MonthlyUsage, amount float64) float64 {
	if card.MilestoneSpend <= 0 || card.MilestoneBonus <= 0 {
		return 0
	}
	if usage.MilestoneCredited {
		return 0
	}
	if usage.Spend+amount >= card.MilestoneSpend {
		return card.MilestoneBonus
	}
	return 0
}
