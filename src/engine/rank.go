package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"rewardmax-server/src/models"
)

// Rank scores every card in the wallet for the given transaction and returns
// recommendations sorted by savings descending. Ties break by lower annual
// fee, then lexical card id, so identical inputs always produce identical
// output. Cards with zero savings are kept so the caller can see that no card
// offers marginal benefit.
func Rank(cards []models.CardProfile, usages map[string]models.MonthlyUsage, offers []models.Offer, txn models.TransactionContext) []models.Recommendation {
	type scored struct {
		rec       models.Recommendation
		savings   float64 // unrounded, used for ordering
		annualFee float64
	}

	ranked := make([]scored, 0, len(cards))
	for _, card := range cards {
		usage := usages[card.CardID]
		rate, tier, multiplier := ResolveRate(card, txn)
		_, cappedReward := ClipToCap(card, usage, txn.Amount, rate)
		milestone := MilestoneCredit(card, usage, txn.Amount)
		offerValue, offerSource := BestOffer(card, offers, txn)
		savings := cappedReward + milestone + offerValue

		reason := buildReason(card, usage, txn, tier, multiplier, rate, cappedReward, milestone, offerValue, offerSource)
		ranked = append(ranked, scored{
			rec: models.Recommendation{
				CardID:        card.CardID,
				Savings:       Round2(savings),
				EffectiveRate: rate,
				Reason:        reason,
			},
			savings:   savings,
			annualFee: card.AnnualFee,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].savings != ranked[j].savings {
			return ranked[i].savings > ranked[j].savings
		}
		if ranked[i].annualFee != ranked[j].annualFee {
			return ranked[i].annualFee < ranked[j].annualFee
		}
		return ranked[i].rec.CardID < ranked[j].rec.CardID
	})

	out := make([]models.Recommendation, len(ranked))
	for i, s := range ranked {
		out[i] = s.rec
	}
	return out
}

func buildReason(card models.CardProfile, usage models.MonthlyUsage, txn models.TransactionContext, tier string, multiplier, rate, cappedReward, milestone, offerValue float64, offerSource string) string {
	var parts []string

	switch tier {
	case TierBase:
		parts = append(parts, fmt.Sprintf("base rate %s%%", trimFloat(rate*100)))
	default:
		parts = append(parts, fmt.Sprintf("%s multiplier %sx", tier, trimFloat(multiplier)))
	}

	if card.MonthlyRewardCap > 0 {
		remaining := math.Max(card.MonthlyRewardCap-usage.RewardEarned, 0)
		if remaining == 0 {
			parts = append(parts, "monthly reward cap exhausted")
		} else if txn.Amount*rate > remaining {
			parts = append(parts, fmt.Sprintf("capped by remaining ₹%.2f this month", remaining))
		}
	}

	if milestone > 0 {
		parts = append(parts, fmt.Sprintf("milestone bonus of ₹%.2f unlocked by this purchase", milestone))
	}

	if offerValue > 0 {
		parts = append(parts, fmt.Sprintf("plus %s offer worth ₹%.2f", offerSource, offerValue))
	}

	return strings.Join(parts, ", ")
}

// trimFloat renders 5.0 as "5" and 2.5 as "2.5" for readable reasons.
func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// Round2 rounds a currency value to 2 decimals. Applied at output boundaries
// only; internal computation keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
