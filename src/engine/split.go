package engine

import "rewardmax-server/src/models"

// Allocate partitions a transaction across cards following the ranking.
// Each card in order takes min(remaining, its cap-usable amount); caps are
// per card, so earlier cards never consume a later card's budget. If every
// card's usable amount is exhausted before the transaction is covered, the
// residual goes to the top-ranked card, since a card can always be charged
// past its reward cap, it just stops earning. The split is greedy; milestone
// cliffs that depend on total monthly spend are not globally optimized.
func Allocate(ranked []models.Recommendation, cards map[string]models.CardProfile, usages map[string]models.MonthlyUsage, txn models.TransactionContext) models.Allocation {
	if len(ranked) == 0 || txn.Amount <= 0 {
		return nil
	}

	var alloc models.Allocation
	lineIdx := make(map[string]int)
	remaining := txn.Amount

	for _, rec := range ranked {
		if remaining <= 0 {
			break
		}
		card, ok := cards[rec.CardID]
		if !ok {
			continue
		}
		usage := usages[card.CardID]
		rate, _, _ := ResolveRate(card, txn)
		usable, _ := ClipToCap(card, usage, remaining, rate)
		if usable <= 0 {
			continue
		}

		_, reward := ClipToCap(card, usage, usable, rate)
		reward += MilestoneCredit(card, usage, usable)
		lineIdx[card.CardID] = len(alloc)
		alloc = append(alloc, models.AllocationLine{
			CardID:  card.CardID,
			Amount:  usable,
			Savings: Round2(reward),
		})
		remaining -= usable
	}

	// Residual lands on the highest-ranked card even though it earns nothing
	// further, keeping the sum-of-allocations invariant intact.
	if remaining > 0 {
		top := ranked[0].CardID
		if i, ok := lineIdx[top]; ok {
			alloc[i].Amount += remaining
		} else {
			alloc = append([]models.AllocationLine{{CardID: top, Amount: remaining, Savings: 0}}, alloc...)
		}
	}

	return roundLines(alloc, txn.Amount)
}

// roundLines rounds line amounts to 2 decimals while keeping their sum
// exactly equal to the requested amount: every line but the first is rounded,
// and the first absorbs the rounding drift.
func roundLines(alloc models.Allocation, total float64) models.Allocation {
	if len(alloc) == 0 {
		return alloc
	}
	rest := 0.0
	for i := 1; i < len(alloc); i++ {
		alloc[i].Amount = Round2(alloc[i].Amount)
		rest += alloc[i].Amount
	}
	alloc[0].Amount = Round2(total - rest)
	return alloc
}
