package engine

import (
	"strings"

	"rewardmax-server/src/models"
)

// BestOffer picks the most valuable active offer a card has for this
// transaction. Offers are matched on merchant, gated by channel ("all"
// matches everything) and minimum spend; percent offers discount the amount
// up to max_discount, flat offers pay out directly. The returned value adds
// to the card's savings on top of reward-rate earnings.
func BestOffer(card models.CardProfile, offers []models.Offer, txn models.TransactionContext) (value float64, source string) {
	merchant := strings.ToLower(strings.TrimSpace(txn.Merchant))
	channel := strings.ToLower(strings.TrimSpace(txn.Channel))

	for _, offer := range offers {
		if !offer.Active || offer.CardID != card.CardID {
			continue
		}
		if strings.ToLower(offer.Merchant) != merchant {
			continue
		}
		offerChannel := strings.ToLower(offer.Channel)
		if channel != "" && channel != "all" && offerChannel != "all" && offerChannel != channel {
			continue
		}
		if txn.Amount < offer.MinSpend {
			continue
		}

		var discount float64
		if offer.DiscountType == "percent" {
			discount = txn.Amount * offer.DiscountValue
		} else {
			discount = offer.DiscountValue
		}
		if offer.MaxDiscount > 0 && discount > offer.MaxDiscount {
			discount = offer.MaxDiscount
		}
		if discount > value {
			value = discount
			source = offer.Source
		}
	}
	return value, source
}
