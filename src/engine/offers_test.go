package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rewardmax-server/src/models"
)

func TestBestOffer_PicksHighestValue(t *testing.T) {
	card := models.CardProfile{CardID: "hdfc-millennia"}
	offers := []models.Offer{
		{OfferID: "o1", CardID: "hdfc-millennia", Merchant: "amazon", Channel: "all", DiscountType: "flat", DiscountValue: 100, Source: "bank_file", Active: true},
		{OfferID: "o2", CardID: "hdfc-millennia", Merchant: "amazon", Channel: "all", DiscountType: "percent", DiscountValue: 0.10, MaxDiscount: 300, Source: "bank_feed", Active: true},
	}
	txn := models.TransactionContext{Merchant: "Amazon", Amount: 2000}

	value, source := BestOffer(card, offers, txn)

	assert.Equal(t, 200.0, value)
	assert.Equal(t, "bank_feed", source)
}

func TestBestOffer_IgnoresInactiveOffers(t *testing.T) {
	card := models.CardProfile{CardID: "axis-ace"}
	offers := []models.Offer{
		{OfferID: "o1", CardID: "axis-ace", Merchant: "amazon", Channel: "all", DiscountType: "flat", DiscountValue: 100, Active: false},
	}

	value, source := BestOffer(card, offers, models.TransactionContext{Merchant: "amazon", Amount: 1000})

	assert.Zero(t, value)
	assert.Empty(t, source)
}
