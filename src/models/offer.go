package models

import "time"

type Offer struct {
	OfferID       string    `json:"offer_id"`
	CardID        string    `json:"card_id"`
	Merchant      string    `json:"merchant"`
	Channel       string    `json:"channel"`
	DiscountType  string    `json:"discount_type"` // "percent" or "flat"
	DiscountValue float64   `json:"discount_value"`
	MinSpend      float64   `json:"min_spend"`
	MaxDiscount   float64   `json:"max_discount"`
	Source        string    `json:"source"`
	Active        bool      `json:"active"`
	LastRefreshed time.Time `json:"last_refreshed_at"`
}
