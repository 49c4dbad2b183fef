package models

// TransactionContext is the purchase a recommendation is requested for.
// Merchant, category, and channel are matched case-insensitively against
// card multiplier maps; MerchantURL is only a hint for the insight layer.
type TransactionContext struct {
	Merchant    string  `json:"merchant"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Channel     string  `json:"channel,omitempty"`
	MerchantURL string  `json:"merchant_url,omitempty"`
}

type Recommendation struct {
	CardID        string  `json:"card_id"`
	Savings       float64 `json:"savings"`
	EffectiveRate float64 `json:"effective_rate"`
	Reason        string  `json:"reason"`
}

type AllocationLine struct {
	CardID  string  `json:"card_id"`
	Amount  float64 `json:"amount"`
	Savings float64 `json:"savings"`
}

// Allocation is an ordered split of one transaction across cards. The line
// amounts always sum exactly to the requested transaction amount.
type Allocation []AllocationLine

type RecommendResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Allocation      Allocation       `json:"allocation,omitempty"`
}
