package models

// CardProfile describes one credit card in the wallet. Profiles are replaced
// wholesale on upload/refresh; the recommendation engine treats them as read-only.
type CardProfile struct {
	CardID              string             `json:"card_id"`
	Bank                string             `json:"bank"`
	Network             string             `json:"network"`
	BaseRewardRate      float64            `json:"base_reward_rate"`
	MonthlyRewardCap    float64            `json:"monthly_reward_cap"`
	AnnualFee           float64            `json:"annual_fee"`
	MilestoneSpend      float64            `json:"milestone_spend"`
	MilestoneBonus      float64            `json:"milestone_bonus"`
	CategoryMultipliers map[string]float64 `json:"category_multipliers,omitempty"`
	ChannelMultipliers  map[string]float64 `json:"channel_multipliers,omitempty"`
	MerchantMultipliers map[string]float64 `json:"merchant_multipliers,omitempty"`
}
