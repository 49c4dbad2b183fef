package models

// MonthlyUsage tracks a card's accumulated spend and earned reward for one
// calendar month. Month is formatted "2006-01". Rows are created lazily on the
// first expense of a month and mutated only through the expense-recording path.
type MonthlyUsage struct {
	CardID            string  `json:"card_id"`
	Month             string  `json:"month"`
	Spend             float64 `json:"spend"`
	RewardEarned      float64 `json:"reward_earned"`
	MilestoneCredited bool    `json:"milestone_credited"`
}
