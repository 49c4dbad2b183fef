package models

import "time"

// LifestyleReport is an on-demand spending analysis snapshot, persisted in
// app_state so the last run can be served without recomputing.
type LifestyleReport struct {
	ExpensePattern    ExpensePattern `json:"expense_pattern"`
	RecommendedCard   string         `json:"recommended_card"`
	SelectedCardGuide string         `json:"selected_card_guide"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

type ExpensePattern struct {
	TotalSpend      float64            `json:"total_spend"`
	ByCategory      map[string]float64 `json:"by_category"`
	TopCategory     string             `json:"top_category"`
	ExpenseCount    int                `json:"expense_count"`
	MonthsObserved  int                `json:"months_observed"`
	AvgMonthlySpend float64            `json:"avg_monthly_spend"`
}
