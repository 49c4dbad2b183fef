package models

import "time"

type Expense struct {
	ID       int64     `json:"id"`
	CardID   string    `json:"card_id"`
	Merchant string    `json:"merchant"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	SpentAt  time.Time `json:"spent_at"`
}
