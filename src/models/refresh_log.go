package models

import "time"

type RefreshLogEntry struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
