package models

import "time"

// ReviewEvent is the append-only record of a single rating. It is written
// alongside every item update and never read back by the scheduler.
type ReviewEvent struct {
	ID                int64     `json:"id" db:"id"`
	ItemID            string    `json:"item_id" db:"item_id"`
	UserID            int64     `json:"user_id" db:"user_id"`
	Rating            Rating    `json:"rating" db:"rating"`
	Interval          int       `json:"interval" db:"interval"` // resulting interval, minutes
	EaseFactor        float64   `json:"ease_factor" db:"ease_factor"`
	ReviewedAt        time.Time `json:"reviewed_at" db:"reviewed_at"`
	ResponseLatencyMS int       `json:"response_latency_ms" db:"response_latency_ms"`
}
