package models

import "time"

// Card is the authored cloze template. One card with N numbered deletion
// slots expands into N independent items at creation time.
type Card struct {
	ID         string    `json:"id" db:"id"`
	DeckID     int64     `json:"deck_id" db:"deck_id"`
	Text       string    `json:"text" db:"text"`
	ClozeCount int       `json:"cloze_count" db:"cloze_count"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
