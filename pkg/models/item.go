package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is the schedulable unit: one cloze slot of one card for one user.
// Interval is stored in minutes; configuration speaks in days for review
// intervals and the conversion happens inside the scheduler.
type Item struct {
	ID          string        `json:"id" db:"id"`
	CardID      string        `json:"card_id" db:"card_id"`
	DeckID      int64         `json:"deck_id" db:"deck_id"`
	UserID      int64         `json:"user_id" db:"user_id"`
	ClozeIndex  int           `json:"cloze_index" db:"cloze_index"`
	State       LearningState `json:"state" db:"state"`
	EaseFactor  float64       `json:"ease_factor" db:"ease_factor"`
	Interval    int           `json:"interval" db:"interval"` // minutes
	Repetitions int           `json:"repetitions" db:"repetitions"`
	Lapses      int           `json:"lapses" db:"lapses"`
	StepIndex   *int          `json:"step_index,omitempty" db:"step_index"` // nil once graduated
	NextReview  time.Time     `json:"next_review" db:"next_review"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// NewItem creates an item in StateNew, due immediately.
func NewItem(cardID string, deckID, userID int64, clozeIndex int, ease float64, now time.Time) Item {
	step := 0
	return Item{
		ID:         uuid.NewString(),
		CardID:     cardID,
		DeckID:     deckID,
		UserID:     userID,
		ClozeIndex: clozeIndex,
		State:      StateNew,
		EaseFactor: ease,
		StepIndex:  &step,
		NextReview: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a copy of the item with its own StepIndex pointer.
func (i Item) Clone() Item {
	out := i
	if i.StepIndex != nil {
		v := *i.StepIndex
		out.StepIndex = &v
	}
	return out
}

// Due reports whether the item is due for review at the given time.
func (i Item) Due(now time.Time) bool {
	return !i.NextReview.After(now)
}
