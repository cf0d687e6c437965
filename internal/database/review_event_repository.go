package database

import (
	"fmt"
	"time"

	"github.com/example/clozebot/pkg/models"
	"github.com/jmoiron/sqlx"
)

// ReviewEventRepository handles the append-only review log
type ReviewEventRepository struct{}

// NewReviewEventRepository creates a new repository instance
func NewReviewEventRepository() *ReviewEventRepository {
	return &ReviewEventRepository{}
}

// Append records one review event. Events are immutable once written.
func (r *ReviewEventRepository) Append(event *models.ReviewEvent) error {
	return appendEvent(DB, event)
}

func appendEvent(e sqlx.Ext, event *models.ReviewEvent) error {
	_, err := e.Exec(`
		INSERT INTO review_events (
			item_id, user_id, rating, interval, ease_factor,
			reviewed_at, response_latency_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ItemID, event.UserID, event.Rating, event.Interval,
		event.EaseFactor, event.ReviewedAt, event.ResponseLatencyMS)
	if err != nil {
		return fmt.Errorf("failed to append review event: %v", err)
	}
	return nil
}

// CountSince returns how many reviews the user recorded since the given time.
func (r *ReviewEventRepository) CountSince(userID int64, since time.Time) (int, error) {
	var count int
	err := DB.Get(&count, `
		SELECT COUNT(*) FROM review_events
		WHERE user_id = $1 AND reviewed_at >= $2
	`, userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %v", err)
	}
	return count, nil
}

// AgainRateSince returns the fraction of reviews since the given time that
// were rated "again". Zero reviews yields zero.
func (r *ReviewEventRepository) AgainRateSince(userID int64, since time.Time) (float64, error) {
	var row struct {
		Total  int `db:"total"`
		Lapsed int `db:"lapsed"`
	}
	err := DB.Get(&row, `
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN rating = 'again' THEN 1 END) AS lapsed
		FROM review_events
		WHERE user_id = $1 AND reviewed_at >= $2
	`, userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to compute again rate: %v", err)
	}
	if row.Total == 0 {
		return 0, nil
	}
	return float64(row.Lapsed) / float64(row.Total), nil
}
