package database

import (
	"fmt"

	"github.com/example/clozebot/pkg/models"
)

// SessionStore persists the two writes produced by one rating — the item
// upsert and the review-event append — inside a single transaction, so the
// item's schedule can never get ahead of its review history.
type SessionStore struct{}

// NewSessionStore creates a new store instance
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// RecordReview saves the updated item and appends its review event atomically.
func (s *SessionStore) RecordReview(item models.Item, event models.ReviewEvent) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	if err := saveItem(tx, &item); err != nil {
		tx.Rollback()
		return err
	}
	if err := appendEvent(tx, &event); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
