package database

import (
	"fmt"
	"time"

	"github.com/example/clozebot/pkg/models"
	"github.com/jmoiron/sqlx"
)

// ItemRepository handles database operations for schedulable items
type ItemRepository struct{}

// NewItemRepository creates a new repository instance
func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

// GetByID returns a single item
func (r *ItemRepository) GetByID(id string) (*models.Item, error) {
	var item models.Item
	err := DB.Get(&item, "SELECT * FROM items WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %v", err)
	}
	return &item, nil
}

// GetDue returns items past their review time, most overdue first.
// New items are excluded; they enter sessions through GetNew.
func (r *ItemRepository) GetDue(userID, deckID int64, now time.Time) ([]models.Item, error) {
	var items []models.Item
	err := DB.Select(&items, `
		SELECT * FROM items
		WHERE user_id = $1 AND deck_id = $2 AND state != 'new' AND next_review <= $3
		ORDER BY next_review ASC
	`, userID, deckID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get due items: %v", err)
	}
	return items, nil
}

// GetNew returns up to limit never-reviewed items in creation order.
func (r *ItemRepository) GetNew(userID, deckID int64, limit int) ([]models.Item, error) {
	var items []models.Item
	err := DB.Select(&items, `
		SELECT * FROM items
		WHERE user_id = $1 AND deck_id = $2 AND state = 'new'
		ORDER BY created_at ASC, cloze_index ASC
		LIMIT $3
	`, userID, deckID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get new items: %v", err)
	}
	return items, nil
}

// CountDue returns how many items are due for the user across all decks.
func (r *ItemRepository) CountDue(userID int64, now time.Time) (int, error) {
	var count int
	err := DB.Get(&count, `
		SELECT COUNT(*) FROM items
		WHERE user_id = $1 AND state != 'new' AND next_review <= $2
	`, userID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due items: %v", err)
	}
	return count, nil
}

// CountDueForDeck returns how many of the deck's items are past their
// review time.
func (r *ItemRepository) CountDueForDeck(userID, deckID int64, now time.Time) (int, error) {
	var count int
	err := DB.Get(&count, `
		SELECT COUNT(*) FROM items
		WHERE user_id = $1 AND deck_id = $2 AND state != 'new' AND next_review <= $3
	`, userID, deckID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due items: %v", err)
	}
	return count, nil
}

// CountNewForDeck returns how many of the deck's items have never been
// reviewed.
func (r *ItemRepository) CountNewForDeck(userID, deckID int64) (int, error) {
	var count int
	err := DB.Get(&count, `
		SELECT COUNT(*) FROM items
		WHERE user_id = $1 AND deck_id = $2 AND state = 'new'
	`, userID, deckID)
	if err != nil {
		return 0, fmt.Errorf("failed to count new items: %v", err)
	}
	return count, nil
}

// Save upserts an item by id. It is the write half of the scheduler's
// contract: idempotent, keyed on the item's opaque identifier.
func (r *ItemRepository) Save(item *models.Item) error {
	return saveItem(DB, item)
}

// saveItem runs the upsert on either the connection or a transaction.
func saveItem(e sqlx.Ext, item *models.Item) error {
	_, err := e.Exec(`
		INSERT INTO items (
			id, card_id, deck_id, user_id, cloze_index, state, ease_factor,
			interval, repetitions, lapses, step_index, next_review,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			ease_factor = EXCLUDED.ease_factor,
			interval = EXCLUDED.interval,
			repetitions = EXCLUDED.repetitions,
			lapses = EXCLUDED.lapses,
			step_index = EXCLUDED.step_index,
			next_review = EXCLUDED.next_review,
			updated_at = EXCLUDED.updated_at
	`,
		item.ID, item.CardID, item.DeckID, item.UserID, item.ClozeIndex,
		item.State, item.EaseFactor, item.Interval, item.Repetitions,
		item.Lapses, item.StepIndex, item.NextReview,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save item: %v", err)
	}
	return nil
}

// CreateBatch inserts the items produced by one card expansion in a single
// transaction.
func (r *ItemRepository) CreateBatch(items []models.Item) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	for i := range items {
		if err := saveItem(tx, &items[i]); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// StateCounts returns how many of the user's items are in each state.
func (r *ItemRepository) StateCounts(userID int64) (map[models.LearningState]int, error) {
	rows, err := DB.Queryx(`
		SELECT state, COUNT(*) AS n FROM items
		WHERE user_id = $1
		GROUP BY state
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count items by state: %v", err)
	}
	defer rows.Close()

	counts := make(map[models.LearningState]int)
	for rows.Next() {
		var row struct {
			State models.LearningState `db:"state"`
			N     int                  `db:"n"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %v", err)
		}
		counts[row.State] = row.N
	}
	return counts, rows.Err()
}
