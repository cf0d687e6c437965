package database

import (
	"fmt"
	"time"

	"github.com/example/clozebot/pkg/models"
)

// CardRepository handles database operations for cloze card templates
type CardRepository struct{}

// NewCardRepository creates a new repository instance
func NewCardRepository() *CardRepository {
	return &CardRepository{}
}

// GetByID returns a single card template
func (r *CardRepository) GetByID(id string) (*models.Card, error) {
	var card models.Card
	err := DB.Get(&card, "SELECT * FROM cards WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %v", err)
	}
	return &card, nil
}

// GetByDeck returns all card templates in a deck
func (r *CardRepository) GetByDeck(deckID int64) ([]models.Card, error) {
	var cards []models.Card
	err := DB.Select(&cards, "SELECT * FROM cards WHERE deck_id = $1 ORDER BY created_at ASC", deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %v", err)
	}
	return cards, nil
}

// CreateWithItems stores a card template together with its expanded items
// in one transaction, so a template can never exist without its items.
func (r *CardRepository) CreateWithItems(card *models.Card, items []models.Item) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO cards (id, deck_id, text, cloze_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, card.ID, card.DeckID, card.Text, card.ClozeCount, now, now)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create card: %v", err)
	}

	for i := range items {
		if err := saveItem(tx, &items[i]); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
