package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/clozebot/pkg/models"
)

// DeckRepository handles database operations for decks
type DeckRepository struct{}

// NewDeckRepository creates a new repository instance
func NewDeckRepository() *DeckRepository {
	return &DeckRepository{}
}

// GetByID returns a single deck
func (r *DeckRepository) GetByID(id int64) (*models.Deck, error) {
	var deck models.Deck
	err := DB.Get(&deck, "SELECT * FROM decks WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %v", err)
	}
	return &deck, nil
}

// GetByUser returns all decks belonging to a user
func (r *DeckRepository) GetByUser(userID int64) ([]models.Deck, error) {
	var decks []models.Deck
	err := DB.Select(&decks, "SELECT * FROM decks WHERE user_id = $1 ORDER BY name ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get decks: %v", err)
	}
	return decks, nil
}

// GetByName returns a user's deck by name
func (r *DeckRepository) GetByName(userID int64, name string) (*models.Deck, error) {
	var deck models.Deck
	err := DB.Get(&deck, "SELECT * FROM decks WHERE user_id = $1 AND name = $2", userID, name)
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// GetOrCreate returns the user's deck with the given name, creating it if
// it does not exist yet.
func (r *DeckRepository) GetOrCreate(userID int64, name string) (*models.Deck, error) {
	deck, err := r.GetByName(userID, name)
	if err == nil {
		return deck, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up deck: %v", err)
	}

	var id int64
	if DB.DriverName() == "postgres" {
		// lib/pq does not implement LastInsertId
		err := DB.QueryRow(
			"INSERT INTO decks (user_id, name) VALUES ($1, $2) RETURNING id",
			userID, name,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create deck: %v", err)
		}
	} else {
		result, err := DB.Exec("INSERT INTO decks (user_id, name) VALUES ($1, $2)", userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create deck: %v", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get deck id: %v", err)
		}
	}
	return r.GetByID(id)
}
