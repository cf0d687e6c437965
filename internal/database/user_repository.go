package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/clozebot/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID returns a single user
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreate returns the user with the given Telegram ID, registering
// them with default settings on first contact.
func (r *UserRepository) GetOrCreate(id int64, username, firstName string) (*models.User, error) {
	user, err := r.GetByID(id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user: %v", err)
	}

	_, err = DB.Exec(`
		INSERT INTO users (id, username, first_name)
		VALUES ($1, $2, $3)
	`, id, username, firstName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}
	return r.GetByID(id)
}

// Update modifies a user's settings
func (r *UserRepository) Update(user *models.User) error {
	_, err := DB.Exec(`
		UPDATE users SET
			username = $1,
			first_name = $2,
			notification_enabled = $3,
			notification_hour = $4,
			new_per_session = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`, user.Username, user.FirstName, user.NotificationEnabled,
		user.NotificationHour, user.NewPerSession, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	return nil
}

// GetUsersForNotification returns users who have notifications enabled for
// the given hour of day.
func (r *UserRepository) GetUsersForNotification(hour int) ([]models.User, error) {
	var users []models.User
	err := DB.Select(&users, `
		SELECT * FROM users
		WHERE notification_enabled = true AND notification_hour = $1
	`, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}
