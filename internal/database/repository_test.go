package database

import (
	"testing"
	"time"

	"github.com/example/clozebot/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dt0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// setupTestDB points the package at a fresh in-memory database for one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	prev := DB
	DB = db
	require.NoError(t, initializeSchema())
	t.Cleanup(func() {
		db.Close()
		DB = prev
	})
}

func TestDeckGetOrCreateRoundTrip(t *testing.T) {
	setupTestDB(t)
	users := NewUserRepository()
	decks := NewDeckRepository()

	_, err := users.GetOrCreate(42, "ada", "Ada")
	require.NoError(t, err)

	deck, err := decks.GetOrCreate(42, "Geography")
	require.NoError(t, err)
	assert.NotZero(t, deck.ID)
	assert.Equal(t, "Geography", deck.Name)

	again, err := decks.GetOrCreate(42, "Geography")
	require.NoError(t, err)
	assert.Equal(t, deck.ID, again.ID, "second call must return the existing deck")
}

func TestCountDueAndNewForDeck(t *testing.T) {
	setupTestDB(t)
	users := NewUserRepository()
	decks := NewDeckRepository()
	items := NewItemRepository()

	_, err := users.GetOrCreate(42, "ada", "Ada")
	require.NoError(t, err)
	deck, err := decks.GetOrCreate(42, "Geography")
	require.NoError(t, err)

	overdue := models.NewItem("card-1", deck.ID, 42, 1, 2.5, dt0)
	overdue.State = models.StateReview
	overdue.StepIndex = nil
	overdue.NextReview = dt0.Add(-time.Hour)
	require.NoError(t, items.Save(&overdue))

	scheduled := models.NewItem("card-1", deck.ID, 42, 2, 2.5, dt0)
	scheduled.State = models.StateReview
	scheduled.StepIndex = nil
	scheduled.NextReview = dt0.Add(time.Hour)
	require.NoError(t, items.Save(&scheduled))

	fresh := models.NewItem("card-2", deck.ID, 42, 1, 2.5, dt0)
	require.NoError(t, items.Save(&fresh))

	due, err := items.CountDueForDeck(42, deck.ID, dt0)
	require.NoError(t, err)
	assert.Equal(t, 1, due, "only the overdue review item counts as due")

	newCount, err := items.CountNewForDeck(42, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, newCount)
}

func TestUserUpdatePersistsSettings(t *testing.T) {
	setupTestDB(t)
	users := NewUserRepository()

	user, err := users.GetOrCreate(42, "ada", "Ada")
	require.NoError(t, err)

	user.NotificationEnabled = false
	user.NotificationHour = 7
	user.NewPerSession = 5
	require.NoError(t, users.Update(user))

	got, err := users.GetByID(42)
	require.NoError(t, err)
	assert.False(t, got.NotificationEnabled)
	assert.Equal(t, 7, got.NotificationHour)
	assert.Equal(t, 5, got.NewPerSession)
}

func TestDeckConfigOverrideRoundTrip(t *testing.T) {
	setupTestDB(t)
	users := NewUserRepository()
	decks := NewDeckRepository()
	cfgs := NewConfigRepository()

	_, err := users.GetOrCreate(42, "ada", "Ada")
	require.NoError(t, err)
	deck, err := decks.GetOrCreate(42, "Geography")
	require.NoError(t, err)

	// No override row yet: plain defaults.
	got, err := cfgs.GetForDeck(deck.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConfig(), got)

	cfg := models.DefaultConfig()
	cfg.LearningSteps = []int{5, 25}
	cfg.GraduatingInterval = 3
	require.NoError(t, cfgs.SetForDeck(deck.ID, cfg))

	got, err = cfgs.GetForDeck(deck.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 25}, got.LearningSteps)
	assert.Equal(t, 3, got.GraduatingInterval)

	// Writing again replaces the override instead of erroring.
	cfg.GraduatingInterval = 4
	require.NoError(t, cfgs.SetForDeck(deck.ID, cfg))
	got, err = cfgs.GetForDeck(deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.GraduatingInterval)
}
