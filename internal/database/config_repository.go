package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/clozebot/pkg/models"
)

// ConfigRepository loads scheduling configuration: global defaults merged
// with any per-deck overrides stored in deck_configs.
type ConfigRepository struct{}

// NewConfigRepository creates a new repository instance
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{}
}

// deckConfigRow mirrors the deck_configs table; every column is nullable
// so a row only overrides what it sets.
type deckConfigRow struct {
	DeckID             int64           `db:"deck_id"`
	LearningSteps      sql.NullString  `db:"learning_steps"` // comma-separated minutes
	GraduatingInterval sql.NullInt64   `db:"graduating_interval"`
	EasyBonus          sql.NullFloat64 `db:"easy_bonus"`
	HardMultiplier     sql.NullFloat64 `db:"hard_multiplier"`
	IntervalMultiplier sql.NullFloat64 `db:"interval_multiplier"`
	MaxInterval        sql.NullInt64   `db:"max_interval"`
	DefaultEase        sql.NullFloat64 `db:"default_ease"`
	NewPerSession      sql.NullInt64   `db:"new_per_session"`
	CreatedAt          sql.NullTime    `db:"created_at"`
	UpdatedAt          sql.NullTime    `db:"updated_at"`
}

// GetForDeck returns the effective configuration for a deck. A missing
// override row simply yields the defaults.
func (r *ConfigRepository) GetForDeck(deckID int64) (models.Config, error) {
	cfg := models.DefaultConfig()

	var row deckConfigRow
	err := DB.Get(&row, "SELECT * FROM deck_configs WHERE deck_id = $1", deckID)
	if errors.Is(err, sql.ErrNoRows) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to get deck config: %v", err)
	}

	if row.LearningSteps.Valid {
		steps, err := parseSteps(row.LearningSteps.String)
		if err != nil {
			return cfg, fmt.Errorf("deck %d has invalid learning steps: %v", deckID, err)
		}
		cfg.LearningSteps = steps
	}
	if row.GraduatingInterval.Valid {
		cfg.GraduatingInterval = int(row.GraduatingInterval.Int64)
	}
	if row.EasyBonus.Valid {
		cfg.EasyBonus = row.EasyBonus.Float64
	}
	if row.HardMultiplier.Valid {
		cfg.HardMultiplier = row.HardMultiplier.Float64
	}
	if row.IntervalMultiplier.Valid {
		cfg.IntervalMultiplier = row.IntervalMultiplier.Float64
	}
	if row.MaxInterval.Valid {
		cfg.MaxInterval = int(row.MaxInterval.Int64)
	}
	if row.DefaultEase.Valid {
		cfg.DefaultEase = row.DefaultEase.Float64
	}
	if row.NewPerSession.Valid {
		cfg.NewPerSession = int(row.NewPerSession.Int64)
	}
	return cfg, nil
}

// SetForDeck stores a full override row for a deck.
func (r *ConfigRepository) SetForDeck(deckID int64, cfg models.Config) error {
	_, err := DB.Exec(`
		INSERT INTO deck_configs (
			deck_id, learning_steps, graduating_interval, easy_bonus,
			hard_multiplier, interval_multiplier, max_interval,
			default_ease, new_per_session
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (deck_id) DO UPDATE SET
			learning_steps = EXCLUDED.learning_steps,
			graduating_interval = EXCLUDED.graduating_interval,
			easy_bonus = EXCLUDED.easy_bonus,
			hard_multiplier = EXCLUDED.hard_multiplier,
			interval_multiplier = EXCLUDED.interval_multiplier,
			max_interval = EXCLUDED.max_interval,
			default_ease = EXCLUDED.default_ease,
			new_per_session = EXCLUDED.new_per_session,
			updated_at = CURRENT_TIMESTAMP
	`, deckID, formatSteps(cfg.LearningSteps), cfg.GraduatingInterval,
		cfg.EasyBonus, cfg.HardMultiplier, cfg.IntervalMultiplier,
		cfg.MaxInterval, cfg.DefaultEase, cfg.NewPerSession)
	if err != nil {
		return fmt.Errorf("failed to set deck config: %v", err)
	}
	return nil
}

func parseSteps(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	steps := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		steps = append(steps, n)
	}
	return steps, nil
}

func formatSteps(steps []int) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}
