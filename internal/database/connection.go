package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DB_TYPE selects the
// backend: "sqlite" (default) or "postgres" (DATABASE_URL required).
func Connect() error {
	switch dbType() {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db

	default:
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := os.Getenv("DATABASE_PATH")
		if dbPath == "" {
			dbPath = filepath.Join(dataDir, "clozebot.db")
		}
		db, err := sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		DB = db
	}

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

func dbType() string {
	t := os.Getenv("DB_TYPE")
	if t == "" {
		return "sqlite"
	}
	return t
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	for _, stmt := range schemaStatements(DB.DriverName()) {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}

// schemaStatements returns the DDL for the given driver. SQLite and
// Postgres disagree on auto-incrementing keys, everything else is shared.
func schemaStatements(driver string) []string {
	serialPK := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == "postgres" {
		serialPK = "BIGSERIAL PRIMARY KEY"
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT,
			first_name TEXT,
			notification_enabled BOOLEAN DEFAULT true,
			notification_hour INTEGER DEFAULT 9,
			new_per_session INTEGER DEFAULT 10,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS decks (
			id %s,
			user_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			UNIQUE(user_id, name)
		)`, serialPK),
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			deck_id INTEGER NOT NULL,
			text TEXT NOT NULL,
			cloze_count INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (deck_id) REFERENCES decks(id)
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			card_id TEXT NOT NULL,
			deck_id INTEGER NOT NULL,
			user_id BIGINT NOT NULL,
			cloze_index INTEGER NOT NULL,
			state TEXT NOT NULL DEFAULT 'new',
			ease_factor REAL NOT NULL DEFAULT 2.5,
			interval INTEGER NOT NULL DEFAULT 0,
			repetitions INTEGER NOT NULL DEFAULT 0,
			lapses INTEGER NOT NULL DEFAULT 0,
			step_index INTEGER,
			next_review TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (card_id) REFERENCES cards(id),
			FOREIGN KEY (deck_id) REFERENCES decks(id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			UNIQUE(card_id, user_id, cloze_index)
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS review_events (
			id %s,
			item_id TEXT NOT NULL,
			user_id BIGINT NOT NULL,
			rating TEXT NOT NULL,
			interval INTEGER NOT NULL,
			ease_factor REAL NOT NULL,
			reviewed_at TIMESTAMP NOT NULL,
			response_latency_ms INTEGER DEFAULT 0,
			FOREIGN KEY (item_id) REFERENCES items(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`, serialPK),
		`CREATE TABLE IF NOT EXISTS deck_configs (
			deck_id INTEGER PRIMARY KEY,
			learning_steps TEXT,
			graduating_interval INTEGER,
			easy_bonus REAL,
			hard_multiplier REAL,
			interval_multiplier REAL,
			max_interval INTEGER,
			default_ease REAL,
			new_per_session INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (deck_id) REFERENCES decks(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_due
			ON items(user_id, deck_id, state, next_review)`,
	}
}
