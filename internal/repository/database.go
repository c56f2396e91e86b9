package repository

import (
	"database/sql"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/logoscenter/logos-bot/internal/config"
)

const historyCacheSize = 256

// Message is one conversation turn, role is either "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// Store keeps per-chat conversation history and usage events in sqlite.
// Reads of the history window go through an LRU cache keyed by chat.
type Store struct {
	db         *sql.DB
	cache      *lru.Cache[string, []Message]
	maxHistory int
}

func Open(path string, maxHistory int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			service TEXT NOT NULL,
			chat_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(service, chat_id, id);
		CREATE TABLE IF NOT EXISTS usage_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			service TEXT NOT NULL,
			chat_id TEXT NOT NULL,
			action TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_usage_created ON usage_events(created_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cache, err := lru.New[string, []Message](historyCacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history cache: %w", err)
	}

	return &Store{db: db, cache: cache, maxHistory: maxHistory}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

var (
	shared     *Store
	sharedErr  error
	sharedOnce sync.Once
)

// Shared returns the process-wide store backed by DATABASE_LOCATION.
func Shared() (*Store, error) {
	sharedOnce.Do(func() {
		cfg := config.FromEnv()
		shared, sharedErr = Open(cfg.DATABASE_LOCATION, cfg.MaxHistoryMessages())
	})
	return shared, sharedErr
}
