// Package storage persists the keyword-extraction cache so the same photo
// never pays for a second LLM call. Search results themselves are never
// persisted.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store defines the interface for keyword cache persistence.
type Store interface {
	// GetKeyword returns the cached keyword for an image hash, or "" when
	// no entry exists.
	GetKeyword(imageHash string) (string, error)
	SetKeyword(imageHash, keyword string) error
	Close() error
}

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS keyword_cache (
			image_hash TEXT PRIMARY KEY,
			keyword    TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) GetKeyword(imageHash string) (string, error) {
	var keyword string
	err := s.db.QueryRow(
		`SELECT keyword FROM keyword_cache WHERE image_hash = ?`, imageHash,
	).Scan(&keyword)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyword cache: %w", err)
	}
	return keyword, nil
}

func (s *SQLiteStore) SetKeyword(imageHash, keyword string) error {
	_, err := s.db.Exec(`
		INSERT INTO keyword_cache (image_hash, keyword) VALUES (?, ?)
		ON CONFLICT(image_hash) DO UPDATE SET keyword = excluded.keyword
	`, imageHash, keyword)
	if err != nil {
		return fmt.Errorf("failed to write keyword cache: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
