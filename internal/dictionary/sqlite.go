package dictionary

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
)

const createPronunciationsTable = `CREATE TABLE IF NOT EXISTS pronunciations (
	word    text    NOT NULL,
	variant integer NOT NULL,
	phones  text    NOT NULL,
	PRIMARY KEY (word, variant)
)`

// Store is a SQLite-backed pronunciation index built from a CMU dictionary.
// Lookups avoid parsing the full dictionary file on every run.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens or creates the index at path.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, createPronunciationsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Import replaces the index contents with every entry of dict and returns
// the number of pronunciations written.
func (s *Store) Import(ctx context.Context, dict *CMUDict) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pronunciations`); err != nil {
		return 0, fmt.Errorf("clear pronunciations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pronunciations (word, variant, phones) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, word := range dict.Words() {
		for i, pron := range dict.entries[word] {
			if _, err := stmt.ExecContext(ctx, word, i, pron.String()); err != nil {
				return 0, fmt.Errorf("failed to insert %q: %w", word, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	return count, nil
}

// Lookup returns the pronunciations of word ordered by variant.
func (s *Store) Lookup(ctx context.Context, word string) ([]phonetic.Pronunciation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT phones FROM pronunciations WHERE word = ? ORDER BY variant`,
		NormalizeWord(word))
	if err != nil {
		return nil, fmt.Errorf("query pronunciations: %w", err)
	}
	defer rows.Close()

	var prons []phonetic.Pronunciation
	for rows.Next() {
		var phones string
		if err := rows.Scan(&phones); err != nil {
			return nil, fmt.Errorf("scan pronunciation: %w", err)
		}
		prons = append(prons, phonetic.ParsePronunciation(phones))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pronunciations: %w", err)
	}

	return prons, nil
}

// Count returns the number of stored pronunciations
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pronunciations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pronunciations: %w", err)
	}
	return n, nil
}

// Name returns the backend name
func (s *Store) Name() string {
	return BackendSQLite
}

// IsAvailable checks that the database answers and is not empty
func (s *Store) IsAvailable() error {
	n, err := s.Count(context.Background())
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("dictionary index %s is empty, import a cmudict first", s.path)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
