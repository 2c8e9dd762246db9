// Package store provides SQLite persistence for bookscout.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"bookscout/internal/model"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:)
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saved_books (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT,
		summary TEXT,
		category TEXT,
		genre TEXT,
		match_score REAL DEFAULT 0,
		rating REAL DEFAULT 0,
		review_count INTEGER DEFAULT 0,
		year INTEGER DEFAULT 0,
		saved_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_saved_books_saved_at ON saved_books(saved_at DESC);

	CREATE TABLE IF NOT EXISTS search_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		searched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_search_history_at ON search_history(searched_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveBook stores a book in the saved list. Saving an already-saved book
// refreshes its metadata but keeps the original save time.
func (s *Store) SaveBook(b model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO saved_books (
			id, title, author, summary, category, genre,
			match_score, rating, review_count, year, saved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			summary = excluded.summary,
			category = excluded.category,
			genre = excluded.genre,
			match_score = excluded.match_score,
			rating = excluded.rating,
			review_count = excluded.review_count,
			year = excluded.year
	`, b.ID, b.Title, b.Author, b.Summary, b.Category, b.Genre,
		b.MatchScore, b.Rating, b.ReviewCount, b.Year, time.Now())
	return err
}

// RemoveSavedBook deletes a book from the saved list. Removing a book that
// is not saved is a no-op.
func (s *Store) RemoveSavedBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM saved_books WHERE id = ?", id)
	return err
}

// IsSaved reports whether a book is in the saved list.
func (s *Store) IsSaved(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM saved_books WHERE id = ?", id).Scan(&n)
	return n > 0, err
}

// SavedBooks returns all saved books, most recently saved first.
func (s *Store) SavedBooks() ([]model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, author, summary, category, genre,
			match_score, rating, review_count, year
		FROM saved_books
		ORDER BY saved_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Summary,
			&b.Category,
			&b.Genre,
			&b.MatchScore,
			&b.Rating,
			&b.ReviewCount,
			&b.Year,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// RecordSearch appends a term to the search history.
func (s *Store) RecordSearch(term string) error {
	if term == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO search_history (term, searched_at) VALUES (?, ?)",
		term, time.Now())
	return err
}

// RecentSearches returns up to limit distinct terms, most recent first.
func (s *Store) RecentSearches(limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT term FROM search_history
		GROUP BY term
		ORDER BY MAX(searched_at) DESC, MAX(id) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}
