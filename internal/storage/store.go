package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a site does not exist.
var ErrNotFound = errors.New("site not found")

// Site is a persisted generated landing page.
type Site struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Ticker    string    `json:"ticker"`
	HTML      string    `json:"html"`
	Fallback  bool      `json:"fallback"`
	CreatedAt time.Time `json:"created_at"`
}

// Store handles queries to the SQLite sites database
type Store struct {
	db *sql.DB
}

// NewStore creates a new sites store
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer. One pooled connection avoids
	// lock contention and keeps in-memory databases coherent.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// initSchema creates the sites table if it doesn't exist
func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS sites (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			ticker TEXT NOT NULL,
			html TEXT NOT NULL,
			fallback INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`

	_, err := s.db.Exec(query)
	return err
}

// SaveSite persists a generated site
func (s *Store) SaveSite(ctx context.Context, site Site) error {
	query := `
		INSERT OR REPLACE INTO sites (id, name, ticker, html, fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	createdAt := site.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		site.ID, site.Name, site.Ticker, site.HTML, boolToInt(site.Fallback), createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert site: %w", err)
	}

	return nil
}

// GetSite returns a site by its ID
func (s *Store) GetSite(ctx context.Context, id string) (*Site, error) {
	query := "SELECT id, name, ticker, html, fallback, created_at FROM sites WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)

	var site Site
	var fallback int
	err := row.Scan(&site.ID, &site.Name, &site.Ticker, &site.HTML, &fallback, &site.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan site: %w", err)
	}
	site.Fallback = fallback != 0

	return &site, nil
}

// ListSites returns site summaries, newest first. The HTML column is
// skipped, it can run to hundreds of kilobytes per row.
func (s *Store) ListSites(ctx context.Context, limit int) ([]Site, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, ticker, fallback, created_at FROM sites
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []Site
	for rows.Next() {
		var site Site
		var fallback int
		if err := rows.Scan(&site.ID, &site.Name, &site.Ticker, &fallback, &site.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site row: %w", err)
		}
		site.Fallback = fallback != 0
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating site rows: %w", err)
	}

	return sites, nil
}

// DeleteSite removes a site by its ID
func (s *Store) DeleteSite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
