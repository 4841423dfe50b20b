// Package store persists the landmark set catalog in PostgreSQL.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Store manages the PostgreSQL connection for the landmark catalog.
type Store struct {
	conn *pgx.Conn
}

// SetRecord is one catalog row: a converted landmark set available to the
// web front-end.
type SetRecord struct {
	ID         int
	Category   string
	Name       string
	Path       string
	PointCount int
	SourceHash string
	IndexedAt  time.Time
}

// New establishes a connection to the database and ensures the schema is initialized.
func New(ctx context.Context, connString string) (*Store, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Initialize schema (Auto-Migration)
	if err := initSchema(ctx, conn); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

func initSchema(ctx context.Context, conn *pgx.Conn) error {
	query := `
		CREATE TABLE IF NOT EXISTS landmark_sets (
			id BIGSERIAL PRIMARY KEY,
			category TEXT NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			point_count INT NOT NULL,
			source_hash TEXT NOT NULL DEFAULT '',
			indexed_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (category, name)
		);
		CREATE INDEX IF NOT EXISTS landmark_sets_category_idx ON landmark_sets (category);
	`
	_, err := conn.Exec(ctx, query)
	return err
}

// Close terminates the database connection.
func (s *Store) Close(ctx context.Context) {
	s.conn.Close(ctx)
}

// UpsertSet registers a landmark set in the catalog. Re-indexing the same
// (category, name) pair updates the existing row, so indexing is idempotent.
func (s *Store) UpsertSet(ctx context.Context, rec SetRecord) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO landmark_sets (category, name, path, point_count, source_hash, indexed_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (category, name) DO UPDATE
		SET path = EXCLUDED.path,
		    point_count = EXCLUDED.point_count,
		    source_hash = EXCLUDED.source_hash,
		    indexed_at = NOW()
	`, rec.Category, rec.Name, rec.Path, rec.PointCount, rec.SourceHash)
	return err
}

// ListSets returns all catalog rows ordered by category and name.
func (s *Store) ListSets(ctx context.Context) ([]SetRecord, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, category, name, path, point_count, source_hash, indexed_at
		FROM landmark_sets
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []SetRecord
	for rows.Next() {
		var r SetRecord
		if err := rows.Scan(&r.ID, &r.Category, &r.Name, &r.Path, &r.PointCount, &r.SourceHash, &r.IndexedAt); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// CountSets returns the number of catalog rows, per category.
func (s *Store) CountSets(ctx context.Context) (map[string]int, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT category, COUNT(*) FROM landmark_sets GROUP BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// Reset drops the catalog tables to clear the database state.
// This is useful for development to force a schema refresh without migrations.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, `DROP TABLE IF EXISTS landmark_sets CASCADE`)
	return err
}
