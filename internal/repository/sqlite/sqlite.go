package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"threatlens/internal/domain"

	_ "modernc.org/sqlite"
)

// Store implements repository.ViewStore using SQLite
type Store struct {
	db *sql.DB
}

// New creates a new SQLite view store
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saved_views (
		name TEXT PRIMARY KEY,
		zoom REAL NOT NULL DEFAULT 1.0,
		pan_x REAL NOT NULL DEFAULT 0,
		pan_y REAL NOT NULL DEFAULT 0,
		positions JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveView inserts or replaces a view by name
func (s *Store) SaveView(ctx context.Context, view *domain.SavedView) error {
	if view.Name == "" {
		return fmt.Errorf("view name required")
	}

	positionsJSON, err := marshalPositions(view.Positions)
	if err != nil {
		return fmt.Errorf("marshal positions: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_views (name, zoom, pan_x, pan_y, positions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			zoom = excluded.zoom,
			pan_x = excluded.pan_x,
			pan_y = excluded.pan_y,
			positions = excluded.positions,
			updated_at = excluded.updated_at
	`, view.Name, view.Zoom, view.Pan.X, view.Pan.Y, positionsJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}

	return nil
}

// GetView returns the view with the given name, or nil if absent
func (s *Store) GetView(ctx context.Context, name string) (*domain.SavedView, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, zoom, pan_x, pan_y, positions, created_at, updated_at
		FROM saved_views WHERE name = ?
	`, name)

	var r viewRow
	if err := row.Scan(r.scanArgs()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query view: %w", err)
	}

	return r.toDomain()
}

// ListViews returns all saved views ordered by name
func (s *Store) ListViews(ctx context.Context) ([]domain.SavedView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, zoom, pan_x, pan_y, positions, created_at, updated_at
		FROM saved_views ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query views: %w", err)
	}
	defer rows.Close()

	views := make([]domain.SavedView, 0)
	for rows.Next() {
		var r viewRow
		if err := rows.Scan(r.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan view: %w", err)
		}
		view, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating views: %w", err)
	}

	return views, nil
}

// DeleteView removes a view; deleting an absent view is not an error
func (s *Store) DeleteView(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_views WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}
	return nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}
