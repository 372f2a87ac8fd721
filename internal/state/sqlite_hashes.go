package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetContentHash retrieves the last built content hash for a component.
// An unknown component yields an empty string.
func (s *SQLiteStore) GetContentHash(componentID string) (string, error) {
	if s.db == nil {
		return "", ErrStoreNotOpen
	}

	var hash string
	err := s.db.QueryRowContext(ctx(),
		`SELECT content_hash FROM content_hashes WHERE component_id = ?`, componentID,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get content hash: %w", err)
	}
	return hash, nil
}

// SetContentHash stores the content hash for a component.
func (s *SQLiteStore) SetContentHash(componentID, hash string) error {
	if s.db == nil {
		return ErrStoreNotOpen
	}

	_, err := s.db.ExecContext(ctx(),
		`INSERT INTO content_hashes (component_id, content_hash, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(component_id) DO UPDATE SET content_hash = excluded.content_hash, updated_at = excluded.updated_at`,
		componentID, hash, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set content hash: %w", err)
	}
	return nil
}

// DeleteContentHash removes the content hash for a component.
func (s *SQLiteStore) DeleteContentHash(componentID string) error {
	if s.db == nil {
		return ErrStoreNotOpen
	}

	if _, err := s.db.ExecContext(ctx(), `DELETE FROM content_hashes WHERE component_id = ?`, componentID); err != nil {
		return fmt.Errorf("failed to delete content hash: %w", err)
	}
	return nil
}

// ListContentHashes returns every stored hash keyed by component ID.
func (s *SQLiteStore) ListContentHashes() (map[string]string, error) {
	if s.db == nil {
		return nil, ErrStoreNotOpen
	}

	rows, err := s.db.QueryContext(ctx(), `SELECT component_id, content_hash FROM content_hashes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content hashes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return nil, fmt.Errorf("failed to scan content hash: %w", err)
		}
		out[id] = hash
	}
	return out, rows.Err()
}
