package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/leapstack-labs/leapui/pkg/core"
)

const artifactColumns = `id, build_id, component_id, component_name, status, content_hash,
	module_path, stylesheet_path, error, duration_ms, created_at`

// RecordArtifact stores the outcome for one component. ID and CreatedAt are
// filled in when empty.
func (s *SQLiteStore) RecordArtifact(a *core.ArtifactRecord) error {
	if s.db == nil {
		return ErrStoreNotOpen
	}
	if a.ID == "" {
		a.ID = generateID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx(),
		`INSERT INTO artifacts (`+artifactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.BuildID, a.ComponentID, a.ComponentName, string(a.Status), a.ContentHash,
		a.ModulePath, a.StylesheetPath, nullString(a.Error), a.DurationMS, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record artifact for %s: %w", a.ComponentID, err)
	}
	return nil
}

// GetArtifactsForBuild returns the artifacts of a build in recording order.
func (s *SQLiteStore) GetArtifactsForBuild(buildID string) ([]*core.ArtifactRecord, error) {
	if s.db == nil {
		return nil, ErrStoreNotOpen
	}

	rows, err := s.db.QueryContext(ctx(),
		`SELECT `+artifactColumns+` FROM artifacts WHERE build_id = ? ORDER BY rowid`, buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get artifacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*core.ArtifactRecord
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetLatestArtifact returns the newest artifact for a component, or nil.
func (s *SQLiteStore) GetLatestArtifact(componentID string) (*core.ArtifactRecord, error) {
	if s.db == nil {
		return nil, ErrStoreNotOpen
	}

	row := s.db.QueryRowContext(ctx(),
		`SELECT `+artifactColumns+` FROM artifacts WHERE component_id = ? ORDER BY rowid DESC LIMIT 1`, componentID)
	a, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest artifact: %w", err)
	}
	return a, nil
}

func scanArtifact(row scanner) (*core.ArtifactRecord, error) {
	var (
		a      core.ArtifactRecord
		status string
		errMsg sql.NullString
	)
	err := row.Scan(&a.ID, &a.BuildID, &a.ComponentID, &a.ComponentName, &status, &a.ContentHash,
		&a.ModulePath, &a.StylesheetPath, &errMsg, &a.DurationMS, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = core.ArtifactStatus(status)
	a.Error = errMsg.String
	return &a, nil
}
