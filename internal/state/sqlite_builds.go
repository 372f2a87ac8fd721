package state

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leapui/pkg/core"
)

const buildColumns = `id, document, status, started_at, completed_at, error`

// CreateBuild starts a new build of document.
func (s *SQLiteStore) CreateBuild(document string) (*core.Build, error) {
	if s.db == nil {
		return nil, ErrStoreNotOpen
	}

	b := &core.Build{
		ID:        generateID(),
		Document:  document,
		Status:    core.BuildStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	s.logger.Debug("creating build", slog.String("build_id", b.ID), slog.String("path", document))

	_, err := s.db.ExecContext(ctx(),
		`INSERT INTO builds (id, document, status, started_at) VALUES (?, ?, ?, ?)`,
		b.ID, b.Document, string(b.Status), b.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create build: %w", err)
	}
	return b, nil
}

// GetBuild retrieves a build by ID.
func (s *SQLiteStore) GetBuild(id string) (*core.Build, error) {
	if s.db == nil {
		return nil, ErrStoreNotOpen
	}

	row := s.db.QueryRowContext(ctx(), `SELECT `+buildColumns+` FROM builds WHERE id = ?`, id)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("build not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get build: %w", err)
	}
	return b, nil
}

// CompleteBuild marks a build as finished with the given status.
func (s *SQLiteStore) CompleteBuild(id string, status core.BuildStatus, errMsg string) error {
	if s.db == nil {
		return ErrStoreNotOpen
	}

	res, err := s.db.ExecContext(ctx(),
		`UPDATE builds SET status = ?, completed_at = ?, error = ? WHERE id = ?`,
		string(status), time.Now().UTC(), nullString(errMsg), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete build: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("build not found: %s", id)
	}
	return nil
}

// GetLatestBuild returns the most recently started build, or nil if there
// is none.
func (s *SQLiteStore) GetLatestBuild() (*core.Build, error) {
	if s.db == nil {
		return nil, ErrStoreNotOpen
	}

	row := s.db.QueryRowContext(ctx(),
		`SELECT `+buildColumns+` FROM builds ORDER BY rowid DESC LIMIT 1`)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest build: %w", err)
	}
	return b, nil
}

// ListBuilds returns up to limit builds, newest first.
func (s *SQLiteStore) ListBuilds(limit int) ([]*core.Build, error) {
	if s.db == nil {
		return nil, ErrStoreNotOpen
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx(),
		`SELECT `+buildColumns+` FROM builds ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var builds []*core.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (*core.Build, error) {
	var (
		b           core.Build
		status      string
		completedAt sql.NullTime
		errMsg      sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Document, &status, &b.StartedAt, &completedAt, &errMsg); err != nil {
		return nil, err
	}
	b.Status = core.BuildStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		b.CompletedAt = &t
	}
	b.Error = errMsg.String
	return &b, nil
}
