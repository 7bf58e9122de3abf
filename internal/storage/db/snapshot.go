package db

import (
	"context"
	"fmt"
)

// Snapshot writes a consistent copy of a SQLite database to dest, which must
// not exist yet. PostgreSQL has no database file, so ok is false there.
func (s *Storage) Snapshot(ctx context.Context, dest string) (ok bool, err error) {
	if s.dialect.name != sqliteDialect.name {
		return false, nil
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO $1`, dest); err != nil {
		return false, fmt.Errorf("failed to snapshot database: %w", err)
	}
	return true, nil
}
