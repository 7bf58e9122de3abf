package db

import (
	"context"

	"github.com/mindseye-dev/portfolio/internal/domain"
)

func (s *Storage) LogBackup(ctx context.Context, entry domain.BackupLogEntry) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
	INSERT INTO backup_log(filename, backup_type, file_size, status, error_message, created_at)
	VALUES($1, $2, $3, $4, $5, $6)
	RETURNING id`,
		entry.Filename, entry.BackupType, entry.FileSize, entry.Status, entry.ErrorMessage, now(),
	).Scan(&id)
	return id, err
}

// BackupHistory returns the newest entries first.
func (s *Storage) BackupHistory(ctx context.Context, limit int) ([]domain.BackupLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, filename, backup_type, file_size, status, error_message, created_at
	FROM backup_log
	ORDER BY created_at DESC, id DESC
	LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.BackupLogEntry{}
	for rows.Next() {
		var e domain.BackupLogEntry
		if err := rows.Scan(&e.Id, &e.Filename, &e.BackupType, &e.FileSize, &e.Status, &e.ErrorMessage, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
