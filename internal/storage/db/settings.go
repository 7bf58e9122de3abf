package db

import (
	"context"
	"database/sql"
	"errors"
)

// GetSetting returns the stored value, or nil when the key was never set.
func (s *Storage) GetSetting(ctx context.Context, key string) (*string, error) {
	var value *string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM site_settings WHERE setting_key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Storage) SetSetting(ctx context.Context, key string, value *string) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO site_settings(setting_key, value, updated_at) VALUES($1, $2, $3)
	ON CONFLICT (setting_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now())
	return err
}
