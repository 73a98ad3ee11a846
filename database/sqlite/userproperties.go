package sqlite

import (
	"context"

	"github.com/jellofin/jellofin-server/database/model"
)

// GetUserProperty returns a per-user key/value setting, or
// model.ErrNotFound when the key was never set.
func (s *SqliteRepo) GetUserProperty(ctx context.Context, userID, key string) (string, error) {
	const query = `SELECT value FROM user_properties WHERE userid=? AND key=? LIMIT 1`
	var value string
	if err := s.dbReadHandle.QueryRowContext(ctx, query, userID, key).Scan(&value); err != nil {
		return "", model.ErrNotFound
	}
	return value, nil
}

// SetUserProperty inserts or updates a per-user key/value setting.
func (s *SqliteRepo) SetUserProperty(ctx context.Context, userID, key, value string) error {
	const query = `REPLACE INTO user_properties (userid, key, value) VALUES (?, ?, ?)`
	_, err := s.dbWriteHandle.ExecContext(ctx, query, userID, key, value)
	return err
}
