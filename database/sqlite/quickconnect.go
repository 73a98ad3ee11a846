package sqlite

import (
	"context"

	"github.com/jellofin/jellofin-server/database/model"
)

const quickConnectColumns = `userid,
	deviceid,
	secret,
	authorized,
	code,
	created`

// GetQuickConnectCodeBySecret retrieves a pending quick connect request
// by the secret handed out at initiation.
func (s *SqliteRepo) GetQuickConnectCodeBySecret(ctx context.Context, secret string) (*model.QuickConnectCode, error) {
	query := `SELECT ` + quickConnectColumns + ` FROM quickconnect WHERE secret=? LIMIT 1`
	return sqlScanQuickConnectCode(s.dbReadHandle.QueryRowContext(ctx, query, secret))
}

// GetQuickConnectCodeByCode retrieves a pending quick connect request by
// the short code the user types in on an already-authenticated device.
func (s *SqliteRepo) GetQuickConnectCodeByCode(ctx context.Context, code string) (*model.QuickConnectCode, error) {
	query := `SELECT ` + quickConnectColumns + ` FROM quickconnect WHERE code=? LIMIT 1`
	return sqlScanQuickConnectCode(s.dbReadHandle.QueryRowContext(ctx, query, code))
}

func sqlScanQuickConnectCode(row sqlScanner) (*model.QuickConnectCode, error) {
	var c model.QuickConnectCode
	if err := row.Scan(
		&c.UserID,
		&c.DeviceID,
		&c.Secret,
		&c.Authorized,
		&c.Code,
		&c.Created); err != nil {
		return nil, model.ErrNotFound
	}
	return &c, nil
}

// UpsertQuickConnectCode inserts or updates a quick connect request.
func (s *SqliteRepo) UpsertQuickConnectCode(ctx context.Context, code model.QuickConnectCode) error {
	const query = `REPLACE INTO quickconnect (userid, deviceid, secret, authorized, code, created)
	VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.dbWriteHandle.ExecContext(ctx, query,
		code.UserID,
		code.DeviceID,
		code.Secret,
		code.Authorized,
		code.Code,
		code.Created)
	return err
}
