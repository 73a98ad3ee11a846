package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jellofin/jellofin-server/database/model"
)

// HasImage reports the stored metadata for an item's image without
// loading the blob itself.
func (s *SqliteRepo) HasImage(ctx context.Context, itemID, imageType string) (model.ImageMetadata, error) {
	const query = `SELECT mimetype,
		etag,
		updated,
		filesize FROM images WHERE itemid=? AND type=? LIMIT 1`
	return sqlScanImageMetadata(s.dbReadHandle.QueryRowContext(ctx, query, itemID, imageType))
}

func sqlScanImageMetadata(row sqlScanner) (model.ImageMetadata, error) {
	var m model.ImageMetadata
	if err := row.Scan(
		&m.MimeType,
		&m.Etag,
		&m.Updated,
		&m.FileSize); err != nil {
		return model.ImageMetadata{}, model.ErrNotFound
	}
	return m, nil
}

// GetImage retrieves an item's image blob and its metadata.
func (s *SqliteRepo) GetImage(ctx context.Context, itemID, imageType string) (model.ImageMetadata, []byte, error) {
	const query = `SELECT mimetype,
		etag,
		updated,
		filesize,
		data FROM images WHERE itemid=? AND type=? LIMIT 1`
	var m model.ImageMetadata
	var data []byte
	err := s.dbReadHandle.QueryRowContext(ctx, query, itemID, imageType).Scan(
		&m.MimeType,
		&m.Etag,
		&m.Updated,
		&m.FileSize,
		&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ImageMetadata{}, nil, model.ErrNotFound
	}
	if err != nil {
		return model.ImageMetadata{}, nil, err
	}
	return m, data, nil
}

// StoreImage inserts or replaces an item's image.
func (s *SqliteRepo) StoreImage(ctx context.Context, itemID, imageType string, metadata model.ImageMetadata, data []byte) error {
	const query = `REPLACE INTO images (itemid, type, mimetype, etag, updated, filesize, data)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.dbWriteHandle.ExecContext(ctx, query,
		itemID,
		imageType,
		metadata.MimeType,
		metadata.Etag,
		metadata.Updated,
		metadata.FileSize,
		data)
	return err
}

// DeleteImage removes an item's image.
func (s *SqliteRepo) DeleteImage(ctx context.Context, itemID, imageType string) error {
	const query = `DELETE FROM images WHERE itemid=? AND type=?`
	_, err := s.dbWriteHandle.ExecContext(ctx, query, itemID, imageType)
	return err
}
