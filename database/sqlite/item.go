package sqlite

import (
	"context"

	"github.com/jellofin/jellofin-server/database/model"
)

// Upsert inserts or updates an item projection row.
func (s *SqliteRepo) Upsert(ctx context.Context, item *model.Item) error {
	tx, err := s.dbWriteHandle.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx,
		`INSERT OR REPLACE INTO items (id, name, votes, genre, rating, year)
		VALUES (:id, :name, :votes, :genre, :rating, :year)`, item); err != nil {
		return err
	}
	return tx.Commit()
}

// Get retrieves an item projection row by ID.
func (s *SqliteRepo) Get(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	err := s.dbReadHandle.GetContext(ctx, &item,
		"SELECT id, name, votes, genre, rating, year FROM items WHERE id=? LIMIT 1", itemID)
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}
