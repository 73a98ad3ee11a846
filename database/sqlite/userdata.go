package sqlite

import (
	"context"
	"time"

	"github.com/jellofin/jellofin-server/database/model"
)

// userDataKey is the key for the user data cache.
type userDataKey struct {
	userID string
	itemID string
}

// userDataRow is the playstate table row shape.
type userDataRow struct {
	UserID           string    `db:"userid"`
	ItemID           string    `db:"itemid"`
	Position         int64     `db:"position"`
	PlayedPercentage int       `db:"playedpercentage"`
	PlayCount        int       `db:"playcount"`
	Played           bool      `db:"played"`
	Favorite         bool      `db:"favorite"`
	Timestamp        time.Time `db:"timestamp"`
}

func (r *userDataRow) model() *model.UserData {
	return &model.UserData{
		Position:         r.Position,
		PlayedPercentage: r.PlayedPercentage,
		PlayCount:        r.PlayCount,
		Played:           r.Played,
		Favorite:         r.Favorite,
		Timestamp:        r.Timestamp,
	}
}

// GetUserData returns the play state of a user for an item. The cache
// serves repeat lookups; a miss loads from the database.
func (s *SqliteRepo) GetUserData(ctx context.Context, userID, itemID string) (*model.UserData, error) {
	key := userDataKey{userID: userID, itemID: itemID}

	s.mu.Lock()
	if details, ok := s.userDataEntries[key]; ok {
		s.mu.Unlock()
		return &details, nil
	}
	s.mu.Unlock()

	var row userDataRow
	err := s.dbReadHandle.GetContext(ctx, &row,
		"SELECT userid, itemid, position, playedpercentage, playcount, played, favorite, timestamp FROM playstate WHERE userid=? AND itemid=?",
		userID, itemID)
	if err != nil {
		return nil, notFound(err)
	}

	s.mu.Lock()
	s.userDataEntries[key] = *row.model()
	s.mu.Unlock()
	return row.model(), nil
}

// UpdateUserData stores the play state of a user for an item. Writes
// go through to the database immediately; play state must not be lost
// on an unclean shutdown.
func (s *SqliteRepo) UpdateUserData(ctx context.Context, userID, itemID string, details *model.UserData) error {
	details.Timestamp = time.Now().UTC()

	tx, err := s.dbWriteHandle.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx,
		`INSERT OR REPLACE INTO playstate (userid, itemid, position, playedpercentage, playcount, played, favorite, timestamp)
		VALUES (:userid, :itemid, :position, :playedpercentage, :playcount, :played, :favorite, :timestamp)`,
		&userDataRow{
			UserID:           userID,
			ItemID:           itemID,
			Position:         details.Position,
			PlayedPercentage: details.PlayedPercentage,
			PlayCount:        details.PlayCount,
			Played:           details.Played,
			Favorite:         details.Favorite,
			Timestamp:        details.Timestamp,
		}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.mu.Lock()
	s.userDataEntries[userDataKey{userID: userID, itemID: itemID}] = *details
	s.mu.Unlock()
	return nil
}

// GetFavorites returns all favorite item IDs of a user.
func (s *SqliteRepo) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	var itemIDs []string
	err := s.dbReadHandle.SelectContext(ctx, &itemIDs,
		"SELECT itemid FROM playstate WHERE userid=? AND favorite=1", userID)
	if err != nil {
		return nil, err
	}
	return itemIDs, nil
}

// GetResumeItems returns item IDs with partial playback, most advanced
// position first.
func (s *SqliteRepo) GetResumeItems(ctx context.Context, userID string, limit int) ([]string, error) {
	query := "SELECT itemid FROM playstate WHERE userid=? AND position>0 AND played!=1 ORDER BY position DESC"
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var itemIDs []string
	if err := s.dbReadHandle.SelectContext(ctx, &itemIDs, query, args...); err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return nil, model.ErrNotFound
	}
	return itemIDs, nil
}

// GetPlayedItems returns all fully watched item IDs of a user.
func (s *SqliteRepo) GetPlayedItems(ctx context.Context, userID string) ([]string, error) {
	var itemIDs []string
	err := s.dbReadHandle.SelectContext(ctx, &itemIDs,
		"SELECT itemid FROM playstate WHERE userid=? AND played=1", userID)
	if err != nil {
		return nil, err
	}
	return itemIDs, nil
}
