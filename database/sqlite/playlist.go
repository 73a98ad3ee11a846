package sqlite

import (
	"context"
	"time"

	"github.com/jellofin/jellofin-server/database/model"
	"github.com/jellofin/jellofin-server/idhash"
)

// CreatePlaylist creates a playlist with the given items. Every create
// gets a fresh unique id.
func (s *SqliteRepo) CreatePlaylist(ctx context.Context, newPlaylist model.Playlist) (string, error) {
	newPlaylist.ID = idhash.NewRandomID()

	tx, err := s.dbWriteHandle.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err = tx.NamedExecContext(ctx, `INSERT INTO playlist (id, name, userid, timestamp)
		VALUES (:id, :name, :userid, :timestamp)`,
		map[string]any{
			"id":        newPlaylist.ID,
			"name":      newPlaylist.Name,
			"userid":    newPlaylist.UserID,
			"timestamp": time.Now().UTC(),
		}); err != nil {
		return "", err
	}

	for order, itemID := range newPlaylist.ItemIDs {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO playlist_item (playlistid, itemid, itemorder, timestamp)
			VALUES (:playlistid, :itemid, :itemorder, :timestamp)`,
			map[string]any{
				"playlistid": newPlaylist.ID,
				"itemid":     itemID,
				"itemorder":  order + 1,
				"timestamp":  time.Now().UTC(),
			}); err != nil {
			return "", err
		}
	}
	return newPlaylist.ID, tx.Commit()
}

// GetPlaylists returns the playlist IDs of a user.
func (s *SqliteRepo) GetPlaylists(ctx context.Context, userID string) ([]string, error) {
	var playlistIDs []string
	err := s.dbReadHandle.SelectContext(ctx, &playlistIDs,
		"SELECT id FROM playlist WHERE userid=?", userID)
	if err != nil {
		return nil, err
	}
	return playlistIDs, nil
}

// GetPlaylist returns one playlist of a user, items in playlist order.
func (s *SqliteRepo) GetPlaylist(ctx context.Context, userID, playlistID string) (*model.Playlist, error) {
	var playlist struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		UserID    string    `db:"userid"`
		Timestamp time.Time `db:"timestamp"`
	}
	if err := s.dbReadHandle.GetContext(ctx, &playlist,
		"SELECT id, name, userid, timestamp FROM playlist WHERE userid=? AND id=? LIMIT 1",
		userID, playlistID); err != nil {
		return nil, notFound(err)
	}

	result := &model.Playlist{
		ID:     playlist.ID,
		Name:   playlist.Name,
		UserID: playlist.UserID,
	}
	if err := s.dbReadHandle.SelectContext(ctx, &result.ItemIDs,
		"SELECT itemid FROM playlist_item WHERE playlistid=? ORDER BY itemorder",
		playlistID); err != nil {
		return nil, err
	}
	return result, nil
}

// AddItemsToPlaylist appends items to a playlist. New items continue
// the order after the current highest.
func (s *SqliteRepo) AddItemsToPlaylist(ctx context.Context, userID, playlistID string, itemIDs []string) error {
	tx, err := s.dbWriteHandle.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// highest order number of the playlist, 0 when empty
	var maxOrder int
	if err = tx.GetContext(ctx, &maxOrder,
		"SELECT COALESCE(MAX(itemorder), 0) FROM playlist_item WHERE playlistid=?", playlistID); err != nil {
		return err
	}

	order := maxOrder + 1
	for _, itemID := range itemIDs {
		if _, err := tx.NamedExecContext(ctx, `INSERT OR REPLACE INTO playlist_item (playlistid, itemid, itemorder, timestamp)
			VALUES (:playlistid, :itemid, :itemorder, :timestamp)`,
			map[string]any{
				"playlistid": playlistID,
				"itemid":     itemID,
				"itemorder":  order,
				"timestamp":  time.Now().UTC(),
			}); err != nil {
			return err
		}
		order++
	}
	return tx.Commit()
}

// DeleteItemsFromPlaylist removes items from a playlist.
func (s *SqliteRepo) DeleteItemsFromPlaylist(ctx context.Context, playlistID string, itemIDs []string) error {
	tx, err := s.dbWriteHandle.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, itemID := range itemIDs {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM playlist_item WHERE playlistid=? AND itemid=?",
			playlistID, itemID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// MovePlaylistItem moves an item to a new position. The whole order
// column is rewritten; playlists are small.
func (s *SqliteRepo) MovePlaylistItem(ctx context.Context, playlistID string, itemID string, newIndex int) error {
	tx, err := s.dbWriteHandle.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var itemIDs []string
	if err := tx.SelectContext(ctx, &itemIDs,
		"SELECT itemid FROM playlist_item WHERE playlistid=? ORDER BY itemorder",
		playlistID); err != nil {
		return err
	}

	reordered := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		if id != itemID {
			reordered = append(reordered, id)
		}
	}
	if len(reordered) == len(itemIDs) {
		return model.ErrNotFound
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(reordered) {
		newIndex = len(reordered)
	}
	reordered = append(reordered[:newIndex], append([]string{itemID}, reordered[newIndex:]...)...)

	for order, id := range reordered {
		if _, err := tx.ExecContext(ctx,
			"UPDATE playlist_item SET itemorder=? WHERE playlistid=? AND itemid=?",
			order+1, playlistID, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
