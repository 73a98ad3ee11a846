package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jellofin/jellofin-server/database/model"
)

// CreateAccessToken issues a new token for a user. The token lands in
// the cache; the background flush persists it.
func (s *SqliteRepo) CreateAccessToken(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	t := &model.AccessToken{
		Token:    token,
		UserID:   userID,
		Created:  time.Now().UTC(),
		LastUsed: time.Now().UTC(),
	}

	// Persist right away as well: a token must survive a crash that
	// happens before the next cache flush.
	if err := s.storeToken(t); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.accessTokenCache[token] = t
	s.mu.Unlock()

	return token, nil
}

// GetAccessToken returns accesstoken details based upon tokenid.
func (s *SqliteRepo) GetAccessToken(ctx context.Context, token string) (*model.AccessToken, error) {
	s.mu.Lock()
	// Try our in-memory store first
	if at, ok := s.accessTokenCache[token]; ok {
		// Update token timestamp so we can keep track of in-use tokens
		at.LastUsed = time.Now().UTC()
		s.mu.Unlock()
		return at, nil
	}
	s.mu.Unlock()

	// try database
	var t model.AccessToken
	err := s.dbReadHandle.QueryRowContext(ctx,
		"SELECT userid, token, created, lastused FROM accesstokens WHERE token=? LIMIT 1", token).
		Scan(&t.UserID, &t.Token, &t.Created, &t.LastUsed)
	if err != nil {
		return nil, model.ErrNotFound
	}
	t.LastUsed = time.Now().UTC()

	s.mu.Lock()
	s.accessTokenCache[token] = &t
	s.mu.Unlock()
	return &t, nil
}

// DeleteAccessToken revokes a token in cache and database.
func (s *SqliteRepo) DeleteAccessToken(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.accessTokenCache, token)
	s.mu.Unlock()

	_, err := s.dbWriteHandle.ExecContext(ctx, "DELETE FROM accesstokens WHERE token=?", token)
	return err
}

// writeChangedAccessTokensToDB writes updated access tokens to db to
// persist their last use date.
func (s *SqliteRepo) writeChangedAccessTokensToDB() error {
	s.mu.Lock()
	changed := make([]*model.AccessToken, 0)
	for _, t := range s.accessTokenCache {
		if t.LastUsed.After(s.accessTokenCacheSyncTime) {
			changed = append(changed, t)
		}
	}
	s.accessTokenCacheSyncTime = time.Now().UTC()
	s.mu.Unlock()

	for _, t := range changed {
		if err := s.storeToken(t); err != nil {
			return err
		}
	}
	return nil
}

// storeToken stores an access token in the database.
func (s *SqliteRepo) storeToken(t *model.AccessToken) error {
	if s.dbWriteHandle == nil {
		return model.ErrNoDbHandle
	}
	tx, err := s.dbWriteHandle.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(`INSERT OR REPLACE INTO accesstokens (userid, token, created, lastused)
		VALUES (:userid, :token, :created, :lastused)`,
		map[string]any{
			"userid":   t.UserID,
			"token":    t.Token,
			"created":  t.Created,
			"lastused": t.LastUsed,
		}); err != nil {
		return err
	}
	return tx.Commit()
}
