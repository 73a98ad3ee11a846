package sqlite

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jellofin/jellofin-server/database/model"
	"github.com/jellofin/jellofin-server/idhash"
)

// GetUser retrieves a user by username.
func (s *SqliteRepo) GetUser(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id,
		username,
		password,
		created,
		lastlogin,
		lastused FROM users WHERE username=? LIMIT 1`
	return sqlScanUser(s.dbReadHandle.QueryRowContext(ctx, query, username))
}

// GetUserByID retrieves a user from the database by their ID.
func (s *SqliteRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	const query = `SELECT id,
		username,
		password,
		created,
		lastlogin,
		lastused FROM users WHERE id=? LIMIT 1`
	return sqlScanUser(s.dbReadHandle.QueryRowContext(ctx, query, userID))
}

func sqlScanUser(row sqlScanner) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Created,
		&user.LastLogin,
		&user.LastUsed); err != nil {
		return nil, model.ErrNotFound
	}
	return &user, nil
}

// ValidateUser checks username and password. An empty stored password
// matches any provided password, for auto-registered accounts.
func (s *SqliteRepo) ValidateUser(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return nil, model.ErrInvalidPassword
		}
	}

	user.LastLogin = time.Now().UTC()
	user.LastUsed = user.LastLogin
	if err := s.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser creates a new user. An empty password stays empty, so the
// account can log in without one until a password is set.
func (s *SqliteRepo) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	hashed := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed = string(h)
	}

	user := &model.User{
		ID:       idhash.NewRandomID(),
		Username: username,
		Password: hashed,
		Created:  time.Now().UTC(),
	}
	if err := s.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpsertUser inserts or updates a user.
func (s *SqliteRepo) UpsertUser(ctx context.Context, user *model.User) error {
	tx, err := s.dbWriteHandle.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `REPLACE INTO users (id, username, password, created, lastlogin, lastused) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Password,
		user.Created,
		user.LastLogin,
		user.LastUsed); err != nil {
		return err
	}
	return tx.Commit()
}
