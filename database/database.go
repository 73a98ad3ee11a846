// Package database is the persistence facade: the interfaces the rest
// of the server talks to, backed by the sqlite implementation.
package database

import (
	"context"

	"github.com/jellofin/jellofin-server/database/model"
	"github.com/jellofin/jellofin-server/database/sqlite"
)

type (
	Options struct {
		Filename string
	}

	// Repository bundles the per-concern storage interfaces. All of
	// them are currently served by one sqlite repo.
	Repository struct {
		UserRepo         UserRepo
		UserPropertyRepo UserPropertyRepo
		AccessTokenRepo  AccessTokenRepo
		ItemRepo         ItemRepo
		UserDataRepo     UserDataRepo
		PlaylistRepo     PlaylistRepo
		ImageRepo        ImageRepo
		QuickConnectRepo QuickConnectRepo

		backend *sqlite.SqliteRepo
	}

	UserRepo interface {
		// GetUser retrieves a user by username.
		GetUser(ctx context.Context, username string) (*model.User, error)
		// GetUserByID retrieves a user by ID.
		GetUserByID(ctx context.Context, userID string) (*model.User, error)
		// ValidateUser checks the password of a user.
		ValidateUser(ctx context.Context, username, password string) (*model.User, error)
		// CreateUser creates a new user.
		CreateUser(ctx context.Context, username, password string) (*model.User, error)
		// UpsertUser inserts or updates a user.
		UpsertUser(ctx context.Context, user *model.User) error
	}

	UserPropertyRepo interface {
		// GetUserProperty returns a per-user setting by key.
		GetUserProperty(ctx context.Context, userID, key string) (string, error)
		// SetUserProperty inserts or updates a per-user setting.
		SetUserProperty(ctx context.Context, userID, key, value string) error
	}

	AccessTokenRepo interface {
		// CreateAccessToken issues a new token for a user.
		CreateAccessToken(ctx context.Context, userID string) (string, error)
		// GetAccessToken returns token details.
		GetAccessToken(ctx context.Context, token string) (*model.AccessToken, error)
		// DeleteAccessToken revokes a token.
		DeleteAccessToken(ctx context.Context, token string) error
	}

	ItemRepo interface {
		// Upsert inserts or updates an item projection row.
		Upsert(ctx context.Context, item *model.Item) error
		// Get retrieves an item projection row by ID.
		Get(ctx context.Context, itemID string) (*model.Item, error)
	}

	UserDataRepo interface {
		// GetUserData returns the play state of a user for an item.
		GetUserData(ctx context.Context, userID, itemID string) (*model.UserData, error)
		// UpdateUserData stores the play state of a user for an item.
		UpdateUserData(ctx context.Context, userID, itemID string, details *model.UserData) error
		// GetFavorites returns all favorite item IDs of a user.
		GetFavorites(ctx context.Context, userID string) ([]string, error)
		// GetResumeItems returns item IDs with partial playback, most
		// advanced position first.
		GetResumeItems(ctx context.Context, userID string, limit int) ([]string, error)
		// GetPlayedItems returns all fully watched item IDs of a user.
		GetPlayedItems(ctx context.Context, userID string) ([]string, error)
	}

	PlaylistRepo interface {
		CreatePlaylist(ctx context.Context, playlist model.Playlist) (string, error)
		GetPlaylists(ctx context.Context, userID string) ([]string, error)
		GetPlaylist(ctx context.Context, userID, playlistID string) (*model.Playlist, error)
		AddItemsToPlaylist(ctx context.Context, userID, playlistID string, itemIDs []string) error
		DeleteItemsFromPlaylist(ctx context.Context, playlistID string, itemIDs []string) error
		MovePlaylistItem(ctx context.Context, playlistID string, itemID string, newIndex int) error
	}

	ImageRepo interface {
		HasImage(ctx context.Context, itemID, imageType string) (model.ImageMetadata, error)
		GetImage(ctx context.Context, itemID, imageType string) (model.ImageMetadata, []byte, error)
		StoreImage(ctx context.Context, itemID, imageType string, metadata model.ImageMetadata, data []byte) error
		DeleteImage(ctx context.Context, itemID, imageType string) error
	}

	QuickConnectRepo interface {
		GetQuickConnectCodeBySecret(ctx context.Context, secret string) (*model.QuickConnectCode, error)
		GetQuickConnectCodeByCode(ctx context.Context, code string) (*model.QuickConnectCode, error)
		UpsertQuickConnectCode(ctx context.Context, code model.QuickConnectCode) error
	}
)

// New opens the database and returns the repository facade.
func New(o *Options) (*Repository, error) {
	backend, err := sqlite.New(&sqlite.Options{Filename: o.Filename})
	if err != nil {
		return nil, err
	}
	return &Repository{
		UserRepo:         backend,
		UserPropertyRepo: backend,
		AccessTokenRepo:  backend,
		ItemRepo:         backend,
		UserDataRepo:     backend,
		PlaylistRepo:     backend,
		ImageRepo:        backend,
		QuickConnectRepo: backend,
		backend:          backend,
	}, nil
}

// StartBackgroundJobs starts the cache flush jobs of the backend.
func (r *Repository) StartBackgroundJobs(ctx context.Context) {
	r.backend.StartBackgroundJobs(ctx)
}
