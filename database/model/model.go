// Package model holds the database-facing types and the sentinel
// errors shared by all storage backends.
package model

import (
	"errors"
	"time"
)

var (
	ErrNoConfiguration = errors.New("database filename not set")
	ErrNoDbHandle      = errors.New("db connection not available")
	ErrNotFound        = errors.New("not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// User is an account that can authenticate and own play state.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Username is the login name.
	Username string
	// Password is the bcrypt hash, empty for passwordless accounts.
	Password string
	// Created is the time the user was created.
	Created time.Time
	// LastLogin is the last time the user logged in.
	LastLogin time.Time
	// LastUsed is the last time the user was active.
	LastUsed time.Time
}

// AccessToken authenticates one device session of a user.
type AccessToken struct {
	// UserID is the ID of the user associated with the token.
	UserID string
	// Token is the access token string.
	Token string
	// DeviceId is the unique identifier for the device.
	DeviceId string
	// DeviceName is the name of the device.
	DeviceName string
	// ApplicationName is the name of the application.
	ApplicationName string
	// ApplicationVersion is the version of the application.
	ApplicationVersion string
	// RemoteAddress is the remote address of the client.
	RemoteAddress string
	// Created is the time the token was created.
	Created time.Time
	// LastUsed is the last time the token was used.
	LastUsed time.Time
}

// Item is the thin per-item projection kept in the database. The full
// item graph lives in memory; this row survives restarts.
type Item struct {
	ID     string  `db:"id"`
	Name   string  `db:"name"`
	Votes  int     `db:"votes"`
	Genre  string  `db:"genre"`
	Rating float64 `db:"rating"`
	Year   int     `db:"year"`
}

// UserData is the play state of one user for one item.
type UserData struct {
	// Position is the resume offset in seconds.
	Position int64
	// PlayedPercentage of the item.
	PlayedPercentage int
	// PlayCount of the item.
	PlayCount int
	// Played is true once the item has been fully watched.
	Played bool
	// Favorite is true when the user marked the item.
	Favorite bool
	// Timestamp of the last update.
	Timestamp time.Time
}

// Playlist is a user playlist with ordered item IDs.
type Playlist struct {
	// ID is the unique identifier for the playlist.
	ID string
	// UserID is the identifier of the user who owns the playlist.
	UserID string
	// Name of the playlist.
	Name string
	// ItemIDs is the list of item IDs, in playlist order.
	ItemIDs []string
}

// QuickConnectCode is one pending or authorized quick connect attempt.
type QuickConnectCode struct {
	UserID     string
	DeviceID   string
	Secret     string
	Authorized bool
	Code       string
	Created    time.Time
}

// ImageMetadata describes an uploaded image stored in the database.
type ImageMetadata struct {
	MimeType string
	Etag     string
	Updated  time.Time
	FileSize int64
}
