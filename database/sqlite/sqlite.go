// Package sqlite implements the storage interfaces on a sqlite
// database via sqlx. Reads go through a small pool; writes go through
// a single-connection handle because sqlite allows only one writer.
package sqlite

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jellofin/jellofin-server/database/model"
)

// maxReadConns bounds the read pool.
const maxReadConns = 5

// cacheSyncInterval is how often the in-memory caches are flushed.
const cacheSyncInterval = 10 * time.Second

type Options struct {
	Filename string
}

type SqliteRepo struct {
	// Read db handle
	dbReadHandle *sqlx.DB
	// Handle specifically for writes
	dbWriteHandle *sqlx.DB

	// in-memory access token store, flushed to the database periodically.
	accessTokenCache map[string]*model.AccessToken
	// last time the access token cache was synced to the database
	accessTokenCacheSyncTime time.Time
	// in-memory user data store; writes go through to the database
	// immediately, the cache serves reads.
	userDataEntries map[userDataKey]model.UserData

	// mutex to protect access to the in-memory stores
	mu sync.Mutex
}

// sqlScanner lets row helpers accept both sql.Row and sql.Rows.
type sqlScanner interface {
	Scan(dest ...any) error
}

// New opens a sqlite database and creates the schema if necessary.
func New(o *Options) (*SqliteRepo, error) {
	if o == nil || o.Filename == "" {
		return nil, model.ErrNoConfiguration
	}

	readDB, err := sqlx.Connect("sqlite3", o.Filename)
	if err != nil {
		return nil, err
	}
	readDB.SetMaxOpenConns(maxReadConns)

	writeDB, err := sqlx.Connect("sqlite3", o.Filename)
	if err != nil {
		return nil, err
	}
	// sqlite needs to have a single writer
	writeDB.SetMaxOpenConns(1)

	if err := dbInitSchema(writeDB); err != nil {
		return nil, err
	}

	s := &SqliteRepo{
		dbReadHandle:     readDB,
		dbWriteHandle:    writeDB,
		accessTokenCache: make(map[string]*model.AccessToken),
		userDataEntries:  make(map[userDataKey]model.UserData),
	}
	return s, nil
}

// StartBackgroundJobs starts the periodic cache flush jobs. They stop
// when ctx is done.
func (s *SqliteRepo) StartBackgroundJobs(ctx context.Context) {
	go s.accessTokenBackgroundJob(ctx, cacheSyncInterval)
}

// accessTokenBackgroundJob flushes the token cache every interval so
// last-used timestamps survive a restart without a write per request.
func (s *SqliteRepo) accessTokenBackgroundJob(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	s.accessTokenCacheSyncTime = time.Now().UTC()
	s.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.writeChangedAccessTokensToDB(); err != nil {
				log.Printf("Error writing access tokens to db: %s", err)
			}
		}
	}
}

// notFound maps sql.ErrNoRows to the shared sentinel.
func notFound(err error) error {
	if err == sql.ErrNoRows {
		return model.ErrNotFound
	}
	return err
}
