package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/mattn/go-sqlite3"
)

// driverName is the sqlite3 driver registered with the fts_rank function.
const driverName = "sqlite3_juan"

// MemoryPath opens a private in-memory store. It is meant for tests.
const MemoryPath = ":memory:"

// ErrStoreLocked is returned when another process holds the store file.
var ErrStoreLocked = errors.New("store is locked by another process")

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fts_rank", ftsRank, true)
		},
	})
}

// Options tunes how the store is opened.
type Options struct {
	// CacheSizeKB sizes the page cache. Zero uses 64000.
	CacheSizeKB int
	// BusyTimeout bounds how long a statement waits on a locked file.
	BusyTimeout time.Duration
}

// DB owns the single physical connection to the note store.
// Every repository call holds mu for the duration of its statements.
type DB struct {
	conn *sql.DB
	mu   sync.Mutex
	lock *flock.Flock
	path string
	now  func() time.Time
}

// New opens the store at path with default options.
func New(path string) (*DB, error) {
	return NewWithOptions(path, Options{})
}

// NewWithOptions opens the store at path, creating the file and its parent
// directory when absent, and configures the connection pragmas.
func NewWithOptions(path string, opts Options) (*DB, error) {
	if opts.CacheSizeKB <= 0 {
		opts.CacheSizeKB = 64000
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = 5 * time.Second
	}

	var fileLock *flock.Flock
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		fileLock = flock.New(path + ".lock")
		locked, err := fileLock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to lock store: %w", err)
		}
		if !locked {
			return nil, ErrStoreLocked
		}
	}

	conn, err := sql.Open(driverName, path)
	if err != nil {
		unlock(fileLock)
		return nil, err
	}

	// One physical connection; an in-memory database only lives as long as it does.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		fmt.Sprintf("PRAGMA cache_size = -%d;", opts.CacheSizeKB),
		"PRAGMA foreign_keys = ON;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", opts.BusyTimeout.Milliseconds()),
	}
	for _, stmt := range pragmas {
		if _, err := conn.Exec(stmt); err != nil {
			_ = conn.Close()
			unlock(fileLock)
			return nil, fmt.Errorf("failed to apply %q: %w", stmt, err)
		}
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		unlock(fileLock)
		return nil, err
	}

	return &DB{
		conn: conn,
		lock: fileLock,
		path: path,
		now:  time.Now,
	}, nil
}

// Path returns the location the store was opened from.
func (d *DB) Path() string {
	return d.path
}

// Ping verifies the connection is still usable.
func (d *DB) Ping(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn.PingContext(ctx)
}

// Close closes the connection and releases the file lock.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.conn.Close()
	unlock(d.lock)
	return err
}

func (d *DB) timestamp() int64 {
	return d.now().Unix()
}

func unlock(l *flock.Flock) {
	if l != nil {
		_ = l.Unlock()
	}
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
