package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testClock is a settable clock for deterministic timestamps.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// newTestDB opens a migrated store in a temp dir with a fixed clock.
func newTestDB(t *testing.T) (*DB, *testClock) {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	clock := &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	db.now = clock.Now

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db, clock
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    filepath.Join(tmpDir, "test.db"),
			wantErr: false,
		},
		{
			name:    "creates missing directory",
			path:    filepath.Join(tmpDir, "nested", "dir", "notes.db"),
			wantErr: false,
		},
		{
			name:    "parent is a file",
			path:    filepath.Join(blocker, "notes.db"),
			wantErr: true,
		},
		{
			name:    "in memory",
			path:    MemoryPath,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if db.conn.Stats().MaxOpenConnections != 1 {
				t.Errorf("New() MaxOpenConnections = %v, want 1", db.conn.Stats().MaxOpenConnections)
			}
			if db.Path() != tt.path {
				t.Errorf("Path() = %v, want %v", db.Path(), tt.path)
			}
		})
	}
}

func TestNew_Pragmas(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	var fkEnabled int
	if err := db.conn.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("Failed to check foreign keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Error("New() should enable foreign keys")
	}

	var mode string
	if err := db.conn.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("Failed to check journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %v, want wal", mode)
	}

	var cache int
	if err := db.conn.QueryRow("PRAGMA cache_size").Scan(&cache); err != nil {
		t.Fatalf("Failed to check cache size: %v", err)
	}
	if cache != -64000 {
		t.Errorf("cache_size = %v, want -64000", cache)
	}
}

func TestNewWithOptions_CacheSize(t *testing.T) {
	db, err := NewWithOptions(filepath.Join(t.TempDir(), "test.db"), Options{CacheSizeKB: 2048})
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	var cache int
	if err := db.conn.QueryRow("PRAGMA cache_size").Scan(&cache); err != nil {
		t.Fatalf("Failed to check cache size: %v", err)
	}
	if cache != -2048 {
		t.Errorf("cache_size = %v, want -2048", cache)
	}
}

func TestNew_SecondOpenIsLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	second, err := New(path)
	if !errors.Is(err, ErrStoreLocked) {
		if second != nil {
			_ = second.Close()
		}
		t.Fatalf("second New() error = %v, want ErrStoreLocked", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	third, err := New(path)
	if err != nil {
		t.Fatalf("New() after Close() error = %v", err)
	}
	_ = third.Close()
}

func TestDB_Ping(t *testing.T) {
	db, _ := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
