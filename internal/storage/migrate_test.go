package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func openUnmigrated(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func wantAllVersions() []int {
	var versions []int
	for _, m := range Migrations() {
		versions = append(versions, m.Version)
	}
	return versions
}

func TestMigrations_Registry(t *testing.T) {
	ms := Migrations()
	for i, m := range ms {
		if m.Version != i+1 {
			t.Errorf("Migrations()[%d].Version = %d, want %d", i, m.Version, i+1)
		}
		if m.Name == "" || m.Up == nil {
			t.Errorf("Migrations()[%d] is incomplete", i)
		}
	}
	if LatestVersion() != len(ms) {
		t.Errorf("LatestVersion() = %d, want %d", LatestVersion(), len(ms))
	}
}

func TestMigrate_FreshStore(t *testing.T) {
	ctx := context.Background()
	db := openUnmigrated(t)

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	versions, err := AppliedVersions(ctx, db)
	if err != nil {
		t.Fatalf("AppliedVersions() error = %v", err)
	}
	if !reflect.DeepEqual(versions, wantAllVersions()) {
		t.Errorf("AppliedVersions() = %v, want %v", versions, wantAllVersions())
	}

	objects := map[string]string{
		"notes":              "table",
		"states":             "table",
		"notes_fts":          "table",
		"schema_migrations":  "table",
		"notes_fts_ai":       "trigger",
		"notes_fts_ad":       "trigger",
		"notes_fts_au":       "trigger",
		"idx_notes_order":    "index",
		"idx_notes_section":  "index",
		"idx_notes_state_id": "index",
	}
	for name, typ := range objects {
		var count int
		if err := db.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?", typ, name).Scan(&count); err != nil {
			t.Fatalf("Failed to check %s %s: %v", typ, name, err)
		}
		if count != 1 {
			t.Errorf("Migrate() %s %s not created", typ, name)
		}
	}

	wantCols := []string{"id", "title", "content", "created_at", "updated_at", "priority", "labels",
		"deadline", "reminder_minutes", "done", "state_id", "order", "section"}
	for _, col := range wantCols {
		typ, exists, err := columnType(ctx, db.conn, "notes", col)
		if err != nil {
			t.Fatalf("columnType() error = %v", err)
		}
		if !exists {
			t.Errorf("notes.%s missing", col)
		}
		if strings.HasSuffix(col, "_at") && typ != "INTEGER" {
			t.Errorf("notes.%s type = %s, want INTEGER", col, typ)
		}
	}

	states, err := NewStateRepo(db).List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var names []string
	for _, s := range states {
		names = append(names, s.Name)
	}
	if want := []string{StateToDo, StateInProgress, StateDone}; !reflect.DeepEqual(names, want) {
		t.Errorf("seeded states = %v, want %v", names, want)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := openUnmigrated(t)

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate() first run error = %v", err)
	}
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}

	versions, err := AppliedVersions(ctx, db)
	if err != nil {
		t.Fatalf("AppliedVersions() error = %v", err)
	}
	if !reflect.DeepEqual(versions, wantAllVersions()) {
		t.Errorf("AppliedVersions() after second run = %v, want %v", versions, wantAllVersions())
	}
}

func TestMigrations_UpIsRerunnable(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)

	if _, err := NewNoteRepo(db).Create(ctx, NewNote{Title: "kept", Content: "body", Order: 7}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, m := range Migrations() {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTx() error = %v", err)
		}
		if err := m.Up(ctx, tx); err != nil {
			_ = tx.Rollback()
			t.Fatalf("migration %d re-run error = %v", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
	}

	var states int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM states").Scan(&states); err != nil {
		t.Fatalf("count states: %v", err)
	}
	if states != 3 {
		t.Errorf("states after re-run = %d, want 3", states)
	}

	var order int
	if err := db.conn.QueryRow(`SELECT "order" FROM notes WHERE title = 'kept'`).Scan(&order); err != nil {
		t.Fatalf("read order: %v", err)
	}
	if order != 7 {
		t.Errorf("order after re-run = %d, want 7", order)
	}
}

func TestMigrate_FailedStepIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	db := openUnmigrated(t)

	ran := false
	ms := []Migration{
		{Version: 1, Name: "first", Up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "CREATE TABLE t1 (id INTEGER)")
			return err
		}},
		{Version: 2, Name: "broken", Up: func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "CREATE TABLE t2 (id INTEGER)"); err != nil {
				return err
			}
			return errors.New("boom")
		}},
		{Version: 3, Name: "never", Up: func(ctx context.Context, tx *sql.Tx) error {
			ran = true
			return nil
		}},
	}

	err := migrate(ctx, db, ms)
	if err == nil {
		t.Fatal("migrate() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "migration 2 (broken) failed") {
		t.Errorf("migrate() error = %v, want it to name migration 2", err)
	}
	if ran {
		t.Error("migrate() ran a migration after a failure")
	}

	versions, err := AppliedVersions(ctx, db)
	if err != nil {
		t.Fatalf("AppliedVersions() error = %v", err)
	}
	if !reflect.DeepEqual(versions, []int{1}) {
		t.Errorf("AppliedVersions() = %v, want [1]", versions)
	}

	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 't2'").Scan(&count); err != nil {
		t.Fatalf("check t2: %v", err)
	}
	if count != 0 {
		t.Error("failed migration left its table behind")
	}
}

func TestMigrate_LegacyStore(t *testing.T) {
	ctx := context.Background()
	db := openUnmigrated(t)

	legacy := []string{
		`CREATE TABLE notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			priority INTEGER DEFAULT 0,
			labels TEXT DEFAULT '[]'
		)`,
		"CREATE INDEX idx_notes_created_at ON notes(created_at)",
		"CREATE INDEX idx_notes_priority ON notes(priority)",
		"CREATE TABLE notes_fts (title TEXT, content TEXT)",
		`CREATE TRIGGER notes_fts_insert AFTER INSERT ON notes BEGIN
			INSERT INTO notes_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
		END`,
		`INSERT INTO notes (title, content, created_at, updated_at, labels)
		 VALUES ('Old', 'legacy body', '2023-05-01 10:00:00', '2023-05-02 11:30:00', '["a"]')`,
		`INSERT INTO notes (title, content, created_at, updated_at, labels)
		 VALUES ('Older', 'second', '2023-04-01 09:00:00', '2023-04-01 09:00:00', 'not json')`,
	}
	for _, stmt := range legacy {
		if _, err := db.conn.Exec(stmt); err != nil {
			t.Fatalf("legacy setup %q: %v", stmt, err)
		}
	}

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	typ, _, err := columnType(ctx, db.conn, "notes", "created_at")
	if err != nil {
		t.Fatalf("columnType() error = %v", err)
	}
	if typ != "INTEGER" {
		t.Errorf("notes.created_at type = %s, want INTEGER", typ)
	}

	notes, err := NewNoteRepo(db).List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("List() returned %d notes, want 2", len(notes))
	}

	old, older := notes[0], notes[1]
	if old.Title != "Old" || older.Title != "Older" {
		t.Fatalf("List() order = [%s %s], want [Old Older]", old.Title, older.Title)
	}
	if want := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC); !old.CreatedAt.Equal(want) {
		t.Errorf("Old.CreatedAt = %v, want %v", old.CreatedAt, want)
	}
	if want := time.Date(2023, 5, 2, 11, 30, 0, 0, time.UTC); !old.UpdatedAt.Equal(want) {
		t.Errorf("Old.UpdatedAt = %v, want %v", old.UpdatedAt, want)
	}
	if old.Order != 0 || older.Order != 1 {
		t.Errorf("backfilled orders = (%d, %d), want (0, 1)", old.Order, older.Order)
	}
	if !reflect.DeepEqual(old.Labels, []string{"a"}) {
		t.Errorf("Old.Labels = %v, want [a]", old.Labels)
	}
	if len(older.Labels) != 0 {
		t.Errorf("Older.Labels = %v, want empty", older.Labels)
	}
	if old.Section != "unset" || old.StateID != nil || old.Done {
		t.Errorf("Old defaults = section %q state %v done %v", old.Section, old.StateID, old.Done)
	}

	found, strategy, err := NewNoteRepo(db).SearchWithStrategy(ctx, SearchQuery{Query: "legacy*"})
	if err != nil {
		t.Fatalf("SearchWithStrategy() error = %v", err)
	}
	if strategy != SearchFullText {
		t.Errorf("strategy = %s, want %s", strategy, SearchFullText)
	}
	if len(found) != 1 || found[0].Title != "Old" {
		t.Errorf("full-text search after backfill = %v, want [Old]", found)
	}
}

// fts5Store writes the layout the desktop app created: an external-content
// fts5 table with its shadow tables and sync triggers. The fts5 schema row is
// written directly so the fixture does not need the module compiled in.
func fts5Store(t *testing.T, db *DB) {
	t.Helper()

	stmts := []string{
		`CREATE TABLE notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			priority INTEGER DEFAULT 0,
			labels TEXT DEFAULT '[]'
		)`,
		"CREATE INDEX idx_notes_created_at ON notes(created_at)",
		"CREATE INDEX idx_notes_priority ON notes(priority)",
		`INSERT INTO notes (title, content, created_at, updated_at)
		 VALUES ('meeting notes', 'quarterly planning', '2024-01-02 08:00:00', '2024-01-02 08:00:00')`,
		`INSERT INTO notes (title, content, created_at, updated_at)
		 VALUES ('groceries', 'oat milk', '2024-01-01 08:00:00', '2024-01-01 08:00:00')`,
		"CREATE TABLE 'notes_fts_data'(id INTEGER PRIMARY KEY, block BLOB)",
		"CREATE TABLE 'notes_fts_idx'(segid, term, pgno, PRIMARY KEY(segid, term)) WITHOUT ROWID",
		"CREATE TABLE 'notes_fts_docsize'(id INTEGER PRIMARY KEY, sz BLOB)",
		"CREATE TABLE 'notes_fts_config'(k PRIMARY KEY, v) WITHOUT ROWID",
		`CREATE TRIGGER notes_fts_insert AFTER INSERT ON notes
		 BEGIN
			 INSERT INTO notes_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
		 END`,
		`CREATE TRIGGER notes_fts_delete AFTER DELETE ON notes
		 BEGIN
			 DELETE FROM notes_fts WHERE rowid = old.id;
		 END`,
		`CREATE TRIGGER notes_fts_update AFTER UPDATE ON notes
		 BEGIN
			 UPDATE notes_fts SET title = new.title, content = new.content WHERE rowid = new.id;
		 END`,
		"PRAGMA writable_schema = ON",
		`INSERT INTO sqlite_master (type, name, tbl_name, rootpage, sql) VALUES ('table', 'notes_fts', 'notes_fts', 0,
			'CREATE VIRTUAL TABLE notes_fts USING fts5(
            title, content,
            content=notes,
            content_rowid=id
        )')`,
		"PRAGMA writable_schema = RESET",
	}
	for _, stmt := range stmts {
		if _, err := db.conn.Exec(stmt); err != nil {
			t.Fatalf("fts5 store setup %q: %v", stmt, err)
		}
	}

	var version int
	if err := db.conn.QueryRow("PRAGMA schema_version").Scan(&version); err != nil {
		t.Fatalf("read schema_version: %v", err)
	}
	if _, err := db.conn.Exec(fmt.Sprintf("PRAGMA schema_version = %d", version+1)); err != nil {
		t.Fatalf("bump schema_version: %v", err)
	}

	if _, err := db.conn.Exec("SELECT * FROM notes_fts"); err == nil || !strings.Contains(err.Error(), "no such module") {
		t.Skipf("fts5 is compiled into this build (err = %v)", err)
	}
}

func TestMigrate_LegacyFTS5Store(t *testing.T) {
	ctx := context.Background()
	db := openUnmigrated(t)
	fts5Store(t, db)

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if got, _ := AppliedVersions(ctx, db); !reflect.DeepEqual(got, wantAllVersions()) {
		t.Errorf("AppliedVersions() = %v, want %v", got, wantAllVersions())
	}

	var ddl string
	if err := db.conn.QueryRow("SELECT sql FROM sqlite_master WHERE name = 'notes_fts'").Scan(&ddl); err != nil {
		t.Fatalf("read notes_fts DDL: %v", err)
	}
	if !strings.Contains(strings.ToLower(ddl), "fts4") {
		t.Errorf("notes_fts DDL = %q, want fts4", ddl)
	}

	var leftovers int
	if err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE name IN ('notes_fts_data', 'notes_fts_idx', 'notes_fts_config',
		               'notes_fts_insert', 'notes_fts_delete', 'notes_fts_update')`,
	).Scan(&leftovers); err != nil {
		t.Fatalf("count leftovers: %v", err)
	}
	if leftovers != 0 {
		t.Errorf("%d fts5 objects left behind", leftovers)
	}

	repo := NewNoteRepo(db)
	notes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := titles(notes); !reflect.DeepEqual(got, []string{"meeting notes", "groceries"}) {
		t.Fatalf("List() = %v, want both legacy notes", got)
	}

	found, strategy, err := repo.SearchWithStrategy(ctx, SearchQuery{Query: "meet AND plan"})
	if err != nil {
		t.Fatalf("SearchWithStrategy() error = %v", err)
	}
	if strategy != SearchFullText || len(found) != 1 || found[0].Title != "meeting notes" {
		t.Errorf("search after migration = %s %v, want fulltext [meeting notes]", strategy, titles(found))
	}

	content := "oat milk and bread"
	if _, err := repo.Update(ctx, notes[1].ID, NotePatch{Content: &content}); err != nil {
		t.Fatalf("Update() after migration error = %v", err)
	}
	if _, err := repo.Delete(ctx, notes[0].ID); err != nil {
		t.Fatalf("Delete() after migration error = %v", err)
	}
}
