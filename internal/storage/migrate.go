package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migration is one forward-only schema step. Up must be safe to re-run
// against a store where the step was partly applied.
type Migration struct {
	Version int
	Name    string
	Up      func(ctx context.Context, tx *sql.Tx) error
}

// Migrations returns the ordered migration registry.
func Migrations() []Migration {
	return []Migration{
		{Version: 1, Name: "notes_table", Up: migrateNotesTable},
		{Version: 2, Name: "deadline_reminder", Up: migrateDeadlineReminder},
		{Version: 3, Name: "done_flag", Up: migrateDoneFlag},
		{Version: 4, Name: "states_table", Up: migrateStatesTable},
		{Version: 5, Name: "manual_order", Up: migrateManualOrder},
		{Version: 6, Name: "integer_timestamps", Up: migrateIntegerTimestamps},
		{Version: 7, Name: "section_column", Up: migrateSectionColumn},
		{Version: 8, Name: "fts_backfill", Up: migrateFTSBackfill},
	}
}

// LatestVersion is the highest version in the registry.
func LatestVersion() int {
	ms := Migrations()
	return ms[len(ms)-1].Version
}

// Migrate brings the store up to the latest schema version. Each pending
// migration runs in its own transaction together with its log entry, so a
// failed step leaves no version recorded for it.
func Migrate(ctx context.Context, db *DB) error {
	return migrate(ctx, db, Migrations())
}

func migrate(ctx context.Context, db *DB, migrations []Migration) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		current = m.Version
	}

	return nil
}

func applyMigration(ctx context.Context, db *DB, m Migration) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := m.Up(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
		m.Version, m.Name, db.timestamp(),
	); err != nil {
		return fmt.Errorf("failed to record version: %w", err)
	}
	return tx.Commit()
}

// AppliedVersions lists the recorded schema versions in ascending order.
func AppliedVersions(ctx context.Context, db *DB) ([]int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query schema versions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan schema version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func migrateNotesTable(ctx context.Context, tx *sql.Tx) error {
	if err := execStructural(ctx, tx,
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER)),
			updated_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER)),
			priority INTEGER DEFAULT 0,
			labels TEXT DEFAULT '[]'
		)`,
		"CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_notes_priority ON notes(priority)",
	); err != nil {
		return err
	}
	return ensureFTS(ctx, tx)
}

// ensureFTS creates the notes_fts shadow table and its sync triggers. A
// shadow table from an older layout is replaced; migration 8 refills it.
func ensureFTS(ctx context.Context, tx *sql.Tx) error {
	var ddl sql.NullString
	err := tx.QueryRowContext(ctx,
		"SELECT sql FROM sqlite_master WHERE name = 'notes_fts' AND type = 'table'",
	).Scan(&ddl)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to inspect notes_fts: %w", err)
	}
	if err == nil && !strings.Contains(strings.ToLower(ddl.String), "fts4") {
		if err := dropLegacyFTS(ctx, tx); err != nil {
			return fmt.Errorf("failed to replace legacy notes_fts: %w", err)
		}
	}

	return execStructural(ctx, tx,
		"CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts4(title, body)",
		`CREATE TRIGGER IF NOT EXISTS notes_fts_ai AFTER INSERT ON notes BEGIN
			INSERT INTO notes_fts(docid, title, body) VALUES (new.id, new.title, new.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS notes_fts_ad AFTER DELETE ON notes BEGIN
			DELETE FROM notes_fts WHERE docid = old.id;
		END`,
		`CREATE TRIGGER IF NOT EXISTS notes_fts_au AFTER UPDATE OF title, content ON notes BEGIN
			UPDATE notes_fts SET title = new.title, body = new.content WHERE docid = old.id;
		END`,
	)
}

// fts5Shadows are the tables an fts5 table named notes_fts owns.
var fts5Shadows = []string{"notes_fts_data", "notes_fts_idx", "notes_fts_content", "notes_fts_docsize", "notes_fts_config"}

func dropLegacyFTS(ctx context.Context, tx *sql.Tx) error {
	if err := execStructural(ctx, tx,
		"DROP TRIGGER IF EXISTS notes_fts_insert",
		"DROP TRIGGER IF EXISTS notes_fts_delete",
		"DROP TRIGGER IF EXISTS notes_fts_update",
	); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "DROP TABLE notes_fts")
	if err == nil || !strings.Contains(err.Error(), "no such module") {
		return err
	}
	return unlinkVirtualTable(ctx, tx, "notes_fts", fts5Shadows)
}

// unlinkVirtualTable removes a virtual table whose module is not compiled
// into this build. SQLite cannot drop such a table, so its shadow tables are
// dropped and its schema row is deleted directly.
func unlinkVirtualTable(ctx context.Context, tx *sql.Tx, name string, shadows []string) error {
	for _, shadow := range shadows {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+shadow); err != nil {
			return fmt.Errorf("failed to drop %s: %w", shadow, err)
		}
	}

	var version int
	if err := tx.QueryRowContext(ctx, "PRAGMA schema_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "PRAGMA writable_schema = ON"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	); err != nil {
		_, _ = tx.ExecContext(ctx, "PRAGMA writable_schema = RESET")
		return fmt.Errorf("failed to unlink %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA schema_version = %d", version+1)); err != nil {
		_, _ = tx.ExecContext(ctx, "PRAGMA writable_schema = RESET")
		return err
	}
	// RESET turns writable_schema off and reloads the schema on this connection.
	_, err := tx.ExecContext(ctx, "PRAGMA writable_schema = RESET")
	return err
}

func migrateDeadlineReminder(ctx context.Context, tx *sql.Tx) error {
	if err := addColumn(ctx, tx, "notes", "deadline", "INTEGER"); err != nil {
		return err
	}
	_, err := addColumnIfMissing(ctx, tx, "notes", "reminder_minutes", "INTEGER DEFAULT 0")
	return err
}

func migrateDoneFlag(ctx context.Context, tx *sql.Tx) error {
	if err := addColumn(ctx, tx, "notes", "done", "INTEGER DEFAULT 0"); err != nil {
		return err
	}
	return execStructural(ctx, tx, "CREATE INDEX IF NOT EXISTS idx_notes_done ON notes(done)")
}

func migrateStatesTable(ctx context.Context, tx *sql.Tx) error {
	if err := execStructural(ctx, tx,
		`CREATE TABLE IF NOT EXISTS states (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			color TEXT,
			created_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER)),
			updated_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER))
		)`,
	); err != nil {
		return err
	}
	if err := addColumn(ctx, tx, "notes", "state_id", "INTEGER REFERENCES states(id)"); err != nil {
		return err
	}
	if err := execStructural(ctx, tx,
		"CREATE INDEX IF NOT EXISTS idx_states_position ON states(position)",
		"CREATE INDEX IF NOT EXISTS idx_notes_state_id ON notes(state_id)",
	); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM states").Scan(&count); err != nil {
		return fmt.Errorf("failed to count states: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, s := range DefaultStates() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO states (name, position, color, created_at, updated_at)
			 VALUES (?, ?, ?, CAST(strftime('%s', 'now') AS INTEGER), CAST(strftime('%s', 'now') AS INTEGER))`,
			s.Name, s.Position, s.Color,
		); err != nil {
			return fmt.Errorf("failed to seed state %q: %w", s.Name, err)
		}
	}
	return nil
}

func migrateManualOrder(ctx context.Context, tx *sql.Tx) error {
	added, err := addColumnIfMissing(ctx, tx, "notes", `"order"`, "INTEGER DEFAULT 0")
	if err != nil {
		return err
	}
	if err := execStructural(ctx, tx, `CREATE INDEX IF NOT EXISTS idx_notes_order ON notes("order")`); err != nil {
		return err
	}
	if !added {
		return nil
	}

	// Existing notes keep their most-recent-first ordering.
	if _, err := tx.ExecContext(ctx, `
		WITH ordered AS (
			SELECT id, ROW_NUMBER() OVER (ORDER BY updated_at DESC, id DESC) - 1 AS pos
			FROM notes
		)
		UPDATE notes SET "order" = (SELECT pos FROM ordered WHERE ordered.id = notes.id)`,
	); err != nil {
		return fmt.Errorf("failed to backfill note order: %w", err)
	}
	return nil
}

// timestampColumn describes a column converted to epoch seconds and the
// indexes that must be rebuilt around it.
type timestampColumn struct {
	table    string
	column   string
	required bool
	indexes  map[string]string
}

func migrateIntegerTimestamps(ctx context.Context, tx *sql.Tx) error {
	columns := []timestampColumn{
		{table: "notes", column: "created_at", required: true, indexes: map[string]string{
			"idx_notes_created_at": "CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at)",
		}},
		{table: "notes", column: "updated_at", required: true},
		{table: "notes", column: "deadline"},
		{table: "states", column: "created_at", required: true},
		{table: "states", column: "updated_at", required: true},
	}
	for _, c := range columns {
		if err := convertTimestampColumn(ctx, tx, c); err != nil {
			return fmt.Errorf("failed to convert %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}

// epochExpr converts any stored representation of column to epoch seconds.
func epochExpr(column string, required bool) string {
	expr := fmt.Sprintf(`CASE typeof(%[1]s)
		WHEN 'integer' THEN %[1]s
		WHEN 'real' THEN CAST(%[1]s AS INTEGER)
		WHEN 'text' THEN COALESCE(CAST(strftime('%%s', %[1]s) AS INTEGER), CAST(%[1]s AS INTEGER))
		ELSE NULL END`, column)
	if required {
		return fmt.Sprintf("COALESCE(%s, CAST(strftime('%%s', 'now') AS INTEGER))", expr)
	}
	return expr
}

func convertTimestampColumn(ctx context.Context, tx *sql.Tx, c timestampColumn) error {
	colType, exists, err := columnType(ctx, tx, c.table, c.column)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if strings.EqualFold(colType, "INTEGER") {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(
			"UPDATE %s SET %s = %s WHERE typeof(%s) IN ('text', 'real')",
			c.table, c.column, epochExpr(c.column, c.required), c.column,
		))
		return err
	}

	temp := c.column + "_epoch"
	if _, err := addColumnIfMissing(ctx, tx, c.table, temp, "INTEGER"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(
		"UPDATE %s SET %s = %s", c.table, temp, epochExpr(c.column, c.required),
	)); err != nil {
		return fmt.Errorf("failed to copy values: %w", err)
	}
	for name := range c.indexes {
		if err := execStructural(ctx, tx, "DROP INDEX IF EXISTS "+name); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", c.table, c.column)); err != nil {
		return fmt.Errorf("failed to drop old column: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s", c.table, temp, c.column)); err != nil {
		return fmt.Errorf("failed to rename column: %w", err)
	}
	for _, ddl := range c.indexes {
		if err := execStructural(ctx, tx, ddl); err != nil {
			return err
		}
	}
	return nil
}

func migrateSectionColumn(ctx context.Context, tx *sql.Tx) error {
	if err := addColumn(ctx, tx, "notes", "section", "TEXT DEFAULT 'unset'"); err != nil {
		return err
	}
	return execStructural(ctx, tx, "CREATE INDEX IF NOT EXISTS idx_notes_section ON notes(section)")
}

// migrateFTSBackfill indexes notes written before the sync triggers existed
// and drops shadow rows whose note is gone.
func migrateFTSBackfill(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO notes_fts (docid, title, body)
		SELECT id, title, content FROM notes
		WHERE id NOT IN (SELECT docid FROM notes_fts)`,
	); err != nil {
		return fmt.Errorf("failed to backfill notes_fts: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM notes_fts WHERE docid NOT IN (SELECT id FROM notes)",
	); err != nil {
		return fmt.Errorf("failed to prune notes_fts: %w", err)
	}
	return nil
}

// execStructural runs schema statements, treating "already exists" as done.
func execStructural(ctx context.Context, q queryer, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := q.ExecContext(ctx, stmt); err != nil && !isAlreadyApplied(err) {
			return err
		}
	}
	return nil
}

func isAlreadyApplied(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists")
}

func addColumn(ctx context.Context, q queryer, table, column, decl string) error {
	_, err := addColumnIfMissing(ctx, q, table, column, decl)
	return err
}

// addColumnIfMissing reports whether the column was added by this call.
func addColumnIfMissing(ctx context.Context, q queryer, table, column, decl string) (bool, error) {
	_, exists, err := columnType(ctx, q, table, strings.Trim(column, `"`))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := execStructural(ctx, q, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl)); err != nil {
		return false, fmt.Errorf("failed to add %s.%s: %w", table, column, err)
	}
	return true, nil
}

func columnType(ctx context.Context, q queryer, table, column string) (string, bool, error) {
	var colType string
	err := q.QueryRowContext(ctx,
		"SELECT type FROM pragma_table_info(?) WHERE name = ?", table, column,
	).Scan(&colType)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to inspect %s.%s: %w", table, column, err)
	}
	return colType, true, nil
}
