package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// noteColumns selects a full note row from notes aliased as n.
const noteColumns = `n.id, n.title, n.content, n.created_at, n.updated_at,
	COALESCE(n.priority, 0), COALESCE(n.labels, '[]'), n.deadline,
	COALESCE(n.reminder_minutes, 0), COALESCE(n.done, 0), n.state_id,
	COALESCE(n."order", 0), COALESCE(n.section, 'unset')`

// defaultNoteOrder is the manual order first, most recent next.
const defaultNoteOrder = `n."order" ASC, n.updated_at DESC, n.id DESC`

// NoteRepo provides note operations against the store.
type NoteRepo struct {
	db *DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Create inserts a note and returns the stored row.
func (r *NoteRepo) Create(ctx context.Context, n NewNote) (*Note, error) {
	labels, err := EncodeLabels(n.Labels)
	if err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.timestamp()
	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO notes (title, content, created_at, updated_at, priority, labels, deadline, reminder_minutes, done, state_id, "order")
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Title, n.Content, now, now, n.Priority, labels, unixOrNil(n.Deadline),
		n.ReminderMinutes, n.Done, int64OrNil(n.StateID), n.Order,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read note id: %w", err)
	}
	return getNote(ctx, r.db.conn, id)
}

// Get returns the note with id, or ErrNotFound.
func (r *NoteRepo) Get(ctx context.Context, id int64) (*Note, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return getNote(ctx, r.db.conn, id)
}

// List returns every note in default order.
func (r *NoteRepo) List(ctx context.Context) ([]Note, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return queryNotes(ctx, r.db.conn,
		"SELECT "+noteColumns+" FROM notes n ORDER BY "+defaultNoteOrder)
}

// Update applies the supplied fields of p to the note with id and refreshes
// updated_at. An empty patch is rejected before the store is touched.
func (r *NoteRepo) Update(ctx context.Context, id int64, p NotePatch) (*Note, error) {
	b := newUpdateBuilder("notes")
	if p.Title != nil {
		b.Set("title", *p.Title)
	}
	if p.Content != nil {
		b.Set("content", *p.Content)
	}
	if p.Priority != nil {
		b.Set("priority", *p.Priority)
	}
	if p.Labels != nil {
		labels, err := EncodeLabels(*p.Labels)
		if err != nil {
			return nil, err
		}
		b.Set("labels", labels)
	}
	if p.Deadline != nil {
		b.Set("deadline", p.Deadline.Unix())
	}
	if p.ReminderMinutes != nil {
		b.Set("reminder_minutes", *p.ReminderMinutes)
	}
	if p.Done != nil {
		b.Set("done", *p.Done)
	}
	if p.StateID != nil {
		b.Set("state_id", *p.StateID)
	}
	if p.Order != nil {
		b.Set("order", *p.Order)
	}
	if b.Empty() {
		return nil, ErrEmptyPatch
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.exec(ctx, b, id); err != nil {
		return nil, err
	}
	return getNote(ctx, r.db.conn, id)
}

// SetDone updates only the done flag and updated_at.
func (r *NoteRepo) SetDone(ctx context.Context, id int64, done bool) (*Note, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.exec(ctx, newUpdateBuilder("notes").Set("done", done), id); err != nil {
		return nil, err
	}
	return getNote(ctx, r.db.conn, id)
}

// Delete removes the note with id and returns it as it was. The sync
// trigger removes its notes_fts row in the same statement.
func (r *NoteRepo) Delete(ctx context.Context, id int64) (*Note, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	note, err := getNote(ctx, r.db.conn, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.conn.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}
	return note, nil
}

// exec runs b against one note, stamping updated_at. Caller holds the lock.
func (r *NoteRepo) exec(ctx context.Context, b *updateBuilder, id int64) error {
	_, err := execNoteUpdate(ctx, r.db.conn, b, id, r.db.timestamp())
	return err
}

// execNoteUpdate stamps updated_at no earlier than created_at and returns
// ErrNotFound when no row matched.
func execNoteUpdate(ctx context.Context, q queryer, b *updateBuilder, id, now int64) (int64, error) {
	b.SetExpr("updated_at", "MAX(?, created_at)", now)
	query, args := b.Build("id = ?", id)

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

func getNote(ctx context.Context, q queryer, id int64) (*Note, error) {
	note, err := scanNote(q.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes n WHERE n.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

func queryNotes(ctx context.Context, q queryer, query string, args ...any) ([]Note, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := []Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(s rowScanner) (*Note, error) {
	var (
		n                    Note
		createdAt, updatedAt int64
		labels               string
		deadline, stateID    sql.NullInt64
		done                 int64
	)
	err := s.Scan(&n.ID, &n.Title, &n.Content, &createdAt, &updatedAt,
		&n.Priority, &labels, &deadline, &n.ReminderMinutes, &done, &stateID,
		&n.Order, &n.Section)
	if err != nil {
		return nil, err
	}

	n.CreatedAt = fromUnix(createdAt)
	n.UpdatedAt = fromUnix(updatedAt)
	n.Labels = DecodeLabels(labels)
	n.Done = done != 0
	if deadline.Valid {
		t := fromUnix(deadline.Int64)
		n.Deadline = &t
	}
	if stateID.Valid {
		id := stateID.Int64
		n.StateID = &id
	}
	return &n, nil
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func int64OrNil(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
