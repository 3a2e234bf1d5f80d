package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const stateColumns = "id, name, position, color, created_at, updated_at"

// StateRepo provides operations on kanban states.
type StateRepo struct {
	db *DB
}

// NewStateRepo creates a new StateRepo.
func NewStateRepo(db *DB) *StateRepo {
	return &StateRepo{db: db}
}

// Create inserts a state and returns the stored row.
func (r *StateRepo) Create(ctx context.Context, s NewState) (*State, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return createState(ctx, r.db.conn, s, r.db.timestamp())
}

// List returns all states by ascending position.
func (r *StateRepo) List(ctx context.Context) ([]State, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return listStates(ctx, r.db.conn)
}

// Get returns the state with id, or ErrNotFound.
func (r *StateRepo) Get(ctx context.Context, id int64) (*State, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return getState(ctx, r.db.conn, id)
}

// Update applies the supplied fields of p and refreshes updated_at.
func (r *StateRepo) Update(ctx context.Context, id int64, p StatePatch) (*State, error) {
	b := newUpdateBuilder("states")
	if p.Name != nil {
		b.Set("name", *p.Name)
	}
	if p.Position != nil {
		b.Set("position", *p.Position)
	}
	if p.Color != nil {
		b.Set("color", *p.Color)
	}
	if b.Empty() {
		return nil, ErrEmptyPatch
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	b.SetExpr("updated_at", "MAX(?, created_at)", r.db.timestamp())
	query, args := b.Build("id = ?", id)
	res, err := r.db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update state: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return getState(ctx, r.db.conn, id)
}

// Delete removes the state and returns it as it was. Notes that reference
// the state are unassigned in the same transaction.
func (r *StateRepo) Delete(ctx context.Context, id int64) (*State, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	state, err := getState(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE notes SET state_id = NULL, updated_at = MAX(?, created_at) WHERE state_id = ?",
		r.db.timestamp(), id,
	); err != nil {
		return nil, fmt.Errorf("failed to unassign notes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM states WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete state: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit state delete: %w", err)
	}
	return state, nil
}

func createState(ctx context.Context, q queryer, s NewState, now int64) (*State, error) {
	res, err := q.ExecContext(ctx,
		"INSERT INTO states (name, position, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		s.Name, s.Position, stringOrNil(s.Color), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert state: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read state id: %w", err)
	}
	return getState(ctx, q, id)
}

func getState(ctx context.Context, q queryer, id int64) (*State, error) {
	state, err := scanState(q.QueryRowContext(ctx,
		"SELECT "+stateColumns+" FROM states WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query state: %w", err)
	}
	return state, nil
}

func listStates(ctx context.Context, q queryer) ([]State, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+stateColumns+" FROM states ORDER BY position ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	states := []State{}
	for rows.Next() {
		s, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, *s)
	}
	return states, rows.Err()
}

func scanState(s rowScanner) (*State, error) {
	var (
		st                   State
		color                sql.NullString
		createdAt, updatedAt int64
	)
	if err := s.Scan(&st.ID, &st.Name, &st.Position, &color, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if color.Valid {
		c := color.String
		st.Color = &c
	}
	st.CreatedAt = fromUnix(createdAt)
	st.UpdatedAt = fromUnix(updatedAt)
	return &st, nil
}

func stringOrNil(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
