package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// defaultStateColor is used for the state created by AssignStatesToFirst
// when the store has none.
const defaultStateColor = "#6b7280"

// InferStateName picks the kanban column for an unassigned note: done notes
// go to Done, notes labelled with "progress" to In Progress, the rest to To Do.
func InferStateName(done bool, labels []string) string {
	if done {
		return StateDone
	}
	for _, l := range labels {
		if strings.Contains(strings.ToLower(l), "progress") {
			return StateInProgress
		}
	}
	return StateToDo
}

// AssignStates assigns a state to every note without one, choosing the
// column with InferStateName and looking it up by name. Notes whose column
// does not exist stay unassigned. It returns how many notes were assigned.
func (r *NoteRepo) AssignStates(ctx context.Context) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.sweep(ctx, func(ctx context.Context, tx *sql.Tx) (func(Note) (int64, bool), error) {
		states, err := listStates(ctx, tx)
		if err != nil {
			return nil, err
		}
		byName := make(map[string]int64, len(states))
		for _, s := range states {
			if _, dup := byName[s.Name]; !dup {
				byName[s.Name] = s.ID
			}
		}
		return func(n Note) (int64, bool) {
			id, ok := byName[InferStateName(n.Done, n.Labels)]
			return id, ok
		}, nil
	})
}

// AssignStatesToFirst is the older sweep: every unassigned note goes to the
// lowest-position state, creating a "Default" state first if there is none.
func (r *NoteRepo) AssignStatesToFirst(ctx context.Context) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.sweep(ctx, func(ctx context.Context, tx *sql.Tx) (func(Note) (int64, bool), error) {
		states, err := listStates(ctx, tx)
		if err != nil {
			return nil, err
		}
		var target int64
		if len(states) > 0 {
			target = states[0].ID
		} else {
			color := defaultStateColor
			s, err := createState(ctx, tx, NewState{Name: "Default", Position: 0, Color: &color}, r.db.timestamp())
			if err != nil {
				return nil, err
			}
			target = s.ID
		}
		return func(Note) (int64, bool) { return target, true }, nil
	})
}

// sweep runs one state assignment pass in a transaction. Caller holds the lock.
func (r *NoteRepo) sweep(ctx context.Context, prepare func(context.Context, *sql.Tx) (func(Note) (int64, bool), error)) (int, error) {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	notes, err := queryNotes(ctx, tx,
		"SELECT "+noteColumns+" FROM notes n WHERE n.state_id IS NULL ORDER BY n.id")
	if err != nil {
		return 0, err
	}
	if len(notes) == 0 {
		return 0, nil
	}

	pick, err := prepare(ctx, tx)
	if err != nil {
		return 0, err
	}

	now := r.db.timestamp()
	assigned := 0
	for _, n := range notes {
		stateID, ok := pick(n)
		if !ok {
			continue
		}
		if _, err := execNoteUpdate(ctx, tx, newUpdateBuilder("notes").Set("state_id", stateID), n.ID, now); err != nil {
			return 0, fmt.Errorf("failed to assign state to note %d: %w", n.ID, err)
		}
		assigned++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit state assignment: %w", err)
	}
	return assigned, nil
}
