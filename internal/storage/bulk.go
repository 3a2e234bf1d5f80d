package storage

import (
	"context"
	"errors"
	"fmt"
)

// BulkRepo applies one mutation across a list of notes. Items are applied in
// list order under a single lock hold; each item is its own statement, so one
// failure does not undo or stop the others.
type BulkRepo struct {
	db *DB
}

// NewBulkRepo creates a new BulkRepo.
func NewBulkRepo(db *DB) *BulkRepo {
	return &BulkRepo{db: db}
}

// Delete removes every note in ids.
func (r *BulkRepo) Delete(ctx context.Context, ids []int64) (BulkResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var result BulkResult
	for _, id := range ids {
		res, err := r.db.conn.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
		if err != nil {
			result.fail(fmt.Sprintf("Failed to delete note %d: %v", id, err))
			continue
		}
		if n, err := res.RowsAffected(); err != nil {
			result.fail(fmt.Sprintf("Failed to delete note %d: %v", id, err))
		} else if n == 0 {
			result.fail(fmt.Sprintf("Note %d not found", id))
		} else {
			result.Successful++
		}
	}
	return result, nil
}

// SetPriority sets the same priority on every note in ids.
func (r *BulkRepo) SetPriority(ctx context.Context, ids []int64, priority int) (BulkResult, error) {
	return r.update(ctx, ids, func(int) *updateBuilder {
		return newUpdateBuilder("notes").Set("priority", priority)
	})
}

// SetDone sets the same done flag on every note in ids.
func (r *BulkRepo) SetDone(ctx context.Context, ids []int64, done bool) (BulkResult, error) {
	return r.update(ctx, ids, func(int) *updateBuilder {
		return newUpdateBuilder("notes").Set("done", done)
	})
}

// SetState assigns every note in ids to stateID. A nil stateID unassigns them.
func (r *BulkRepo) SetState(ctx context.Context, ids []int64, stateID *int64) (BulkResult, error) {
	return r.update(ctx, ids, func(int) *updateBuilder {
		return newUpdateBuilder("notes").Set("state_id", int64OrNil(stateID))
	})
}

// SetOrder gives ids[i] the order orders[i]. Missing entries are 0.
func (r *BulkRepo) SetOrder(ctx context.Context, ids []int64, orders []int) (BulkResult, error) {
	return r.update(ctx, ids, func(i int) *updateBuilder {
		order := 0
		if i < len(orders) {
			order = orders[i]
		}
		return newUpdateBuilder("notes").Set("order", order)
	})
}

func (r *BulkRepo) update(ctx context.Context, ids []int64, build func(i int) *updateBuilder) (BulkResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var result BulkResult
	for i, id := range ids {
		_, err := execNoteUpdate(ctx, r.db.conn, build(i), id, r.db.timestamp())
		switch {
		case errors.Is(err, ErrNotFound):
			result.fail(fmt.Sprintf("Note %d not found", id))
		case err != nil:
			result.fail(fmt.Sprintf("Failed to update note %d: %v", id, errors.Unwrap(err)))
		default:
			result.Successful++
		}
	}
	return result, nil
}

func (b *BulkResult) fail(msg string) {
	b.Failed++
	b.Errors = append(b.Errors, msg)
}
