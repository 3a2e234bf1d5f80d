package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stores.go -package=mocks juan-note/internal/service NoteStore,StateStore,BulkStore,EventPublisher

import (
	"context"

	"juan-note/internal/events"
	"juan-note/internal/storage"
)

// NoteStore is the note persistence the service layer needs.
// This interface is defined from the service layer's perspective (consumer-first).
type NoteStore interface {
	Create(ctx context.Context, n storage.NewNote) (*storage.Note, error)
	Get(ctx context.Context, id int64) (*storage.Note, error)
	List(ctx context.Context) ([]storage.Note, error)
	Update(ctx context.Context, id int64, p storage.NotePatch) (*storage.Note, error)
	SetDone(ctx context.Context, id int64, done bool) (*storage.Note, error)
	Delete(ctx context.Context, id int64) (*storage.Note, error)
	Search(ctx context.Context, q storage.SearchQuery) ([]storage.Note, error)
	// AssignStates gives every unassigned note a state inferred from its done flag and labels.
	AssignStates(ctx context.Context) (int, error)
	// AssignStatesToFirst puts every unassigned note in the lowest-position state.
	AssignStatesToFirst(ctx context.Context) (int, error)
}

// StateStore is the state persistence the service layer needs.
type StateStore interface {
	Create(ctx context.Context, s storage.NewState) (*storage.State, error)
	List(ctx context.Context) ([]storage.State, error)
	Get(ctx context.Context, id int64) (*storage.State, error)
	Update(ctx context.Context, id int64, p storage.StatePatch) (*storage.State, error)
	Delete(ctx context.Context, id int64) (*storage.State, error)
}

// BulkStore applies one mutation to many notes, reporting per-item outcomes.
type BulkStore interface {
	Delete(ctx context.Context, ids []int64) (storage.BulkResult, error)
	SetPriority(ctx context.Context, ids []int64, priority int) (storage.BulkResult, error)
	SetDone(ctx context.Context, ids []int64, done bool) (storage.BulkResult, error)
	SetState(ctx context.Context, ids []int64, stateID *int64) (storage.BulkResult, error)
	SetOrder(ctx context.Context, ids []int64, orders []int) (storage.BulkResult, error)
}

// EventPublisher receives note changes after successful mutations.
type EventPublisher interface {
	Publish(change events.NoteChange)
}

type nopPublisher struct{}

func (nopPublisher) Publish(events.NoteChange) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
