// Package bridge dispatches desktop-shell command names to the note services.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"juan-note/internal/contextutil"
	"juan-note/internal/service"
	"juan-note/internal/storage"
)

// ErrUnknownCommand is returned by Invoke for a name with no handler.
var ErrUnknownCommand = errors.New("unknown command")

// MigrateFunc brings the store schema up to date.
type MigrateFunc func(ctx context.Context) error

type commandFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher maps command names to service calls.
type Dispatcher struct {
	commands map[string]commandFunc
}

// requestArgs is the {"request": {...}} argument shape.
type requestArgs[T any] struct {
	Request T `json:"request"`
}

type idArgs struct {
	ID int64 `json:"id"`
}

// bulkArgs covers every bulk command; each reads the fields it needs.
type bulkArgs struct {
	NoteIDs  []int64 `json:"noteIds"`
	Priority int     `json:"priority"`
	Done     bool    `json:"done"`
	StateID  *int64  `json:"stateId"`
	Orders   []int   `json:"orders"`
}

// NewDispatcher creates a Dispatcher over the given services.
func NewDispatcher(notes service.NoteService, states service.StateService, bulk service.BulkService, migrate MigrateFunc) *Dispatcher {
	d := &Dispatcher{commands: make(map[string]commandFunc)}

	d.commands["initialize_db"] = func(ctx context.Context, _ json.RawMessage) (any, error) {
		if err := migrate(ctx); err != nil {
			return nil, service.WrapError(err, "failed to initialize database")
		}
		return service.NotesListResponse{Success: true, Data: []storage.Note{}}, nil
	}

	d.commands["create_note"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[requestArgs[service.CreateNoteRequest]](raw)
		if err != nil {
			return nil, err
		}
		return notes.CreateNote(ctx, args.Request)
	}
	d.commands["get_note"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[idArgs](raw)
		if err != nil {
			return nil, err
		}
		return notes.GetNote(ctx, args.ID)
	}
	d.commands["get_all_notes"] = func(ctx context.Context, _ json.RawMessage) (any, error) {
		return notes.GetAllNotes(ctx)
	}
	d.commands["update_note"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[requestArgs[service.UpdateNoteRequest]](raw)
		if err != nil {
			return nil, err
		}
		return notes.UpdateNote(ctx, args.Request)
	}
	d.commands["delete_note"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[requestArgs[service.NoteIDRequest]](raw)
		if err != nil {
			return nil, err
		}
		return notes.DeleteNote(ctx, args.Request.ID)
	}
	d.commands["search_notes"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[requestArgs[service.SearchRequest]](raw)
		if err != nil {
			return nil, err
		}
		return notes.SearchNotes(ctx, args.Request)
	}
	d.commands["update_note_done"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[requestArgs[service.UpdateNoteDoneRequest]](raw)
		if err != nil {
			return nil, err
		}
		return notes.UpdateNoteDone(ctx, args.Request)
	}
	d.commands["migrate_notes_to_states"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[service.MigrateStatesRequest](raw)
		if err != nil {
			return nil, err
		}
		return notes.MigrateNotesToStates(ctx, args)
	}

	d.commands["get_all_states"] = func(ctx context.Context, _ json.RawMessage) (any, error) {
		return states.GetAllStates(ctx)
	}
	d.commands["create_state"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[requestArgs[service.CreateStateRequest]](raw)
		if err != nil {
			return nil, err
		}
		return states.CreateState(ctx, args.Request)
	}
	d.commands["update_state"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[requestArgs[service.UpdateStateRequest]](raw)
		if err != nil {
			return nil, err
		}
		return states.UpdateState(ctx, args.Request)
	}
	d.commands["delete_state"] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[idArgs](raw)
		if err != nil {
			return nil, err
		}
		return states.DeleteState(ctx, args.ID)
	}

	d.commands["bulk_delete_notes"] = bulkCommand(func(ctx context.Context, a bulkArgs) (service.BulkOperationResponse, error) {
		return bulk.BulkDelete(ctx, service.BulkDeleteRequest{NoteIDs: a.NoteIDs})
	})
	d.commands["bulk_update_notes_priority"] = bulkCommand(func(ctx context.Context, a bulkArgs) (service.BulkOperationResponse, error) {
		return bulk.BulkUpdatePriority(ctx, service.BulkUpdatePriorityRequest{NoteIDs: a.NoteIDs, Priority: a.Priority})
	})
	d.commands["bulk_update_notes_done"] = bulkCommand(func(ctx context.Context, a bulkArgs) (service.BulkOperationResponse, error) {
		return bulk.BulkUpdateDone(ctx, service.BulkUpdateDoneRequest{NoteIDs: a.NoteIDs, Done: a.Done})
	})
	d.commands["bulk_update_notes_state"] = bulkCommand(func(ctx context.Context, a bulkArgs) (service.BulkOperationResponse, error) {
		return bulk.BulkUpdateState(ctx, service.BulkUpdateStateRequest{NoteIDs: a.NoteIDs, StateID: a.StateID})
	})
	d.commands["bulk_update_notes_order"] = bulkCommand(func(ctx context.Context, a bulkArgs) (service.BulkOperationResponse, error) {
		return bulk.BulkUpdateOrder(ctx, service.BulkUpdateOrderRequest{NoteIDs: a.NoteIDs, Orders: a.Orders})
	})

	return d
}

func bulkCommand(call func(context.Context, bulkArgs) (service.BulkOperationResponse, error)) commandFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[bulkArgs](raw)
		if err != nil {
			return nil, err
		}
		return call(ctx, args)
	}
}

// Invoke runs the named command with its JSON arguments and returns the response envelope.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	cmd, ok := d.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "invoking command", "command", name)
	return cmd(ctx, args)
}

// Commands returns the registered command names in sorted order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decode unmarshals command arguments. Empty or null arguments decode to the zero value.
func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 || string(raw) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &service.ValidationError{Field: "args", Message: err.Error()}
	}
	return v, nil
}
