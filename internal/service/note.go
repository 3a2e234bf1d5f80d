package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks juan-note/internal/service NoteService,StateService,BulkService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"juan-note/internal/contextutil"
	"juan-note/internal/events"
	"juan-note/internal/storage"
)

// NoteService provides note operations wrapped in response envelopes.
// A missing note is reported in the envelope, not as an error.
type NoteService interface {
	CreateNote(ctx context.Context, req CreateNoteRequest) (NoteResponse, error)
	GetNote(ctx context.Context, id int64) (NoteResponse, error)
	GetAllNotes(ctx context.Context) (NotesListResponse, error)
	UpdateNote(ctx context.Context, req UpdateNoteRequest) (NoteResponse, error)
	DeleteNote(ctx context.Context, id int64) (NoteResponse, error)
	UpdateNoteDone(ctx context.Context, req UpdateNoteDoneRequest) (NoteResponse, error)
	SearchNotes(ctx context.Context, req SearchRequest) (NotesListResponse, error)
	// MigrateNotesToStates assigns a state to every note that has none.
	MigrateNotesToStates(ctx context.Context, req MigrateStatesRequest) (MigrationResponse, error)
}

// noteService implements NoteService.
type noteService struct {
	notes  NoteStore
	events EventPublisher
}

// NewNoteService creates a new NoteService. publisher may be nil.
func NewNoteService(notes NoteStore, publisher EventPublisher) NoteService {
	return &noteService{
		notes:  notes,
		events: publisherOrNop(publisher),
	}
}

func (s *noteService) CreateNote(ctx context.Context, req CreateNoteRequest) (NoteResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Title) == "" {
		logger.WarnContext(ctx, "empty title in create note request")
		return NoteResponse{}, &ValidationError{Field: "title", Message: "cannot be empty"}
	}

	n := storage.NewNote{
		Title:    req.Title,
		Content:  req.Content,
		Labels:   req.Labels,
		Deadline: req.Deadline,
		StateID:  req.StateID,
	}
	if req.Priority != nil {
		n.Priority = *req.Priority
	}
	if req.ReminderMinutes != nil {
		n.ReminderMinutes = *req.ReminderMinutes
	}
	if req.Done != nil {
		n.Done = *req.Done
	}
	if req.Order != nil {
		n.Order = *req.Order
	}

	note, err := s.notes.Create(ctx, n)
	if err != nil {
		if errors.Is(err, storage.ErrLabelsEncode) {
			return NoteResponse{}, &ValidationError{Field: "labels", Message: "cannot be encoded"}
		}
		logger.ErrorContext(ctx, "failed to create note", "error", err)
		return NoteResponse{}, WrapError(err, "failed to create note")
	}

	s.events.Publish(events.NoteChange{Type: events.NoteCreated, NoteID: note.ID})
	logger.InfoContext(ctx, "note created", "note_id", note.ID)
	return NoteResponse{Success: true, Data: note}, nil
}

func (s *noteService) GetNote(ctx context.Context, id int64) (NoteResponse, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return s.noteResult(ctx, "get", id, err)
	}
	return NoteResponse{Success: true, Data: note}, nil
}

func (s *noteService) GetAllNotes(ctx context.Context) (NotesListResponse, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list notes", "error", err)
		return NotesListResponse{}, WrapError(err, "failed to list notes")
	}
	return NotesListResponse{Success: true, Data: nonNilNotes(notes)}, nil
}

func (s *noteService) UpdateNote(ctx context.Context, req UpdateNoteRequest) (NoteResponse, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return NoteResponse{}, &ValidationError{Field: "title", Message: "cannot be empty"}
	}

	patch := storage.NotePatch{
		Title:           req.Title,
		Content:         req.Content,
		Priority:        req.Priority,
		Labels:          req.Labels,
		Deadline:        req.Deadline,
		ReminderMinutes: req.ReminderMinutes,
		Done:            req.Done,
		StateID:         req.StateID,
		Order:           req.Order,
	}

	note, err := s.notes.Update(ctx, req.ID, patch)
	if err != nil {
		return s.noteResult(ctx, "update", req.ID, err)
	}

	s.events.Publish(events.NoteChange{Type: events.NoteUpdated, NoteID: note.ID})
	return NoteResponse{Success: true, Data: note}, nil
}

func (s *noteService) DeleteNote(ctx context.Context, id int64) (NoteResponse, error) {
	note, err := s.notes.Delete(ctx, id)
	if err != nil {
		return s.noteResult(ctx, "delete", id, err)
	}

	s.events.Publish(events.NoteChange{Type: events.NoteDeleted, NoteID: id})
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note deleted", "note_id", id)
	return NoteResponse{Success: true, Data: note}, nil
}

func (s *noteService) UpdateNoteDone(ctx context.Context, req UpdateNoteDoneRequest) (NoteResponse, error) {
	note, err := s.notes.SetDone(ctx, req.ID, req.Done)
	if err != nil {
		return s.noteResult(ctx, "update", req.ID, err)
	}

	s.events.Publish(events.NoteChange{Type: events.NoteUpdated, NoteID: note.ID})
	return NoteResponse{Success: true, Data: note}, nil
}

func (s *noteService) SearchNotes(ctx context.Context, req SearchRequest) (NotesListResponse, error) {
	notes, err := s.notes.Search(ctx, storage.SearchQuery{
		Query:  req.Query,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to search notes", "error", err, "query", req.Query)
		return NotesListResponse{}, WrapError(err, "failed to search notes")
	}
	return NotesListResponse{Success: true, Data: nonNilNotes(notes)}, nil
}

func (s *noteService) MigrateNotesToStates(ctx context.Context, req MigrateStatesRequest) (MigrationResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	sweep, policy := s.notes.AssignStates, "inferred"
	if req.Legacy {
		sweep, policy = s.notes.AssignStatesToFirst, "first"
	}

	migrated, err := sweep(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to assign states", "error", err, "policy", policy)
		return MigrationResponse{}, WrapError(err, "failed to migrate notes to states")
	}

	if migrated == 0 {
		return MigrationResponse{Success: true, Message: "No notes need migration"}, nil
	}

	s.events.Publish(events.NoteChange{Type: events.NoteUpdated})
	logger.InfoContext(ctx, "assigned states to notes", "count", migrated, "policy", policy)

	msg := fmt.Sprintf("Migrated %d notes to states", migrated)
	if req.Legacy {
		msg = fmt.Sprintf("Migrated %d notes to default state", migrated)
	}
	return MigrationResponse{Success: true, Migrated: migrated, Message: msg}, nil
}

// noteResult maps a repository error to the envelope or an error.
func (s *noteService) noteResult(ctx context.Context, op string, id int64, err error) (NoteResponse, error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return NoteResponse{Success: false, Error: MsgNoteNotFound}, nil
	case errors.Is(err, storage.ErrEmptyPatch):
		return NoteResponse{}, &ValidationError{Field: "patch", Message: "no fields to update"}
	case errors.Is(err, storage.ErrLabelsEncode):
		return NoteResponse{}, &ValidationError{Field: "labels", Message: "cannot be encoded"}
	}
	contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "note operation failed", "op", op, "note_id", id, "error", err)
	return NoteResponse{}, WrapError(err, "failed to "+op+" note")
}

func nonNilNotes(notes []storage.Note) []storage.Note {
	if notes == nil {
		return []storage.Note{}
	}
	return notes
}
