package service

import (
	"time"

	"juan-note/internal/storage"
)

// Envelope messages for missing entities.
const (
	MsgNoteNotFound  = "Note not found"
	MsgStateNotFound = "State not found"
)

// NoteResponse wraps a single note.
type NoteResponse struct {
	Success bool          `json:"success"`
	Data    *storage.Note `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// NotesListResponse wraps a list of notes. Data is never null.
type NotesListResponse struct {
	Success bool           `json:"success"`
	Data    []storage.Note `json:"data"`
	Error   string         `json:"error,omitempty"`
}

// StateResponse wraps a single state.
type StateResponse struct {
	Success bool           `json:"success"`
	Data    *storage.State `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// StatesListResponse wraps a list of states. Data is never null.
type StatesListResponse struct {
	Success bool            `json:"success"`
	Data    []storage.State `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// BulkOperationResponse reports a best-effort batch.
type BulkOperationResponse struct {
	Success         bool     `json:"success"`
	SuccessfulCount int      `json:"successful_count"`
	FailedCount     int      `json:"failed_count"`
	Errors          []string `json:"errors,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// MigrationResponse reports a state assignment sweep.
type MigrationResponse struct {
	Success  bool   `json:"success"`
	Migrated int    `json:"migrated"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CreateNoteRequest creates a note. Omitted optional fields take the store defaults.
type CreateNoteRequest struct {
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Priority        *int       `json:"priority,omitempty"`
	Labels          []string   `json:"labels,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	ReminderMinutes *int       `json:"reminder_minutes,omitempty"`
	Done            *bool      `json:"done,omitempty"`
	StateID         *int64     `json:"state_id,omitempty"`
	Order           *int       `json:"order,omitempty"`
}

// UpdateNoteRequest is a partial update. Only non-nil fields are written.
type UpdateNoteRequest struct {
	ID              int64      `json:"id"`
	Title           *string    `json:"title,omitempty"`
	Content         *string    `json:"content,omitempty"`
	Priority        *int       `json:"priority,omitempty"`
	Labels          *[]string  `json:"labels,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	ReminderMinutes *int       `json:"reminder_minutes,omitempty"`
	Done            *bool      `json:"done,omitempty"`
	StateID         *int64     `json:"state_id,omitempty"`
	Order           *int       `json:"order,omitempty"`
}

// NoteIDRequest addresses a single note.
type NoteIDRequest struct {
	ID int64 `json:"id"`
}

// UpdateNoteDoneRequest toggles a note's done flag.
type UpdateNoteDoneRequest struct {
	ID   int64 `json:"id"`
	Done bool  `json:"done"`
}

// SearchRequest is a paginated search. Zero limit means the default page size.
type SearchRequest struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// CreateStateRequest creates a state.
type CreateStateRequest struct {
	Name     string  `json:"name"`
	Position int     `json:"position"`
	Color    *string `json:"color,omitempty"`
}

// UpdateStateRequest is a partial state update.
type UpdateStateRequest struct {
	ID       int64   `json:"id"`
	Name     *string `json:"name,omitempty"`
	Position *int    `json:"position,omitempty"`
	Color    *string `json:"color,omitempty"`
}

// StateIDRequest addresses a single state.
type StateIDRequest struct {
	ID int64 `json:"id"`
}

// BulkDeleteRequest deletes every listed note.
type BulkDeleteRequest struct {
	NoteIDs []int64 `json:"note_ids"`
}

// BulkUpdatePriorityRequest sets one priority on every listed note.
type BulkUpdatePriorityRequest struct {
	NoteIDs  []int64 `json:"note_ids"`
	Priority int     `json:"priority"`
}

// BulkUpdateDoneRequest marks every listed note done or not done.
type BulkUpdateDoneRequest struct {
	NoteIDs []int64 `json:"note_ids"`
	Done    bool    `json:"done"`
}

// BulkUpdateStateRequest moves notes to a state. A null state_id clears it.
type BulkUpdateStateRequest struct {
	NoteIDs []int64 `json:"note_ids"`
	StateID *int64  `json:"state_id"`
}

// BulkUpdateOrderRequest sets orders[i] on note_ids[i]. Missing orders are 0.
type BulkUpdateOrderRequest struct {
	NoteIDs []int64 `json:"note_ids"`
	Orders  []int   `json:"orders"`
}

// MigrateStatesRequest selects the sweep policy.
type MigrateStatesRequest struct {
	// Legacy assigns every unassigned note to the first state instead of inferring one.
	Legacy bool `json:"legacy,omitempty"`
}
