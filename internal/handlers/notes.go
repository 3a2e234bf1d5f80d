package handlers

import (
	"net/http"

	"juan-note/internal/contextutil"
	"juan-note/internal/service"
)

// NotesHandler handles HTTP requests for notes.
type NotesHandler struct {
	notes service.NoteService
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(notes service.NoteService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// List handles GET /notes.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.notes.GetAllNotes(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get notes")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Create handles POST /notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.notes.CreateNote(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid note id")
		return
	}

	resp, err := h.notes.GetNote(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Update handles PUT /notes/{id}. The path id wins over any id in the body.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid note id")
		return
	}

	var req service.UpdateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = id

	resp, err := h.notes.UpdateNote(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Delete handles DELETE /notes/{id}.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid note id")
		return
	}

	resp, err := h.notes.DeleteNote(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to delete note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// SetDone handles PATCH /notes/{id}/done.
func (h *NotesHandler) SetDone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid note id")
		return
	}

	var req service.UpdateNoteDoneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = id

	resp, err := h.notes.UpdateNoteDone(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Search handles POST /notes/search.
func (h *NotesHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.notes.SearchNotes(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search notes")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
