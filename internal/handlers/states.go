package handlers

import (
	"net/http"

	"juan-note/internal/service"
)

// StatesHandler handles HTTP requests for kanban states.
type StatesHandler struct {
	states service.StateService
	notes  service.NoteService
}

// NewStatesHandler creates a new StatesHandler. notes serves the assignment sweep.
func NewStatesHandler(states service.StateService, notes service.NoteService) *StatesHandler {
	return &StatesHandler{states: states, notes: notes}
}

// List handles GET /states.
func (h *StatesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.states.GetAllStates(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get states")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Create handles POST /states.
func (h *StatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateStateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.states.CreateState(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create state")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Update handles PUT /states/{id}.
func (h *StatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid state id")
		return
	}

	var req service.UpdateStateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = id

	resp, err := h.states.UpdateState(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update state")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Delete handles DELETE /states/{id}.
func (h *StatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid state id")
		return
	}

	resp, err := h.states.DeleteState(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to delete state")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Assign handles POST /states/assign. ?policy=first selects the legacy sweep.
func (h *StatesHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.MigrateStatesRequest
	switch policy := r.URL.Query().Get("policy"); policy {
	case "", "infer":
	case "first":
		req.Legacy = true
	default:
		writeError(ctx, w, http.StatusBadRequest, "Unknown policy: "+policy)
		return
	}

	resp, err := h.notes.MigrateNotesToStates(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to migrate notes to states")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
