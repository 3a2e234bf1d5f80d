package handlers

import (
	"context"
	"net/http"

	"juan-note/internal/service"
)

// BulkHandler handles HTTP requests for batch note mutations.
type BulkHandler struct {
	bulk service.BulkService
}

// NewBulkHandler creates a new BulkHandler.
func NewBulkHandler(bulk service.BulkService) *BulkHandler {
	return &BulkHandler{bulk: bulk}
}

// Delete handles POST /bulk/notes/delete.
func (h *BulkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req service.BulkDeleteRequest
	serveBulk(w, r, &req, "Failed to delete notes", func(ctx context.Context) (service.BulkOperationResponse, error) {
		return h.bulk.BulkDelete(ctx, req)
	})
}

// Priority handles PATCH /bulk/notes/priority.
func (h *BulkHandler) Priority(w http.ResponseWriter, r *http.Request) {
	var req service.BulkUpdatePriorityRequest
	serveBulk(w, r, &req, "Failed to update notes", func(ctx context.Context) (service.BulkOperationResponse, error) {
		return h.bulk.BulkUpdatePriority(ctx, req)
	})
}

// Done handles PATCH /bulk/notes/done.
func (h *BulkHandler) Done(w http.ResponseWriter, r *http.Request) {
	var req service.BulkUpdateDoneRequest
	serveBulk(w, r, &req, "Failed to update notes", func(ctx context.Context) (service.BulkOperationResponse, error) {
		return h.bulk.BulkUpdateDone(ctx, req)
	})
}

// State handles PATCH /bulk/notes/state.
func (h *BulkHandler) State(w http.ResponseWriter, r *http.Request) {
	var req service.BulkUpdateStateRequest
	serveBulk(w, r, &req, "Failed to update notes", func(ctx context.Context) (service.BulkOperationResponse, error) {
		return h.bulk.BulkUpdateState(ctx, req)
	})
}

// Order handles PATCH /bulk/notes/order.
func (h *BulkHandler) Order(w http.ResponseWriter, r *http.Request) {
	var req service.BulkUpdateOrderRequest
	serveBulk(w, r, &req, "Failed to update notes", func(ctx context.Context) (service.BulkOperationResponse, error) {
		return h.bulk.BulkUpdateOrder(ctx, req)
	})
}

// serveBulk decodes the body into req, then runs call.
func serveBulk(w http.ResponseWriter, r *http.Request, req any, failMsg string, call func(context.Context) (service.BulkOperationResponse, error)) {
	ctx := r.Context()
	if err := decodeJSON(r, req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := call(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, failMsg)
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
