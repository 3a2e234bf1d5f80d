package handlers

import "net/http"

// EndpointDoc describes one route in the API documentation.
type EndpointDoc struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Body        map[string]string `json:"body,omitempty"`
}

// APIDocs is served at GET /.
type APIDocs struct {
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	Endpoints []EndpointDoc `json:"endpoints"`
	Usage     []string      `json:"usage"`
}

var apiDocs = APIDocs{
	Name:    ServiceName,
	Version: ServiceVersion,
	Endpoints: []EndpointDoc{
		{Method: "GET", Path: "/", Description: "This documentation"},
		{Method: "GET", Path: "/health", Description: "Store health check"},
		{Method: "GET", Path: "/notes", Description: "List notes by order, then most recently updated"},
		{Method: "POST", Path: "/notes", Description: "Create a note", Body: map[string]string{
			"title":            "Required",
			"content":          "Optional",
			"priority":         "Optional integer, default 0",
			"labels":           "Optional array of strings",
			"deadline":         "Optional RFC 3339 timestamp",
			"reminder_minutes": "Optional integer, default 0",
			"done":             "Optional boolean",
			"state_id":         "Optional state id",
			"order":            "Optional integer, default 0",
		}},
		{Method: "POST", Path: "/notes/search", Description: "Search title and content", Body: map[string]string{
			"query":  "Required; empty lists all notes",
			"limit":  "Optional, default 50, max 100",
			"offset": "Optional, default 0",
		}},
		{Method: "GET", Path: "/notes/{id}", Description: "Get one note"},
		{Method: "PUT", Path: "/notes/{id}", Description: "Update the supplied fields of a note"},
		{Method: "DELETE", Path: "/notes/{id}", Description: "Delete a note and return it"},
		{Method: "PATCH", Path: "/notes/{id}/done", Description: "Set the done flag", Body: map[string]string{"done": "Required boolean"}},
		{Method: "GET", Path: "/notes/{id}/html", Description: "Note content rendered from markdown"},
		{Method: "GET", Path: "/states", Description: "List states by position"},
		{Method: "POST", Path: "/states", Description: "Create a state", Body: map[string]string{
			"name":     "Required",
			"position": "Required integer",
			"color":    "Optional hex color",
		}},
		{Method: "PUT", Path: "/states/{id}", Description: "Update a state"},
		{Method: "DELETE", Path: "/states/{id}", Description: "Delete a state and clear it from its notes"},
		{Method: "POST", Path: "/states/assign", Description: "Assign states to unassigned notes; ?policy=first uses the first state"},
		{Method: "POST", Path: "/bulk/notes/delete", Description: "Delete many notes", Body: map[string]string{"note_ids": "Required array"}},
		{Method: "PATCH", Path: "/bulk/notes/priority", Description: "Set priority on many notes", Body: map[string]string{"note_ids": "Required array", "priority": "Required integer"}},
		{Method: "PATCH", Path: "/bulk/notes/done", Description: "Set done on many notes", Body: map[string]string{"note_ids": "Required array", "done": "Required boolean"}},
		{Method: "PATCH", Path: "/bulk/notes/state", Description: "Move many notes to a state", Body: map[string]string{"note_ids": "Required array", "state_id": "State id or null"}},
		{Method: "PATCH", Path: "/bulk/notes/order", Description: "Set display order on many notes", Body: map[string]string{"note_ids": "Required array", "orders": "Array matched by index; missing entries are 0"}},
		{Method: "GET", Path: "/events", Description: "Websocket stream of note changes"},
	},
	Usage: []string{
		"Every response carries 'success'; check it before reading 'data'",
		"A missing note or state is success=false with an error message, not an HTTP error",
		"Timestamps are RFC 3339 in UTC",
		"Bulk operations are best effort: read successful_count, failed_count and errors",
	},
}

// DocsHandler serves the API documentation.
type DocsHandler struct{}

// NewDocsHandler creates a new DocsHandler.
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// ServeHTTP writes the documentation as JSON.
func (h *DocsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, apiDocs)
}
