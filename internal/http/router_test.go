package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"juan-note/internal/events"
	"juan-note/internal/service"
	"juan-note/internal/service/mocks"
	"juan-note/internal/storage"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(ctrl *gomock.Controller) (http.Handler, *mocks.MockNoteService, *mocks.MockStateService, *mocks.MockBulkService) {
	notes := mocks.NewMockNoteService(ctrl)
	states := mocks.NewMockStateService(ctrl)
	bulk := mocks.NewMockBulkService(ctrl)

	router := NewRouter(&Deps{
		Notes:          notes,
		States:         states,
		Bulk:           bulk,
		Store:          okPinger{},
		Events:         events.NewHub(events.DefaultBuffer),
		AllowedOrigins: []string{"*"},
	})
	return router, notes, states, bulk
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _, _ := newTestRouter(ctrl)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		mockSetup  func(n *mocks.MockNoteService, s *mocks.MockStateService, b *mocks.MockBulkService)
		wantStatus int
	}{
		{
			name:       "GET root serves docs",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /health",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /notes",
			method: http.MethodGet,
			path:   "/notes",
			mockSetup: func(n *mocks.MockNoteService, _ *mocks.MockStateService, _ *mocks.MockBulkService) {
				n.EXPECT().GetAllNotes(gomock.Any()).Return(service.NotesListResponse{Success: true, Data: []storage.Note{}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /notes/search is not a note id",
			method: http.MethodPost,
			path:   "/notes/search",
			body:   `{"query":"milk"}`,
			mockSetup: func(n *mocks.MockNoteService, _ *mocks.MockStateService, _ *mocks.MockBulkService) {
				n.EXPECT().SearchNotes(gomock.Any(), service.SearchRequest{Query: "milk"}).
					Return(service.NotesListResponse{Success: true, Data: []storage.Note{}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /notes/{id}",
			method: http.MethodGet,
			path:   "/notes/12",
			mockSetup: func(n *mocks.MockNoteService, _ *mocks.MockStateService, _ *mocks.MockBulkService) {
				n.EXPECT().GetNote(gomock.Any(), int64(12)).Return(service.NoteResponse{Success: true, Data: &storage.Note{ID: 12}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "PUT /notes/{id} with bad id",
			method:     http.MethodPut,
			path:       "/notes/abc",
			body:       `{"title":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "PATCH /notes/{id}/done",
			method: http.MethodPatch,
			path:   "/notes/4/done",
			body:   `{"done":true}`,
			mockSetup: func(n *mocks.MockNoteService, _ *mocks.MockStateService, _ *mocks.MockBulkService) {
				n.EXPECT().UpdateNoteDone(gomock.Any(), service.UpdateNoteDoneRequest{ID: 4, Done: true}).
					Return(service.NoteResponse{Success: true, Data: &storage.Note{ID: 4, Done: true}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /notes/{id}/html",
			method: http.MethodGet,
			path:   "/notes/5/html",
			mockSetup: func(n *mocks.MockNoteService, _ *mocks.MockStateService, _ *mocks.MockBulkService) {
				n.EXPECT().GetNote(gomock.Any(), int64(5)).
					Return(service.NoteResponse{Success: true, Data: &storage.Note{ID: 5, Title: "t", Content: "# hi"}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /states/assign",
			method: http.MethodPost,
			path:   "/states/assign",
			mockSetup: func(n *mocks.MockNoteService, _ *mocks.MockStateService, _ *mocks.MockBulkService) {
				n.EXPECT().MigrateNotesToStates(gomock.Any(), service.MigrateStatesRequest{}).
					Return(service.MigrationResponse{Success: true, Message: "No notes need migration"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE /states/{id}",
			method: http.MethodDelete,
			path:   "/states/3",
			mockSetup: func(_ *mocks.MockNoteService, s *mocks.MockStateService, _ *mocks.MockBulkService) {
				s.EXPECT().DeleteState(gomock.Any(), int64(3)).Return(service.StateResponse{Success: true, Data: &storage.State{ID: 3}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /bulk/notes/delete",
			method: http.MethodPost,
			path:   "/bulk/notes/delete",
			body:   `{"note_ids":[1,2]}`,
			mockSetup: func(_ *mocks.MockNoteService, _ *mocks.MockStateService, b *mocks.MockBulkService) {
				b.EXPECT().BulkDelete(gomock.Any(), service.BulkDeleteRequest{NoteIDs: []int64{1, 2}}).
					Return(service.BulkOperationResponse{Success: true, SuccessfulCount: 2}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /bulk/notes/priority method not allowed",
			method:     http.MethodGet,
			path:       "/bulk/notes/priority",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/vaults",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "preflight",
			method:     http.MethodOptions,
			path:       "/notes",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, notes, states, bulk := newTestRouter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(notes, states, bulk)
			}

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v (%s)", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _, _ := newTestRouter(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:1420")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:1420" {
		t.Error("Router should apply CORS middleware")
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Router should assign a request id")
	}
}
