package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"juan-note/internal/service"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation error",
			err:        &service.ValidationError{Field: "title", Message: "cannot be empty"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation error: title: cannot be empty",
		},
		{
			name:       "wrapped validation error",
			err:        fmt.Errorf("create: %w", &service.ValidationError{Field: "labels", Message: "invalid"}),
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation error: labels: invalid",
		},
		{
			name:       "invalid input",
			err:        fmt.Errorf("decode: %w", service.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid input",
		},
		{
			name:       "internal error",
			err:        fmt.Errorf("no such table: notes"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to do it",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleServiceError(w, context.Background(), tt.err, "Failed to do it")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeBody[ErrorResponse](t, w)
			if resp.Success || resp.Error != tt.wantError {
				t.Errorf("response = %+v, want error %q", resp, tt.wantError)
			}
		})
	}
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	req := service.SearchRequest{Limit: 7}
	r := httptest.NewRequest(http.MethodPost, "/notes/search", strings.NewReader(""))
	if err := decodeJSON(r, &req); err != nil {
		t.Fatalf("decodeJSON() error = %v", err)
	}
	if req.Limit != 7 {
		t.Errorf("Limit = %d, want untouched 7", req.Limit)
	}
}
