package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

func TestMapper_MapErrorToHTTP(t *testing.T) {
	notFound := NewNotFoundError("state_not_found", "state not found")
	conflict := NewConflictError("invalid_transition", "invalid state transition")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"nil", nil, fasthttp.StatusOK, "", ""},
		{"validation", NewValidationError("invalid_state_code", "bad code"), fasthttp.StatusBadRequest, "invalid_state_code", "bad code"},
		{"unauthorized", NewUnauthorizedError("unauthorized", "missing token"), fasthttp.StatusUnauthorized, "unauthorized", "missing token"},
		{"not found", notFound, fasthttp.StatusNotFound, "state_not_found", "state not found"},
		{"wrapped conflict keeps context", fmt.Errorf("%w: AZ is completed", conflict), fasthttp.StatusConflict, "invalid_transition", "invalid state transition: AZ is completed"},
		{"unavailable", NewServiceUnavailableError("unavailable", "down"), fasthttp.StatusServiceUnavailable, "unavailable", "down"},
		{"internal", NewInternalError("database_error", "database operation failed"), fasthttp.StatusInternalServerError, "database_error", "database operation failed"},
		{"unknown hides detail", errors.New("pq: connection refused"), fasthttp.StatusInternalServerError, codeInternal, "internal server error"},
	}

	m := NewMapper(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := m.MapErrorToHTTP(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
			if msg != tt.wantMessage {
				t.Errorf("message = %q, want %q", msg, tt.wantMessage)
			}
		})
	}
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := NewConflictError("too_soon", "too soon")
	wrapped := fmt.Errorf("run transition: %w", sentinel)

	if !errors.Is(wrapped, sentinel) {
		t.Fatal("wrapped sentinel should match with errors.Is")
	}

	var coded Coded
	if !errors.As(wrapped, &coded) || coded.Code() != "too_soon" {
		t.Fatalf("expected Coded with code too_soon, got %v", coded)
	}
}
