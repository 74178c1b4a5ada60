package http

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/brewquest/internal/domain/journey/entities"
	journeyerrors "github.com/Conte777/brewquest/internal/domain/journey/errors"
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
)

type mockTracker struct {
	progressFunc func(ctx context.Context) (*entities.Progress, error)
	getStateFunc func(ctx context.Context, code string) (*entities.State, error)
	listFunc     func(ctx context.Context) ([]entities.State, error)
}

func (m *mockTracker) GetCurrentState(ctx context.Context) (*entities.State, error) { return nil, nil }
func (m *mockTracker) GetNextUpcomingState(ctx context.Context) (*entities.State, error) {
	return nil, nil
}
func (m *mockTracker) GetState(ctx context.Context, code string) (*entities.State, error) {
	return m.getStateFunc(ctx, code)
}
func (m *mockTracker) ListStates(ctx context.Context) ([]entities.State, error) {
	return m.listFunc(ctx)
}
func (m *mockTracker) Progress(ctx context.Context) (*entities.Progress, error) {
	return m.progressFunc(ctx)
}
func (m *mockTracker) MarkCompleted(ctx context.Context, code string) error { return nil }
func (m *mockTracker) MarkCurrent(ctx context.Context, code string) error { return nil }
func (m *mockTracker) Advance(ctx context.Context, fromCode, toCode string) error { return nil }

func serve(t *testing.T, tracker *mockTracker, path string) (*fasthttp.RequestCtx, map[string]interface{}) {
	t.Helper()

	rt := router.New()
	NewRouter(NewHandler(tracker, pkgerrors.NewMapper(zerolog.Nop()), zerolog.Nop()), zerolog.Nop()).RegisterRoutes(rt)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI(path)
	rt.Handler(&ctx)

	var body map[string]interface{}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode body %q: %v", ctx.Response.Body(), err)
	}
	return &ctx, body
}

func TestHandler_GetProgress(t *testing.T) {
	tracker := &mockTracker{
		progressFunc: func(context.Context) (*entities.Progress, error) {
			current := &entities.State{Code: "AZ", Name: "Arizona", WeekNumber: 3, Status: entities.StatusCurrent}
			return &entities.Progress{Total: 50, Completed: 2, Current: 1, Upcoming: 47, CurrentState: current}, nil
		},
	}

	ctx, body := serve(t, tracker, "/api/journey")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}

	data := body["data"].(map[string]interface{})
	if data["completed"].(float64) != 2 {
		t.Errorf("completed = %v, want 2", data["completed"])
	}
	if data["current_state"].(map[string]interface{})["code"] != "AZ" {
		t.Errorf("current_state = %v, want AZ", data["current_state"])
	}
	if data["journey_complete"].(bool) {
		t.Error("journey should not be complete")
	}
}

func TestHandler_GetState_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", journeyerrors.ErrStateNotFound, fasthttp.StatusNotFound, "state_not_found"},
		{"invalid code", journeyerrors.ErrInvalidStateCode, fasthttp.StatusBadRequest, "invalid_state_code"},
		{"database", journeyerrors.ErrDatabaseOperation, fasthttp.StatusInternalServerError, "database_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &mockTracker{
				getStateFunc: func(context.Context, string) (*entities.State, error) { return nil, tt.err },
			}

			ctx, body := serve(t, tracker, "/api/journey/states/zz")
			if ctx.Response.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", ctx.Response.StatusCode(), tt.wantStatus)
			}
			if body["success"].(bool) || body["code"] != tt.wantCode {
				t.Errorf("unexpected body: %v", body)
			}
		})
	}
}

func TestHandler_GetState_PassesPathCode(t *testing.T) {
	var got string
	tracker := &mockTracker{
		getStateFunc: func(_ context.Context, code string) (*entities.State, error) {
			got = code
			return &entities.State{Code: "AZ", Status: entities.StatusUpcoming}, nil
		},
	}

	ctx, _ := serve(t, tracker, "/api/journey/states/az")
	if ctx.Response.StatusCode() != fasthttp.StatusOK || got != "az" {
		t.Errorf("status = %d, code = %q", ctx.Response.StatusCode(), got)
	}
}

func TestHandler_ListStates(t *testing.T) {
	tracker := &mockTracker{
		listFunc: func(context.Context) ([]entities.State, error) {
			return []entities.State{{Code: "AL", WeekNumber: 1}, {Code: "AK", WeekNumber: 2}}, nil
		},
	}

	_, body := serve(t, tracker, "/api/journey/states")
	data := body["data"].([]interface{})
	if len(data) != 2 || data[1].(map[string]interface{})["code"] != "AK" {
		t.Errorf("unexpected states: %v", data)
	}
}
