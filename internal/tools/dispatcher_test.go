package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/louis030195/toggl-mcp/internal/adapter/toggl"
	"github.com/louis030195/toggl-mcp/internal/domain"
	"github.com/louis030195/toggl-mcp/internal/ports/portstest"
	"github.com/louis030195/toggl-mcp/internal/usecase"
)

var fixedNow = time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC) // Wednesday

func newTestDispatcher(fake *portstest.FakeToggl) *Dispatcher {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracker := &usecase.Tracker{Log: log, Toggl: fake, Now: func() time.Time { return fixedNow }}
	return NewDispatcher(tracker, log)
}

func mustDispatch(t *testing.T, d *Dispatcher, name string, args map[string]any) string {
	t.Helper()
	text, err := d.Dispatch(context.Background(), name, args)
	if err != nil {
		t.Fatalf("Dispatch(%s): %v", name, err)
	}
	return text
}

func dispatchErr(t *testing.T, d *Dispatcher, name string, args map[string]any) *Error {
	t.Helper()
	_, err := d.Dispatch(context.Background(), name, args)
	if err == nil {
		t.Fatalf("expected %s to fail", name)
	}
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	return te
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestDispatchUnknownTool(t *testing.T) {
	d := newTestDispatcher(&portstest.FakeToggl{})

	te := dispatchErr(t, d, "explode", nil)
	if te.Kind != KindUnknownOperation {
		t.Fatalf("unexpected kind %s", te.Kind)
	}
	if !strings.Contains(te.Message, "explode") {
		t.Fatalf("expected offending name in message, got %q", te.Message)
	}
	if te.Protocol() != NotFound {
		t.Fatalf("unexpected protocol kind %s", te.Protocol())
	}
}

func TestDispatchStartValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{name: "missing description", args: map[string]any{}, want: []string{"description is required"}},
		{name: "null description", args: map[string]any{"description": nil}, want: []string{"description is required"}},
		{name: "empty description", args: map[string]any{"description": ""}, want: []string{"description must not be empty"}},
		{
			name: "wrong types aggregate",
			args: map[string]any{"description": 12, "project_name": true},
			want: []string{"description must be a string", "project_name must be a string"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &portstest.FakeToggl{}
			d := newTestDispatcher(fake)

			te := dispatchErr(t, d, ToolStart, tc.args)
			if te.Kind != KindValidation || te.Protocol() != InvalidParams {
				t.Fatalf("unexpected kind %s/%s", te.Kind, te.Protocol())
			}
			if len(te.Violations) != len(tc.want) {
				t.Fatalf("expected violations %v, got %v", tc.want, te.Violations)
			}
			for i, want := range tc.want {
				if te.Violations[i] != want {
					t.Fatalf("violation %d: got %q, want %q", i, te.Violations[i], want)
				}
			}
			if len(fake.Calls) != 0 {
				t.Fatalf("validation failure must not reach the remote service, got %v", fake.Calls)
			}
		})
	}
}

func TestDispatchDeleteValidation(t *testing.T) {
	d := newTestDispatcher(&portstest.FakeToggl{})

	for _, args := range []map[string]any{
		{},
		{"entry_id": "12"},
		{"entry_id": 1.5},
		{"entry_id": float64(0)},
	} {
		te := dispatchErr(t, d, ToolDelete, args)
		if te.Kind != KindValidation {
			t.Fatalf("args %v: expected validation error, got %s", args, te.Kind)
		}
	}
}

func TestDispatchStartWithProject(t *testing.T) {
	fake := &portstest.FakeToggl{Projects: []domain.Project{{ID: 5, Name: "Alpha"}}}
	d := newTestDispatcher(fake)

	text := mustDispatch(t, d, ToolStart, map[string]any{"description": "Write docs", "project_name": "alpha"})

	want := "Started timer: Write docs\nEntry ID: 1\nProject: Alpha"
	if text != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", text, want)
	}
}

func TestDispatchStartUnknownProject(t *testing.T) {
	fake := &portstest.FakeToggl{Projects: []domain.Project{{ID: 5, Name: "Alpha"}}}
	d := newTestDispatcher(fake)

	text := mustDispatch(t, d, ToolStart, map[string]any{"description": "Write docs", "project_name": "Gamma"})

	if text != "Started timer: Write docs\nEntry ID: 1" {
		t.Fatalf("unexpected text %q", text)
	}
	if fake.Started[0].ProjectID != nil {
		t.Fatalf("expected entry without project")
	}
}

func TestDispatchStopNothingRunning(t *testing.T) {
	fake := &portstest.FakeToggl{}
	d := newTestDispatcher(fake)

	te := dispatchErr(t, d, ToolStop, nil)
	if te.Kind != KindDomain || te.Protocol() != InvalidRequest {
		t.Fatalf("unexpected kind %s", te.Kind)
	}
	if te.Message != "No timer is currently running" {
		t.Fatalf("unexpected message %q", te.Message)
	}
	if fake.Called("StopTimeEntry") {
		t.Fatalf("stop endpoint must not be called")
	}
}

func TestDispatchStop(t *testing.T) {
	fake := &portstest.FakeToggl{
		Current:      &domain.TimeEntry{ID: 3, Description: "Focus", DurationSec: -fixedNow.Unix()},
		StopDuration: 5400 + 59,
	}
	d := newTestDispatcher(fake)

	text := mustDispatch(t, d, ToolStop, nil)
	if text != "Stopped timer: Focus\nDuration: 1h 30m" {
		t.Fatalf("unexpected text %q", text)
	}
	if len(fake.Stopped) != 1 || fake.Stopped[0] != 3 {
		t.Fatalf("unexpected stop calls %v", fake.Stopped)
	}
}

func TestDispatchCurrent(t *testing.T) {
	d := newTestDispatcher(&portstest.FakeToggl{})
	if text := mustDispatch(t, d, ToolCurrent, nil); text != "No timer running" {
		t.Fatalf("unexpected text %q", text)
	}

	running := &domain.TimeEntry{ID: 4, DurationSec: -(fixedNow.Unix() - 125), ProjectName: "Alpha"}
	d = newTestDispatcher(&portstest.FakeToggl{Current: running})
	want := "Current timer: (no description)\nProject: Alpha\nRunning for: 0h 2m"
	if text := mustDispatch(t, d, ToolCurrent, nil); text != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", text, want)
	}
}

func TestDispatchToday(t *testing.T) {
	d := newTestDispatcher(&portstest.FakeToggl{})
	if text := mustDispatch(t, d, ToolToday, nil); text != "No time entries today" {
		t.Fatalf("unexpected empty text %q", text)
	}

	fake := &portstest.FakeToggl{Entries: []domain.TimeEntry{
		{ID: 1, Description: "Dev", DurationSec: 3661},
		{ID: 2, Description: "Review", DurationSec: -(fixedNow.Unix() - 1800)},
	}}
	d = newTestDispatcher(fake)
	want := "Today's time entries:\n- Dev: 1h 1m\n- Review: 0h 30m (running)\n\nTotal: 1h 31m"
	if text := mustDispatch(t, d, ToolToday, nil); text != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", text, want)
	}
}

func TestDispatchProjects(t *testing.T) {
	d := newTestDispatcher(&portstest.FakeToggl{})
	if text := mustDispatch(t, d, ToolProjects, nil); text != "No projects found" {
		t.Fatalf("unexpected empty text %q", text)
	}

	d = newTestDispatcher(&portstest.FakeToggl{Projects: []domain.Project{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}}})
	want := "Projects:\n- Alpha (ID: 1)\n- Beta (ID: 2)"
	if text := mustDispatch(t, d, ToolProjects, nil); text != want {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestDispatchDelete(t *testing.T) {
	fake := &portstest.FakeToggl{}
	d := newTestDispatcher(fake)

	if text := mustDispatch(t, d, ToolDelete, map[string]any{"entry_id": float64(42)}); text != "Deleted time entry 42" {
		t.Fatalf("unexpected text %q", text)
	}
	if len(fake.Deleted) != 1 || fake.Deleted[0] != 42 {
		t.Fatalf("unexpected deletes %v", fake.Deleted)
	}
}

func TestDispatchDeleteRemoteNotFound(t *testing.T) {
	fake := &portstest.FakeToggl{Err: &toggl.APIError{Method: "DELETE", Path: "/x", Status: 404, Body: "not found"}}
	d := newTestDispatcher(fake)

	te := dispatchErr(t, d, ToolDelete, map[string]any{"entry_id": float64(42)})
	if te.Kind != KindRemote || te.Protocol() != NotFound {
		t.Fatalf("unexpected kind %s/%s", te.Kind, te.Protocol())
	}
	if !strings.Contains(te.Message, "404") {
		t.Fatalf("expected status in message, got %q", te.Message)
	}
}

func TestDispatchAuthenticationError(t *testing.T) {
	fake := &portstest.FakeToggl{Err: &toggl.APIError{Method: "GET", Path: "/api/v9/me", Status: 403}}
	d := newTestDispatcher(fake)

	te := dispatchErr(t, d, ToolProjects, nil)
	if te.Kind != KindAuthentication || te.Protocol() != Internal {
		t.Fatalf("unexpected kind %s/%s", te.Kind, te.Protocol())
	}
	if !strings.Contains(te.Message, "TOGGL_API_TOKEN") {
		t.Fatalf("expected credential guidance, got %q", te.Message)
	}
}

func TestDispatchWeekly(t *testing.T) {
	fake := &portstest.FakeToggl{Entries: []domain.TimeEntry{
		{ID: 1, Description: "Dev", ProjectName: "Alpha", Start: ts(t, "2026-01-06T09:00:00Z"), DurationSec: 3661},
		{ID: 2, Description: "Review", ProjectName: "Beta", Start: ts(t, "2026-01-05T09:00:00Z"), DurationSec: 1800},
		{ID: 3, Start: ts(t, "2026-01-05T14:00:00Z"), DurationSec: 720},
	}}
	d := newTestDispatcher(fake)

	text := mustDispatch(t, d, ToolWeekly, nil)

	want := strings.Join([]string{
		"Week 2026-01-05 to 2026-01-11",
		"Total: 1.72 hours",
		"",
		"Daily breakdown:",
		"2026-01-05: 0.7 hours",
		"  - Review (0.5h)",
		"  - (no description) (0.2h)",
		"2026-01-06: 1.02 hours",
		"  - Dev (1.02h)",
		"",
		"Project breakdown:",
		"- Alpha: 1.02 hours",
		"- Beta: 0.5 hours",
		"- No Project: 0.2 hours",
		"",
		"Entries: 3",
	}, "\n")
	if text != want {
		t.Fatalf("unexpected weekly text:\n%s\nwant:\n%s", text, want)
	}
}

func TestDispatchWeeklyOffsets(t *testing.T) {
	fake := &portstest.FakeToggl{}
	d := newTestDispatcher(fake)

	if text := mustDispatch(t, d, ToolWeekly, map[string]any{"week_offset": float64(-1)}); text != "No time entries for week 2025-12-29 to 2026-01-04" {
		t.Fatalf("unexpected text %q", text)
	}
	if text := mustDispatch(t, d, ToolLastWeek, nil); text != "No time entries for week 2025-12-29 to 2026-01-04" {
		t.Fatalf("unexpected last_week text %q", text)
	}
	if text := mustDispatch(t, d, ToolWeekly, map[string]any{}); text != "No time entries for week 2026-01-05 to 2026-01-11" {
		t.Fatalf("unexpected current week text %q", text)
	}

	te := dispatchErr(t, d, ToolWeekly, map[string]any{"week_offset": "last"})
	if te.Kind != KindValidation {
		t.Fatalf("expected validation error, got %s", te.Kind)
	}
}
