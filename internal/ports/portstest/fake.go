// Package portstest provides an in-memory ports.TogglClient for tests.
package portstest

import (
	"context"
	"sync"
	"time"

	"github.com/louis030195/toggl-mcp/internal/domain"
	"github.com/louis030195/toggl-mcp/internal/ports"
)

// FakeToggl records calls and serves canned data. A non-nil Err is returned
// from every method.
type FakeToggl struct {
	mu sync.Mutex

	Current  *domain.TimeEntry
	Entries  []domain.TimeEntry
	Projects []domain.Project
	Err      error
	NextID   int64
	// StopDuration is the duration StopTimeEntry reports for the stopped entry.
	StopDuration int64

	Calls   []string
	Started []ports.StartParams
	Stopped []int64
	Deleted []int64
	Windows [][2]time.Time
}

var _ ports.TogglClient = (*FakeToggl)(nil)

func (f *FakeToggl) record(call string) {
	f.Calls = append(f.Calls, call)
}

// Called reports whether a method was invoked.
func (f *FakeToggl) Called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *FakeToggl) Me(ctx context.Context) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Me")
	if f.Err != nil {
		return domain.User{}, f.Err
	}
	return domain.User{FullName: "Test User", DefaultWorkspaceID: 1}, nil
}

func (f *FakeToggl) CurrentTimeEntry(ctx context.Context) (*domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CurrentTimeEntry")
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Current, nil
}

func (f *FakeToggl) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListTimeEntries")
	f.Windows = append(f.Windows, [2]time.Time{from, to})
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Entries, nil
}

func (f *FakeToggl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListProjects")
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Projects, nil
}

func (f *FakeToggl) StartTimeEntry(ctx context.Context, params ports.StartParams) (domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("StartTimeEntry")
	if f.Err != nil {
		return domain.TimeEntry{}, f.Err
	}
	f.Started = append(f.Started, params)
	f.NextID++
	e := domain.TimeEntry{
		ID:          f.NextID,
		Description: params.Description,
		WorkspaceID: 1,
		ProjectID:   params.ProjectID,
		Start:       params.Start,
		DurationSec: -params.Start.Unix(),
	}
	f.Current = &e
	return e, nil
}

func (f *FakeToggl) StopTimeEntry(ctx context.Context, entryID int64) (domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("StopTimeEntry")
	if f.Err != nil {
		return domain.TimeEntry{}, f.Err
	}
	f.Stopped = append(f.Stopped, entryID)
	var e domain.TimeEntry
	if f.Current != nil && f.Current.ID == entryID {
		e = *f.Current
		f.Current = nil
	} else {
		e = domain.TimeEntry{ID: entryID}
	}
	e.DurationSec = f.StopDuration
	return e, nil
}

func (f *FakeToggl) DeleteTimeEntry(ctx context.Context, entryID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteTimeEntry")
	if f.Err != nil {
		return f.Err
	}
	f.Deleted = append(f.Deleted, entryID)
	return nil
}
