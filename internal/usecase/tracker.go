package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/louis030195/toggl-mcp/internal/domain"
	"github.com/louis030195/toggl-mcp/internal/ports"
	"github.com/louis030195/toggl-mcp/internal/report"
)

// ErrNoRunningTimer is returned by Stop when nothing is running.
var ErrNoRunningTimer = errors.New("no timer is currently running")

// Tracker coordinates the Toggl calls behind each tool.
type Tracker struct {
	Log   *slog.Logger
	Toggl ports.TogglClient
	// Now defaults to time.Now; week and day windows use its location.
	Now func() time.Time
}

// StartResult is a freshly started entry and the project it was filed
// under, if the requested name matched one.
type StartResult struct {
	Entry   domain.TimeEntry
	Project *domain.Project
}

// Clock returns the current time as the tracker sees it.
func (uc *Tracker) Clock() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *Tracker) check() error {
	if uc.Toggl == nil {
		return errors.New("usecase not initialized: missing toggl client")
	}
	if uc.Log == nil {
		uc.Log = slog.Default()
	}
	return nil
}

// Start begins a timer. An unknown project name is ignored.
func (uc *Tracker) Start(ctx context.Context, description, projectName string) (StartResult, error) {
	if err := uc.check(); err != nil {
		return StartResult{}, err
	}
	var project *domain.Project
	if projectName != "" {
		projects, err := uc.Toggl.ListProjects(ctx)
		if err != nil {
			return StartResult{}, err
		}
		project = findProject(projects, projectName)
		if project == nil {
			uc.Log.Debug("project not found, starting without project", slog.String("project", projectName))
		}
	}

	params := ports.StartParams{Description: description, Start: uc.Clock()}
	if project != nil {
		id := project.ID
		params.ProjectID = &id
	}
	entry, err := uc.Toggl.StartTimeEntry(ctx, params)
	if err != nil {
		return StartResult{}, err
	}
	uc.Log.Info("timer started", slog.Int64("entry_id", entry.ID))
	return StartResult{Entry: entry, Project: project}, nil
}

// Stop stops the running timer and returns the stopped entry.
func (uc *Tracker) Stop(ctx context.Context) (domain.TimeEntry, error) {
	if err := uc.check(); err != nil {
		return domain.TimeEntry{}, err
	}
	current, err := uc.Toggl.CurrentTimeEntry(ctx)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	if current == nil {
		return domain.TimeEntry{}, ErrNoRunningTimer
	}
	stopped, err := uc.Toggl.StopTimeEntry(ctx, current.ID)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	uc.Log.Info("timer stopped", slog.Int64("entry_id", stopped.ID), slog.Int64("duration_sec", stopped.DurationSec))
	return stopped, nil
}

// Current returns the running entry or nil.
func (uc *Tracker) Current(ctx context.Context) (*domain.TimeEntry, error) {
	if err := uc.check(); err != nil {
		return nil, err
	}
	return uc.Toggl.CurrentTimeEntry(ctx)
}

// Today lists entries from local midnight until now.
func (uc *Tracker) Today(ctx context.Context) ([]domain.TimeEntry, error) {
	if err := uc.check(); err != nil {
		return nil, err
	}
	now := uc.Clock()
	return uc.Toggl.ListTimeEntries(ctx, report.StartOfDay(now), now)
}

// Projects lists the projects of the resolved workspace.
func (uc *Tracker) Projects(ctx context.Context) ([]domain.Project, error) {
	if err := uc.check(); err != nil {
		return nil, err
	}
	return uc.Toggl.ListProjects(ctx)
}

// Delete removes an entry; a missing id fails remotely, not here.
func (uc *Tracker) Delete(ctx context.Context, entryID int64) error {
	if err := uc.check(); err != nil {
		return err
	}
	if err := uc.Toggl.DeleteTimeEntry(ctx, entryID); err != nil {
		return err
	}
	uc.Log.Info("time entry deleted", slog.Int64("entry_id", entryID))
	return nil
}

// Weekly summarizes the week offset weeks away from the current one.
func (uc *Tracker) Weekly(ctx context.Context, offset int) (domain.WeeklySummary, error) {
	if err := uc.check(); err != nil {
		return domain.WeeklySummary{}, err
	}
	monday, sunday := report.WeekBounds(uc.Clock(), offset)
	uc.Log.Debug("fetching week", slog.Time("from", monday), slog.Time("to", sunday))

	entries, err := uc.Toggl.ListTimeEntries(ctx, monday, sunday)
	if err != nil {
		return domain.WeeklySummary{}, err
	}
	return report.Summarize(entries, monday, sunday), nil
}

func findProject(projects []domain.Project, name string) *domain.Project {
	for i := range projects {
		if strings.EqualFold(projects[i].Name, name) {
			return &projects[i]
		}
	}
	return nil
}
