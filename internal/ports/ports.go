package ports

import (
	"context"
	"time"

	"github.com/louis030195/toggl-mcp/internal/domain"
)

// TogglClient defines the remote calls the tools need from Toggl.
// Implementations must not retry or cache; every call is a fresh round trip.
type TogglClient interface {
	Me(ctx context.Context) (domain.User, error)
	CurrentTimeEntry(ctx context.Context) (*domain.TimeEntry, error)
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	StartTimeEntry(ctx context.Context, params StartParams) (domain.TimeEntry, error)
	StopTimeEntry(ctx context.Context, entryID int64) (domain.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, entryID int64) error
}

// StartParams describes a new running entry.
type StartParams struct {
	Description string
	ProjectID   *int64
	Start       time.Time
}
