package toggl

import (
	"time"

	"github.com/louis030195/toggl-mcp/internal/domain"
)

// rawTimeEntry mirrors the JSON from Toggl v9.
type rawTimeEntry struct {
	ID          int64      `json:"id"`
	Description *string    `json:"description"`
	ProjectID   *int64     `json:"project_id"`
	ProjectName *string    `json:"project_name"`
	WorkspaceID int64      `json:"workspace_id"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Duration    int64      `json:"duration"`
}

func (r rawTimeEntry) toDomain() domain.TimeEntry {
	e := domain.TimeEntry{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		ProjectID:   r.ProjectID,
		Start:       r.Start,
		Stop:        r.Stop,
		DurationSec: r.Duration,
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.ProjectName != nil {
		e.ProjectName = *r.ProjectName
	}
	return e
}

type rawNewTimeEntry struct {
	Description string `json:"description"`
	WorkspaceID int64  `json:"workspace_id"`
	ProjectID   *int64 `json:"project_id,omitempty"`
	Start       string `json:"start"`
	Duration    int64  `json:"duration"`
	CreatedWith string `json:"created_with"`
}

type rawProject struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
}

type rawUser struct {
	FullName           string `json:"fullname"`
	Email              string `json:"email"`
	DefaultWorkspaceID int64  `json:"default_workspace_id"`
}
