package domain

import "time"

// TimeEntry represents a Toggl time entry in the domain.
type TimeEntry struct {
	ID          int64
	Description string
	WorkspaceID int64
	ProjectID   *int64
	ProjectName string // denormalized, only set when the API was asked for meta
	Start       time.Time
	Stop        *time.Time
	DurationSec int64 // Negative means running in Toggl API semantics: -(epoch seconds at start)
}

// Running reports whether the entry is still open.
func (e TimeEntry) Running() bool {
	return e.DurationSec < 0
}

// Elapsed returns the tracked seconds of the entry as of now.
// Running entries encode -(start epoch), so the live value is |duration + now|.
func (e TimeEntry) Elapsed(now time.Time) int64 {
	if !e.Running() {
		return e.DurationSec
	}
	d := e.DurationSec + now.Unix()
	if d < 0 {
		return -d
	}
	return d
}
