package domain

import "time"

// DayBreakdown is the total of one calendar day plus the entries that made it.
type DayBreakdown struct {
	Date    string // YYYY-MM-DD
	Hours   float64
	Entries []TimeEntry
}

// ProjectBreakdown is the total tracked against one project name.
type ProjectBreakdown struct {
	Project string
	Hours   float64
}

// WeeklySummary is derived on every request and never stored.
type WeeklySummary struct {
	WeekStart  time.Time // Monday 00:00:00.000
	WeekEnd    time.Time // Sunday 23:59:59.999
	TotalHours float64
	Daily      []DayBreakdown     // ascending date
	Projects   []ProjectBreakdown // descending hours
	EntryCount int
	Entries    []TimeEntry
}
