package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/louis030195/toggl-mcp/internal/domain"
	"github.com/louis030195/toggl-mcp/internal/report"
	"github.com/louis030195/toggl-mcp/internal/usecase"
)

const noDescription = "(no description)"

func describeEntry(e domain.TimeEntry) string {
	if strings.TrimSpace(e.Description) == "" {
		return noDescription
	}
	return e.Description
}

func renderStarted(res usecase.StartResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Started timer: %s\nEntry ID: %d", describeEntry(res.Entry), res.Entry.ID)
	if res.Project != nil {
		fmt.Fprintf(&b, "\nProject: %s", res.Project.Name)
	}
	return b.String()
}

func renderStopped(e domain.TimeEntry, now time.Time) string {
	return fmt.Sprintf("Stopped timer: %s\nDuration: %s", describeEntry(e), report.FormatDuration(e.Elapsed(now)))
}

func renderCurrent(cur *domain.TimeEntry, now time.Time) string {
	if cur == nil {
		return "No timer running"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Current timer: %s\n", describeEntry(*cur))
	if cur.ProjectName != "" {
		fmt.Fprintf(&b, "Project: %s\n", cur.ProjectName)
	}
	fmt.Fprintf(&b, "Running for: %s", report.FormatDuration(cur.Elapsed(now)))
	return b.String()
}

func renderToday(entries []domain.TimeEntry, now time.Time) string {
	if len(entries) == 0 {
		return "No time entries today"
	}
	var b strings.Builder
	var total int64
	b.WriteString("Today's time entries:\n")
	for _, e := range entries {
		secs := e.Elapsed(now)
		total += secs
		fmt.Fprintf(&b, "- %s: %s", describeEntry(e), report.FormatDuration(secs))
		if e.Running() {
			b.WriteString(" (running)")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal: %s", report.FormatDuration(total))
	return b.String()
}

func renderProjects(projects []domain.Project) string {
	if len(projects) == 0 {
		return "No projects found"
	}
	var b strings.Builder
	b.WriteString("Projects:")
	for _, p := range projects {
		fmt.Fprintf(&b, "\n- %s (ID: %d)", p.Name, p.ID)
	}
	return b.String()
}

func renderDeleted(id int64) string {
	return fmt.Sprintf("Deleted time entry %d", id)
}

func renderWeekly(s domain.WeeklySummary) string {
	from, to := report.FormatDate(s.WeekStart), report.FormatDate(s.WeekEnd)
	if s.EntryCount == 0 {
		return fmt.Sprintf("No time entries for week %s to %s", from, to)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Week %s to %s\n", from, to)
	fmt.Fprintf(&b, "Total: %s hours\n", report.FormatHours(s.TotalHours))

	b.WriteString("\nDaily breakdown:\n")
	for _, day := range s.Daily {
		fmt.Fprintf(&b, "%s: %s hours\n", day.Date, report.FormatHours(day.Hours))
		for _, e := range day.Entries {
			fmt.Fprintf(&b, "  - %s (%sh)\n", describeEntry(e), report.FormatHours(report.RoundHours(absSeconds(e.DurationSec))))
		}
	}

	b.WriteString("\nProject breakdown:\n")
	for _, p := range s.Projects {
		fmt.Fprintf(&b, "- %s: %s hours\n", p.Project, report.FormatHours(p.Hours))
	}

	fmt.Fprintf(&b, "\nEntries: %d", s.EntryCount)
	return b.String()
}

func absSeconds(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
