// Package report turns raw time entries into day and project totals.
package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/louis030195/toggl-mcp/internal/domain"
)

// NoProject is the project key for entries without a project.
const NoProject = "No Project"

const dateLayout = "2006-01-02"

// WeekBounds returns Monday 00:00:00.000 and Sunday 23:59:59.999 of the week
// offset weeks away from the week containing now, in now's location.
func WeekBounds(now time.Time, offset int) (time.Time, time.Time) {
	var diff int
	if wd := int(now.Weekday()); wd == 0 {
		diff = -6
	} else {
		diff = 1 - wd
	}
	y, m, d := now.Date()
	monday := time.Date(y, m, d+diff+7*offset, 0, 0, 0, 0, now.Location())
	sunday := time.Date(monday.Year(), monday.Month(), monday.Day()+6, 23, 59, 59, int(999*time.Millisecond), now.Location())
	return monday, sunday
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Summarize buckets entries by day and by project. Durations are taken as
// absolute seconds; entries without a start are counted in the total and
// project buckets but not in any day.
func Summarize(entries []domain.TimeEntry, weekStart, weekEnd time.Time) domain.WeeklySummary {
	var total int64
	daySeconds := make(map[string]int64)
	dayEntries := make(map[string][]domain.TimeEntry)
	projectSeconds := make(map[string]int64)
	var projectOrder []string

	for _, e := range entries {
		secs := abs(e.DurationSec)
		total += secs

		if !e.Start.IsZero() {
			day := e.Start.Format(dateLayout)
			daySeconds[day] += secs
			dayEntries[day] = append(dayEntries[day], e)
		}

		project := e.ProjectName
		if project == "" {
			project = NoProject
		}
		if _, ok := projectSeconds[project]; !ok {
			projectOrder = append(projectOrder, project)
		}
		projectSeconds[project] += secs
	}

	days := make([]string, 0, len(daySeconds))
	for day := range daySeconds {
		days = append(days, day)
	}
	sort.Strings(days)

	daily := make([]domain.DayBreakdown, 0, len(days))
	for _, day := range days {
		daily = append(daily, domain.DayBreakdown{
			Date:    day,
			Hours:   RoundHours(daySeconds[day]),
			Entries: dayEntries[day],
		})
	}

	// Ties keep first-seen order.
	sort.SliceStable(projectOrder, func(i, j int) bool {
		return projectSeconds[projectOrder[i]] > projectSeconds[projectOrder[j]]
	})
	projects := make([]domain.ProjectBreakdown, 0, len(projectOrder))
	for _, p := range projectOrder {
		projects = append(projects, domain.ProjectBreakdown{Project: p, Hours: RoundHours(projectSeconds[p])})
	}

	return domain.WeeklySummary{
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		TotalHours: RoundHours(total),
		Daily:      daily,
		Projects:   projects,
		EntryCount: len(entries),
		Entries:    entries,
	}
}

// RoundHours converts seconds to hours rounded half away from zero to two
// decimals.
func RoundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

// FormatHours renders hours in shortest form: 1.02, 0.5, 3.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// FormatDuration renders seconds as "{h}h {m}m", flooring both parts.
func FormatDuration(seconds int64) string {
	seconds = abs(seconds)
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

// FormatDate renders the date part of t.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
