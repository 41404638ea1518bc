package timeutil

import (
	"sort"
	"strings"
	"time"
)

const dayFormat = "2006-01-02"

// WeekStart returns the Monday 00:00 UTC of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	wd := int(day.Weekday())
	if wd == 0 { // Sunday
		wd = 7
	}
	return day.AddDate(0, 0, -(wd - 1))
}

// WeekKey normalizes a date string to its Monday-aligned week key. Inputs that
// do not parse as YYYY-MM-DD are returned trimmed but otherwise untouched.
func WeekKey(date string) string {
	date = strings.TrimSpace(date)
	t, err := time.Parse(dayFormat, date)
	if err != nil {
		return date
	}
	return WeekStart(t).Format(dayFormat)
}

// MonthKey truncates a week key to its YYYY-MM prefix.
func MonthKey(week string) string {
	if len(week) < 7 {
		return week
	}
	return week[:7]
}

// CollectWeeks returns the sorted distinct union of all non-empty week keys.
func CollectWeeks(weekSets ...[]string) []string {
	seen := make(map[string]struct{})
	for _, ws := range weekSets {
		for _, w := range ws {
			if w == "" {
				continue
			}
			seen[w] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Months returns the sorted distinct month prefixes of the given week keys.
func Months(weeks []string) []string {
	seen := make(map[string]struct{})
	for _, w := range weeks {
		seen[MonthKey(w)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
