package util

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts seen on scraped experience and education entries.
var profileDateLayouts = []string{
	"Jan 2006",
	"January 2006",
	"01/2006",
	"1/2006",
	"2006",
}

// ParseProfileDate parses a date string as it appears on a profile
// ("Mar 2025", "March 2025", "03/2025", "2025"). Bare years resolve
// to January of that year.
func ParseProfileDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, layout := range profileDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// IsPresentDate reports whether a range end marks an ongoing position
func IsPresentDate(s string) bool {
	switch Normalize(s) {
	case "", "present", "current", "now", "today":
		return true
	}
	return false
}

// MonthsBetween returns the whole months from start to end, minimum 1
// for any non-inverted range. Profiles count partial months as one.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	return Max(months, 1)
}

// FormatTenure renders a month count the way profiles do ("2 yrs 3 mos")
func FormatTenure(months int) string {
	if months <= 0 {
		return "less than a month"
	}

	years := months / 12
	rem := months % 12

	var parts []string
	if years == 1 {
		parts = append(parts, "1 yr")
	} else if years > 1 {
		parts = append(parts, fmt.Sprintf("%d yrs", years))
	}
	if rem == 1 {
		parts = append(parts, "1 mo")
	} else if rem > 1 {
		parts = append(parts, fmt.Sprintf("%d mos", rem))
	}

	return strings.Join(parts, " ")
}

// WithinYears reports whether t falls within the past n years of now
func WithinYears(t time.Time, n int, now time.Time) bool {
	if t.After(now) {
		return true
	}
	return t.After(now.AddDate(-n, 0, 0))
}
