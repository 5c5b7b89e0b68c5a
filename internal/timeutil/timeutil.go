package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateRange is an inclusive release-date window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the date falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// String renders the range in the catalog's "from,to" form.
func (r DateRange) String() string {
	return FormatDate(r.From) + "," + FormatDate(r.To)
}

// ParseDateRange parses "YYYY-MM-DD,YYYY-MM-DD" and rejects inverted ranges.
func ParseDateRange(value string) (DateRange, error) {
	parts := strings.Split(strings.TrimSpace(value), ",")
	if len(parts) != 2 {
		return DateRange{}, fmt.Errorf("date range %q: expected from,to", value)
	}
	from, err := ParseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return DateRange{}, fmt.Errorf("date range %q: %w", value, err)
	}
	to, err := ParseDate(strings.TrimSpace(parts[1]))
	if err != nil {
		return DateRange{}, fmt.Errorf("date range %q: %w", value, err)
	}
	if to.Before(from) {
		return DateRange{}, fmt.Errorf("date range %q: end before start", value)
	}
	return DateRange{From: from, To: to}, nil
}
