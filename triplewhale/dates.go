package triplewhale

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// iso8601Layout always prints a numeric offset, "+00:00" rather than "Z".
const iso8601Layout = "2006-01-02T15:04:05-07:00"

var (
	relativeOffsetPattern = regexp.MustCompile(`^([+-]?\d+)\s*(minute|hour|day|week|month|year)s?(\s+ago)?$`)
	monthBoundaryPattern  = regexp.MustCompile(`^(first|last) day of (this|last|previous|next) month$`)
)

// formatReportDate accepts relative phrases ("today", "-7 days", "first day of last
// month", ...) resolved against now, and the loose absolute formats callers tend to
// pass ("2024-01-01", "2024-01-01 10:00", RFC 3339, ...). Inputs without an offset are
// read in loc; an explicit offset is kept as given.
func formatReportDate(field, value string, loc *time.Location, now time.Time) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrInvalidInput, field)
	}

	if relative, ok := parseRelativeDate(value, now.In(loc)); ok {
		return relative.Format(iso8601Layout), nil
	}

	parsed, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return "", fmt.Errorf("%w: %s %q: %w", ErrInvalidInput, field, value, err)
	}

	return parsed.Format(iso8601Layout), nil
}

func parseRelativeDate(value string, now time.Time) (time.Time, bool) {
	phrase := strings.Join(strings.Fields(strings.ToLower(value)), " ")

	switch phrase {
	case "now":
		return now, true
	case "today", "midnight":
		return startOfDay(now), true
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1), true
	case "tomorrow":
		return startOfDay(now).AddDate(0, 0, 1), true
	}

	if m := relativeOffsetPattern.FindStringSubmatch(phrase); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}

		if m[3] != "" {
			n = -n
		}

		return shift(now, n, m[2]), true
	}

	if m := monthBoundaryPattern.FindStringSubmatch(phrase); m != nil {
		month := now.Month()

		switch m[2] {
		case "last", "previous":
			month--
		case "next":
			month++
		}

		day := 1
		if m[1] == "last" {
			// Day 0 of the following month is the last day of month.
			month++
			day = 0
		}

		return time.Date(now.Year(), month, day,
			now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location()), true
	}

	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func shift(t time.Time, n int, unit string) time.Time {
	switch unit {
	case "minute":
		return t.Add(time.Duration(n) * time.Minute)
	case "hour":
		return t.Add(time.Duration(n) * time.Hour)
	case "week":
		return t.AddDate(0, 0, 7*n)
	case "month":
		return t.AddDate(0, n, 0)
	case "year":
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}
