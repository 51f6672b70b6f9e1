package parser

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeDate converts a month/day/two-digit-year triple into a UTC
// midnight timestamp. Statements never reference years before 2000, so the
// two-digit year maps to 2000 + year.
//
// If the triple does not form a valid calendar date, the current wall-clock
// time is returned instead of an error. This mirrors the historical behavior
// of the web parser; malformed dates are silently masked rather than
// surfaced.
func NormalizeDate(month, day, twoDigitYear int) time.Time {
	if month < 1 || month > 12 || day < 1 || twoDigitYear < 0 || twoDigitYear > 99 {
		return time.Now().UTC()
	}

	year := 2000 + twoDigitYear
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes overflow (e.g. Apr 31 becomes May 1); reject
	// triples that do not round-trip.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Now().UTC()
	}
	return t
}

// normalizeDateText parses a "MM/DD/YY" date token from a statement line.
func normalizeDateText(text string) time.Time {
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return time.Now().UTC()
	}

	month, errM := strconv.Atoi(parts[0])
	day, errD := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errM != nil || errD != nil || errY != nil {
		return time.Now().UTC()
	}

	return NormalizeDate(month, day, year)
}
