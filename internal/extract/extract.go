// Package extract pulls routing annotations out of free task text: due-date
// tokens, person-name tokens, and the sticky flag. It also computes
// date-derived properties (day offset, weekday, ISO week, ...) relative to
// an injected "today", so the gather engine never touches the wall clock
// directly.
package extract

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// DateTypeDue is the default date type. Only due dates may be written in
// the bare `@YYYY-MM-DD` shorthand; every other type must use the typed
// `@<type>:YYYY-MM-DD` form.
const DateTypeDue = "due"

// A date token must be followed by whitespace or end-of-string, so that
// `@2025-01-15,` does not count as a date.
const datePattern = `(\d{4}-\d{2}-\d{2}|\d{2}-\d{2}-\d{4})(?:\s|$)`

var (
	dueRe    = regexp.MustCompile(`@(?:due:)?` + datePattern)
	personRe = regexp.MustCompile(`@(\S+)`)
	stickyRe = regexp.MustCompile(`#sticky\b`)

	typedMu  sync.Mutex
	typedRes = make(map[string]*regexp.Regexp)
)

func typedDateRe(dateType string) *regexp.Regexp {
	typedMu.Lock()
	defer typedMu.Unlock()
	re, ok := typedRes[dateType]
	if !ok {
		re = regexp.MustCompile(`@` + regexp.QuoteMeta(dateType) + `:` + datePattern)
		typedRes[dateType] = re
	}
	return re
}

// Date returns the first date annotation of the given type found in text,
// normalized to YYYY-MM-DD, or "" when the text carries none. DD-MM-YYYY
// input is accepted and normalized.
func Date(text, dateType string) string {
	if dateType == "" {
		dateType = DateTypeDue
	}
	re := typedDateRe(dateType)
	if dateType == DateTypeDue {
		re = dueRe
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return normalizeDate(m[1])
}

// normalizeDate rewrites DD-MM-YYYY as YYYY-MM-DD and leaves YYYY-MM-DD
// untouched.
func normalizeDate(s string) string {
	if len(s) == 10 && s[2] == '-' && s[5] == '-' {
		return s[6:] + "-" + s[3:5] + "-" + s[:2]
	}
	return s
}

// PersonNames returns every `@token` in text, token taken verbatim after
// the `@`. A due date written as `@2025-01-15` also shows up here; callers
// that care must filter. That quirk is load-bearing for the ungathered
// fallback, which treats "has any @annotation" as routable.
func PersonNames(text string) []string {
	var names []string
	for _, m := range personRe.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}

// HasSticky reports whether text contains `#sticky` as a whole word.
// Sticky tasks are never moved by the gather engine.
func HasSticky(text string) bool {
	return stickyRe.MatchString(text)
}

// DateProperty computes a derived property of dateStr (YYYY-MM-DD)
// relative to today. Both sides are compared with time-of-day zeroed.
//
// Supported properties:
//   - day, dayoffset: signed whole-day delta (date - today)
//   - weekday:        3-letter lowercase name ("mon".."sun")
//   - weekdaynum:     1 (Monday) .. 7 (Sunday)
//   - month:          3-letter lowercase name ("jan".."dec")
//   - monthnum:       1..12
//   - week, weeknum:  ISO-8601 week number
//
// Returns (nil, false) for an unknown property or an unparseable date.
func DateProperty(property, dateStr string, today time.Time) (any, bool) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return nil, false
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	switch strings.ToLower(property) {
	case "day", "dayoffset":
		return int(date.Sub(midnight).Hours() / 24), true
	case "weekday":
		return strings.ToLower(date.Weekday().String()[:3]), true
	case "weekdaynum":
		return isoWeekdayNum(date.Weekday()), true
	case "month":
		return strings.ToLower(date.Month().String()[:3]), true
	case "monthnum":
		return int(date.Month()), true
	case "week", "weeknum":
		_, week := date.ISOWeek()
		return week, true
	}
	return nil, false
}

// isoWeekdayNum maps Go's Sunday-first weekday onto the ISO Monday=1
// numbering.
func isoWeekdayNum(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
