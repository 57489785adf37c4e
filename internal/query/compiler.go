// Package query compiles gather rule expressions into boolean evaluators.
//
// The grammar is deliberately tiny and forgiving: top-level `|` then `&`
// splits, a `!` prefix for negation, comparison forms like `day<3`,
// `weekday=mon`, `0<day`, a `tag_<name>` hashtag leaf, and a bare person
// name as the catch-all. Nothing here ever fails: syntax the
// compiler does not recognize degrades to the person-name leaf, which
// simply does not match. Diagnostics for malformed expressions belong in a
// linting layer, not here.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mdkanban/kb/internal/extract"
)

// Evaluator decides whether one task matches a rule expression. taskText
// is the combined title and description, taskDate the extracted due date
// ("" when absent), and personNames the extracted @tokens.
type Evaluator func(taskText, taskDate string, personNames []string) bool

var (
	// 0<day, -2>day: numeral first, bare alphabetic property second.
	reversedRangeRe = regexp.MustCompile(`^(-?\d+)([<>])([a-zA-Z]+)$`)
	// day<3, weekday=mon, alice=1.
	comparisonRe = regexp.MustCompile(`^([\w-]+)([<>=])(.+)$`)
)

// dateProperties are the comparison properties that require an extractable
// due date. Everything else is treated as a person name.
var dateProperties = map[string]bool{
	"dayoffset":  true,
	"day":        true,
	"weekday":    true,
	"weekdaynum": true,
	"month":      true,
	"monthnum":   true,
	"week":       true,
	"weeknum":    true,
}

// Compile turns one rule expression into an Evaluator. It is pure: the
// same expression always compiles to an equivalent evaluator, and
// compilation itself never fails.
func Compile(expr string, clock extract.Clock) Evaluator {
	if clock == nil {
		clock = extract.SystemClock{}
	}

	if parts := splitTopLevel(expr, '|'); len(parts) > 1 {
		subs := compileAll(parts, clock)
		return func(text, date string, persons []string) bool {
			for _, sub := range subs {
				if sub(text, date, persons) {
					return true
				}
			}
			return false
		}
	}

	if parts := splitTopLevel(expr, '&'); len(parts) > 1 {
		subs := compileAll(parts, clock)
		return func(text, date string, persons []string) bool {
			for _, sub := range subs {
				if !sub(text, date, persons) {
					return false
				}
			}
			return true
		}
	}

	if strings.HasPrefix(expr, "!") {
		inner := Compile(expr[1:], clock)
		return func(text, date string, persons []string) bool {
			return !inner(text, date, persons)
		}
	}

	if i := strings.Index(expr, "!="); i >= 0 {
		return compileComparison(expr[:i], "!=", expr[i+2:], clock)
	}

	// The reversed range must be tried before the generic comparison:
	// both patterns accept `0<day`, and the generic reading would take
	// the numeral for a property name.
	if m := reversedRangeRe.FindStringSubmatch(expr); m != nil {
		return compileComparison(m[3], flipOperator(m[2]), m[1], clock)
	}

	if m := comparisonRe.FindStringSubmatch(expr); m != nil {
		return compileComparison(m[1], m[2], m[3], clock)
	}

	if name, ok := strings.CutPrefix(expr, "tag_"); ok {
		return hashtagLeaf(name)
	}

	return personLeaf(expr)
}

func compileAll(parts []string, clock extract.Clock) []Evaluator {
	subs := make([]Evaluator, len(parts))
	for i, part := range parts {
		subs[i] = Compile(part, clock)
	}
	return subs
}

// splitTopLevel splits expr on sep outside parentheses. It is a naive
// character scan: no quoting, no escaping of literal separators in values.
func splitTopLevel(expr string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, expr[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, expr[start:])
}

func flipOperator(op string) string {
	switch op {
	case "<":
		return ">"
	case ">":
		return "<"
	}
	return op
}

func compileComparison(property, op, value string, clock extract.Clock) Evaluator {
	prop := strings.ToLower(property)
	if dateProperties[prop] {
		return dateComparison(prop, op, value, clock)
	}
	return personComparison(prop, op, value)
}

// dateComparison compares a date-derived property of the task's due date.
// A task without an extractable due date never matches.
func dateComparison(prop, op, value string, clock extract.Clock) Evaluator {
	return func(text, date string, persons []string) bool {
		if date == "" {
			return false
		}
		today := clock.Today()

		switch prop {
		case "weekday":
			if isWeekdayName(value) {
				name, ok := extract.DateProperty("weekday", date, today)
				if !ok {
					return false
				}
				switch op {
				case "=":
					return name == strings.ToLower(value)
				case "!=":
					return name != strings.ToLower(value)
				}
				// Range operators over weekday names are not defined.
				return false
			}
			// Numeric value: compare the ISO weekday position instead.
			num, ok := extract.DateProperty("weekdaynum", date, today)
			if !ok {
				return false
			}
			return compareAgainst(num.(int), op, value)

		case "month":
			if idx, ok := monthIndex(value); ok {
				num, ok2 := extract.DateProperty("monthnum", date, today)
				if !ok2 {
					return false
				}
				return compareInts(num.(int), op, idx)
			}
		}

		got, ok := extract.DateProperty(prop, date, today)
		if !ok {
			return false
		}
		num, ok := got.(int)
		if !ok {
			return false
		}
		return compareAgainst(num, op, value)
	}
}

// personComparison treats the property as a person name and the comparison
// as a presence test: `alice=1` means alice is assigned, `alice=0` means
// she is not.
func personComparison(prop, op, value string) Evaluator {
	return func(text, date string, persons []string) bool {
		has := false
		for _, p := range persons {
			if strings.EqualFold(p, prop) {
				has = true
				break
			}
		}
		truthy := value == "1" || strings.EqualFold(value, "true")
		switch op {
		case "=":
			if truthy {
				return has
			}
			return !has
		case "!=":
			if truthy {
				return !has
			}
			return has
		}
		return has
	}
}

// hashtagLeaf matches `#<name>` as a whole word, case-insensitively, in
// the task text.
func hashtagLeaf(name string) Evaluator {
	re, err := regexp.Compile(`(?i)#` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return func(string, string, []string) bool { return false }
	}
	return func(text, date string, persons []string) bool {
		return re.MatchString(text)
	}
}

// personLeaf is the catch-all: the expression is a bare person name,
// matched case-insensitively against the extracted @tokens.
func personLeaf(name string) Evaluator {
	return func(text, date string, persons []string) bool {
		for _, p := range persons {
			if strings.EqualFold(p, name) {
				return true
			}
		}
		return false
	}
}

// compareAgainst parses the leading integer out of value and compares.
// A value with no leading integer never matches.
func compareAgainst(got int, op, value string) bool {
	want, ok := parseLeadingInt(value)
	if !ok {
		return false
	}
	return compareInts(got, op, want)
}

func compareInts(got int, op string, want int) bool {
	switch op {
	case "=":
		return got == want
	case "!=":
		return got != want
	case "<":
		return got < want
	case ">":
		return got > want
	}
	return false
}

// parseLeadingInt reads an optionally signed integer prefix, the way a
// lenient numeric coercion would: "17th" parses as 17, "abc" does not
// parse.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return n, true
}

var weekdayNames = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

func isWeekdayName(s string) bool {
	return weekdayNames[strings.ToLower(s)]
}

var monthNames = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// monthIndex maps a 3-letter month name to 1..12.
func monthIndex(s string) (int, bool) {
	lower := strings.ToLower(s)
	for i, name := range monthNames {
		if name == lower {
			return i + 1, true
		}
	}
	return 0, false
}
