// Package gather is the board's classification engine: it collects gather
// rules out of column titles, routes tasks to the first matching rule's
// column, applies the ungathered fallback, and finally runs per-column
// sort directives. One call is one complete synchronous pass over the
// board.
package gather

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mdkanban/kb/internal/board"
)

// GatherRule routes tasks matching Expr into Column. Rules are ephemeral:
// collected at pass start, discarded at pass end, never persisted.
type GatherRule struct {
	Column *board.Column
	Expr   string
}

// UngatheredRule marks Column as the fallback destination for unmatched
// tasks that carry a date or person annotation. Only the first collected
// rule is ever used.
type UngatheredRule struct {
	Column *board.Column
}

var (
	// Legacy tag bodies allow expression characters, so `#gather_day=0`
	// is one tag.
	legacyTagRe = regexp.MustCompile(`#([a-zA-Z0-9_&|=><!-]+)`)
	// Query tags: ?. temporal shorthand, ?@ person/raw expression,
	// ?# hashtag.
	queryTagRe = regexp.MustCompile(`\?([.@#])(\S+)`)
)

type tagKind int

const (
	tagLegacy tagKind = iota
	tagTemporal
	tagPerson
	tagHashtag
)

type titleTag struct {
	pos  int
	kind tagKind
	body string
}

// CollectRules scans every column title, in board order, and returns the
// gather rules and ungathered fallbacks found there. Within one title,
// legacy and query tags are ordered by position; the concatenated result
// is the definitive first-match-wins priority order. Unrecognized tag
// syntax is simply absent from the output.
func CollectRules(b *board.Board) ([]GatherRule, []UngatheredRule) {
	var rules []GatherRule
	var fallbacks []UngatheredRule

	for _, col := range b.Columns {
		for _, tag := range scanTitle(col.Title) {
			switch tag.kind {
			case tagLegacy:
				if expr, ok := strings.CutPrefix(tag.body, "gather_"); ok {
					rules = append(rules, GatherRule{Column: col, Expr: expr})
				} else if tag.body == "ungathered" {
					fallbacks = append(fallbacks, UngatheredRule{Column: col})
				}
			case tagTemporal:
				rules = append(rules, GatherRule{Column: col, Expr: expandTemporal(tag.body)})
			case tagPerson:
				rules = append(rules, GatherRule{Column: col, Expr: tag.body})
			case tagHashtag:
				rules = append(rules, GatherRule{Column: col, Expr: "tag_" + tag.body})
			}
		}
	}
	return rules, fallbacks
}

// scanTitle finds every tag in a column title, left to right. A legacy
// match starting inside a query tag's span (the `#urgent` inside
// `?#urgent`) belongs to the query tag and is dropped.
func scanTitle(title string) []titleTag {
	var tags []titleTag

	type span struct{ start, end int }
	var querySpans []span

	for _, m := range queryTagRe.FindAllStringSubmatchIndex(title, -1) {
		querySpans = append(querySpans, span{m[0], m[1]})
		kind := tagTemporal
		switch title[m[2]:m[3]] {
		case "@":
			kind = tagPerson
		case "#":
			kind = tagHashtag
		}
		tags = append(tags, titleTag{pos: m[0], kind: kind, body: title[m[4]:m[5]]})
	}

	for _, m := range legacyTagRe.FindAllStringSubmatchIndex(title, -1) {
		inQuery := false
		for _, s := range querySpans {
			if m[0] >= s.start && m[0] < s.end {
				inQuery = true
				break
			}
		}
		if inQuery {
			continue
		}
		tags = append(tags, titleTag{pos: m[0], kind: tagLegacy, body: title[m[2]:m[3]]})
	}

	sort.SliceStable(tags, func(i, j int) bool { return tags[i].pos < tags[j].pos })
	return tags
}

var (
	canonicalDayRe = regexp.MustCompile(`^day[<>=!]`)
	reversedDayRe  = regexp.MustCompile(`^-?\d+[<>][a-zA-Z]+$`)
	weekShortRe    = regexp.MustCompile(`^[wW](\d+)$`)
)

// expandTemporal rewrites the `?.` shorthand into a canonical comparison
// expression. Forms that are already canonical pass through verbatim, as
// does anything the shorthand does not recognize; the compiler's
// fallthrough handles those.
func expandTemporal(expr string) string {
	switch {
	case expr == "today":
		return "day=0"
	case canonicalDayRe.MatchString(expr):
		return expr
	case reversedDayRe.MatchString(expr):
		// `3<day`: operator direction is resolved by the compiler's
		// reversed-range rule.
		return expr
	}
	if m := weekShortRe.FindStringSubmatch(expr); m != nil {
		return "week=" + m[1]
	}
	if wd := leadingWeekday(expr); wd != "" {
		return "weekday=" + wd
	}
	return expr
}

// leadingWeekday returns the lowercase 3-letter weekday when the leading
// alphabetic run of expr is a weekday name, or "" otherwise. `monday` and
// `mon` both yield `mon`; identifiers that merely start with one, like
// `monthnum`, do not match.
func leadingWeekday(expr string) string {
	end := 0
	for end < len(expr) && isLetter(expr[end]) {
		end++
	}
	word := strings.ToLower(expr[:end])
	switch word {
	case "mon", "monday", "tue", "tuesday", "wed", "wednesday",
		"thu", "thursday", "fri", "friday", "sat", "saturday", "sun", "sunday":
		return word[:3]
	}
	return ""
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
