package domain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// locationRe matches "<Capitalized Words>, Texas" or "... TX" with an
	// optional comma. Group 1 is the town.
	locationRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*),?\s*(?i:texas|tx)\b`)

	// strictLocationRe is locationRe with the comma required, used on free
	// entry text where "Hill Country Texas" style phrases are common.
	strictLocationRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*),\s*(?i:texas|tx)\b`)

	// capitalizedRunRe matches the first run of one or two capitalized words.
	capitalizedRunRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)

	// rankPrefixRe matches a list number at the start of entry text: "12.", "12)", "12 ".
	rankPrefixRe = regexp.MustCompile(`^(\d+)[.)\s]+`)

	// rankMarkerRe matches "#12", "# 12" or a bare "12".
	rankMarkerRe = regexp.MustCompile(`#?\s*(\d+)`)

	firstIntRe = regexp.MustCompile(`\d+`)

	// leadingPhraseRe matches text up to the first comma or period.
	leadingPhraseRe = regexp.MustCompile(`^([^,.]+)`)
)

// Rank bounds accepted when a rank is guessed from free text.
const (
	minPlausibleRank = 1
	maxPlausibleRank = 100
)

// entry is the element under extraction plus the fields resolved so far.
// Later cascades may read fields resolved by earlier ones.
type entry struct {
	sel      *goquery.Selection
	text     string
	parts    []string
	location string
}

func newEntry(sel *goquery.Selection) *entry {
	parts := textParts(sel)
	return &entry{
		sel:   sel,
		text:  collapseSpace(strings.Join(parts, " ")),
		parts: parts,
	}
}

// resolver attempts to produce one field value for an entry.
type resolver[T any] func(e *entry) (T, bool)

// resolve runs resolvers in order and returns the first successful value.
// Later resolvers are never consulted once one succeeds.
func resolve[T any](e *entry, resolvers ...resolver[T]) (T, bool) {
	for _, r := range resolvers {
		if v, ok := r(e); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// classedText resolves to the text of the first selector match whose class
// contains one of keywords.
func classedText(selector string, keywords []string) resolver[string] {
	return func(e *entry) (string, bool) {
		el := findClassed(e.sel, selector, keywords)
		if el.Length() == 0 {
			return "", false
		}
		text := elementText(el)
		return text, text != ""
	}
}

// firstText resolves to the text of the first selector match.
func firstText(selector string) resolver[string] {
	return func(e *entry) (string, bool) {
		el := e.sel.Find(selector).First()
		if el.Length() == 0 {
			return "", false
		}
		text := elementText(el)
		return text, text != ""
	}
}

// matchLocation finds a "<Town>, Texas|TX" phrase in s.
// It returns the whole match and the town.
func matchLocation(re *regexp.Regexp, s string) (string, string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[0], strings.TrimSpace(m[1]), true
}

// findLocation matches re against each text node of e first, then against the
// joined entry text. Matching per node keeps a capitalized heading out of the
// town when the location line follows it; the joined pass still finds
// locations split across inline elements ("Lockhart, <abbr>TX</abbr>").
func findLocation(re *regexp.Regexp, e *entry) (string, string, bool) {
	for _, part := range e.parts {
		if loc, city, ok := matchLocation(re, part); ok {
			return loc, city, true
		}
	}
	return matchLocation(re, e.text)
}

// cityFromLocation is the strict city rule shared by extraction and
// normalization.
func cityFromLocation(s string) (string, bool) {
	_, city, ok := matchLocation(locationRe, s)
	return city, ok
}

// cityFromCapitalizedRun is a best-effort fallback: it takes the first
// capitalized one or two word run as the town. It can pick up person or
// business names; callers must only use it after cityFromLocation fails.
func cityFromCapitalizedRun(s string) (string, bool) {
	m := capitalizedRunRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
