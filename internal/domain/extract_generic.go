package domain

import (
	"github.com/PuerkitoBio/goquery"
)

var listItemKeywords = []string{"list-item", "entry", "restaurant"}

const (
	// maxGenericElements caps how many elements of a sparse page are examined.
	maxGenericElements = 60

	// Elements with less text than this are navigation, captions or bylines.
	minGenericTextLen = 20
)

var genericName = []resolver[string]{
	firstText("strong, b, " + headingSelector),
	func(e *entry) (string, bool) {
		m := leadingPhraseRe.FindStringSubmatch(e.text)
		if m == nil {
			return "", false
		}
		name := collapseSpace(m[1])
		return name, name != ""
	},
}

// genericElements returns the elements examined by the generic profile:
// classed list items when the page has them, otherwise every paragraph-like block.
func genericElements(doc *goquery.Document) *goquery.Selection {
	items := doc.Find("li, div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classContains(s, listItemKeywords)
	})
	if items.Length() == 0 {
		items = doc.Find("p, div, article")
	}
	if items.Length() > maxGenericElements {
		items = items.Slice(0, maxGenericElements)
	}
	return items
}

func extractGeneric(doc *goquery.Document) []RawCandidate {
	var out []RawCandidate
	genericElements(doc).Each(func(_ int, s *goquery.Selection) {
		if c, ok := genericCandidate(s); ok {
			out = append(out, c)
		}
	})
	return out
}

func genericCandidate(s *goquery.Selection) (RawCandidate, bool) {
	e := newEntry(s)
	text := e.text
	if runeLen(text) < minGenericTextLen {
		return RawCandidate{}, false
	}

	var rank *int
	if m := rankPrefixRe.FindStringSubmatchIndex(text); m != nil {
		if n, ok := parsePositiveInt(text[m[2]:m[3]]); ok {
			rank = intPtr(n)
		}
		text = text[m[1]:]
	}

	e.text = text
	name, ok := resolve(e, genericName...)
	if !ok {
		return RawCandidate{}, false
	}

	c := RawCandidate{
		Name:        name,
		Rank:        rank,
		Description: truncate(text, maxDescriptionLen),
	}
	if loc, city, ok := findLocation(locationRe, e); ok {
		c.City = city
		c.RawLocation = loc
	}
	return c, true
}
