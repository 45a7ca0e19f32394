package domain

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// Keyword vocabularies for the structural profile. Matched as lowercase
// substrings of the class attribute.
var (
	containerKeywords         = []string{"restaurant", "entry", "bbq"}
	fallbackContainerKeywords = []string{"item", "card", "post"}
	titleKeywords             = []string{"title", "name", "heading"}
	locationKeywords          = []string{"location", "address", "city"}
	descriptionKeywords       = []string{"description", "content", "excerpt"}
	rankKeywords              = []string{"rank", "number"}
)

const (
	headingSelector = "h1, h2, h3, h4"

	// A container's text is only used as a description when it is long
	// enough to be prose rather than a label.
	minFallbackDescriptionLen = 100

	// Free-text rank markers are only searched near the start of an entry.
	rankSearchWindow = 50
)

var (
	structuralName = []resolver[string]{
		classedText(headingSelector, titleKeywords),
		firstText(headingSelector),
	}

	structuralLocation = []resolver[string]{
		classedText("p, div, span", locationKeywords),
		func(e *entry) (string, bool) {
			loc, _, ok := findLocation(locationRe, e)
			return loc, ok
		},
	}

	structuralCity = []resolver[string]{
		func(e *entry) (string, bool) {
			if e.location == "" {
				return "", false
			}
			return cityFromLocation(e.location)
		},
		func(e *entry) (string, bool) {
			_, city, ok := findLocation(strictLocationRe, e)
			return city, ok
		},
	}

	structuralDescription = []resolver[string]{
		func(e *entry) (string, bool) {
			text, ok := classedText("p, div", descriptionKeywords)(e)
			return truncate(text, maxDescriptionLen), ok
		},
		func(e *entry) (string, bool) {
			if runeLen(e.text) <= minFallbackDescriptionLen {
				return "", false
			}
			return truncate(e.text, maxDescriptionLen), true
		},
	}

	structuralRank = []resolver[int]{
		func(e *entry) (int, bool) {
			text, ok := classedText("span, div", rankKeywords)(e)
			if !ok {
				return 0, false
			}
			return parsePositiveInt(firstIntRe.FindString(text))
		},
		func(e *entry) (int, bool) {
			m := rankMarkerRe.FindStringSubmatch(truncate(e.text, rankSearchWindow))
			if m == nil {
				return 0, false
			}
			n, err := strconv.Atoi(m[1])
			if err != nil || n < minPlausibleRank || n > maxPlausibleRank {
				return 0, false
			}
			return n, true
		},
	}
)

// structuralContainers returns the elements hypothesized to hold one
// restaurant each, in document order.
func structuralContainers(doc *goquery.Document) *goquery.Selection {
	containers := doc.Find("article, div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classContains(s, containerKeywords)
	})
	if containers.Length() > 0 {
		return containers
	}
	return doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classContains(s, fallbackContainerKeywords)
	})
}

func extractStructural(doc *goquery.Document) []RawCandidate {
	var out []RawCandidate
	structuralContainers(doc).Each(func(_ int, s *goquery.Selection) {
		if c, ok := structuralCandidate(s); ok {
			out = append(out, c)
		}
	})
	return out
}

func structuralCandidate(s *goquery.Selection) (RawCandidate, bool) {
	e := newEntry(s)

	name, ok := resolve(e, structuralName...)
	if !ok {
		return RawCandidate{}, false
	}
	c := RawCandidate{Name: name}

	c.RawLocation, _ = resolve(e, structuralLocation...)
	e.location = c.RawLocation
	c.City, _ = resolve(e, structuralCity...)
	c.Description, _ = resolve(e, structuralDescription...)
	if rank, ok := resolve(e, structuralRank...); ok {
		c.Rank = intPtr(rank)
	}
	return c, true
}
