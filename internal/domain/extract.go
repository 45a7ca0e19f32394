package domain

import (
	"github.com/PuerkitoBio/goquery"
)

// extractor turns one parsed page into raw candidates. Implementations never
// fail: missing data shows up as fewer candidates or empty fields.
type extractor func(doc *goquery.Document) []RawCandidate

var extractors = map[Profile]extractor{
	ProfileStructural: extractStructural,
	ProfileGeneric:    extractGeneric,
}

// Extract recovers restaurant candidates from doc using the strategy of the
// given format profile. Unknown profiles use the generic strategy. The
// returned candidates have no Year; the caller assigns it.
func Extract(doc *goquery.Document, profile Profile) []RawCandidate {
	if doc == nil {
		return nil
	}
	fn, ok := extractors[profile]
	if !ok {
		fn = extractGeneric
	}
	return fn(doc)
}
