// Package domain models Texas Monthly "Top 50 BBQ" list entries and the
// rules that turn loosely-marked list pages into a clean restaurant table.
//
// # Data Source
//
// Texas Monthly publishes its barbecue ranking every four or five years. Each
// edition lives on a different page template:
//
//	2021  interactive list, one <article>/<div> per restaurant with classed
//	      title, location, description and rank elements (structural profile)
//	2017  long-form article, entries as numbered paragraphs or list items
//	2013  same as 2017 (generic profile)
//
// Neither template is guaranteed. Extraction is best effort and never fails a
// page: a field that cannot be found is left empty.
//
// # Field Cascades
//
// Every field is resolved by an ordered list of resolvers, most specific first:
//
//	classed element  ->  pattern over entry text  ->  absent
//
// Resolution stops at the first resolver that succeeds. See [resolve].
//
// # Location Conventions
//
// Locations are written "<Town>, Texas" or "<Town>, TX", e.g. "Lockhart, TX"
// or "Fort Worth, Texas". The town is a run of capitalized words directly
// before the state token; the comma is optional when matching classed location
// text and required when scanning free entry text. Free text is scanned one
// text node at a time before the joined entry text, so a heading such as
// "Franklin Barbecue" followed by a "<p>Austin, TX</p>" line yields "Austin".
// Capitalized words in the same text node as the town are still read as part
// of it. Towns spelled with inner capitals ("McAllen") are not recognized by
// this pattern.
//
// # Restaurant Key
//
//	lower(name) + "_" + lower(city or "unknown")
//
// The key identifies a restaurant across editions. It is not a dedup key for
// the table: a restaurant appears once per edition that ranked it. Exact
// (name, city, year) duplicates are removed by [Dedupe] in the cleaning pass.
package domain
