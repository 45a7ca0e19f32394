package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFranklinLine = "12. Franklin Barbecue, Austin, TX — legendary brisket"

func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestExtract_NilDocument(t *testing.T) {
	assert.Nil(t, Extract(nil, ProfileStructural))
	assert.Nil(t, Extract(nil, ProfileGeneric))
}

func TestExtract_UnknownProfileUsesGeneric(t *testing.T) {
	doc := parseHTML(t, "<p>"+testFranklinLine+"</p>")

	got := Extract(doc, Profile(42))

	require.Len(t, got, 1)
	assert.Equal(t, "Franklin Barbecue", got[0].Name)
}

func TestExtractStructural(t *testing.T) {
	t.Run("classed fields", func(t *testing.T) {
		doc := parseHTML(t, `
			<article class="bbq-restaurant">
				<span class="rank-badge">#3</span>
				<h2>Featured</h2>
				<h3 class="restaurant-title">Snow's BBQ</h3>
				<p class="location">Lexington, Texas</p>
				<p class="description">Tootsie Tomanetz has tended the pits since 1966.</p>
			</article>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		c := got[0]
		assert.Equal(t, "Snow's BBQ", c.Name, "class-matched title heading wins over the first heading")
		assert.Equal(t, "Lexington, Texas", c.RawLocation)
		assert.Equal(t, "Lexington", c.City)
		assert.Equal(t, "Tootsie Tomanetz has tended the pits since 1966.", c.Description)
		require.NotNil(t, c.Rank)
		assert.Equal(t, 3, *c.Rank)
		assert.Empty(t, c.Year, "year is assigned by the caller")
	})

	t.Run("generic heading when no title class", func(t *testing.T) {
		doc := parseHTML(t, `<div class="entry"><h4>Goldee's BBQ</h4><p>Fort Worth, TX</p></div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Equal(t, "Goldee's BBQ", got[0].Name)
		assert.Equal(t, "Fort Worth, TX", got[0].RawLocation)
		assert.Equal(t, "Fort Worth", got[0].City)
	})

	t.Run("location and rank from container text", func(t *testing.T) {
		doc := parseHTML(t, `
			<div class="restaurant">
				<p>No. 7</p>
				<h2 class="name">Smitty's Market</h2>
				<p>Smoking since dawn in Lockhart, TX with post oak.</p>
			</div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		c := got[0]
		assert.Equal(t, "Lockhart, TX", c.RawLocation)
		assert.Equal(t, "Lockhart", c.City)
		require.NotNil(t, c.Rank)
		assert.Equal(t, 7, *c.Rank)
		assert.Empty(t, c.Description, "short container text is not used as a description")
	})

	t.Run("implausible text rank is rejected", func(t *testing.T) {
		doc := parseHTML(t, `<div class="restaurant"><h2>Kreuz Market</h2><p>Serving since 1900 in Lockhart, TX</p></div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Nil(t, got[0].Rank)
	})

	t.Run("long container text becomes the description", func(t *testing.T) {
		prose := strings.Repeat("Post oak smoke and peppery bark. ", 20)
		doc := parseHTML(t, `<div class="restaurant"><h2>Louie Mueller Barbecue</h2><p>`+prose+`</p></div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Equal(t, maxDescriptionLen, runeLen(got[0].Description))
		assert.True(t, strings.HasPrefix(got[0].Description, "Louie Mueller Barbecue Post oak"))
	})

	t.Run("classed description is truncated", func(t *testing.T) {
		long := strings.Repeat("é", 600)
		doc := parseHTML(t, `<div class="restaurant"><h2>Cattleack</h2><p class="excerpt">`+long+`</p></div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Equal(t, maxDescriptionLen, runeLen(got[0].Description))
	})

	t.Run("city from text when location element has no state", func(t *testing.T) {
		doc := parseHTML(t, `
			<div class="restaurant">
				<h2>Truth Barbeque</h2>
				<span class="address">2521 Montrose Blvd</span>
				<p>Second location in Houston, Texas.</p>
			</div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Equal(t, "2521 Montrose Blvd", got[0].RawLocation)
		assert.Equal(t, "Houston", got[0].City)
	})

	t.Run("heading is not merged into an unclassed location line", func(t *testing.T) {
		doc := parseHTML(t, `<div class="restaurant"><h2>Franklin Barbecue</h2><p>Austin, TX</p></div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Equal(t, "Austin, TX", got[0].RawLocation)
		assert.Equal(t, "Austin", got[0].City)
	})

	t.Run("location split across inline elements", func(t *testing.T) {
		doc := parseHTML(t, `<div class="restaurant"><h2>Smitty's</h2><p>Lockhart, <abbr>TX</abbr></p></div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Equal(t, "Lockhart, TX", got[0].RawLocation)
		assert.Equal(t, "Lockhart", got[0].City)
	})

	t.Run("capitalized words in the same text node stay in the town", func(t *testing.T) {
		doc := parseHTML(t, `<div class="restaurant"><h2>Cattleack</h2><p>Visit Dallas, TX early</p></div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Equal(t, "Visit Dallas", got[0].City)
	})

	t.Run("container without heading is skipped", func(t *testing.T) {
		doc := parseHTML(t, `<div class="restaurant"><p>Lockhart, TX</p></div>`)

		assert.Empty(t, Extract(doc, ProfileStructural))
	})

	t.Run("fallback container vocabulary", func(t *testing.T) {
		doc := parseHTML(t, `
			<div class="card"><h2>Interstellar BBQ</h2><p>Austin, TX</p></div>
			<div class="sidebar"><h2>Newsletter</h2></div>`)

		got := Extract(doc, ProfileStructural)

		require.Len(t, got, 1)
		assert.Equal(t, "Interstellar BBQ", got[0].Name)
	})

	t.Run("no containers", func(t *testing.T) {
		doc := parseHTML(t, `<p>Nothing to see here.</p>`)

		assert.Empty(t, Extract(doc, ProfileStructural))
	})
}

func TestExtractGeneric(t *testing.T) {
	t.Run("numbered paragraph", func(t *testing.T) {
		doc := parseHTML(t, "<p>"+testFranklinLine+"</p>")

		got := Extract(doc, ProfileGeneric)

		require.Len(t, got, 1)
		c := got[0]
		require.NotNil(t, c.Rank)
		assert.Equal(t, 12, *c.Rank)
		assert.Equal(t, "Austin", c.City)
		assert.Equal(t, "Austin, TX", c.RawLocation)
		assert.Contains(t, c.Name, "Franklin Barbecue")
		assert.Equal(t, "Franklin Barbecue, Austin, TX — legendary brisket", c.Description)
	})

	t.Run("bold name in classed list item", func(t *testing.T) {
		doc := parseHTML(t, `
			<ul>
				<li class="list-item">3) <strong>Louie Mueller Barbecue</strong> — Taylor, TX: the cathedral of smoke</li>
				<li class="list-item">Menu</li>
			</ul>
			<p>Ignored paragraph mentioning Dallas, TX at some length.</p>`)

		got := Extract(doc, ProfileGeneric)

		require.Len(t, got, 1, "short items are noise and unclassed paragraphs are ignored")
		c := got[0]
		assert.Equal(t, "Louie Mueller Barbecue", c.Name)
		assert.Equal(t, "Taylor", c.City)
		require.NotNil(t, c.Rank)
		assert.Equal(t, 3, *c.Rank)
	})

	t.Run("bold name is not merged into the town", func(t *testing.T) {
		doc := parseHTML(t, `<li class="entry">4. <b>Goldee's Barbecue</b> Fort Worth, TX with a long line</li>`)

		got := Extract(doc, ProfileGeneric)

		require.Len(t, got, 1)
		assert.Equal(t, "Fort Worth", got[0].City)
	})

	t.Run("no location", func(t *testing.T) {
		doc := parseHTML(t, "<p>Pecan Lodge. Brisket, ribs and the Hot Mess.</p>")

		got := Extract(doc, ProfileGeneric)

		require.Len(t, got, 1)
		assert.Equal(t, "Pecan Lodge", got[0].Name)
		assert.Empty(t, got[0].City)
		assert.Empty(t, got[0].RawLocation)
		assert.Nil(t, got[0].Rank)
	})

	t.Run("caps examined elements", func(t *testing.T) {
		var b strings.Builder
		for i := 1; i <= 70; i++ {
			fmt.Fprintf(&b, "<p>%d. Joint Number %d, Austin, TX with brisket</p>", i, i)
		}
		doc := parseHTML(t, b.String())

		got := Extract(doc, ProfileGeneric)

		require.Len(t, got, maxGenericElements)
		assert.Equal(t, 60, *got[59].Rank)
	})
}

func TestExtract_NeverEmitsEmptyNames(t *testing.T) {
	pages := []string{
		`<div class="restaurant"><h2>   </h2><p>Austin, TX</p></div>`,
		`<div class="entry"><h3 class="title"></h3><h3>Valentina's Tex Mex BBQ</h3></div>`,
		`<p>, , , a line starting with commas in Austin, TX</p>`,
		`<li class="entry"><b></b>... dots first, then nothing useful</li>`,
		"<p>" + testFranklinLine + "</p>",
		`<article class="bbq"><script>var x = "<h2>Fake</h2>";</script></article>`,
	}
	for _, page := range pages {
		doc := parseHTML(t, page)
		for _, profile := range []Profile{ProfileStructural, ProfileGeneric} {
			for _, c := range Extract(doc, profile) {
				assert.NotEmpty(t, c.Name, "profile %s, page %q", profile, page)
			}
		}
	}
}

func TestProfile(t *testing.T) {
	p, ok := ParseProfile(" Structural ")
	assert.True(t, ok)
	assert.Equal(t, ProfileStructural, p)
	assert.Equal(t, "structural", p.String())

	p, ok = ParseProfile("generic")
	assert.True(t, ok)
	assert.Equal(t, "generic", p.String())

	_, ok = ParseProfile("xml")
	assert.False(t, ok)
}
