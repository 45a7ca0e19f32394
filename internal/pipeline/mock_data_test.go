package pipeline_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/citytable"
	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

const (
	url2021 = "https://lists.example.com/top-50-bbq-2021/"
	url2017 = "https://lists.example.com/top-50-barbecue-joints-2017/"
)

// structuralPage mimics a recent list with class-annotated entry cards.
const structuralPage = `<html><body>
<header><h1>The Top 50 Barbecue Joints</h1></header>
<article class="bbq-restaurant">
	<span class="rank">1</span>
	<h3 class="restaurant-title">Goldee's Barbecue</h3>
	<p class="location">Fort Worth, Texas</p>
	<p class="description">Five young pitmasters took the top spot.</p>
</article>
<article class="bbq-restaurant">
	<span class="rank">2</span>
	<h3 class="restaurant-title">Franklin Barbecue</h3>
	<p class="location">Austin, Texas</p>
</article>
<article class="bbq-restaurant">
	<span class="rank">3</span>
	<h3 class="restaurant-title">Snow's BBQ</h3>
	<p class="location">Lexington, Texas</p>
</article>
</body></html>`

// genericPage mimics an older numbered list.
const genericPage = `<html><body><ol>
<li class="list-item">1. <strong>Franklin Barbecue</strong> — Austin, TX: brisket worth the line</li>
<li class="list-item">2. <strong>Snow's BBQ</strong> — Lexington, TX: Saturday mornings only</li>
<li class="list-item"><strong>Mystery Smokehouse</strong> — somewhere in the hill country</li>
</ol></body></html>`

func testSources() []domain.Source {
	return []domain.Source{
		{Year: "2021", URL: url2021, Profile: domain.ProfileStructural},
		{Year: "2017", URL: url2017, Profile: domain.ProfileGeneric},
	}
}

// fakeFetcher serves fixture pages by URL. URLs without a page fail.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{pages: pages}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, url)
	page, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("fetch %s: unexpected HTTP status: 503", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testCityTable(t *testing.T) *citytable.Table {
	t.Helper()
	table, err := citytable.Default()
	require.NoError(t, err)
	return table
}
