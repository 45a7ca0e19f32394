package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxDescriptionLen bounds descriptions, counted in characters.
const maxDescriptionLen = 500

var whitespaceRe = regexp.MustCompile(`\s+`)

// collapseSpace trims s and folds inner whitespace runs into single spaces.
func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// elementText returns the visible text below sel: each text node trimmed,
// non-empty pieces joined by a single space. Script and style content is skipped.
func elementText(sel *goquery.Selection) string {
	return collapseSpace(strings.Join(textParts(sel), " "))
}

// textParts returns the trimmed, non-empty text nodes below sel in document order.
func textParts(sel *goquery.Selection) []string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return parts
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// runeLen counts characters rather than bytes so "é" and "—" count once.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// classContains reports whether sel's class attribute contains any keyword,
// ignoring case. Keywords must be lowercase.
func classContains(sel *goquery.Selection, keywords []string) bool {
	class, ok := sel.Attr("class")
	if !ok || class == "" {
		return false
	}
	class = strings.ToLower(class)
	for _, kw := range keywords {
		if strings.Contains(class, kw) {
			return true
		}
	}
	return false
}

// findClassed returns the first element below root matching selector whose
// class contains one of keywords, or an empty selection.
func findClassed(root *goquery.Selection, selector string, keywords []string) *goquery.Selection {
	return root.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classContains(s, keywords)
	}).First()
}
