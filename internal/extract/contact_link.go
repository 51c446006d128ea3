package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FindContactLink scans anchor tags in document order and returns the href
// of the first one whose href or visible text contains "contact",
// case-insensitively. Returns "" when no anchor qualifies or the HTML is
// unparseable.
func FindContactLink(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if strings.Contains(strings.ToLower(href), "contact") ||
			strings.Contains(strings.ToLower(sel.Text()), "contact") {
			found = href
			return false
		}
		return true
	})
	return found
}

// ResolveContactLink makes a discovered href fetchable. Absolute http(s)
// links pass through; anything else is concatenated onto the page URL.
// Not RFC 3986 resolution: the raw href is glued onto the seed URL as-is.
func ResolveContactLink(pageURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return pageURL + href
}
