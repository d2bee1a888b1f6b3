// Package dateextract recovers article publication timestamps from raw HTML.
//
// Three strategies are cascaded in fixed priority order, returning on the
// first hit: a JSON-LD datePublished field (authored deliberately for search
// engines, so most reliable and cheapest to find), an
// article:published_time meta tag located by direct pattern search, and a
// structural fallback that parses the full document. Conflicting values
// across strategies are never reconciled; the first strategy to produce a
// parseable date wins.
package dateextract

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	// JSON-LD: "datePublished":"2026-02-28T11:57:00Z"
	jsonLDPattern = regexp.MustCompile(`"datePublished"\s*:\s*"([^"]+)"`)

	// Meta tag with the property/content pair in either attribute order.
	metaPattern = regexp.MustCompile(
		`property=["']article:published_time["'][^>]*content=["']([^"']+)["']` +
			`|content=["']([^"']+)["'][^>]*property=["']article:published_time["']`)
)

// Extractor extracts publication dates from HTML.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the publication timestamp found in html, or false when no
// strategy yields a parseable date. A missing date is not an error; callers
// treat it as "date unknown".
func (e *Extractor) Extract(html string) (time.Time, bool) {
	if t, ok := e.extractJSONLD(html); ok {
		return t, true
	}
	if t, ok := e.extractMetaPattern(html); ok {
		return t, true
	}
	return e.extractFromDocument(html)
}

// extractJSONLD finds a datePublished field in script-embedded structured data.
func (e *Extractor) extractJSONLD(html string) (time.Time, bool) {
	m := jsonLDPattern.FindStringSubmatch(html)
	if m == nil {
		return time.Time{}, false
	}
	return ParseDate(m[1])
}

// extractMetaPattern finds an article:published_time meta tag by direct
// pattern search, without parsing the document.
func (e *Extractor) extractMetaPattern(html string) (time.Time, bool) {
	m := metaPattern.FindStringSubmatch(html)
	if m == nil {
		return time.Time{}, false
	}
	value := m[1]
	if value == "" {
		value = m[2]
	}
	return ParseDate(value)
}

// extractFromDocument walks the parsed document tree. Costlier than the
// pattern strategies, so it runs only when they fail.
func (e *Extractor) extractFromDocument(html string) (time.Time, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return time.Time{}, false
	}

	for _, selector := range []string{
		`meta[property="article:published_time"]`,
		`meta[property="og:published_time"]`,
	} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if t, parsed := ParseDate(content); parsed {
				return t, true
			}
		}
	}

	if datetime, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if t, parsed := ParseDate(datetime); parsed {
			return t, true
		}
	}

	return time.Time{}, false
}
