package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BodyFunc pulls the readable article body out of a parsed document.
type BodyFunc func(doc *goquery.Document) string

// bodyHandler associates a URL fragment with the extractor that knows
// that publisher's markup.
type bodyHandler struct {
	urlContains string
	extract     BodyFunc
}

// bodyHandlers is checked in order; the first fragment contained in the
// URL wins, otherwise the generic extractor runs. Registering a new
// publisher means appending a row here, not growing a conditional.
var bodyHandlers = []bodyHandler{
	{"afl.com.au", extractAFLBody},
	{"foxsports.com.au", selectorBody("div[class*='story-body']")},
	{"sen.com.au", selectorBody("div[class*='content-body']", "article")},
	{"heraldsun.com.au", newsCorpBody},
	{"theage.com.au", newsCorpBody},
	{"abc.net.au", selectorBody("div[class*='article-text']", "div[data-component='BodyBlock']", "article")},
}

// ExtractBody returns the readable text of an article page. Club and
// league sites share the AFL digital platform and get a dedicated
// extractor; other known publishers get theirs; everything else falls to
// a generic heuristic.
func ExtractBody(html, url string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, h := range bodyHandlers {
		if strings.Contains(url, h.urlContains) {
			return h.extract(doc)
		}
	}
	return extractGenericBody(doc)
}

// siteSuffix strips a trailing " | Site Name" or " - Site Name" from a
// page title.
var siteSuffix = regexp.MustCompile(`\s*[|\x{2013}\x{2014}-]\s*[^|\x{2013}\x{2014}-]+$`)

// ExtractTitle returns the article headline: og:title when present,
// otherwise the <title> tag with any site-name suffix removed.
func ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(siteSuffix.ReplaceAllString(title, ""))
}

// extractAFLBody handles afl.com.au and the club sites, which all run
// the same platform and wrap copy in an article-body div.
func extractAFLBody(doc *goquery.Document) string {
	if text := nodeText(doc.Find("div[class*='article-body']").First()); text != "" {
		return text
	}
	return nodeText(doc.Find("article").First())
}

func newsCorpBody(doc *goquery.Document) string {
	for _, sel := range []string{"div[class*='story_body']", "div[class*='article__body']"} {
		if text := nodeText(doc.Find(sel).First()); text != "" {
			return text
		}
	}
	return extractGenericBody(doc)
}

// selectorBody builds an extractor that tries each selector in turn.
func selectorBody(selectors ...string) BodyFunc {
	return func(doc *goquery.Document) string {
		for _, sel := range selectors {
			if text := nodeText(doc.Find(sel).First()); text != "" {
				return text
			}
		}
		return extractGenericBody(doc)
	}
}

// extractGenericBody tries the markup conventions most news CMSes share,
// then falls back to concatenating paragraph text.
func extractGenericBody(doc *goquery.Document) string {
	selectors := []string{
		"article",
		"div[class*='article-body']", "div[class*='post-body']",
		"div[class*='content-body']", "div[class*='story-body']",
		"div[class*='entry-content']", "div[class*='post-content']",
		"div[class*='article-content']",
	}
	for _, sel := range selectors {
		if text := nodeText(doc.Find(sel).First()); len(text) > 200 {
			return text
		}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

// nodeText flattens a selection to whitespace-normalized text, skipping
// script and style content.
func nodeText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	clone := s.Clone()
	clone.Find("script, style").Remove()
	return strings.Join(strings.Fields(clone.Text()), " ")
}
