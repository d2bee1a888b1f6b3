package extraction

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyedge/newsscout/pkg/pagecache"
)

func TestBuildPromptEmbedsPageMetadata(t *testing.T) {
	published := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	page := &pagecache.Page{
		ID:          42,
		URL:         "https://www.afl.com.au/news/injury-update",
		SourceName:  "AFL.com.au",
		PublishedAt: &published,
	}

	prompt, err := BuildPrompt(page, "Injury update: round 24", "Petracca trained fully on Tuesday.", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, prompt, `"article_id": "42"`)
	assert.Contains(t, prompt, `"article_date": "2026-08-28"`)
	assert.Contains(t, prompt, "HEADLINE: Injury update: round 24")
	assert.Contains(t, prompt, "SOURCE TIER (already determined): official (official source: true)")
	assert.Contains(t, prompt, "Petracca trained fully on Tuesday.")
}

func TestBuildPromptTruncatesLongArticles(t *testing.T) {
	page := &pagecache.Page{ID: 1, URL: "https://example.com/a", SourceName: "Example"}
	long := strings.Repeat("x", maxArticleChars+5000)

	prompt, err := BuildPrompt(page, "", long, time.Now())
	require.NoError(t, err)

	assert.Contains(t, prompt, strings.Repeat("x", maxArticleChars))
	assert.NotContains(t, prompt, strings.Repeat("x", maxArticleChars+1))
}

func TestBuildPromptUnknownDateLeftEmpty(t *testing.T) {
	page := &pagecache.Page{ID: 7, URL: "https://example.com/b", SourceName: "Example"}

	prompt, err := BuildPrompt(page, "", "Some article body.", time.Now())
	require.NoError(t, err)

	assert.Contains(t, prompt, `"article_date": ""`)
	assert.Contains(t, prompt, "SOURCE TIER (already determined): other (official source: false)")
}
