package extraction

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/fantasyedge/newsscout/pkg/mentions"
	"github.com/fantasyedge/newsscout/pkg/pagecache"
)

// maxArticleChars bounds the article text placed in the prompt so a
// long feature piece cannot blow the model's context window.
const maxArticleChars = 12000

const promptText = `You are an AFL news analyst extracting player intelligence for fantasy competitions.

Read the ARTICLE and extract every FANTASY-RELEVANT player mention. Output a JSON object:

{
  "article_id": "{{.ArticleID}}",
  "source": "{{.SourceName}}",
  "source_url": "{{.SourceURL}}",
  "article_date": "{{.ArticleDate}}",
  "ingest_timestamp": "{{.IngestTimestamp}}",
  "mentions": [
    {
      "player": "Full Name",
      "team": "Team Name",
      "match_snippet": "Exact sentence/phrase that triggered match",
      "signal": "injury|selection|form|role|contract",
      "signal_strength": 0.0,
      "summary": "One sentence - what happened",
      "availability": 0.0,
      "action": "start|bench|monitor|no_action",
      "sentiment": "positive|negative|neutral",
      "confidence": 0.0,
      "quote": "Key quote if any"
    }
  ],
  "errors": []
}

AVAILABILITY SCALE:
- 0.0 = Ruled out, season over, delisted
- 0.2 = Likely out 4+ weeks, surgery required
- 0.4 = Out 1-3 weeks, injury concern
- 0.6 = Test/doubt, may play reduced minutes
- 0.8 = Available but managing load, slight concern
- 1.0 = Fully fit, no concerns

HEADLINE: {{.Title}}

SOURCE TIER (already determined): {{.SourceTier}} (official source: {{.IsOfficial}})

RULES:
1. Only include players with fantasy-relevant signals. Skip generic mentions.
2. Set signal_strength >= 0.9 if the source is official or the headline contains the signal.
3. Use confidence to reflect extraction ambiguity (< 0.6 = needs review).
4. For injuries, include injury details in summary.
5. match_snippet must be the EXACT text from the article.

ARTICLE:
{{.ArticleText}}

Output ONLY valid JSON, no markdown, no explanation.`

var promptTemplate = template.Must(template.New("extraction").Parse(promptText))

type promptData struct {
	ArticleID       string
	SourceName      string
	SourceURL       string
	ArticleDate     string
	IngestTimestamp string
	Title           string
	SourceTier      mentions.SourceTier
	IsOfficial      bool
	ArticleText     string
}

// BuildPrompt renders the extraction prompt for one cached page. The
// article text is truncated to a fixed length; metadata fields come from
// the page row so the model echoes them back in its envelope.
func BuildPrompt(page *pagecache.Page, title, articleText string, now time.Time) (string, error) {
	tier, isOfficial := SourceTierFor(page.SourceName, page.URL)

	articleDate := ""
	if page.PublishedAt != nil {
		articleDate = page.PublishedAt.UTC().Format("2006-01-02")
	}
	if len(articleText) > maxArticleChars {
		articleText = articleText[:maxArticleChars]
	}

	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, promptData{
		ArticleID:       fmt.Sprintf("%d", page.ID),
		SourceName:      page.SourceName,
		SourceURL:       page.URL,
		ArticleDate:     articleDate,
		IngestTimestamp: now.UTC().Format(time.RFC3339),
		Title:           title,
		SourceTier:      tier,
		IsOfficial:      isOfficial,
		ArticleText:     articleText,
	})
	if err != nil {
		return "", fmt.Errorf("rendering extraction prompt: %w", err)
	}
	return buf.String(), nil
}
