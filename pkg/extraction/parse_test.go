package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEnvelope = `{
	"article_id": "42",
	"source": "AFL Official",
	"source_url": "https://www.afl.com.au/news/injury-update",
	"article_date": "2026-08-30",
	"mentions": [
		{
			"player": "Christian Petracca",
			"team": "Melbourne",
			"match_snippet": "Petracca will miss three weeks",
			"signal": "injury",
			"signal_strength": 0.95,
			"summary": "Petracca out with hamstring strain",
			"availability": 0.4,
			"action": "bench",
			"sentiment": "negative",
			"confidence": 0.9,
			"quote": ""
		}
	],
	"errors": []
}`

func TestParseResultDirectJSON(t *testing.T) {
	result, err := ParseResult(validEnvelope)
	require.NoError(t, err)
	assert.Equal(t, "42", result.ArticleID)
	require.Len(t, result.Mentions, 1)

	m := result.Mentions[0]
	assert.Equal(t, "Christian Petracca", m.Player)
	assert.Equal(t, "injury", m.Signal)
	require.NotNil(t, m.Availability)
	assert.InDelta(t, 0.4, float64(*m.Availability), 0.001)
}

func TestParseResultMarkdownFenced(t *testing.T) {
	fenced := "```json\n" + validEnvelope + "\n```"
	result, err := ParseResult(fenced)
	require.NoError(t, err)
	assert.Equal(t, "42", result.ArticleID)
}

func TestParseResultEmbeddedInProse(t *testing.T) {
	wrapped := "Here is the extraction you asked for:\n\n" + validEnvelope + "\n\nLet me know if you need anything else."
	result, err := ParseResult(wrapped)
	require.NoError(t, err)
	require.Len(t, result.Mentions, 1)
	assert.Equal(t, "Melbourne", result.Mentions[0].Team)
}

func TestParseResultNullNumericFields(t *testing.T) {
	result, err := ParseResult(`{"article_id": "7", "mentions": [{"player": "A B", "availability": null, "confidence": null}]}`)
	require.NoError(t, err)
	require.Len(t, result.Mentions, 1)
	assert.Nil(t, result.Mentions[0].Availability)
	assert.Nil(t, result.Mentions[0].Confidence)
}

func TestParseResultGarbage(t *testing.T) {
	for _, raw := range []string{"", "    ", "I could not process the article.", "{broken json"} {
		_, err := ParseResult(raw)
		assert.Error(t, err, raw)
	}
}
