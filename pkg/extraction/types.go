package extraction

// ExtractedMention is one player signal as emitted by the model, before
// it is resolved against the roster and persisted.
type ExtractedMention struct {
	Player         string   `json:"player"`
	Team           string   `json:"team"`
	MatchSnippet   string   `json:"match_snippet"`
	Signal         string   `json:"signal"`
	SignalStrength *float32 `json:"signal_strength"`
	Summary        string   `json:"summary"`
	Availability   *float32 `json:"availability"`
	Action         string   `json:"action"`
	Sentiment      string   `json:"sentiment"`
	Confidence     *float32 `json:"confidence"`
	Quote          string   `json:"quote"`
}

// ExtractionError is a per-article failure reported inside the model
// output envelope.
type ExtractionError struct {
	ArticleID string `json:"article_id"`
	Reason    string `json:"reason"`
}

// Result is the envelope the model is instructed to return for one
// article.
type Result struct {
	ArticleID   string             `json:"article_id"`
	Source      string             `json:"source"`
	SourceURL   string             `json:"source_url"`
	ArticleDate string             `json:"article_date"`
	Mentions    []ExtractedMention `json:"mentions"`
	Errors      []ExtractionError  `json:"errors"`
}
