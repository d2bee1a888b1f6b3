// Package mentions provides the player mention data model and its
// PostgreSQL repository. A mention is one fantasy-relevant reference to a
// player extracted from a cached article, resolved against the canonical
// roster.
package mentions

import "time"

// MatchType records which matching strategy resolved a mention.
type MatchType string

const (
	MatchTypeExact     MatchType = "exact"
	MatchTypeAlias     MatchType = "alias"
	MatchTypeInitials  MatchType = "initials"
	MatchTypeUnmatched MatchType = "unmatched"
)

// SourceTier classifies the publisher of an article.
type SourceTier string

const (
	SourceTierOfficial SourceTier = "official"
	SourceTierMajor    SourceTier = "major"
	SourceTierSocial   SourceTier = "social"
	SourceTierOther    SourceTier = "other"
)

// PlayerMention is one extracted player reference tied to a cached article.
// Identity is (ArticleID, PlayerName, SignalType); re-processing the same
// article refreshes analytic fields but never duplicates a row.
type PlayerMention struct {
	ID        int64
	ArticleID int64

	SourceURL        string
	SourceName       string
	SourceTier       SourceTier
	IsOfficialSource bool
	ArticleDate      *time.Time

	// As extracted from the article text.
	PlayerName string
	Team       string

	// Resolution against the roster; PlayerID nil means unresolved.
	PlayerID     *int64
	MatchType    MatchType
	MatchSnippet string

	// Analytic fields owned by the extraction transform.
	SignalType     string
	SignalStrength *float32
	Summary        string
	Quote          string
	Availability   *float32
	Sentiment      string
	Action         string
	Confidence     *float32

	ProcessingMs int
	ModelVersion string
	ExtractedAt  time.Time
}

// RematchCandidate is a persisted mention row eligible for re-resolution
// after a roster update.
type RematchCandidate struct {
	ID         int64
	PlayerName string
	Team       string
	MatchType  MatchType
}

// RematchResult summarises a bulk re-matching pass.
type RematchResult struct {
	Attempted int
	Matched   int
}

// MatchTypeStat is one row of the per-match-type breakdown.
type MatchTypeStat struct {
	MatchType MatchType
	Count     int64
}
