package mentions

import "context"

// Repository defines the data access interface for player mentions.
type Repository interface {
	// UpsertMention inserts a mention or, when a row with the same
	// (article_id, player_name, signal_type) identity exists, refreshes its
	// mutable analytic fields. Identity and match type are never altered by
	// an upsert.
	UpsertMention(ctx context.Context, m *PlayerMention) error

	// ListRematchCandidates returns unresolved mentions (player_id is null).
	// Rows already typed unmatched are excluded unless includeUnmatched is
	// set: a truly-unmatched name is assumed to need a roster update before
	// a retry is worthwhile.
	ListRematchCandidates(ctx context.Context, includeUnmatched bool) ([]RematchCandidate, error)

	// UpdateMatch sets the resolution of a single mention row. Used only by
	// the bulk re-matching pass.
	UpdateMatch(ctx context.Context, id int64, playerID *int64, matchType MatchType) error

	// StatsByMatchType returns mention counts broken down by match type.
	StatsByMatchType(ctx context.Context) ([]MatchTypeStat, error)
}
