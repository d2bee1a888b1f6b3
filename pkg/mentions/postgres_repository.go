package mentions

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// UpsertMention inserts or refreshes a mention row. Each call commits
// independently so a crash mid-batch leaves prior rows intact.
func (r *PostgresRepository) UpsertMention(ctx context.Context, m *PlayerMention) error {
	query := `
		INSERT INTO player_mentions (
			article_id, source_url, source_name, source_tier,
			is_official_source, article_date,
			player_name, team, player_id, match_type, match_snippet,
			signal_type, signal_strength, summary, quote,
			availability, sentiment, action, confidence,
			processing_ms, model_version
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21
		)
		ON CONFLICT (article_id, player_name, signal_type)
		DO UPDATE SET
			summary = EXCLUDED.summary,
			availability = EXCLUDED.availability,
			confidence = EXCLUDED.confidence,
			extracted_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		m.ArticleID,
		m.SourceURL,
		m.SourceName,
		string(m.SourceTier),
		m.IsOfficialSource,
		m.ArticleDate,
		m.PlayerName,
		m.Team,
		m.PlayerID,
		string(m.MatchType),
		m.MatchSnippet,
		m.SignalType,
		m.SignalStrength,
		m.Summary,
		m.Quote,
		m.Availability,
		m.Sentiment,
		m.Action,
		m.Confidence,
		m.ProcessingMs,
		m.ModelVersion,
	)
	if err != nil {
		return fmt.Errorf("upserting mention: %w", err)
	}
	return nil
}

// ListRematchCandidates returns unresolved mentions eligible for the bulk
// re-matching pass.
func (r *PostgresRepository) ListRematchCandidates(ctx context.Context, includeUnmatched bool) ([]RematchCandidate, error) {
	query := `
		SELECT id, player_name, COALESCE(team, ''), match_type
		FROM player_mentions
		WHERE player_id IS NULL
	`
	if !includeUnmatched {
		query += " AND match_type != 'unmatched'"
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing rematch candidates: %w", err)
	}
	defer rows.Close()

	var candidates []RematchCandidate
	for rows.Next() {
		var c RematchCandidate
		if err := rows.Scan(&c.ID, &c.PlayerName, &c.Team, &c.MatchType); err != nil {
			return nil, fmt.Errorf("scanning rematch candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rematch candidates: %w", err)
	}

	return candidates, nil
}

// UpdateMatch sets the resolution of a single mention row.
func (r *PostgresRepository) UpdateMatch(ctx context.Context, id int64, playerID *int64, matchType MatchType) error {
	_, err := r.db.Exec(ctx,
		"UPDATE player_mentions SET player_id = $2, match_type = $3 WHERE id = $1",
		id, playerID, string(matchType))
	if err != nil {
		return fmt.Errorf("updating mention match: %w", err)
	}
	return nil
}

// StatsByMatchType returns mention counts broken down by match type.
func (r *PostgresRepository) StatsByMatchType(ctx context.Context) ([]MatchTypeStat, error) {
	rows, err := r.db.Query(ctx,
		"SELECT match_type, COUNT(*) FROM player_mentions GROUP BY match_type ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, fmt.Errorf("querying mention stats: %w", err)
	}
	defer rows.Close()

	var stats []MatchTypeStat
	for rows.Next() {
		var s MatchTypeStat
		if err := rows.Scan(&s.MatchType, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning mention stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mention stats: %w", err)
	}

	return stats, nil
}
