//go:build integration

package mentions

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*PostgresRepository, *pgxpool.Pool, int64) {
	t.Helper()

	dsn := os.Getenv("NEWSSCOUT_TEST_DSN")
	if dsn == "" {
		t.Skip("NEWSSCOUT_TEST_DSN not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), "TRUNCATE page_cache CASCADE")
	require.NoError(t, err)

	var articleID int64
	err = pool.QueryRow(context.Background(), `
		INSERT INTO page_cache (url, url_hash, raw_html, content_hash, source_type, source_name)
		VALUES ('https://www.afl.com.au/news/1/test', 'hash-1', '<html/>', 'content-1', 'rss', 'AFL Official')
		RETURNING id`).Scan(&articleID)
	require.NoError(t, err)

	return NewPostgresRepository(pool), pool, articleID
}

func TestUpsertMention_IdempotentConflict(t *testing.T) {
	repo, pool, articleID := setupTestRepo(t)
	ctx := context.Background()

	conf := float32(0.7)
	avail := float32(0.4)
	playerID := int64(3)
	m := &PlayerMention{
		ArticleID:    articleID,
		SourceURL:    "https://www.afl.com.au/news/1/test",
		SourceName:   "AFL Official",
		SourceTier:   SourceTierOfficial,
		PlayerName:   "Christian Petracca",
		Team:         "Melbourne",
		PlayerID:     &playerID,
		MatchType:    MatchTypeExact,
		SignalType:   "injury",
		Summary:      "Out for three weeks with a hamstring strain",
		Availability: &avail,
		Confidence:   &conf,
	}
	require.NoError(t, repo.UpsertMention(ctx, m))

	// Same identity again with fresher analysis and a different match
	// result: the mutable fields move, identity and match do not.
	conf2 := float32(0.9)
	avail2 := float32(0.6)
	again := *m
	again.Summary = "Back running, two weeks away"
	again.Availability = &avail2
	again.Confidence = &conf2
	again.PlayerID = nil
	again.MatchType = MatchTypeUnmatched
	require.NoError(t, repo.UpsertMention(ctx, &again))

	var count int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM player_mentions WHERE article_id = $1", articleID).Scan(&count))
	assert.Equal(t, 1, count)

	var summary, matchType string
	var confidence, availability float32
	var storedPlayerID *int64
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT summary, confidence, availability, match_type, player_id
		FROM player_mentions
		WHERE article_id = $1 AND player_name = $2 AND signal_type = $3`,
		articleID, "Christian Petracca", "injury").
		Scan(&summary, &confidence, &availability, &matchType, &storedPlayerID))
	assert.Equal(t, "Back running, two weeks away", summary)
	assert.Equal(t, float32(0.9), confidence)
	assert.Equal(t, float32(0.6), availability)
	assert.Equal(t, string(MatchTypeExact), matchType)
	require.NotNil(t, storedPlayerID)
	assert.Equal(t, playerID, *storedPlayerID)
}

func TestListRematchCandidates_SkipsUnmatchedUnlessAsked(t *testing.T) {
	repo, _, articleID := setupTestRepo(t)
	ctx := context.Background()

	resolvedID := int64(5)
	rows := []*PlayerMention{
		{ArticleID: articleID, PlayerName: "Old Ghost", Team: "Richmond",
			MatchType: MatchTypeUnmatched, SignalType: "injury"},
		{ArticleID: articleID, PlayerName: "T. Green", Team: "GWS",
			MatchType: MatchTypeInitials, SignalType: "selection"},
		{ArticleID: articleID, PlayerName: "Marcus Bontempelli", Team: "Western Bulldogs",
			PlayerID: &resolvedID, MatchType: MatchTypeExact, SignalType: "form"},
	}
	for _, m := range rows {
		require.NoError(t, repo.UpsertMention(ctx, m))
	}

	// Default pass: unresolved rows only, minus those already decided
	// unmatched.
	candidates, err := repo.ListRematchCandidates(ctx, false)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "T. Green", candidates[0].PlayerName)
	assert.Equal(t, MatchTypeInitials, candidates[0].MatchType)

	// Opting in widens the scan to unmatched rows; resolved rows stay
	// out either way.
	candidates, err = repo.ListRematchCandidates(ctx, true)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Old Ghost", candidates[0].PlayerName)
	assert.Equal(t, "T. Green", candidates[1].PlayerName)

	// RematchCandidate carries what the matcher needs.
	assert.Equal(t, "GWS", candidates[1].Team)
}

func TestUpdateMatch(t *testing.T) {
	repo, pool, articleID := setupTestRepo(t)
	ctx := context.Background()

	m := &PlayerMention{ArticleID: articleID, PlayerName: "T. Green", Team: "GWS",
		MatchType: MatchTypeInitials, SignalType: "selection"}
	require.NoError(t, repo.UpsertMention(ctx, m))

	candidates, err := repo.ListRematchCandidates(ctx, false)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	playerID := int64(6)
	require.NoError(t, repo.UpdateMatch(ctx, candidates[0].ID, &playerID, MatchTypeInitials))

	var stored int64
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT player_id FROM player_mentions WHERE id = $1", candidates[0].ID).Scan(&stored))
	assert.Equal(t, playerID, stored)

	candidates, err = repo.ListRematchCandidates(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
