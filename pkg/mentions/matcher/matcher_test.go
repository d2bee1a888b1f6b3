package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyedge/newsscout/pkg/logging"
	"github.com/fantasyedge/newsscout/pkg/mentions"
	"github.com/fantasyedge/newsscout/pkg/roster"
)

type fakeRoster struct {
	players []roster.Player
	calls   int
	err     error
}

func (f *fakeRoster) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.players, nil
}

func testRoster() *fakeRoster {
	return &fakeRoster{players: []roster.Player{
		{ID: 1, Name: "Nick Daicos", Team: "Collingwood"},
		{ID: 2, Name: "Nick Daicos", Team: "Carlton"},
		{ID: 3, Name: "Christian Petracca", Team: "Melbourne"},
		{ID: 4, Name: "Josh Daicos", Team: "Collingwood"},
		{ID: 5, Name: "Marcus Bontempelli", Team: "Western Bulldogs"},
		{ID: 6, Name: "Tom Green", Team: "GWS"},
		{ID: 7, Name: "Tom Green", Team: "Adelaide"},
	}}
}

func newTestMatcher(store roster.Store) *Matcher {
	return New(store, logging.Nop())
}

func TestMatchExactUnique(t *testing.T) {
	m := newTestMatcher(testRoster())

	id, matchType, err := m.Match(context.Background(), "Christian Petracca", "")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)
	assert.Equal(t, mentions.MatchTypeExact, matchType)
}

func TestMatchDuplicateNameWithoutTeamIsUnmatched(t *testing.T) {
	m := newTestMatcher(testRoster())

	id, matchType, err := m.Match(context.Background(), "Nick Daicos", "")
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Equal(t, mentions.MatchTypeUnmatched, matchType)
}

func TestMatchDuplicateNameWithTeamHint(t *testing.T) {
	m := newTestMatcher(testRoster())

	id, matchType, err := m.Match(context.Background(), "Nick Daicos", "Collingwood")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(1), *id)
	assert.Equal(t, mentions.MatchTypeExact, matchType)
}

func TestMatchTeamAliasHint(t *testing.T) {
	m := newTestMatcher(testRoster())

	// "Pies" normalizes to Collingwood before disambiguation.
	id, matchType, err := m.Match(context.Background(), "Nick Daicos", "Pies")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(1), *id)
	assert.Equal(t, mentions.MatchTypeExact, matchType)
}

func TestMatchCaseInsensitive(t *testing.T) {
	m := newTestMatcher(testRoster())

	// The roster spells it differently, so the folded hit is an alias.
	id, matchType, err := m.Match(context.Background(), "christian PETRACCA", "")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)
	assert.Equal(t, mentions.MatchTypeAlias, matchType)
}

func TestMatchInitials(t *testing.T) {
	m := newTestMatcher(testRoster())

	for _, name := range []string{"C. Petracca", "C Petracca"} {
		id, matchType, err := m.Match(context.Background(), name, "")
		require.NoError(t, err)
		require.NotNil(t, id, name)
		assert.Equal(t, int64(3), *id)
		assert.Equal(t, mentions.MatchTypeInitials, matchType)
	}
}

func TestMatchInitialsAmbiguousWithoutTeam(t *testing.T) {
	m := newTestMatcher(testRoster())

	// Two Tom Greens on different clubs: ambiguous without a hint,
	// decided with one.
	id, matchType, err := m.Match(context.Background(), "T. Green", "")
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Equal(t, mentions.MatchTypeUnmatched, matchType)

	id, matchType, err = m.Match(context.Background(), "T. Green", "GWS")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(6), *id)
	assert.Equal(t, mentions.MatchTypeInitials, matchType)
}

func TestMatchInitialsMultiTokenSurname(t *testing.T) {
	store := &fakeRoster{players: []roster.Player{
		{ID: 9, Name: "Tom De Koning", Team: "Carlton"},
		{ID: 10, Name: "Jacob van Rooyen", Team: "Melbourne"},
	}}
	m := newTestMatcher(store)

	id, matchType, err := m.Match(context.Background(), "T. De Koning", "")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(9), *id)
	assert.Equal(t, mentions.MatchTypeInitials, matchType)

	id, matchType, err = m.Match(context.Background(), "J. van Rooyen", "")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(10), *id)
	assert.Equal(t, mentions.MatchTypeInitials, matchType)

	// The bare multi-token surname resolves too, given a club.
	id, matchType, err = m.Match(context.Background(), "De Koning", "Carlton")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(9), *id)
	assert.Equal(t, mentions.MatchTypeAlias, matchType)
}

func TestMatchTeamHintPrefersFirstSameClubCandidate(t *testing.T) {
	store := &fakeRoster{players: []roster.Player{
		{ID: 20, Name: "Josh Kelly", Team: "GWS"},
		{ID: 21, Name: "Jack Kelly", Team: "GWS"},
	}}
	m := newTestMatcher(store)

	// Two Kellys with the same initial on one club: ambiguous without
	// a hint, first roster candidate with one.
	id, matchType, err := m.Match(context.Background(), "J. Kelly", "")
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Equal(t, mentions.MatchTypeUnmatched, matchType)

	id, matchType, err = m.Match(context.Background(), "J. Kelly", "GWS")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(20), *id)
	assert.Equal(t, mentions.MatchTypeInitials, matchType)
}

func TestMatchPartialRequiresTeam(t *testing.T) {
	m := newTestMatcher(testRoster())

	id, matchType, err := m.Match(context.Background(), "Bontempelli", "")
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Equal(t, mentions.MatchTypeUnmatched, matchType)

	id, matchType, err = m.Match(context.Background(), "Bontempelli", "Western Bulldogs")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(5), *id)
	assert.Equal(t, mentions.MatchTypeAlias, matchType)
}

func TestMatchWrongTeamHintIsUnmatched(t *testing.T) {
	m := newTestMatcher(testRoster())

	id, matchType, err := m.Match(context.Background(), "Christian Petracca", "Carlton")
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Equal(t, mentions.MatchTypeUnmatched, matchType)
}

func TestMatchDiacriticFolding(t *testing.T) {
	store := &fakeRoster{players: []roster.Player{
		{ID: 10, Name: "Mabior Chol", Team: "Hawthorn"},
		{ID: 11, Name: "Jose Sanfilippo", Team: "St Kilda"},
	}}
	m := newTestMatcher(store)

	id, matchType, err := m.Match(context.Background(), "José Sanfilippo", "")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(11), *id)
	assert.Equal(t, mentions.MatchTypeAlias, matchType)
}

func TestMatchMemoization(t *testing.T) {
	store := testRoster()
	m := newTestMatcher(store)

	_, _, err := m.Match(context.Background(), "Christian Petracca", "")
	require.NoError(t, err)
	_, _, err = m.Match(context.Background(), "Christian Petracca", "")
	require.NoError(t, err)
	_, _, err = m.Match(context.Background(), "No Such Player", "")
	require.NoError(t, err)
	_, _, err = m.Match(context.Background(), "No Such Player", "")
	require.NoError(t, err)

	assert.Equal(t, 1, store.calls, "roster should be loaded once per process")
	assert.Equal(t, 2, m.Cache().Len())
}

func TestMatchRosterLoadRetriedAfterFailure(t *testing.T) {
	store := testRoster()
	store.err = errors.New("connection refused")
	m := newTestMatcher(store)

	_, _, err := m.Match(context.Background(), "Christian Petracca", "")
	require.Error(t, err)

	store.err = nil
	id, _, err := m.Match(context.Background(), "Christian Petracca", "")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)
}

func TestCacheClear(t *testing.T) {
	m := newTestMatcher(testRoster())

	_, _, err := m.Match(context.Background(), "Christian Petracca", "")
	require.NoError(t, err)
	require.Equal(t, 1, m.Cache().Len())

	m.Cache().Clear()
	assert.Equal(t, 0, m.Cache().Len())
}

func TestCacheUnmatchedNames(t *testing.T) {
	m := newTestMatcher(testRoster())

	_, _, err := m.Match(context.Background(), "Christian Petracca", "")
	require.NoError(t, err)
	_, _, err = m.Match(context.Background(), "Unknown Bloke", "")
	require.NoError(t, err)

	names := m.Cache().UnmatchedNames(10)
	require.Len(t, names, 1)
	assert.Equal(t, "unknown bloke", names[0])
}

type fakeMentionRepo struct {
	candidates []mentions.RematchCandidate
	updates    map[int64]*int64
	listCalls  int
	lastFlag   bool
}

var _ mentions.Repository = (*fakeMentionRepo)(nil)

func (f *fakeMentionRepo) UpsertMention(ctx context.Context, mention *mentions.PlayerMention) error {
	return nil
}

func (f *fakeMentionRepo) ListRematchCandidates(ctx context.Context, includeUnmatched bool) ([]mentions.RematchCandidate, error) {
	f.listCalls++
	f.lastFlag = includeUnmatched
	if includeUnmatched {
		return f.candidates, nil
	}
	var filtered []mentions.RematchCandidate
	for _, c := range f.candidates {
		if c.MatchType != mentions.MatchTypeUnmatched {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (f *fakeMentionRepo) UpdateMatch(ctx context.Context, id int64, playerID *int64, matchType mentions.MatchType) error {
	if f.updates == nil {
		f.updates = make(map[int64]*int64)
	}
	f.updates[id] = playerID
	return nil
}

func (f *fakeMentionRepo) StatsByMatchType(ctx context.Context) ([]mentions.MatchTypeStat, error) {
	return nil, nil
}

func TestRematchSkipsUnmatchedByDefault(t *testing.T) {
	store := testRoster()
	m := newTestMatcher(store)
	repo := &fakeMentionRepo{candidates: []mentions.RematchCandidate{
		{ID: 100, PlayerName: "Christian Petracca", MatchType: mentions.MatchTypeExact},
		{ID: 101, PlayerName: "Old Ghost", MatchType: mentions.MatchTypeUnmatched},
	}}

	result, err := m.Rematch(context.Background(), repo, false)
	require.NoError(t, err)
	assert.False(t, repo.lastFlag)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Matched)
	require.Contains(t, repo.updates, int64(100))
	assert.Equal(t, int64(3), *repo.updates[100])
}

func TestRematchIncludeUnmatched(t *testing.T) {
	store := testRoster()
	m := newTestMatcher(store)
	repo := &fakeMentionRepo{candidates: []mentions.RematchCandidate{
		{ID: 100, PlayerName: "Christian Petracca", MatchType: mentions.MatchTypeUnmatched},
		{ID: 101, PlayerName: "Old Ghost", MatchType: mentions.MatchTypeUnmatched},
	}}

	result, err := m.Rematch(context.Background(), repo, true)
	require.NoError(t, err)
	assert.True(t, repo.lastFlag)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Matched)

	// A row that stays unmatched is not rewritten.
	assert.NotContains(t, repo.updates, int64(101))
}

func TestRematchReloadsRosterAndClearsCache(t *testing.T) {
	store := testRoster()
	m := newTestMatcher(store)

	_, _, err := m.Match(context.Background(), "Christian Petracca", "")
	require.NoError(t, err)
	require.Equal(t, 1, m.Cache().Len())

	_, err = m.Rematch(context.Background(), &fakeMentionRepo{}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls, "rematch should reload the roster")
	assert.Equal(t, 0, m.Cache().Len())
}
