// Package matcher resolves player names extracted from article text to
// canonical roster entries. Resolution runs a staged cascade from
// strictest to loosest: exact name, case-insensitive name, initial plus
// surname, then partial match gated on a team hint. Every decision,
// including a failure to match, is memoized so repeated mentions of the
// same name cost one roster scan per process lifetime.
package matcher

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/fantasyedge/newsscout/pkg/logging"
	"github.com/fantasyedge/newsscout/pkg/mentions"
	"github.com/fantasyedge/newsscout/pkg/roster"
)

// initialsPattern recognizes names of the form "C. Petracca" or
// "C Petracca": a single leading letter, optional dot, then the rest.
var initialsPattern = regexp.MustCompile(`^([A-Za-z])\.?\s+(.+)$`)

// Matcher resolves mention names against the canonical roster.
type Matcher struct {
	store roster.Store
	cache *MatchCache
	log   logging.Logger

	mu      sync.Mutex
	players []roster.Player
	loaded  bool
}

// New creates a Matcher backed by the given roster store. The roster is
// loaded lazily on first Match and retried on each call until a load
// succeeds.
func New(store roster.Store, log logging.Logger) *Matcher {
	return &Matcher{
		store: store,
		cache: NewMatchCache(),
		log:   log.With(logging.F("component", "player_matcher")),
	}
}

// Cache exposes the memoization cache, mainly for stats and tests.
func (m *Matcher) Cache() *MatchCache { return m.cache }

// Reload refetches the roster and clears all memoized decisions. The
// bulk re-matching pass calls this so that previously unmatched names
// get a fresh look against the current roster.
func (m *Matcher) Reload(ctx context.Context) error {
	players, err := m.store.ListPlayers(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.players = players
	m.loaded = true
	m.mu.Unlock()

	m.cache.Clear()
	m.log.Info("roster reloaded", logging.F("players", len(players)))
	return nil
}

func (m *Matcher) roster(ctx context.Context) ([]roster.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return m.players, nil
	}
	players, err := m.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	m.players = players
	m.loaded = true
	m.log.Info("roster loaded", logging.F("players", len(players)))
	return m.players, nil
}

// Match resolves a mention name, optionally disambiguated by a team
// hint, to a canonical player ID. It returns a nil ID with
// MatchTypeUnmatched when no stage produces a single unambiguous
// candidate; that outcome is memoized like any other.
func (m *Matcher) Match(ctx context.Context, name, team string) (*int64, mentions.MatchType, error) {
	name = strings.TrimSpace(name)
	team = roster.NormalizeTeam(strings.TrimSpace(team))
	if name == "" {
		return nil, mentions.MatchTypeUnmatched, nil
	}

	if r, ok := m.cache.Get(name, team); ok {
		return r.PlayerID, r.MatchType, nil
	}

	players, err := m.roster(ctx)
	if err != nil {
		return nil, mentions.MatchTypeUnmatched, err
	}

	result := m.resolve(players, name, team)
	m.cache.Put(name, team, result)

	if result.PlayerID == nil {
		m.log.Debug("unmatched mention",
			logging.F("name", name),
			logging.F("team", team))
	}
	return result.PlayerID, result.MatchType, nil
}

func (m *Matcher) resolve(players []roster.Player, name, team string) Result {
	if r, ok := matchExact(players, name, team); ok {
		return r
	}

	normalized := normalizeName(name)
	if r, ok := matchCaseInsensitive(players, normalized, team); ok {
		return r
	}
	if r, ok := matchInitials(players, name, team); ok {
		return r
	}
	if r, ok := matchPartial(players, normalized, team); ok {
		return r
	}
	return Result{MatchType: mentions.MatchTypeUnmatched}
}

// matchExact compares the raw trimmed name against roster names. An
// ambiguous result falls through to the next stage rather than deciding
// unmatched, so a looser stage still gets a chance.
func matchExact(players []roster.Player, name, team string) (Result, bool) {
	var candidates []roster.Player
	for _, p := range players {
		if p.Name == name {
			candidates = append(candidates, p)
		}
	}
	if p, ok := pickCandidate(candidates, team); ok {
		id := p.ID
		return Result{PlayerID: &id, MatchType: mentions.MatchTypeExact}, true
	}
	return Result{}, false
}

// matchCaseInsensitive compares folded names. A hit here is reported as
// an alias match, not exact: the article spelled the name differently
// than the roster does.
func matchCaseInsensitive(players []roster.Player, normalized, team string) (Result, bool) {
	var candidates []roster.Player
	for _, p := range players {
		if normalizeName(p.Name) == normalized {
			candidates = append(candidates, p)
		}
	}
	if p, ok := pickCandidate(candidates, team); ok {
		id := p.ID
		return Result{PlayerID: &id, MatchType: mentions.MatchTypeAlias}, true
	}
	return Result{}, false
}

// matchInitials handles "C. Petracca" style mentions: the initial must
// match the first letter of the player's first name and the remainder
// must match the surname.
func matchInitials(players []roster.Player, name, team string) (Result, bool) {
	groups := initialsPattern.FindStringSubmatch(name)
	if groups == nil {
		return Result{}, false
	}
	initial := strings.ToLower(groups[1])
	rest := normalizeName(groups[2])

	var candidates []roster.Player
	for _, p := range players {
		pn := normalizeName(p.Name)
		if !strings.HasPrefix(pn, initial) {
			continue
		}
		if surname(pn) == rest {
			candidates = append(candidates, p)
		}
	}
	if p, ok := pickCandidate(candidates, team); ok {
		id := p.ID
		return Result{PlayerID: &id, MatchType: mentions.MatchTypeInitials}, true
	}
	return Result{}, false
}

// matchPartial is the loosest stage and only runs with a team hint: a
// bare surname or substring without a team is too likely to hit a
// same-surname player on another club. A candidate can qualify both by
// substring and by surname, so candidates are deduplicated before the
// uniqueness check.
func matchPartial(players []roster.Player, normalized, team string) (Result, bool) {
	if team == "" {
		return Result{}, false
	}

	seen := make(map[int64]bool)
	var candidates []roster.Player
	for _, p := range players {
		if p.Team != team {
			continue
		}
		pn := normalizeName(p.Name)
		if !strings.Contains(pn, normalized) && surname(pn) != normalized {
			continue
		}
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		candidates = append(candidates, p)
	}
	if len(candidates) == 1 {
		id := candidates[0].ID
		return Result{PlayerID: &id, MatchType: mentions.MatchTypeAlias}, true
	}
	return Result{}, false
}

// pickCandidate settles a stage. With a team hint the first candidate
// from that team wins; without one the stage must produce exactly one
// candidate or it falls through.
func pickCandidate(candidates []roster.Player, team string) (roster.Player, bool) {
	candidates = filterByTeam(candidates, team)
	if len(candidates) == 0 {
		return roster.Player{}, false
	}
	if team != "" || len(candidates) == 1 {
		return candidates[0], true
	}
	return roster.Player{}, false
}

func filterByTeam(candidates []roster.Player, team string) []roster.Player {
	if team == "" || len(candidates) == 0 {
		return candidates
	}
	var filtered []roster.Player
	for _, p := range candidates {
		if p.Team == team {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
