package matcher

import (
	"context"

	"github.com/fantasyedge/newsscout/pkg/logging"
	"github.com/fantasyedge/newsscout/pkg/mentions"
)

// Rematch re-runs resolution over stored mentions that lack a player ID,
// typically after the roster has grown. By default rows already decided
// unmatched are left alone, since re-deciding them is usually wasted
// work; includeUnmatched forces a fresh decision for those rows too.
// The roster is reloaded and the memoization cache cleared before the
// pass so stale decisions cannot leak in.
func (m *Matcher) Rematch(ctx context.Context, repo mentions.Repository, includeUnmatched bool) (mentions.RematchResult, error) {
	var result mentions.RematchResult

	if err := m.Reload(ctx); err != nil {
		return result, err
	}

	candidates, err := repo.ListRematchCandidates(ctx, includeUnmatched)
	if err != nil {
		return result, err
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Attempted++

		playerID, matchType, err := m.Match(ctx, c.PlayerName, c.Team)
		if err != nil {
			return result, err
		}
		if playerID == nil && c.MatchType == mentions.MatchTypeUnmatched {
			// Still unmatched; nothing to write.
			continue
		}
		if err := repo.UpdateMatch(ctx, c.ID, playerID, matchType); err != nil {
			return result, err
		}
		if playerID != nil {
			result.Matched++
		}
	}

	m.log.Info("rematch pass complete",
		logging.F("attempted", result.Attempted),
		logging.F("matched", result.Matched),
		logging.F("include_unmatched", includeUnmatched))
	return result, nil
}
