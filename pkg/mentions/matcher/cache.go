package matcher

import (
	"strings"
	"sync"

	"github.com/fantasyedge/newsscout/pkg/mentions"
)

// Result is a resolution decision: the matched player ID (nil when
// unresolved) and the strategy that produced it.
type Result struct {
	PlayerID  *int64
	MatchType mentions.MatchType
}

// MatchCache memoizes resolution results by (lowercased name, lowercased
// team or empty). It lives for the process and is invalidated only by an
// explicit Clear, which the bulk re-matching pass invokes after a roster
// reload; a roster change is otherwise not observed until restart.
type MatchCache struct {
	mu      sync.Mutex
	results map[string]Result
}

// NewMatchCache creates an empty cache.
func NewMatchCache() *MatchCache {
	return &MatchCache{results: make(map[string]Result)}
}

func cacheKey(name, team string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(team)
}

// Get returns the memoized result for (name, team), if any.
func (c *MatchCache) Get(name, team string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[cacheKey(name, team)]
	return r, ok
}

// Put memoizes a result.
func (c *MatchCache) Put(name, team string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[cacheKey(name, team)] = r
}

// Clear drops all memoized results.
func (c *MatchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]Result)
}

// Len returns the number of memoized entries.
func (c *MatchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// UnmatchedNames returns up to limit cached names that resolved to
// unmatched, for operator stats.
func (c *MatchCache) UnmatchedNames(limit int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var names []string
	for key, r := range c.results {
		if r.MatchType != mentions.MatchTypeUnmatched {
			continue
		}
		if name, _, found := strings.Cut(key, "|"); found {
			names = append(names, name)
		}
		if len(names) >= limit {
			break
		}
	}
	return names
}
