// Package roster provides read-only access to the canonical player roster.
// The roster is owned by the fantasyedge service; this package only loads it
// and normalizes team names against the club alias table.
package roster

import "context"

// Player is an authoritative, deduplicated identity in the roster store.
// All name variants seen in article text should eventually resolve to
// exactly one player ID.
type Player struct {
	ID   int64
	Name string
	Team string
}

// Store loads the canonical roster.
type Store interface {
	// ListPlayers returns the full roster, ordered by name.
	ListPlayers(ctx context.Context) ([]Player, error)
}
