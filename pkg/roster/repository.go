package roster

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store against the roster database.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a roster store backed by the given pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListPlayers returns the full roster, ordered by name.
func (s *PostgresStore) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := s.db.Query(ctx, "SELECT id, name, team FROM players ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Team); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}

	return players, nil
}
