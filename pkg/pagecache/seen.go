package pagecache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// seenKey is the Redis set holding url hashes already stored in the cache.
const seenKey = "newsscout:seen_urls"

// SeenCache is an optional Redis set of url hashes sitting in front of the
// persistent cache's membership query. It only ever accelerates: a miss here
// still gets checked against PostgreSQL, and a Redis failure degrades to the
// store answering alone.
type SeenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeenCache creates a seen-URL cache. ttl bounds how long the set lives
// without being refreshed; zero means no expiry.
func NewSeenCache(client *redis.Client, ttl time.Duration) *SeenCache {
	return &SeenCache{client: client, ttl: ttl}
}

// Add records a url hash as seen.
func (s *SeenCache) Add(ctx context.Context, urlHash string) error {
	if err := s.client.SAdd(ctx, seenKey, urlHash).Err(); err != nil {
		return fmt.Errorf("adding to seen set: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, seenKey, s.ttl).Err(); err != nil {
			return fmt.Errorf("refreshing seen set expiry: %w", err)
		}
	}
	return nil
}

// Size returns the number of url hashes in the seen set.
func (s *SeenCache) Size(ctx context.Context) (int64, error) {
	n, err := s.client.SCard(ctx, seenKey).Result()
	if err != nil {
		return 0, fmt.Errorf("sizing seen set: %w", err)
	}
	return n, nil
}

// FilterUnseen returns the urls whose hashes are not in the seen set,
// preserving input order. One SMISMEMBER round trip for the whole batch.
func (s *SeenCache) FilterUnseen(ctx context.Context, urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	members := make([]interface{}, len(urls))
	for i, u := range urls {
		members[i] = URLHash(u)
	}

	seen, err := s.client.SMIsMember(ctx, seenKey, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("checking seen set: %w", err)
	}

	var unseen []string
	for i, isSeen := range seen {
		if !isSeen {
			unseen = append(unseen, urls[i])
		}
	}
	return unseen, nil
}
