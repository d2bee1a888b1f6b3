package pagecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	nserrors "github.com/fantasyedge/newsscout/pkg/errors"
	"github.com/fantasyedge/newsscout/pkg/logging"
	"github.com/fantasyedge/newsscout/pkg/observability"
)

// Cache is the persistent page store backed by PostgreSQL, with an optional
// Redis seen-URL set in front of the batch membership query.
type Cache struct {
	db      *pgxpool.Pool
	seen    *SeenCache
	log     logging.Logger
	metrics *observability.Metrics
}

// NewCache creates a page cache. seen may be nil; membership queries then go
// straight to PostgreSQL.
func NewCache(db *pgxpool.Pool, seen *SeenCache, log logging.Logger) *Cache {
	if log == nil {
		log = logging.Nop()
	}
	return &Cache{db: db, seen: seen, log: log}
}

// Instrument attaches Prometheus counters for store outcomes and returns
// the cache for chaining.
func (c *Cache) Instrument(m *observability.Metrics) *Cache {
	c.metrics = m
	return c
}

// Store inserts a page if its URL has not been seen before. The result is
// tagged: stored (new row, PageID set), duplicate (URL already cached, no
// write), or error (store failure, retryable). Each call commits
// independently.
func (c *Cache) Store(ctx context.Context, input StoreInput) StoreResult {
	urlHash := URLHash(input.URL)
	contentHash := ContentHash(input.HTML)

	query := `
		INSERT INTO page_cache (
			url, url_hash, raw_html, content_hash,
			source_type, source_name, http_status, content_length, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (url_hash) DO NOTHING
		RETURNING id
	`

	var id int64
	err := c.db.QueryRow(ctx, query,
		input.URL,
		urlHash,
		input.HTML,
		contentHash,
		string(input.SourceType),
		input.SourceName,
		input.HTTPStatus,
		len(input.HTML),
		input.PublishedAt,
	).Scan(&id)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		c.markSeen(ctx, urlHash)
		if c.metrics != nil {
			c.metrics.PagesDuplicateTotal.WithLabelValues(string(input.SourceType)).Inc()
		}
		return StoreResult{Outcome: OutcomeDuplicate}
	case err != nil:
		c.log.Error("storing page failed",
			logging.F("url", input.URL),
			logging.Err(err))
		return StoreResult{Outcome: OutcomeError, Err: fmt.Errorf("storing page: %w", err)}
	}

	c.markSeen(ctx, urlHash)
	if c.metrics != nil {
		c.metrics.PagesStoredTotal.WithLabelValues(string(input.SourceType)).Inc()
	}
	c.log.Debug("page stored",
		logging.F("page_id", id),
		logging.F("source_type", string(input.SourceType)))
	return StoreResult{Outcome: OutcomeStored, PageID: id}
}

// FilterUncached returns the subset of urls not yet present in the cache,
// preserving input order. Membership is resolved in one round trip against
// the store; when a seen-URL cache is configured it answers first and only
// the remainder hits PostgreSQL.
func (c *Cache) FilterUncached(ctx context.Context, urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	remaining := urls
	if c.seen != nil {
		var err error
		remaining, err = c.seen.FilterUnseen(ctx, urls)
		if err != nil {
			// The seen cache is an accelerator only; fall back to the store.
			c.log.Warn("seen cache unavailable, falling back to store", logging.Err(err))
			remaining = urls
		}
		if len(remaining) == 0 {
			return nil, nil
		}
	}

	hashes := make([]string, len(remaining))
	byHash := make(map[string]struct{}, len(remaining))
	for i, u := range remaining {
		hashes[i] = URLHash(u)
	}

	rows, err := c.db.Query(ctx,
		"SELECT url_hash FROM page_cache WHERE url_hash = ANY($1)", hashes)
	if err != nil {
		return nil, fmt.Errorf("querying cached hashes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scanning cached hash: %w", err)
		}
		byHash[h] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cached hashes: %w", err)
	}

	var uncached []string
	for _, u := range remaining {
		if _, cached := byHash[URLHash(u)]; !cached {
			uncached = append(uncached, u)
		}
	}
	return uncached, nil
}

// Get retrieves a cached page by URL. Returns nserrors.ErrNotFound when the
// URL has never been cached.
func (c *Cache) Get(ctx context.Context, url string) (*Page, error) {
	return c.getWhere(ctx, "url_hash = $1", URLHash(url))
}

// GetByID retrieves a cached page by its row ID.
func (c *Cache) GetByID(ctx context.Context, id int64) (*Page, error) {
	return c.getWhere(ctx, "id = $1", id)
}

func (c *Cache) getWhere(ctx context.Context, cond string, arg interface{}) (*Page, error) {
	query := `
		SELECT id, url, url_hash, raw_html, content_hash,
			source_type, source_name, http_status, content_length,
			published_at, fetched_at, extracted_at
		FROM page_cache
		WHERE ` + cond

	var p Page
	var sourceName *string
	err := c.db.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.URL, &p.URLHash, &p.RawHTML, &p.ContentHash,
		&p.SourceType, &sourceName, &p.HTTPStatus, &p.ContentLength,
		&p.PublishedAt, &p.FetchedAt, &p.ExtractedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nserrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}
	if sourceName != nil {
		p.SourceName = *sourceName
	}
	return &p, nil
}

// ListUnextracted returns pages awaiting downstream extraction, newest
// publication date first. Injury-list snapshots are processed by a separate
// path and excluded here.
func (c *Cache) ListUnextracted(ctx context.Context, limit int) ([]Page, error) {
	query := `
		SELECT id, url, url_hash, raw_html, content_hash,
			source_type, source_name, http_status, content_length,
			published_at, fetched_at, extracted_at
		FROM page_cache
		WHERE extracted_at IS NULL
		  AND source_type != 'injury_list'
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1
	`

	rows, err := c.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing unextracted pages: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// ListMissingPublished returns pages with no publication date, for the date
// back-fill pass.
func (c *Cache) ListMissingPublished(ctx context.Context) ([]Page, error) {
	query := `
		SELECT id, url, url_hash, raw_html, content_hash,
			source_type, source_name, http_status, content_length,
			published_at, fetched_at, extracted_at
		FROM page_cache
		WHERE published_at IS NULL
		ORDER BY id
	`

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing pages without dates: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

func scanPages(rows pgx.Rows) ([]Page, error) {
	var pages []Page
	for rows.Next() {
		var p Page
		var sourceName *string
		if err := rows.Scan(
			&p.ID, &p.URL, &p.URLHash, &p.RawHTML, &p.ContentHash,
			&p.SourceType, &sourceName, &p.HTTPStatus, &p.ContentLength,
			&p.PublishedAt, &p.FetchedAt, &p.ExtractedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		if sourceName != nil {
			p.SourceName = *sourceName
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

// MarkExtracted marks a page as processed. extracted_at transitions null to
// set exactly once; a repeat call is a no-op. errReason, when non-empty, is
// persisted for operator visibility but the page is never reprocessed
// automatically.
func (c *Cache) MarkExtracted(ctx context.Context, id int64, errReason string) error {
	query := `
		UPDATE page_cache
		SET extracted_at = NOW(),
			extraction_error = NULLIF($2, '')
		WHERE id = $1 AND extracted_at IS NULL
	`

	if _, err := c.db.Exec(ctx, query, id, errReason); err != nil {
		return fmt.Errorf("marking page extracted: %w", err)
	}
	return nil
}

// SetPublishedAt back-fills a publication date. Set only when currently
// null; an existing date is never overwritten. Returns true when a row was
// updated.
func (c *Cache) SetPublishedAt(ctx context.Context, id int64, publishedAt time.Time) (bool, error) {
	tag, err := c.db.Exec(ctx,
		"UPDATE page_cache SET published_at = $2 WHERE id = $1 AND published_at IS NULL",
		id, publishedAt)
	if err != nil {
		return false, fmt.Errorf("setting published_at: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the total number of cached pages.
func (c *Cache) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := c.db.QueryRow(ctx, "SELECT COUNT(*) FROM page_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}

// Stats returns cache totals broken down by source.
func (c *Cache) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT source_type, COALESCE(source_name, ''), COUNT(*), MAX(fetched_at)
		FROM page_cache
		GROUP BY source_type, source_name
		ORDER BY source_type, COUNT(*) DESC
	`

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying cache stats: %w", err)
	}
	defer rows.Close()

	stats := &Stats{}
	for rows.Next() {
		var s SourceStat
		if err := rows.Scan(&s.SourceType, &s.SourceName, &s.Count, &s.Latest); err != nil {
			return nil, fmt.Errorf("scanning cache stats: %w", err)
		}
		stats.BySource = append(stats.BySource, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cache stats: %w", err)
	}

	total, err := c.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.Total = total
	return stats, nil
}

func (c *Cache) markSeen(ctx context.Context, urlHash string) {
	if c.seen == nil {
		return
	}
	if err := c.seen.Add(ctx, urlHash); err != nil {
		c.log.Debug("seen cache add failed", logging.Err(err))
	}
}
