package dateextract

import (
	"context"
	"fmt"
	"time"

	"github.com/fantasyedge/newsscout/pkg/logging"
	"github.com/fantasyedge/newsscout/pkg/pagecache"
)

// PageStore is the slice of the page cache the backfill needs.
type PageStore interface {
	ListMissingPublished(ctx context.Context) ([]pagecache.Page, error)
	SetPublishedAt(ctx context.Context, id int64, publishedAt time.Time) (bool, error)
}

// BackfillResult reports a date backfill pass. PerSource counts
// successful updates by source name.
type BackfillResult struct {
	Scanned   int
	Updated   int
	Missed    int
	PerSource map[string]int
}

// progressEvery controls how often the backfill logs a progress line.
const progressEvery = 50

// Backfill walks every cached page without a publication date, re-runs
// date extraction over its stored HTML and fills the column in. Pages
// whose HTML yields no parseable date are counted but left untouched for
// the next pass.
func Backfill(ctx context.Context, store PageStore, extractor *Extractor, log logging.Logger) (BackfillResult, error) {
	result := BackfillResult{PerSource: make(map[string]int)}

	pages, err := store.ListMissingPublished(ctx)
	if err != nil {
		return result, fmt.Errorf("listing pages without dates: %w", err)
	}
	log.Info("date backfill starting", logging.F("pages", len(pages)))

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++
		if result.Scanned%progressEvery == 0 {
			log.Info("date backfill progress",
				logging.F("scanned", result.Scanned),
				logging.F("updated", result.Updated))
		}

		publishedAt, ok := extractor.Extract(page.RawHTML)
		if !ok {
			result.Missed++
			log.Debug("no date found", logging.F("article_id", page.ID), logging.F("url", page.URL))
			continue
		}

		updated, err := store.SetPublishedAt(ctx, page.ID, publishedAt)
		if err != nil {
			return result, fmt.Errorf("backfilling date for page %d: %w", page.ID, err)
		}
		if updated {
			result.Updated++
			result.PerSource[page.SourceName]++
		}
	}

	log.Info("date backfill complete",
		logging.F("scanned", result.Scanned),
		logging.F("updated", result.Updated),
		logging.F("missed", result.Missed))
	return result, nil
}
