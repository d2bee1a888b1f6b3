// Package pagecache provides the content-addressed raw HTML page store.
//
// Every fetched page is stored exactly once, keyed by the SHA-256 digest of
// its URL. A second store attempt for the same URL is reported as a
// duplicate, never an overwrite; this is the sole duplicate-suppression
// mechanism in the system.
package pagecache

import "time"

// SourceType classifies where a page was discovered.
type SourceType string

const (
	SourceTypeClub       SourceType = "club"
	SourceTypeRSS        SourceType = "rss"
	SourceTypeSearch     SourceType = "search"
	SourceTypeArchive    SourceType = "archive"
	SourceTypeInjuryList SourceType = "injury_list"
)

// Page is a cached raw HTML page.
type Page struct {
	ID            int64
	URL           string
	URLHash       string
	RawHTML       string
	ContentHash   string
	SourceType    SourceType
	SourceName    string
	HTTPStatus    int
	ContentLength int
	PublishedAt   *time.Time
	FetchedAt     time.Time
	ExtractedAt   *time.Time
}

// StoreInput carries a fetched page into Store.
type StoreInput struct {
	URL         string
	HTML        string
	SourceType  SourceType
	SourceName  string
	HTTPStatus  int
	PublishedAt *time.Time
}

// StoreOutcome distinguishes the three results of a store attempt. A
// duplicate URL and a transient store failure both produce no page ID, but
// only the failure is worth retrying, so they are reported separately.
type StoreOutcome int

const (
	// OutcomeStored means a new row was written.
	OutcomeStored StoreOutcome = iota
	// OutcomeDuplicate means the URL was already cached; nothing was written.
	OutcomeDuplicate
	// OutcomeError means the store failed; the page may be retried later.
	OutcomeError
)

// String returns the outcome name for logs.
func (o StoreOutcome) String() string {
	switch o {
	case OutcomeStored:
		return "stored"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// StoreResult is the tagged result of a store attempt. PageID is set only
// when Outcome is OutcomeStored; Err is set only when Outcome is OutcomeError.
type StoreResult struct {
	Outcome StoreOutcome
	PageID  int64
	Err     error
}

// Stored reports whether a new row was written.
func (r StoreResult) Stored() bool {
	return r.Outcome == OutcomeStored
}

// SourceStat is one row of the per-source cache breakdown.
type SourceStat struct {
	SourceType SourceType
	SourceName string
	Count      int64
	Latest     *time.Time
}

// Stats summarises cache contents.
type Stats struct {
	Total    int64
	BySource []SourceStat
}
