package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/fantasyedge/newsscout/pkg/errors"
	"github.com/fantasyedge/newsscout/pkg/logging"
	"github.com/fantasyedge/newsscout/pkg/mentions"
	"github.com/fantasyedge/newsscout/pkg/observability"
	"github.com/fantasyedge/newsscout/pkg/pagecache"
)

// minBodyChars is the shortest article body worth sending to the model.
// Anything under it is navigation chrome or a fetch gone wrong.
const minBodyChars = 100

// PageStore is the slice of the page cache the pipeline needs.
type PageStore interface {
	ListUnextracted(ctx context.Context, limit int) ([]pagecache.Page, error)
	GetByID(ctx context.Context, id int64) (*pagecache.Page, error)
	MarkExtracted(ctx context.Context, id int64, errReason string) error
}

// PlayerResolver resolves an extracted name to a roster player ID.
type PlayerResolver interface {
	Match(ctx context.Context, name, team string) (*int64, mentions.MatchType, error)
}

// PipelineConfig tunes a batch run.
type PipelineConfig struct {
	BatchSize int           `yaml:"batch_size"`
	Delay     time.Duration `yaml:"delay"`
}

// DefaultPipelineConfig processes ten articles per run with a short
// pause between model calls.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		BatchSize: 10,
		Delay:     2 * time.Second,
	}
}

// Summary reports a completed pipeline run.
type Summary struct {
	Processed int
	Mentions  int
	Errors    int
}

// Pipeline pulls unextracted articles from the cache, runs each through
// the model, resolves every returned mention against the roster and
// upserts the results. Each article is marked extracted exactly once,
// whether it succeeded or failed, so a crash mid-batch never reprocesses
// finished work and never loses unfinished work.
type Pipeline struct {
	pages    PageStore
	repo     mentions.Repository
	resolver PlayerResolver
	provider Provider
	metrics  *observability.Metrics
	config   PipelineConfig
	log      logging.Logger
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(
	pages PageStore,
	repo mentions.Repository,
	resolver PlayerResolver,
	provider Provider,
	metrics *observability.Metrics,
	config PipelineConfig,
	log logging.Logger,
) *Pipeline {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultPipelineConfig().BatchSize
	}
	if metrics == nil {
		// Unregistered metric set for callers without a registry.
		metrics = observability.NewMetrics(nil)
	}
	return &Pipeline{
		pages:    pages,
		repo:     repo,
		resolver: resolver,
		provider: provider,
		metrics:  metrics,
		config:   config,
		log:      log.With(logging.F("component", "extraction_pipeline")),
	}
}

// Run processes the next batch of unextracted articles.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	pages, err := p.pages.ListUnextracted(ctx, p.config.BatchSize)
	if err != nil {
		return Summary{}, fmt.Errorf("listing unextracted articles: %w", err)
	}
	return p.process(ctx, pages)
}

// RunOne processes a single article by ID, regardless of its extraction
// state. Useful for reprocessing after a prompt change.
func (p *Pipeline) RunOne(ctx context.Context, articleID int64) (Summary, error) {
	page, err := p.pages.GetByID(ctx, articleID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return Summary{}, fmt.Errorf("article %d: %w", articleID, err)
		}
		return Summary{}, fmt.Errorf("loading article %d: %w", articleID, err)
	}
	return p.process(ctx, []pagecache.Page{*page})
}

func (p *Pipeline) process(ctx context.Context, pages []pagecache.Page) (Summary, error) {
	var summary Summary
	if len(pages) == 0 {
		p.log.Info("no unextracted articles")
		return summary, nil
	}

	runID := uuid.NewString()
	log := p.log.With(logging.F("run_id", runID))
	log.Info("extraction run starting", logging.F("articles", len(pages)))

	for i := range pages {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		page := &pages[i]

		stored, errReason := p.processPage(ctx, log, page)
		summary.Processed++
		summary.Mentions += stored
		if errReason != "" {
			summary.Errors++
			p.metrics.ArticlesProcessedTotal.WithLabelValues("error").Inc()
		} else {
			p.metrics.ArticlesProcessedTotal.WithLabelValues("ok").Inc()
		}

		if err := p.pages.MarkExtracted(ctx, page.ID, errReason); err != nil {
			log.Error("marking article extracted", logging.Err(err), logging.F("article_id", page.ID))
		}

		if p.config.Delay > 0 && i < len(pages)-1 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(p.config.Delay):
			}
		}
	}

	log.Info("extraction run complete",
		logging.F("processed", summary.Processed),
		logging.F("mentions", summary.Mentions),
		logging.F("errors", summary.Errors))
	return summary, nil
}

// processPage runs one article end to end. A non-empty errReason is
// recorded on the page row instead of failing the batch.
func (p *Pipeline) processPage(ctx context.Context, log logging.Logger, page *pagecache.Page) (int, string) {
	start := time.Now()
	log = log.With(logging.F("article_id", page.ID), logging.F("url", page.URL))

	body := ExtractBody(page.RawHTML, page.URL)
	if len(body) < minBodyChars {
		log.Warn("article body too short", logging.F("chars", len(body)))
		return 0, "article too short"
	}
	title := ExtractTitle(page.RawHTML)

	prompt, err := BuildPrompt(page, title, body, time.Now())
	if err != nil {
		log.Error("building prompt", logging.Err(err))
		return 0, "prompt build failed"
	}

	raw, err := p.provider.Complete(ctx, prompt)
	if err != nil {
		log.Error("model call failed", logging.Err(err))
		return 0, "model call failed"
	}

	result, err := ParseResult(raw)
	if err != nil {
		log.Error("parsing model response", logging.Err(err))
		return 0, "failed to parse model response"
	}

	stored := 0
	for _, em := range result.Mentions {
		mention, err := p.buildMention(ctx, page, em)
		if err != nil {
			log.Error("resolving mention", logging.Err(err), logging.F("player", em.Player))
			continue
		}
		if err := p.repo.UpsertMention(ctx, &mention); err != nil {
			log.Error("storing mention", logging.Err(err), logging.F("player", em.Player))
			continue
		}
		stored++
		p.metrics.MentionsStoredTotal.WithLabelValues(mention.SignalType).Inc()
		p.metrics.MatchesTotal.WithLabelValues(string(mention.MatchType)).Inc()
	}

	elapsed := time.Since(start)
	p.metrics.ExtractionSeconds.Observe(elapsed.Seconds())
	log.Info("article extracted",
		logging.F("mentions", len(result.Mentions)),
		logging.F("stored", stored),
		logging.F("elapsed_ms", elapsed.Milliseconds()))
	return stored, ""
}

func (p *Pipeline) buildMention(ctx context.Context, page *pagecache.Page, em ExtractedMention) (mentions.PlayerMention, error) {
	playerID, matchType, err := p.resolver.Match(ctx, em.Player, em.Team)
	if err != nil {
		return mentions.PlayerMention{}, err
	}

	tier, isOfficial := SourceTierFor(page.SourceName, page.URL)

	return mentions.PlayerMention{
		ArticleID:        page.ID,
		SourceURL:        page.URL,
		SourceName:       page.SourceName,
		SourceTier:       tier,
		IsOfficialSource: isOfficial,
		ArticleDate:      page.PublishedAt,

		PlayerName: em.Player,
		Team:       em.Team,

		PlayerID:     playerID,
		MatchType:    matchType,
		MatchSnippet: em.MatchSnippet,

		SignalType:     em.Signal,
		SignalStrength: em.SignalStrength,
		Summary:        em.Summary,
		Quote:          em.Quote,
		Availability:   em.Availability,
		Sentiment:      em.Sentiment,
		Action:         em.Action,
		Confidence:     em.Confidence,

		ModelVersion: p.provider.ModelVersion(),
	}, nil
}
