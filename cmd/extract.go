package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fantasyedge/newsscout/pkg/extraction"
	"github.com/fantasyedge/newsscout/pkg/mentions"
	"github.com/fantasyedge/newsscout/pkg/mentions/matcher"
	"github.com/fantasyedge/newsscout/pkg/observability"
	"github.com/fantasyedge/newsscout/pkg/roster"
)

// NewExtractCommand creates the extract command.
func NewExtractCommand(deps *Deps) *cobra.Command {
	var (
		batchSize int
		articleID int64
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract player mentions from cached articles",
		Long: `Run mention extraction over unprocessed cached articles.

Each article body is sent to the configured model; returned mentions are
resolved against the player roster and upserted. Articles are marked
extracted whether they succeed or fail, so reruns never repeat work.

Examples:
  # Process the next batch
  newsscout extract

  # Process 50 articles
  newsscout extract --batch-size 50

  # Reprocess one article regardless of its state
  newsscout extract --article-id 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg, rootDebug)

			newsPool, err := deps.Connect(cmd.Context(), cfg.NewsDB)
			if err != nil {
				return err
			}
			defer newsPool.Close()

			rosterPool := newsPool
			if cfg.RosterDB.ConnectionString() != cfg.NewsDB.ConnectionString() {
				rosterPool, err = deps.Connect(cmd.Context(), cfg.RosterDB)
				if err != nil {
					return err
				}
				defer rosterPool.Close()
			}

			provider, err := extraction.NewCLIProvider(extraction.CLIProviderConfig{
				Command: cfg.Extraction.Command,
				Timeout: cfg.Extraction.Timeout,
				Version: cfg.Extraction.ModelVersion,
			}, log)
			if err != nil {
				return err
			}

			if batchSize <= 0 {
				batchSize = cfg.Extraction.BatchSize
			}

			metrics := observability.DefaultMetrics()
			cache := newPageCache(cfg, newsPool, log).Instrument(metrics)
			repo := mentions.NewPostgresRepository(newsPool)
			m := matcher.New(roster.NewPostgresStore(rosterPool), log)
			pipeline := extraction.NewPipeline(cache, repo, m, provider, metrics,
				extraction.PipelineConfig{BatchSize: batchSize, Delay: cfg.Extraction.Delay},
				log)

			var summary extraction.Summary
			if articleID > 0 {
				summary, err = pipeline.RunOne(cmd.Context(), articleID)
			} else {
				summary, err = pipeline.Run(cmd.Context())
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(deps.Stdout, "Processed %d article(s): %d mention(s) stored, %d error(s)\n",
				summary.Processed, summary.Mentions, summary.Errors)
			if summary.Processed > 0 && summary.Errors == summary.Processed {
				return fmt.Errorf("all %d article(s) failed extraction", summary.Errors)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Number of articles to process (default from config)")
	cmd.Flags().Int64Var(&articleID, "article-id", 0, "Process a single article by ID")
	return cmd
}
