package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgerrors "github.com/fantasyedge/newsscout/pkg/errors"
)

// NewCacheCommand creates the cache command with its subcommands.
func NewCacheCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the page cache",
		Long: `Inspect the deduplicating page cache.

Examples:
  # Show cache totals broken down by source
  newsscout cache stats

  # Check whether a URL has been cached
  newsscout cache check https://www.afl.com.au/news/12345`,
	}

	cmd.AddCommand(newCacheStatsCommand(deps))
	cmd.AddCommand(newCacheCheckCommand(deps))
	return cmd
}

func newCacheStatsCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache totals by source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg, rootDebug)

			pool, err := deps.Connect(cmd.Context(), cfg.NewsDB)
			if err != nil {
				return err
			}
			defer pool.Close()

			cache := newPageCache(cfg, pool, log)
			stats, err := cache.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(deps.Stdout, "Total pages: %d\n", stats.Total)
			if seen := newSeenCache(cfg); seen != nil {
				if n, err := seen.Size(cmd.Context()); err == nil {
					fmt.Fprintf(deps.Stdout, "Seen-URL set: %d\n", n)
				}
			}
			for _, s := range stats.BySource {
				latest := "never"
				if s.Latest != nil {
					latest = s.Latest.UTC().Format("2006-01-02 15:04")
				}
				name := s.SourceName
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(deps.Stdout, "  %-12s %-30s %6d  latest %s\n", s.SourceType, name, s.Count, latest)
			}
			return nil
		},
	}
}

func newCacheCheckCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>",
		Short: "Check whether a URL has been cached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg, rootDebug)

			pool, err := deps.Connect(cmd.Context(), cfg.NewsDB)
			if err != nil {
				return err
			}
			defer pool.Close()

			cache := newPageCache(cfg, pool, log)
			page, err := cache.Get(cmd.Context(), args[0])
			if pkgerrors.IsNotFound(err) {
				fmt.Fprintln(deps.Stdout, "not cached")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(deps.Stdout, "cached: id=%d source=%s fetched=%s\n",
				page.ID, page.SourceType, page.FetchedAt.UTC().Format("2006-01-02 15:04"))
			if page.ExtractedAt != nil {
				fmt.Fprintf(deps.Stdout, "extracted: %s\n", page.ExtractedAt.UTC().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
