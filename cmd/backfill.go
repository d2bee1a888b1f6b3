package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/fantasyedge/newsscout/pkg/dateextract"
)

// NewBackfillDatesCommand creates the backfill-dates command.
func NewBackfillDatesCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-dates",
		Short: "Fill missing publication dates from stored HTML",
		Long: `Re-run date extraction over cached pages without a publication date.

Useful after the date extraction cascade learns a new markup pattern:
pages cached before the change get their dates filled in without a
refetch.`,
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
			result, err := dateextract.Backfill(cmd.Context(), cache, dateextract.New(), log)
			if err != nil {
				return err
			}

			fmt.Fprintf(deps.Stdout, "Scanned %d page(s): %d updated, %d still missing a date\n",
				result.Scanned, result.Updated, result.Missed)
			sources := make([]string, 0, len(result.PerSource))
			for source := range result.PerSource {
				sources = append(sources, source)
			}
			slices.Sort(sources)
			for _, source := range sources {
				fmt.Fprintf(deps.Stdout, "  %-30s %d\n", source, result.PerSource[source])
			}
			return nil
		},
	}
}
