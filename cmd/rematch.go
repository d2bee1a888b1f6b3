package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fantasyedge/newsscout/pkg/mentions"
	"github.com/fantasyedge/newsscout/pkg/mentions/matcher"
	"github.com/fantasyedge/newsscout/pkg/roster"
)

// NewRematchCommand creates the rematch command.
func NewRematchCommand(deps *Deps) *cobra.Command {
	var includeUnmatched bool

	cmd := &cobra.Command{
		Use:   "rematch",
		Short: "Re-resolve stored mentions against the current roster",
		Long: `Re-run roster resolution over stored mentions without a player ID.

Run this after the roster table gains players. Rows already decided
"unmatched" are skipped by default; pass --include-unmatched to retry
them as well (a larger, mostly futile scan unless the roster grew
substantially).

Examples:
  newsscout rematch
  newsscout rematch --include-unmatched`,
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

			repo := mentions.NewPostgresRepository(newsPool)
			m := matcher.New(roster.NewPostgresStore(rosterPool), log)

			result, err := m.Rematch(cmd.Context(), repo, includeUnmatched)
			if err != nil {
				return err
			}

			fmt.Fprintf(deps.Stdout, "Re-matched %d of %d candidate mention(s)\n",
				result.Matched, result.Attempted)

			stats, err := repo.StatsByMatchType(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range stats {
				fmt.Fprintf(deps.Stdout, "  %-10s %d\n", s.MatchType, s.Count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeUnmatched, "include-unmatched", false, "Also retry mentions previously decided unmatched")
	return cmd
}
