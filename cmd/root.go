package cmd

import (
	"github.com/spf13/cobra"
)

// rootDebug is set by the --debug persistent flag.
var rootDebug bool

// NewRootCommand creates the newsscout root command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	deps := DefaultDeps()

	root := &cobra.Command{
		Use:   "newsscout",
		Short: "AFL news caching and player mention extraction",
		Long: `newsscout caches AFL news articles, extracts fantasy-relevant player
mentions with a language model and resolves them against the canonical
player roster.

Configuration is read from ~/.newsscout/config.yaml (override with
NEWSSCOUT_CONFIG_DIR) plus NEWS_DB_*, ROSTER_DB_* and NEWSSCOUT_*
environment variables.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")

	root.AddCommand(NewDBCommand(deps))
	root.AddCommand(NewCacheCommand(deps))
	root.AddCommand(NewExtractCommand(deps))
	root.AddCommand(NewRematchCommand(deps))
	root.AddCommand(NewBackfillDatesCommand(deps))
	root.AddCommand(NewVersionCommand(deps))
	return root
}
