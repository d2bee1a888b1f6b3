package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fantasyedge/newsscout/pkg/buildinfo"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(deps *Deps) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return json.NewEncoder(deps.Stdout).Encode(buildinfo.Get())
			}
			fmt.Fprintf(deps.Stdout, "newsscout %s\n", buildinfo.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
