package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fantasyedge/newsscout/pkg/db"
)

var dbMigrationDir string

// NewDBCommand creates the db command with its subcommands.
func NewDBCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
		Long: `Database management commands for newsscout.

Migration files are SQL files in the migrations directory, named with
numeric prefixes (e.g. 001_initial_schema.sql). Migrations apply in
order and are tracked in the schema_migrations table.

Examples:
  # Apply pending migrations
  newsscout db migrate

  # Show pending migrations
  newsscout db status

  # Check connectivity
  newsscout db ping`,
	}

	cmd.PersistentFlags().StringVarP(&dbMigrationDir, "migrations", "m", "migrations", "Path to migrations directory")

	cmd.AddCommand(newDBMigrateCommand(deps))
	cmd.AddCommand(newDBStatusCommand(deps))
	cmd.AddCommand(newDBPingCommand(deps))
	return cmd
}

func newDBMigrateCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}

			pool, err := deps.Connect(cmd.Context(), cfg.NewsDB)
			if err != nil {
				return err
			}
			defer pool.Close()

			result, err := db.RunMigrations(cmd.Context(), pool, dbMigrationDir)
			if err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			for _, name := range result.Applied {
				fmt.Fprintf(deps.Stdout, "applied %s\n", name)
			}
			fmt.Fprintf(deps.Stdout, "Applied %d migration(s), %d already up to date\n",
				len(result.Applied), len(result.Skipped))
			return nil
		},
	}
}

func newDBStatusCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}

			pool, err := deps.Connect(cmd.Context(), cfg.NewsDB)
			if err != nil {
				return err
			}
			defer pool.Close()

			pending, err := db.GetPendingMigrations(cmd.Context(), pool, dbMigrationDir)
			if err != nil {
				return fmt.Errorf("checking migrations: %w", err)
			}
			if len(pending) == 0 {
				fmt.Fprintln(deps.Stdout, "Database is up to date")
				return nil
			}
			fmt.Fprintf(deps.Stdout, "%d pending migration(s):\n", len(pending))
			for _, m := range pending {
				fmt.Fprintf(deps.Stdout, "  %s %s\n", m.Version, m.Name)
			}
			return nil
		},
	}
}

func newDBPingCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}

			pool, err := deps.Connect(cmd.Context(), cfg.NewsDB)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Ping(cmd.Context(), pool); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
			fmt.Fprintf(deps.Stdout, "OK: %s:%d/%s\n", cfg.NewsDB.Host, cfg.NewsDB.Port, cfg.NewsDB.Database)
			return nil
		},
	}
}
