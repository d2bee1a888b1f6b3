package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"db", "cache", "extract", "rematch", "backfill-dates"} {
		findCommand(t, root, name)
	}
}

func TestExtractCommandFlags(t *testing.T) {
	root := NewRootCommand()
	extract := findCommand(t, root, "extract")

	batch := extract.Flags().Lookup("batch-size")
	require.NotNil(t, batch)
	assert.Equal(t, "0", batch.DefValue)

	article := extract.Flags().Lookup("article-id")
	require.NotNil(t, article)
}

func TestRematchCommandFlags(t *testing.T) {
	root := NewRootCommand()
	rematch := findCommand(t, root, "rematch")

	flag := rematch.Flags().Lookup("include-unmatched")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestDBCommandSubcommands(t *testing.T) {
	root := NewRootCommand()
	dbCmd := findCommand(t, root, "db")
	for _, name := range []string{"migrate", "status", "ping"} {
		findCommand(t, dbCmd, name)
	}
	require.NotNil(t, dbCmd.PersistentFlags().Lookup("migrations"))
}

func TestCacheCheckRequiresURL(t *testing.T) {
	root := NewRootCommand()
	cache := findCommand(t, root, "cache")
	check := findCommand(t, cache, "check")
	assert.Error(t, check.Args(check, nil))
	assert.NoError(t, check.Args(check, []string{"https://example.com"}))
}
