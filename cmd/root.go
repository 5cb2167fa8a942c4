package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "battlemancer",
	Short: "Draw trading cards and battle them in your terminal",
	Long: `Battlemancer fetches trading cards from the Pokémon TCG API, normalizes them
into a battle-ready form, and pits them against each other in your terminal.
When the card API is unreachable it retries with backoff and then falls back to
a bundled static dataset, so a battle is always available offline.`,
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"Log fetch attempts, backoff, and fallback switches to stderr")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// newLogger builds the logger for a command invocation. Without --verbose
// the fetch layer stays silent.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
