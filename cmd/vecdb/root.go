package main

import (
	"log/slog"

	"github.com/hupe1980/vecdb"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vecdb",
	Short: "vecdb - embedded in-memory vector database",
	Long: `vecdb is an embedded in-memory vector database with exact nearest-neighbor
search under Euclidean, Cosine, Manhattan and DotProduct metrics, and
compact binary snapshots for persistence.

Use the demo command for a guided tour, bench for throughput numbers on
your hardware, and inspect to peek at snapshot files.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// logOption returns the store logging option implied by the --verbose flag.
func logOption() vecdb.Option {
	if verbose {
		return vecdb.WithLogLevel(slog.LevelDebug)
	}
	return vecdb.WithLogger(nil)
}
