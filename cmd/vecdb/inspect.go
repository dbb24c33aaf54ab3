package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/vecdb/persistence"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot>",
	Short: "Print snapshot header information",
	Long: `Print the header of a snapshot file without loading its vectors.

Reports the codec, the vector dimension and the record count. For
compressed snapshots only the head of the frame is decompressed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	info, err := persistence.ReadInfo(f)
	if err != nil {
		return err
	}

	rawBytes := int64(info.Count) * int64(info.Dimension) * 4

	fmt.Printf("Snapshot:     %s\n", path)
	fmt.Printf("File size:    %s\n", humanSize(stat.Size()))
	fmt.Printf("Compression:  %s\n", info.Compression)
	fmt.Printf("Dimension:    %d\n", info.Dimension)
	fmt.Printf("Vectors:      %d\n", info.Count)
	fmt.Printf("Vector data:  %s uncompressed\n", humanSize(rawBytes))
	fmt.Printf("Platform:     %s\n", persistence.PlatformInfo())

	return nil
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
