package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/vecdb"
	"github.com/hupe1980/vecdb/metric"
	"github.com/hupe1980/vecdb/persistence"
	"github.com/hupe1980/vecdb/vectorgen"
	"github.com/spf13/cobra"
)

var (
	demoDimension   int
	demoSeed        int64
	demoCompression string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a guided tour of the database",
	Long: `Run a guided tour: basic operations, a comparison of the four distance
metrics, radius queries, clustered high-dimensional data and snapshot
persistence.

Examples:
  # Default tour with 64-dimensional clustered data
  vecdb demo

  # Larger vectors, LZ4 snapshots, verbose logging
  vecdb demo --dimension 256 --compression lz4 -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo()
	},
}

func init() {
	demoCmd.Flags().IntVar(&demoDimension, "dimension", 64, "dimension for the clustered data section")
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 42, "random seed (0 = time-based)")
	demoCmd.Flags().StringVar(&demoCompression, "compression", "zstd", "snapshot compression: none, zstd or lz4")

	rootCmd.AddCommand(demoCmd)
}

func runDemo() error {
	rng := vectorgen.New(demoSeed)
	if demoSeed == 0 {
		rng = vectorgen.NewRandom()
	}

	if err := demoBasicOperations(); err != nil {
		return err
	}
	if err := demoMetricComparison(); err != nil {
		return err
	}

	db, err := demoClusteredData(rng)
	if err != nil {
		return err
	}

	return demoPersistence(db)
}

func demoBasicOperations() error {
	fmt.Println("=== Basic Operations ===")

	db, err := vecdb.New(3, logOption())
	if err != nil {
		return err
	}

	err = db.InsertBatch(map[string][]float32{
		"vector-1": {1.0, 2.0, 3.0},
		"vector-2": {2.0, 3.0, 4.0},
		"vector-3": {0.0, 1.0, 2.0},
		"vector-4": {3.0, 4.0, 5.0},
		"vector-5": {1.5, 2.5, 3.5},
	})
	if err != nil {
		return err
	}
	fmt.Printf("inserted %d vectors\n\n", db.Size())

	query := []float32{1.1, 2.1, 3.1}
	fmt.Printf("top 3 near %s:\n", vectorgen.Preview(query, 3))

	results, err := db.Search(query, 3)
	if err != nil {
		return err
	}
	for i, r := range results {
		fmt.Printf("  %d. %-10s distance=%.4f  %s\n", i+1, r.ID, r.Distance, vectorgen.Preview(r.Vector, 3))
	}

	fmt.Printf("\nall vectors within Euclidean distance 1.0:\n")
	within, err := db.SearchRadius(query, 1.0)
	if err != nil {
		return err
	}
	for _, r := range within {
		fmt.Printf("  %-10s distance=%.4f\n", r.ID, r.Distance)
	}

	fmt.Println()
	fmt.Println(db.Stats())
	fmt.Println()

	return nil
}

func demoMetricComparison() error {
	fmt.Println("=== Distance Metrics ===")

	vectors := map[string][]float32{
		"unit-x": {1, 0},
		"big-x":  {10, 0},
		"unit-y": {0, 1},
	}
	query := []float32{1, 0}

	fmt.Printf("nearest to %s among unit-x, big-x, unit-y:\n", vectorgen.Preview(query, 2))

	for _, m := range []metric.Metric{metric.Euclidean, metric.Cosine, metric.Manhattan, metric.DotProduct} {
		db, err := vecdb.New(2, vecdb.WithMetric(m), logOption())
		if err != nil {
			return err
		}
		if err := db.InsertBatch(vectors); err != nil {
			return err
		}

		results, err := db.Search(query, 1)
		if err != nil {
			return err
		}
		fmt.Printf("  %-10s -> %-8s distance=%.4f\n", m, results[0].ID, results[0].Distance)
	}

	fmt.Println()
	return nil
}

func demoClusteredData(rng *vectorgen.RNG) (*vecdb.DB, error) {
	fmt.Println("=== Clustered Data ===")

	const (
		numClusters = 3
		perCluster  = 50
	)

	db, err := vecdb.New(demoDimension, logOption())
	if err != nil {
		return nil, err
	}

	// Well-separated cluster centers, as uniform boxes
	ranges := [numClusters][2]float32{{0, 1}, {-1, 0}, {0.5, 1.5}}
	centers := make([][]float32, numClusters)
	for c := range centers {
		centers[c] = rng.Uniform(demoDimension, ranges[c][0], ranges[c][1])
	}
	fmt.Printf("created %d cluster centers in %dD space\n", numClusters, demoDimension)

	batch := make(map[string][]float32, numClusters*perCluster+numClusters)
	for c, center := range centers {
		batch[fmt.Sprintf("center-%d", c)] = center
		for i := 0; i < perCluster; i++ {
			v, err := rng.Gaussian(demoDimension, center, 0.1)
			if err != nil {
				return nil, err
			}
			batch[fmt.Sprintf("cluster-%d-%03d", c, i)] = v
		}
	}
	if err := db.InsertBatch(batch); err != nil {
		return nil, err
	}
	fmt.Printf("inserted %d vectors per cluster plus the centers (%d total)\n", perCluster, db.Size())

	for c, center := range centers {
		query, err := rng.Gaussian(demoDimension, center, 0.05)
		if err != nil {
			return nil, err
		}

		results, err := db.Search(query, 5)
		if err != nil {
			return nil, err
		}

		fmt.Printf("\nquerying near cluster %d:\n", c)
		for i, r := range results {
			fmt.Printf("  %d. %-16s distance=%.4f\n", i+1, r.ID, r.Distance)
		}
	}

	fmt.Println()
	return db, nil
}

func demoPersistence(db *vecdb.DB) error {
	fmt.Println("=== Persistence ===")

	compression, err := persistence.ParseCompression(demoCompression)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "vecdb-demo-*.vdb")
	if err != nil {
		return err
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := db.SaveFile(path, vecdb.WithCompression(compression)); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	fmt.Printf("saved %d vectors to %s (%s, %d bytes)\n", db.Size(), path, compression, info.Size())

	restored, err := vecdb.New(db.Dimension(), logOption())
	if err != nil {
		return err
	}
	if err := restored.LoadFile(path); err != nil {
		return err
	}
	fmt.Printf("restored %d vectors from the snapshot\n", restored.Size())

	return nil
}
