package main

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/vecdb"
	"github.com/hupe1980/vecdb/metric"
	"github.com/hupe1980/vecdb/vectorgen"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	benchVectors     int
	benchDimension   int
	benchClusters    int
	benchK           int
	benchSearches    int
	benchConcurrency int
	benchQPS         int
	benchMetric      string
	benchSeed        int64
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark search throughput and latency",
	Long: `Benchmark exact nearest-neighbor search on synthetic clustered data.

The store is seeded with random vectors, then concurrent workers issue
top-k searches and report throughput and latency percentiles.

Examples:
  # Defaults: 10k 128D vectors, 1000 searches, one worker per CPU
  vecdb bench

  # Heavier corpus with a throughput cap
  vecdb bench --vectors 100000 --dimension 256 --qps 200

  # Compare metrics
  vecdb bench --metric cosine
  vecdb bench --metric dotproduct`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench()
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchVectors, "vectors", 10000, "number of vectors to seed")
	benchCmd.Flags().IntVar(&benchDimension, "dimension", 128, "vector dimension")
	benchCmd.Flags().IntVar(&benchClusters, "clusters", 16, "number of clusters in the seed data")
	benchCmd.Flags().IntVar(&benchK, "k", 10, "neighbors per search")
	benchCmd.Flags().IntVar(&benchSearches, "searches", 1000, "total number of searches")
	benchCmd.Flags().IntVar(&benchConcurrency, "concurrency", runtime.NumCPU(), "concurrent search workers")
	benchCmd.Flags().IntVar(&benchQPS, "qps", 0, "target searches per second (0 = unlimited)")
	benchCmd.Flags().StringVar(&benchMetric, "metric", "euclidean", "distance metric: euclidean, cosine, manhattan or dotproduct")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 42, "random seed")

	rootCmd.AddCommand(benchCmd)
}

func runBench() error {
	m, err := metric.ParseMetric(benchMetric)
	if err != nil {
		return err
	}

	fmt.Printf("=== Benchmark Configuration ===\n")
	fmt.Printf("Vectors:      %d (%dD, %d clusters)\n", benchVectors, benchDimension, benchClusters)
	fmt.Printf("Metric:       %s\n", m)
	fmt.Printf("Top-k:        %d\n", benchK)
	fmt.Printf("Searches:     %d\n", benchSearches)
	fmt.Printf("Concurrency:  %d workers\n", benchConcurrency)
	if benchQPS > 0 {
		fmt.Printf("Target QPS:   %d\n", benchQPS)
	} else {
		fmt.Printf("Target QPS:   unlimited\n")
	}

	db, err := vecdb.New(benchDimension,
		vecdb.WithMetric(m),
		vecdb.WithMaxVectors(benchVectors),
		logOption(),
	)
	if err != nil {
		return err
	}

	rng := vectorgen.New(benchSeed)

	fmt.Printf("\n=== Seeding ===\n")
	seedStart := time.Now()

	batch := make(map[string][]float32, benchVectors)
	for _, v := range rng.Clustered(benchVectors, benchDimension, benchClusters, 0.15) {
		batch[uuid.New().String()] = v
	}
	if err := db.InsertBatch(batch); err != nil {
		return err
	}

	seedElapsed := time.Since(seedStart)
	fmt.Printf("inserted %d vectors in %v (%.0f vectors/s)\n",
		db.Size(), seedElapsed.Round(time.Millisecond), float64(db.Size())/seedElapsed.Seconds())
	fmt.Printf("estimated memory: %s\n", humanSize(db.Stats().MemoryBytes))

	// Pre-generated queries keep the hot loop free of RNG contention
	queries := make([][]float32, 100)
	for i := range queries {
		queries[i] = rng.Uniform(benchDimension, -1, 1)
	}

	var limiter *rate.Limiter
	if benchQPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(benchQPS), benchConcurrency)
	}

	latencies := make([]time.Duration, benchSearches)
	var next atomic.Int64

	searchStart := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < benchConcurrency; w++ {
		g.Go(func() error {
			for {
				idx := next.Add(1) - 1
				if idx >= int64(benchSearches) {
					return nil
				}

				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return err
					}
				}

				start := time.Now()
				if _, err := db.Search(queries[idx%int64(len(queries))], benchK); err != nil {
					return err
				}
				latencies[idx] = time.Since(start)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(searchStart)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var total time.Duration
	for _, l := range latencies {
		total += l
	}

	fmt.Printf("\n=== Search Results ===\n")
	fmt.Printf("Total time:   %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Throughput:   %.1f searches/s\n", float64(benchSearches)/elapsed.Seconds())
	fmt.Printf("Latency avg:  %v\n", (total / time.Duration(benchSearches)).Round(time.Microsecond))
	fmt.Printf("Latency p50:  %v\n", percentile(latencies, 0.50).Round(time.Microsecond))
	fmt.Printf("Latency p95:  %v\n", percentile(latencies, 0.95).Round(time.Microsecond))
	fmt.Printf("Latency p99:  %v\n", percentile(latencies, 0.99).Round(time.Microsecond))
	fmt.Printf("Latency max:  %v\n", latencies[len(latencies)-1].Round(time.Microsecond))

	return nil
}

// percentile returns the p-th percentile of sorted latencies.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
