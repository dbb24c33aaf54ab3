package vecdb_test

import (
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/vecdb"
	"github.com/hupe1980/vecdb/metric"
	"github.com/hupe1980/vecdb/persistence"
)

// Example_quickStart demonstrates inserting vectors and searching for
// nearest neighbors.
func Example_quickStart() {
	db, err := vecdb.New(3)
	if err != nil {
		log.Fatal(err)
	}

	db.Insert("a", []float32{1, 2, 3})
	db.Insert("b", []float32{4, 5, 6})
	db.Insert("c", []float32{7, 8, 9})

	results, err := db.Search([]float32{1, 2, 3}, 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Printf("%s %.2f\n", r.ID, r.Distance)
	}
	// Output:
	// a 0.00
	// b 5.20
}

// Example_batchInsert demonstrates atomic batch insertion.
func Example_batchInsert() {
	db, err := vecdb.New(2)
	if err != nil {
		log.Fatal(err)
	}

	err = db.InsertBatch(map[string][]float32{
		"doc-1": {1.0, 2.0},
		"doc-2": {3.0, 4.0},
		"doc-3": {5.0, 6.0},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("stored %d vectors\n", db.Size())
	// Output: stored 3 vectors
}

// Example_searchRadius demonstrates range queries under the Manhattan
// metric.
func Example_searchRadius() {
	db, err := vecdb.New(2, vecdb.WithMetric(metric.Manhattan))
	if err != nil {
		log.Fatal(err)
	}

	db.Insert("p", []float32{0, 0})
	db.Insert("q", []float32{3, 4})

	results, err := db.SearchRadius([]float32{0, 0}, 5)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Printf("%s %.0f\n", r.ID, r.Distance)
	}
	// Output: p 0
}

// Example_cosine demonstrates the cosine metric, which scores by direction
// rather than magnitude.
func Example_cosine() {
	db, err := vecdb.New(2, vecdb.WithMetric(metric.Cosine))
	if err != nil {
		log.Fatal(err)
	}

	db.Insert("same-direction", []float32{10, 0})
	db.Insert("orthogonal", []float32{0, 1})

	results, err := db.Search([]float32{1, 0}, 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Printf("%s %.1f\n", r.ID, r.Distance)
	}
	// Output:
	// same-direction 0.0
	// orthogonal 1.0
}

// Example_persistence demonstrates snapshotting to disk and restoring.
func Example_persistence() {
	const path = "./example_snapshot.vdb"
	defer os.Remove(path)

	src, err := vecdb.New(3)
	if err != nil {
		log.Fatal(err)
	}
	src.InsertBatch(map[string][]float32{
		"a": {1, 2, 3},
		"b": {4, 5, 6},
	})

	if err := src.SaveFile(path, vecdb.WithCompression(persistence.CompressionZstd)); err != nil {
		log.Fatal(err)
	}

	dst, err := vecdb.New(3)
	if err != nil {
		log.Fatal(err)
	}
	if err := dst.LoadFile(path); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("restored %d vectors\n", dst.Size())
	// Output: restored 2 vectors
}
