// Package vecdb provides an embedded in-memory vector store with exact
// nearest-neighbor search for Go.
//
// Vecdb maps string ids to fixed-dimension float32 vectors and answers
// top-k and radius similarity queries under a pluggable distance metric.
// Search is an exhaustive scan: results are exact, never approximate.
//
// # Quick Start
//
//	db, _ := vecdb.New(3)
//	db.Insert("a", []float32{1, 2, 3})
//	db.Insert("b", []float32{4, 5, 6})
//
//	results, _ := db.Search([]float32{1, 2, 4}, 2)
//	for _, r := range results {
//	    fmt.Println(r.ID, r.Distance)
//	}
//
// # Metrics
//
// Four distance metrics are built in; all follow the convention that a
// smaller distance means more similar:
//
//	db, _ := vecdb.New(128, vecdb.WithMetric(metric.Cosine))
//
//   - metric.Euclidean: straight-line distance (default)
//   - metric.Cosine: 1 - cosine similarity
//   - metric.Manhattan: sum of per-axis differences
//   - metric.DotProduct: negated inner product
//
// # Persistence
//
// Snapshots are a compact binary format, written atomically:
//
//	db.SaveFile("vectors.vdb")
//	db.SaveFile("vectors.zst", vecdb.WithCompression(persistence.CompressionZstd))
//	db.LoadFile("vectors.vdb")
//
// Snapshots can also live in object storage through the blobstore
// interfaces (local filesystem, MinIO, Amazon S3):
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("vectors/"))
//	db.SaveToStore(ctx, store, "snapshot.vdb")
//
// # Concurrency
//
// All methods are safe for concurrent use. A single mutex serializes every
// operation, reads included, so each operation observes a fully consistent
// store. This read-exclusive discipline is the intended baseline; there is
// no reader/writer or sharded locking.
package vecdb
