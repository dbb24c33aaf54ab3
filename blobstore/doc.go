// Package blobstore provides storage abstraction for vector snapshots.
//
// BlobStore is the interface for reading and writing snapshot blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: In-memory, for tests
//   - LocalStore: Local filesystem with mmap reads and atomic writes
//   - minio.Store: MinIO and other S3-compatible object storage
//   - s3.Store: Amazon S3 with range reads and streaming uploads
//   - s3.CommitStore: S3 payloads with a DynamoDB-backed latest pointer
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)           // Open for reading
//	    Create(ctx, name) (WritableBlob, error) // Create for streaming writes
//	    Put(ctx, name, data) error              // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// For cloud backends, implement ReadRange for efficient partial reads:
//
//	type Blob interface {
//	    ReadAt(ctx, p, off) (int, error)
//	    ReadRange(ctx, off, len) (io.ReadCloser, error)
//	    Size() int64
//	    Close() error
//	}
package blobstore
