// Package s3 provides an Amazon S3 implementation of the
// blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("vectors/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = db.SaveToStore(ctx, store, "snapshot.vdb")
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Streaming uploads via the S3 transfer manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - CommitStore: versioned snapshot commits with a DynamoDB pointer
package s3
