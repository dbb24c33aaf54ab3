// Package minio provides a MinIO implementation of the blobstore.BlobStore
// interface, usable with any S3-compatible object storage.
//
// # Usage
//
//	client, err := minio.New("play.min.io", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	store := miniostore.NewStore(client, "my-bucket", "vectors/")
//
//	err = db.SaveToStore(ctx, store, "snapshot.vdb")
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Streaming uploads via io.Pipe
//   - Configurable prefix for multi-tenant isolation
package minio
