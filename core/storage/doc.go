// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide the small set of operations the compactor
// needs: listing a prefix, reading, stat-ing, writing and deleting single objects.
// This abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//   - GetObject: Retrieves content as a stream.
//   - StatObject: Head request; use Exists for a boolean answer.
//   - PutObject: Uploads content, replacing any object with the same name.
//   - RemoveObject: Deletes one object.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	ok, err := storage.Exists(ctx, client, "timon", "user/db/events/events_2025.parquet")
package storage
