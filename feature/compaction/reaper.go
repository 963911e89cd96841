package compaction

import (
	"context"
	"errors"

	"parquet-compactor/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// errNotPublished guards against reaping without a successful publication.
var errNotPublished = errors.New("refusing to delete sources: group was not published")

// ReapResult lists what the reaper deleted and what it could not.
type ReapResult struct {
	Deleted  []string
	Failures []error
}

// FailedKeys returns the keys whose deletion failed.
func (r ReapResult) FailedKeys() []string {
	keys := make([]string, 0, len(r.Failures))
	for _, err := range r.Failures {
		var e *Error
		if errors.As(err, &e) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Reaper deletes a group's sources once the group is published.
type Reaper struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewReaper creates a reaper deleting from bucket.
func NewReaper(client storage.Client, bucket string, logger *zap.Logger) *Reaper {
	return &Reaper{client: client, bucket: bucket, logger: logger}
}

// Reap deletes every member of group. It requires the receipt of the group's publication.
// Deletion is best effort: a failure is recorded and the remaining members are still attempted.
func (r *Reaper) Reap(ctx context.Context, pub Publication, group MergeGroup) (ReapResult, error) {
	if !pub.Published() {
		return ReapResult{}, errNotPublished
	}

	var result ReapResult
	for _, member := range group.Members {
		if member.Key == pub.Key {
			// Never delete what we just wrote.
			r.logger.Warn("Source is the destination, keeping it", zap.String("key", member.Key))
			continue
		}

		if err := r.client.RemoveObject(ctx, r.bucket, member.Key, minio.RemoveObjectOptions{}); err != nil {
			r.logger.Warn("Failed to delete source", zap.String("key", member.Key), zap.Error(err))
			result.Failures = append(result.Failures, newError(KindDeleteFailed, member.Key, "failed to delete source", err))
			continue
		}
		r.logger.Debug("Deleted source", zap.String("key", member.Key))
		result.Deleted = append(result.Deleted, member.Key)
	}

	return result, nil
}
