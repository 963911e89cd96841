package compaction

import (
	"context"
	"fmt"
	"sort"

	"parquet-compactor/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Selector lists a table's objects and keeps those stamped one level finer than the
// target granularity whose day falls inside the run window.
type Selector struct {
	client    storage.Client
	bucket    string
	extension string
	logger    *zap.Logger
}

// NewSelector creates a selector reading from bucket. Only keys ending in extension are considered.
func NewSelector(client storage.Client, bucket, extension string, logger *zap.Logger) *Selector {
	if extension == "" {
		extension = ".parquet"
	}
	return &Selector{client: client, bucket: bucket, extension: extension, logger: logger}
}

// Select returns the candidates for plan, ordered by timestamp then key.
// An empty prefix is not an error: it is logged and yields no candidates.
func (s *Selector) Select(ctx context.Context, plan Plan) ([]SourceObject, error) {
	// Cancelling stops the lister goroutine if we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefix := plan.Namespace.Prefix()
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}

	var (
		listed   int
		skipped  int
		selected []SourceObject
	)

	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			if storage.IsNotFound(obj.Err) {
				break
			}
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		listed++

		ts, ok := ParseSourceName(obj.Key, plan.Namespace.Table, s.extension, plan.Granularity)
		if !ok {
			skipped++
			continue
		}
		if !plan.Window.Contains(ts) {
			continue
		}
		selected = append(selected, SourceObject{Key: obj.Key, Timestamp: ts})
	}

	if listed == 0 {
		s.logger.Info("No files found under prefix",
			zap.String("bucket", s.bucket),
			zap.String("prefix", prefix),
		)
		return nil, nil
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if !selected[i].Timestamp.Equal(selected[j].Timestamp) {
			return selected[i].Timestamp.Before(selected[j].Timestamp)
		}
		return selected[i].Key < selected[j].Key
	})

	s.logger.Debug("Selected candidates",
		zap.String("prefix", prefix),
		zap.Int("listed", listed),
		zap.Int("unparsable", skipped),
		zap.Int("selected", len(selected)),
	)

	return selected, nil
}
