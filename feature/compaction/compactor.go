package compaction

import (
	"context"
	"fmt"
	"path"

	"parquet-compactor/core/columnar"
	"parquet-compactor/core/storage"
	"parquet-compactor/core/workspace"

	"github.com/apache/arrow-go/v18/arrow"
	"go.uber.org/zap"
)

// Compactor fetches a group's members and merges them into one table.
type Compactor struct {
	fetcher
	logger *zap.Logger
}

// NewCompactor creates a compactor reading from bucket.
func NewCompactor(client storage.Client, bucket string, codec *columnar.Codec, logger *zap.Logger) *Compactor {
	return &Compactor{
		fetcher: fetcher{client: client, bucket: bucket, codec: codec},
		logger:  logger,
	}
}

// Compact returns the members of group merged in member order, narrowed to their common columns.
// Any member that cannot be fetched or decoded fails the whole group.
func (c *Compactor) Compact(ctx context.Context, ws *workspace.Workspace, group MergeGroup) (arrow.Table, error) {
	if len(group.Members) == 0 {
		return nil, newError(KindInvalidInput, group.Key, "merge group has no members", nil)
	}

	tables := make([]arrow.Table, 0, len(group.Members))
	defer func() { releaseAll(tables) }()

	for i, member := range group.Members {
		file := fmt.Sprintf("%04d_%s", i, path.Base(member.Key))
		tbl, err := c.fetch(ctx, ws, group.Key, file, member.Key)
		if err != nil {
			return nil, err
		}
		tables = append(tables, tbl)

		c.logger.Debug("Read source",
			zap.String("key", member.Key),
			zap.Int64("rows", tbl.NumRows()),
			zap.Int64("columns", tbl.NumCols()),
		)
	}

	reconciled, err := Reconcile(tables)
	if err != nil {
		return nil, withKey(err, group.Key)
	}
	defer releaseAll(reconciled)

	merged, err := Concat(reconciled)
	if err != nil {
		return nil, withKey(err, group.Key)
	}
	return merged, nil
}

// withKey fills in the key of a keyless *Error.
func withKey(err error, key string) error {
	if e, ok := err.(*Error); ok && e.Key == "" {
		e.Key = key
	}
	return err
}
