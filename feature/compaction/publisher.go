package compaction

import (
	"context"
	"io"
	"path"

	"parquet-compactor/core/columnar"
	"parquet-compactor/core/storage"
	"parquet-compactor/core/workspace"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Publication is the receipt of a durable write. Only Publisher.Publish creates a
// receipt for which Published is true, and only the Reaper consumes it.
type Publication struct {
	// Key is the destination object key.
	Key string
	// Rows is the row count of the written object.
	Rows int64
	// Size is the encoded size in bytes.
	Size int64
	// MergedExisting is true when an object already at Key was merged in.
	MergedExisting bool

	published bool
}

// Published reports whether the receipt comes from a successful write.
func (p Publication) Published() bool {
	return p.published
}

// Publisher writes merged tables to their destination key, folding in any object
// already stored there.
//
// Publishing is not idempotent in row content: publishing the same table twice to
// the same key stores its rows twice. Re-runs are safe only because sources are
// deleted once published.
type Publisher struct {
	fetcher
	logger *zap.Logger
}

// NewPublisher creates a publisher writing to bucket.
func NewPublisher(client storage.Client, bucket string, codec *columnar.Codec, logger *zap.Logger) *Publisher {
	return &Publisher{
		fetcher: fetcher{client: client, bucket: bucket, codec: codec},
		logger:  logger,
	}
}

// Publish writes merged for group to its destination under plan.
// Store failures are returned as KindPublishFailed; an incompatible existing object
// is KindSchemaMismatch. Either way nothing was written.
func (p *Publisher) Publish(ctx context.Context, ws *workspace.Workspace, plan Plan, group MergeGroup, merged arrow.Table) (Publication, error) {
	dest, err := plan.Granularity.DestinationKey(plan.Namespace, group.Key)
	if err != nil {
		return Publication{}, newError(KindInvalidInput, group.Key, "cannot compute destination", err)
	}

	exists, err := storage.Exists(ctx, p.client, p.bucket, dest)
	if err != nil {
		return Publication{}, newError(KindPublishFailed, dest, "failed to check destination", err)
	}

	result := merged
	if exists {
		p.logger.Info("Destination exists, merging with it", zap.String("destination", dest))

		existing, err := p.fetch(ctx, ws, group.Key, "existing_"+path.Base(dest), dest)
		if err != nil {
			return Publication{}, newError(KindPublishFailed, dest, "failed to read existing destination", err)
		}
		defer existing.Release()

		// Existing data goes first so its column order wins.
		reconciled, err := Reconcile([]arrow.Table{existing, merged})
		if err != nil {
			return Publication{}, withKey(err, dest)
		}
		defer releaseAll(reconciled)

		combined, err := Concat(reconciled)
		if err != nil {
			return Publication{}, withKey(err, dest)
		}
		defer combined.Release()
		result = combined
	}

	local, err := ws.Create(group.Key, "publish_"+path.Base(dest))
	if err != nil {
		return Publication{}, newError(KindPublishFailed, dest, "failed to create scratch file", err)
	}
	defer local.Close()

	if err := p.codec.Encode(local, result); err != nil {
		return Publication{}, newError(KindPublishFailed, dest, "failed to encode merged table", err)
	}
	size, err := local.Seek(0, io.SeekCurrent)
	if err != nil {
		return Publication{}, newError(KindPublishFailed, dest, "failed to size scratch file", err)
	}
	if _, err := local.Seek(0, io.SeekStart); err != nil {
		return Publication{}, newError(KindPublishFailed, dest, "failed to rewind scratch file", err)
	}

	_, err = p.client.PutObject(ctx, p.bucket, dest, local, size, minio.PutObjectOptions{
		ContentType: columnar.ContentType,
	})
	if err != nil {
		return Publication{}, newError(KindPublishFailed, dest, "failed to upload merged table", err)
	}

	p.logger.Info("Published",
		zap.String("destination", dest),
		zap.Int64("rows", result.NumRows()),
		zap.Int64("bytes", size),
		zap.Bool("merged_existing", exists),
	)

	return Publication{
		Key:            dest,
		Rows:           result.NumRows(),
		Size:           size,
		MergedExisting: exists,
		published:      true,
	}, nil
}
