package compaction

import (
	"context"
	"io"

	"parquet-compactor/core/columnar"
	"parquet-compactor/core/storage"
	"parquet-compactor/core/workspace"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/minio/minio-go/v7"
)

// fetcher spools objects into a workspace and decodes them.
type fetcher struct {
	client storage.Client
	bucket string
	codec  *columnar.Codec
}

// fetch downloads key into ws under dir/file and decodes it.
// Missing objects are KindNotFound, store failures KindFetchFailed, bad bytes KindDecode.
func (f *fetcher) fetch(ctx context.Context, ws *workspace.Workspace, dir, file, key string) (arrow.Table, error) {
	obj, err := f.client.GetObject(ctx, f.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fetchError(key, err)
	}
	defer obj.Close()

	local, err := ws.Create(dir, file)
	if err != nil {
		return nil, newError(KindFetchFailed, key, "failed to create scratch file", err)
	}
	defer local.Close()

	// minio reports a missing object on the first read, not on GetObject.
	if _, err := io.Copy(local, obj); err != nil {
		return nil, fetchError(key, err)
	}
	if _, err := local.Seek(0, io.SeekStart); err != nil {
		return nil, newError(KindFetchFailed, key, "failed to rewind scratch file", err)
	}

	tbl, err := f.codec.Decode(ctx, local)
	if err != nil {
		return nil, newError(KindDecode, key, "object is not a readable table", err)
	}
	return tbl, nil
}

func fetchError(key string, err error) error {
	if storage.IsNotFound(err) {
		return newError(KindNotFound, key, "object does not exist", err)
	}
	return newError(KindFetchFailed, key, "failed to read object", err)
}
