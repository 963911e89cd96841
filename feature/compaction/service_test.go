package compaction

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"parquet-compactor/core/storage"
	"parquet-compactor/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorderFunc func(ctx context.Context, summary *Summary) error

func (f recorderFunc) Record(ctx context.Context, summary *Summary) error {
	return f(ctx, summary)
}

func newTestService(t *testing.T, client storage.Client) *Service {
	t.Helper()
	cfg := Config{Concurrency: 2, WorkDir: t.TempDir(), Extension: ".parquet"}
	return NewService(client, testBucket, testCodec(t), cfg, zap.NewNop())
}

func hourRequest() Request {
	return Request{
		Username:    "u",
		Database:    "db",
		Table:       "events",
		StartDate:   "2025-02-10",
		EndDate:     "2025-02-10",
		Granularity: "hour",
	}
}

func TestService_Run_Hour(t *testing.T) {
	store := mocks.NewMemory(testBucket)
	putTable(t, store, "u/db/events/events_2025-02-10_10-30.parquet", col{"id", []int64{2}}, col{"v", []string{"b"}})
	putTable(t, store, "u/db/events/events_2025-02-10_10-00.parquet", col{"id", []int64{1}}, col{"v", []string{"a"}})
	putTable(t, store, "u/db/events/events_2025-02-10_11-15.parquet", col{"id", []int64{3}})
	putTable(t, store, "u/db/events/2025/02/10/events_2025-02-10_11.parquet", col{"id", []int64{0}})

	var recorded *Summary
	svc := newTestService(t, store)
	svc.SetRecorder(recorderFunc(func(ctx context.Context, s *Summary) error {
		recorded = s
		return nil
	}))

	summary, err := svc.Run(context.Background(), hourRequest())
	require.NoError(t, err)

	assert.True(t, summary.Succeeded())
	assert.Equal(t, 3, summary.Candidates)
	require.Len(t, summary.Groups, 2)
	assert.Equal(t, 2, summary.Count(StatusCompacted))
	assert.NotEmpty(t, summary.RunID)
	assert.Same(t, summary, recorded)

	first := summary.Groups[0]
	assert.Equal(t, "2025-02-10_10", first.PartitionKey)
	assert.Equal(t, hourDest, first.Destination)
	assert.Equal(t, int64(2), first.Rows)
	assert.False(t, first.MergedExisting)

	second := summary.Groups[1]
	assert.True(t, second.MergedExisting)
	assert.Equal(t, int64(2), second.Rows)

	assert.Equal(t, []string{
		"u/db/events/2025/02/10/events_2025-02-10_10.parquet",
		"u/db/events/2025/02/10/events_2025-02-10_11.parquet",
	}, store.Keys())

	got := readTable(t, store, hourDest)
	assert.Equal(t, []string{"id", "v"}, columnNames(got))
	assert.Equal(t, []int64{1, 2}, int64Column(t, got, "id"))
	assert.Equal(t, []int64{0, 3}, int64Column(t, readTable(t, store, "u/db/events/2025/02/10/events_2025-02-10_11.parquet"), "id"))

	// A second run finds nothing left to merge.
	again, err := svc.Run(context.Background(), hourRequest())
	require.NoError(t, err)
	assert.Empty(t, again.Groups)
	assert.Equal(t, 0, again.Candidates)
}

func TestService_Run_NoCandidates(t *testing.T) {
	store := mocks.NewMemory(testBucket)
	putTable(t, store, "u/db/events/events_2025-03-01_00-00.parquet", col{"id", []int64{1}})

	summary, err := newTestService(t, store).Run(context.Background(), hourRequest())
	require.NoError(t, err)
	assert.True(t, summary.Succeeded())
	assert.Empty(t, summary.Groups)
	assert.Equal(t, []string{"u/db/events/events_2025-03-01_00-00.parquet"}, store.Keys())
}

func TestService_Run_DryRun(t *testing.T) {
	store := mocks.NewMemory(testBucket)
	putTable(t, store, "u/db/events/events_2025-02-10_10-00.parquet", col{"id", []int64{1}})

	req := hourRequest()
	req.DryRun = true
	summary, err := newTestService(t, store).Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, summary.Groups, 1)
	assert.Equal(t, StatusPlanned, summary.Groups[0].Status)
	assert.Equal(t, hourDest, summary.Groups[0].Destination)
	assert.Equal(t, []string{"u/db/events/events_2025-02-10_10-00.parquet"}, summary.Groups[0].Sources)
	assert.Equal(t, []string{"u/db/events/events_2025-02-10_10-00.parquet"}, store.Keys())
}

func TestService_Run_InvalidRequestTouchesNothing(t *testing.T) {
	mockClient := new(mocks.Client)
	req := hourRequest()
	req.Granularity = "week"

	_, err := newTestService(t, mockClient).Run(context.Background(), req)
	assert.True(t, IsConfigError(err))
	mockClient.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Run_MissingBucket(t *testing.T) {
	store := mocks.NewMemory("another-bucket")

	_, err := newTestService(t, store).Run(context.Background(), hourRequest())
	assert.ErrorIs(t, err, ErrBucketNotFound)
}

func TestService_Run_GroupsAreIsolated(t *testing.T) {
	store := mocks.NewMemory(testBucket)
	putTable(t, store, "u/db/events/events_2025-02-10_10-00.parquet", col{"id", []int64{1}})
	store.Set("u/db/events/events_2025-02-10_11-00.parquet", []byte("corrupt"))
	putTable(t, store, "u/db/events/events_2025-02-10_11-30.parquet", col{"id", []int64{2}})

	summary, err := newTestService(t, store).Run(context.Background(), hourRequest())
	require.NoError(t, err)
	require.Len(t, summary.Groups, 2)

	assert.Equal(t, StatusCompacted, summary.Groups[0].Status)
	assert.Equal(t, StatusFailed, summary.Groups[1].Status)
	assert.Equal(t, KindDecode, summary.Groups[1].ErrorKind)
	assert.False(t, summary.Succeeded())

	// Failed group keeps its sources; no output for it.
	assert.Equal(t, []string{
		"u/db/events/2025/02/10/events_2025-02-10_10.parquet",
		"u/db/events/events_2025-02-10_11-00.parquet",
		"u/db/events/events_2025-02-10_11-30.parquet",
	}, store.Keys())
}

func TestService_Run_DeleteFailure(t *testing.T) {
	store := mocks.NewMemory(testBucket)
	putTable(t, store, "u/db/events/events_2025-02-10_10-00.parquet", col{"id", []int64{1}})
	putTable(t, store, "u/db/events/events_2025-02-10_10-30.parquet", col{"id", []int64{2}})
	store.RemoveErr["u/db/events/events_2025-02-10_10-30.parquet"] = errors.New("access denied")

	summary, err := newTestService(t, store).Run(context.Background(), hourRequest())
	require.NoError(t, err)
	require.Len(t, summary.Groups, 1)

	g := summary.Groups[0]
	assert.Equal(t, StatusUnreaped, g.Status)
	assert.Equal(t, KindDeleteFailed, g.ErrorKind)
	assert.Equal(t, []string{"u/db/events/events_2025-02-10_10-30.parquet"}, g.DeleteFailures)
	assert.False(t, summary.Succeeded())

	_, ok := store.Get(hourDest)
	assert.True(t, ok)
}

func TestService_Run_PublishFailureKeepsSources(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testCodec(t).Encode(&buf, buildTable(t, col{"id", []int64{1}})))
	data := buf.Bytes()

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "u/db/events/events_2025-02-10_10-00.parquet"}
	ch <- minio.ObjectInfo{Key: "u/db/events/events_2025-02-10_10-30.parquet"}
	close(ch)
	mockClient.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return((<-chan minio.ObjectInfo)(ch))
	for _, key := range []string{"u/db/events/events_2025-02-10_10-00.parquet", "u/db/events/events_2025-02-10_10-30.parquet"} {
		mockClient.On("GetObject", mock.Anything, testBucket, key, mock.Anything).
			Return(io.NopCloser(bytes.NewReader(data)), nil).Once()
	}
	mockClient.On("StatObject", mock.Anything, testBucket, hourDest, mock.Anything).
		Return(minio.ObjectInfo{}, mocks.NotFound(hourDest))
	mockClient.On("PutObject", mock.Anything, testBucket, hourDest, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("503 slow down"))

	cfg := Config{Concurrency: 1, WorkDir: t.TempDir(), Extension: ".parquet"}
	summary, err := NewService(mockClient, testBucket, testCodec(t), cfg, zap.NewNop()).Run(context.Background(), hourRequest())
	require.NoError(t, err)

	require.Len(t, summary.Groups, 1)
	assert.Equal(t, StatusFailed, summary.Groups[0].Status)
	assert.Equal(t, KindPublishFailed, summary.Groups[0].ErrorKind)
	mockClient.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Scratch files are gone once the run ends.
	entries, err := os.ReadDir(cfg.WorkDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_Run_RecorderFailureIsNotFatal(t *testing.T) {
	store := mocks.NewMemory(testBucket)
	putTable(t, store, "u/db/events/events_2025-02-10_10-00.parquet", col{"id", []int64{1}})

	svc := newTestService(t, store)
	svc.SetRecorder(recorderFunc(func(ctx context.Context, s *Summary) error {
		return errors.New("database is locked")
	}))

	summary, err := svc.Run(context.Background(), hourRequest())
	require.NoError(t, err)
	assert.True(t, summary.Succeeded())
}

func TestService_Run_DisjointSchemasKeepCommonColumn(t *testing.T) {
	store := mocks.NewMemory(testBucket)
	putTable(t, store, "user/db/table/table_2025-02-10_10-00.parquet", col{"a", []int64{1}}, col{"b", []int64{10}})
	putTable(t, store, "user/db/table/table_2025-02-10_10-15.parquet", col{"b", []int64{20}}, col{"c", []int64{2}})

	req := Request{
		Username:    "user",
		Database:    "db",
		Table:       "table",
		StartDate:   "2025-02-10",
		EndDate:     "2025-02-10",
		Granularity: "hour",
	}
	summary, err := newTestService(t, store).Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, summary.Groups, 1)
	assert.Equal(t, StatusCompacted, summary.Groups[0].Status)
	assert.Equal(t, "2025-02-10_10", summary.Groups[0].PartitionKey)

	dest := "user/db/table/2025/02/10/table_2025-02-10_10.parquet"
	assert.Equal(t, []string{dest}, store.Keys())

	got := readTable(t, store, dest)
	assert.Equal(t, []string{"b"}, columnNames(got))
	assert.Equal(t, []int64{10, 20}, int64Column(t, got, "b"))
}
