package mocks

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
)

// Memory is an in-memory storage.Client holding a single bucket.
// Failures can be injected per object key.
type Memory struct {
	Bucket string

	mu      sync.Mutex
	objects map[string][]byte

	// PutErr, GetErr and RemoveErr return an error for the given key.
	PutErr    map[string]error
	GetErr    map[string]error
	RemoveErr map[string]error
	// ListErr is sent on the listing channel after every object.
	ListErr error
}

// NewMemory creates an empty in-memory store for bucket.
func NewMemory(bucket string) *Memory {
	return &Memory{
		Bucket:    bucket,
		objects:   make(map[string][]byte),
		PutErr:    make(map[string]error),
		GetErr:    make(map[string]error),
		RemoveErr: make(map[string]error),
	}
}

// NotFound builds the error minio returns for a missing key.
func NotFound(key string) error {
	return minio.ErrorResponse{
		Code:       "NoSuchKey",
		Message:    "The specified key does not exist.",
		Key:        key,
		StatusCode: http.StatusNotFound,
	}
}

// Set stores data at key.
func (m *Memory) Set(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
}

// Get returns the data at key.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}

// Keys returns every stored key, sorted.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Memory) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return bucketName == m.Bucket, nil
}

func (m *Memory) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if err := m.PutErr[objectName]; err != nil {
		return minio.UploadInfo{}, err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.Set(objectName, data)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(data))}, nil
}

func (m *Memory) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	if err := m.GetErr[objectName]; err != nil {
		return nil, err
	}
	data, ok := m.Get(objectName)
	if !ok {
		return nil, NotFound(objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	data, ok := m.Get(objectName)
	if !ok {
		return minio.ObjectInfo{}, NotFound(objectName)
	}
	return minio.ObjectInfo{Key: objectName, Size: int64(len(data)), LastModified: time.Now()}, nil
}

func (m *Memory) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	var infos []minio.ObjectInfo
	for _, key := range m.Keys() {
		if !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		if !opts.Recursive && strings.Contains(strings.TrimPrefix(key, opts.Prefix), "/") {
			continue
		}
		data, _ := m.Get(key)
		infos = append(infos, minio.ObjectInfo{Key: key, Size: int64(len(data))})
	}
	listErr := m.ListErr

	go func() {
		defer close(ch)
		for _, info := range infos {
			select {
			case ch <- info:
			case <-ctx.Done():
				return
			}
		}
		if listErr != nil {
			select {
			case ch <- minio.ObjectInfo{Err: listErr}:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}

func (m *Memory) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	if err := m.RemoveErr[objectName]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectName)
	return nil
}
