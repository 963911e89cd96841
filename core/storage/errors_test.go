package storage_test

import (
	"context"
	"errors"
	"testing"

	"parquet-compactor/core/storage"
	"parquet-compactor/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"NoSuchKey", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}, true},
		{"Status 404", minio.ErrorResponse{StatusCode: 404}, true},
		{"Access denied", minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}, false},
		{"Plain error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.IsNotFound(tt.err))
		})
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()

	t.Run("Present", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "bucket", "a.parquet", mock.Anything).Return(minio.ObjectInfo{Key: "a.parquet"}, nil)

		ok, err := storage.Exists(ctx, client, "bucket", "a.parquet")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Absent", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "bucket", "a.parquet", mock.Anything).Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

		ok, err := storage.Exists(ctx, client, "bucket", "a.parquet")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Store failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "bucket", "a.parquet", mock.Anything).Return(minio.ObjectInfo{}, errors.New("timeout"))

		ok, err := storage.Exists(ctx, client, "bucket", "a.parquet")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
