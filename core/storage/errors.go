package storage

import (
	"context"
	"net/http"

	"github.com/minio/minio-go/v7"
)

// IsNotFound reports whether err is the store's answer for a missing object or bucket.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return resp.StatusCode == http.StatusNotFound
}

// Exists reports whether an object is present at objectName.
// A not-found answer is (false, nil); any other failure is returned as is.
func Exists(ctx context.Context, client Client, bucket, objectName string) (bool, error) {
	_, err := client.StatObject(ctx, bucket, objectName, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}
