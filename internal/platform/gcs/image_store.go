package gcs

import (
	"context"
	"fmt"
	"net/url"

	"cloud.google.com/go/storage"
)

const publicHost = "https://storage.googleapis.com"

// ImageStore writes uploaded leaf images to one bucket and makes them
// world-readable.
type ImageStore struct {
	bucket *storage.BucketHandle
	name   string
}

func NewImageStore(client *storage.Client, bucket string) *ImageStore {
	return &ImageStore{
		bucket: client.Bucket(bucket),
		name:   bucket,
	}
}

// Save uploads data as object name, grants allUsers read access and returns
// the public URL.
func (s *ImageStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	obj := s.bucket.Object(name)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s failed: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s failed: %w", name, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("make object %s public failed: %w", name, err)
	}

	return PublicURL(s.name, name), nil
}

func (s *ImageStore) Delete(ctx context.Context, name string) error {
	if err := s.bucket.Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %s failed: %w", name, err)
	}
	return nil
}

// PublicURL is the anonymous download URL of object in bucket.
func PublicURL(bucket, object string) string {
	return fmt.Sprintf("%s/%s/%s", publicHost, bucket, url.PathEscape(object))
}
