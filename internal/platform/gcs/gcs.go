package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// New opens a storage client. Without a credentials file the client falls
// back to Application Default Credentials. The bucket is not probed here:
// upload-only service accounts lack storage.buckets.get.
func New(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("open gcs client failed: %w", err)
	}
	return client, nil
}
