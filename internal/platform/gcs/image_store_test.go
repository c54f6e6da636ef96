package gcs

import "testing"

func TestPublicURL(t *testing.T) {
	tests := []struct {
		bucket string
		object string
		want   string
	}{
		{"leaf-images", "0b8f2c1e-7a4d-4f7e-9c1a-3e2b5d6f7a8b.jpg", "https://storage.googleapis.com/leaf-images/0b8f2c1e-7a4d-4f7e-9c1a-3e2b5d6f7a8b.jpg"},
		{"leaf-images", "with space.jpg", "https://storage.googleapis.com/leaf-images/with%20space.jpg"},
	}

	for _, tt := range tests {
		if got := PublicURL(tt.bucket, tt.object); got != tt.want {
			t.Errorf("PublicURL(%q, %q) = %q, expected %q", tt.bucket, tt.object, got, tt.want)
		}
	}
}
