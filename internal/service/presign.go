package service

import (
	"context"
	"log"
	"time"

	"github.com/helplink/api/pkg/storage"
)

const (
	// Identity documents get a long-lived link so the review UI can cache it.
	credentialURLExpiry = 7 * 24 * time.Hour
	// Ad-hoc file links are short-lived.
	fileURLExpiry = time.Hour
)

// presign returns a time-limited URL for an object key. An empty key or
// a presign failure yields an empty string; listings should not fail
// because one attachment could not be linked.
func presign(ctx context.Context, store storage.Storage, key string, expiry time.Duration) string {
	if key == "" {
		return ""
	}
	url, err := store.PresignedURL(ctx, key, expiry)
	if err != nil {
		log.Printf("⚠️  Failed to presign %s: %v", key, err)
		return ""
	}
	return url
}

// presignAll maps a slice of object keys to presigned URLs, dropping
// keys that fail to presign
func presignAll(ctx context.Context, store storage.Storage, keys []string, expiry time.Duration) []string {
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		if url := presign(ctx, store, key, expiry); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
