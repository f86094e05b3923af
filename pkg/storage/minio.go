package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage defines the interface for file storage operations
type Storage interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error)
	Delete(ctx context.Context, objectName string) error
	GetPublicURL(objectName string) string
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// UploadResult contains the result of a file upload
type UploadResult struct {
	URL      string
	Key      string // object key in storage
	FileName string
	FileSize int64
	MimeType string
}

// MinIOStorage implements Storage interface using MinIO
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	endpoint  string
	publicURL string // External URL
	useSSL    bool
}

// Config holds MinIO connection configuration
type Config struct {
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinIO creates a new MinIO storage client
func NewMinIO(cfg Config) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	// Ensure bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("📦 Created MinIO bucket: %s", cfg.Bucket)
	}

	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		endpoint:  cfg.Endpoint,
		publicURL: cfg.PublicURL,
		useSSL:    cfg.UseSSL,
	}, nil
}

// Upload uploads a file to MinIO under a date-partitioned unique key
func (s *MinIOStorage) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	ext := filepath.Ext(header.Filename)
	uniqueName := fmt.Sprintf("%s/%s/%s%s",
		folder,
		time.Now().Format("2006/01/02"),
		uuid.New().String(),
		ext,
	)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = detectContentType(ext)
	}

	_, err := s.client.PutObject(ctx, s.bucket, uniqueName, file, header.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &UploadResult{
		URL:      s.GetPublicURL(uniqueName),
		Key:      uniqueName,
		FileName: header.Filename,
		FileSize: header.Size,
		MimeType: contentType,
	}, nil
}

// Delete removes a file from MinIO
func (s *MinIOStorage) Delete(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// GetPublicURL returns the public URL for an object
func (s *MinIOStorage) GetPublicURL(objectName string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.publicURL, "/"), s.bucket, objectName)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName)
}

// PresignedURL returns a time-limited download URL for a private object.
// The bucket stays private; identity documents and proofs are only ever
// served through links minted here.
func (s *MinIOStorage) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", objectName, err)
	}
	return u.String(), nil
}

// UploadFromReader uploads from an io.Reader (useful for internal operations)
func (s *MinIOStorage) UploadFromReader(ctx context.Context, reader io.Reader, size int64, objectName, contentType string) (*UploadResult, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &UploadResult{
		URL:      s.GetPublicURL(objectName),
		Key:      objectName,
		MimeType: contentType,
	}, nil
}

// detectContentType returns MIME type based on file extension
func detectContentType(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
