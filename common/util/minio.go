package util

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sunthewhat/easy-cert-generator/type/shared"
)

// IArchiveStore keeps generated archives somewhere downloadable.
type IArchiveStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	// ListBefore returns the objects under prefix last modified before cutoff.
	ListBefore(ctx context.Context, prefix string, cutoff time.Time) ([]string, error)
}

// Ensure MinIOArchiveStore implements IArchiveStore
var _ IArchiveStore = (*MinIOArchiveStore)(nil)

type MinIOArchiveStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func NewMinIOArchiveStore(cfg shared.MinIOConfig) (*MinIOArchiveStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("MinIO configuration is incomplete")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return &MinIOArchiveStore{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		useSSL:   cfg.UseSSL,
	}, nil
}

func (s *MinIOArchiveStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	// Ensure bucket exists and has public read policy
	if err := s.ensureBucketPublic(ctx); err != nil {
		slog.Warn("Failed to ensure bucket is public", "error", err, "bucket", s.bucket)
	}

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	url := s.ObjectURL(objectName)
	slog.Info("File uploaded to MinIO", "object", objectName, "contentType", contentType, "url", url)
	return url, nil
}

func (s *MinIOArchiveStore) Delete(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *MinIOArchiveStore) ListBefore(ctx context.Context, prefix string, cutoff time.Time) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return names, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if obj.LastModified.Before(cutoff) {
			names = append(names, obj.Key)
		}
	}
	return names, nil
}

func (s *MinIOArchiveStore) ObjectURL(objectName string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName)
}

func (s *MinIOArchiveStore) ensureBucketPublic(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": "*",
				"Action": "s3:GetObject",
				"Resource": "arn:aws:s3:::%s/*"
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

// ArchiveObjectName places each upload under its own timestamped prefix so
// repeated runs for the same course do not overwrite each other. Both the
// session id and the file name are reduced to a single path element, so the
// key always stays under ArchivePrefix.
func ArchiveObjectName(sessionID, filename string, now time.Time) string {
	return path.Join(
		ArchivePrefix,
		objectElement(sessionID, "session"),
		now.UTC().Format("20060102T150405Z"),
		objectElement(filename, "archive.zip"),
	)
}

func objectElement(name, fallback string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	switch name {
	case ".", "..", "/":
		return fallback
	}
	return name
}
