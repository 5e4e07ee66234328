package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectStore is the slice of the MinIO client the archive needs. It lets
// tests run without a MinIO server.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// minioActivityArchive writes purged activity entries as one JSON Lines
// object per cleanup run.
type minioActivityArchive struct {
	api    objectStore
	bucket string
	now    func() time.Time
}

// NewActivityArchive returns the archive configured by cfg. When no endpoint
// is configured a no-op archive is returned.
func NewActivityArchive(ctx context.Context, cfg config.Archive, log *logger.Logger) (ActivityArchive, error) {
	if !cfg.Enabled() {
		log.Info().Str("func", "NewActivityArchive").Msg("activity archive is disabled")
		return noopActivityArchive{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Err(err).Str("func", "NewActivityArchive").Msg("failed to create minio client")
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newMinioActivityArchive(ctx, client, cfg.Bucket)
}

func newMinioActivityArchive(ctx context.Context, api objectStore, bucket string) (*minioActivityArchive, error) {
	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err = api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &minioActivityArchive{
		api:    api,
		bucket: bucket,
		now:    time.Now,
	}, nil
}

// Archive uploads entries as activity/<timestamp>.jsonl. Nothing is written
// for an empty slice.
func (a *minioActivityArchive) Archive(ctx context.Context, entries []models.ActivityEntry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return "", fmt.Errorf("%w: %w", ErrArchiveFailed, err)
		}
	}

	objectName := fmt.Sprintf("activity/%s.jsonl", a.now().UTC().Format("20060102T150405.000000000Z"))

	_, err := a.api.PutObject(ctx, a.bucket, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/x-ndjson",
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*minioActivityArchive.Archive").
			Str("object", objectName).
			Int("entries", len(entries)).
			Msg("failed to upload activity archive")
		return "", fmt.Errorf("%w: %w", ErrArchiveFailed, err)
	}

	return objectName, nil
}

type noopActivityArchive struct{}

func (noopActivityArchive) Archive(context.Context, []models.ActivityEntry) (string, error) {
	return "", nil
}
