package icons

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"icon-builder/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Publisher uploads produced artifacts to object storage so downstream
// services can pick them up without filesystem access to the build host.
type Publisher struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewPublisher creates a publisher targeting the given bucket.
func NewPublisher(client storage.Client, bucket string, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, bucket: bucket, logger: logger}
}

// Publish uploads the artifact file under objectName, creating the bucket on
// first use.
func (p *Publisher) Publish(ctx context.Context, artifactPath, objectName string) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	f, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat artifact: %w", err)
	}

	contentType := "application/zip"
	if filepath.Ext(objectName) == ".json" {
		contentType = "application/json"
	}

	if _, err := p.client.PutObject(ctx, p.bucket, objectName, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return fmt.Errorf("failed to upload artifact: %w", err)
	}

	p.logger.Info("artifact published",
		zap.String("bucket", p.bucket),
		zap.String("object", objectName),
		zap.Int64("bytes", info.Size()))
	return nil
}
