package maintenance

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/config"
)

// Uploader ships a backup file to remote storage.
type Uploader interface {
	Upload(ctx context.Context, path, key string) error
}

// maxUploadRetries bounds upload attempts per backup.
const maxUploadRetries = 3

// S3Uploader uploads backups to an S3-compatible endpoint (MinIO in the
// default deployment) with fibonacci backoff between attempts.
type S3Uploader struct {
	cfg    *config.Config
	logger logging.Logger
}

func NewS3Uploader(cfg *config.Config, logger logging.Logger) *S3Uploader {
	return &S3Uploader{cfg: cfg, logger: logger.With("component", "s3uploader")}
}

func (u *S3Uploader) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(u.cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.S3RootUser,     // MINIO_ROOT_USER
			u.cfg.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Upload puts the file at path into the configured bucket under key.
// Each attempt gets its own deadline; transient failures are retried up to
// maxUploadRetries times.
func (u *S3Uploader) Upload(ctx context.Context, path, key string) error {
	client, err := u.client(ctx)
	if err != nil {
		return err
	}

	backoff := retry.WithMaxRetries(maxUploadRetries, retry.NewFibonacci(time.Second))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		attemptCtx, cancel := context.WithTimeout(ctx, u.cfg.S3UploadTimeout)
		defer cancel()

		_, err = client.PutObject(attemptCtx, &s3.PutObjectInput{
			Bucket: aws.String(u.cfg.S3Bucket),
			Key:    aws.String(key),
			Body:   f,
		})
		if err != nil {
			u.logger.Warn(ctx, "upload attempt failed", "key", key, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
