// Package archive ships finished report workbooks to S3 compatible
// storage, the center keeps a copy after chat delivery.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/logoscenter/logos-bot/internal/config"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Enabled reports whether report archiving is configured at all.
func Enabled(cfg config.Config) bool {
	return cfg.S3_BUCKET != "" && cfg.S3_ENDPOINT != ""
}

type Client struct {
	s3     *s3.Client
	bucket string
	log    *slog.Logger
}

func New(cfg config.Config) (*Client, error) {
	if cfg.S3_KEY_ID == "" {
		return nil, fmt.Errorf("S3_KEY_ID env var is undefined")
	}
	if cfg.S3_SECRET_KEY == "" {
		return nil, fmt.Errorf("S3_SECRET_KEY env var is undefined")
	}
	if cfg.S3_ENDPOINT == "" {
		return nil, fmt.Errorf("S3_ENDPOINT env var is undefined")
	}
	if cfg.S3_BUCKET == "" {
		return nil, fmt.Errorf("S3_BUCKET env var is undefined")
	}

	endpoint := cfg.S3_ENDPOINT
	client := s3.New(s3.Options{
		Region:           "us-east-1",
		BaseEndpoint:     &endpoint,
		Credentials:      credentials.NewStaticCredentialsProvider(cfg.S3_KEY_ID, cfg.S3_SECRET_KEY, ""),
		UsePathStyle:     true,
		RetryMaxAttempts: 5,
	})

	return &Client{s3: client, bucket: cfg.S3_BUCKET, log: slog.Default()}, nil
}

// NewDirect creates a Client with explicitly provided dependencies.
func NewDirect(s3Client *s3.Client, bucket string, log *slog.Logger) *Client {
	return &Client{s3: s3Client, bucket: bucket, log: log}
}

// UploadReport stores the workbook under reports/<filename>.
func (c *Client) UploadReport(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}
	defer file.Close()

	key := "reports/" + filepath.Base(path)
	contentType := workbookContentType

	start := time.Now()
	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        file,
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("uploading report to s3: %w", err)
	}

	c.log.Info(fmt.Sprintf("s3 upload time: %dms", time.Since(start).Milliseconds()), "key", key)
	return nil
}
