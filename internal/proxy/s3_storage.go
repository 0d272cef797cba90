package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

// s3API is the part of the S3 client the storage uses
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage uploads files as public objects keyed by file name
type S3Storage struct {
	client s3API
	bucket string
	region string
	logger *zap.Logger
}

var _ domain.FileUploader = (*S3Storage)(nil)

// NewS3Storage creates a storage backed by an S3 client built from cfg
func NewS3Storage(cfg aws.Config, bucket string, logger *zap.Logger) *S3Storage {
	return newS3Storage(s3.NewFromConfig(cfg), bucket, cfg.Region, logger)
}

func newS3Storage(client s3API, bucket, region string, logger *zap.Logger) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, region: region, logger: logger}
}

// SaveFile uploads file and returns its public URL
func (s *S3Storage) SaveFile(ctx context.Context, file domain.File) (string, error) {
	if file.Name == "" {
		return "", errors.New("file name is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(file.Name),
		ACL:         types.ObjectCannedACLPublicRead,
		Body:        file.Body,
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		s.logger.Error("failed to upload object",
			zap.String("bucket", s.bucket),
			zap.String("key", file.Name),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload %s: %w", file.Name, err)
	}

	return s.objectURL(file.Name), nil
}

// SaveLocalFile uploads a temporary file from disk and removes it afterwards
func (s *S3Storage) SaveLocalFile(ctx context.Context, path, contentType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}

	objectURL, err := s.SaveFile(ctx, domain.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Body:        f,
	})
	_ = f.Close()
	if err != nil {
		return "", err
	}

	if err := os.Remove(path); err != nil {
		s.logger.Warn("failed to remove uploaded file", zap.String("path", path), zap.Error(err))
	}
	return objectURL, nil
}

func (s *S3Storage) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, url.PathEscape(key))
}
