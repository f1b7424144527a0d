package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStorage defines the interface for storing uploaded images
type ObjectStorage interface {
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// S3StorageService stores uploads in an S3 bucket and returns public URLs
type S3StorageService struct {
	client        *s3.Client
	bucket        string
	keyPrefix     string
	publicBaseURL string
	region        string
	logger        *slog.Logger
}

// NewS3StorageService creates a new S3-backed storage service
func NewS3StorageService(region, bucket, keyPrefix, publicBaseURL string, logger *slog.Logger) (*S3StorageService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3StorageService{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		keyPrefix:     strings.Trim(keyPrefix, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		region:        region,
		logger:        logger,
	}, nil
}

// UploadImage writes the image under a fresh key and returns its public URL
func (s *S3StorageService) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", s.keyPrefix, uuid.New().String(), strings.ToLower(path.Ext(filename)))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("failed to upload image to s3",
			slog.String("key", key), slog.Any("error", err))
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.Info("image uploaded", slog.String("key", key))
	return s.publicURL(key), nil
}

func (s *S3StorageService) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
