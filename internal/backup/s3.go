package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sealvault/sealvault-core/internal/logging"
)

// listPrefix narrows remote listings to backup archives.
const listPrefix = "sealvault_backup_"

// S3Config holds the settings for an S3-compatible backup bucket.
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// s3API is the slice of the S3 client used by S3Storage. *s3.Client
// satisfies it; tests substitute a stub.
type s3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage implements Storage on an S3-compatible bucket. Per the Storage
// contract every operation reports a boolean; underlying errors are logged,
// never surfaced.
type S3Storage struct {
	client s3API
	bucket string
	log    logging.Logger
}

// NewS3Storage builds an S3Storage from static credentials and a base
// endpoint, which covers both AWS itself and self-hosted S3-compatible
// backends.
func NewS3Storage(ctx context.Context, cfg S3Config, log logging.Logger) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.RootUser,
			cfg.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		// Self-hosted backends are commonly path-style.
		o.UsePathStyle = true
	})

	return newS3Storage(client, cfg.Bucket, log), nil
}

func newS3Storage(client s3API, bucket string, log logging.Logger) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, log: log}
}

func (s *S3Storage) IsUploaded(ctx context.Context, name string) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var notFound *types.NotFound
		if !errors.As(err, &notFound) {
			s.log.Warn(ctx, "backup presence check failed", "file_name", name, "error", err)
		}
		return false
	}
	return true
}

func (s *S3Storage) ListBackupFileNames(ctx context.Context) []string {
	var names []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(listPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			s.log.Warn(ctx, "backup listing failed", "error", err)
			return nil
		}
		for _, object := range page.Contents {
			if object.Key != nil {
				names = append(names, *object.Key)
			}
		}
	}

	return names
}

func (s *S3Storage) CopyToStorage(ctx context.Context, path string, name string) bool {
	file, err := os.Open(path)
	if err != nil {
		s.log.Warn(ctx, "backup upload failed to open local file", "path", path, "error", err)
		return false
	}
	defer file.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   file,
	})
	if err != nil {
		s.log.Warn(ctx, "backup upload failed", "file_name", name, "error", err)
		return false
	}
	return true
}

func (s *S3Storage) CopyFromStorage(ctx context.Context, name string, path string) bool {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		s.log.Warn(ctx, "backup download failed", "file_name", name, "error", err)
		return false
	}
	defer output.Body.Close()

	file, err := os.Create(path)
	if err != nil {
		s.log.Warn(ctx, "backup download failed to create local file", "path", path, "error", err)
		return false
	}
	defer file.Close()

	if _, err := io.Copy(file, output.Body); err != nil {
		s.log.Warn(ctx, "backup download failed to write local file", "path", path, "error", err)
		return false
	}
	return true
}

func (s *S3Storage) DeleteBackup(ctx context.Context, name string) bool {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		s.log.Warn(ctx, "backup delete failed", "file_name", name, "error", err)
		return false
	}
	return true
}
