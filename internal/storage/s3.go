package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/supplychain-service/internal/config"
)

// Uploader issues presigned PUT URLs so clients upload directly to object
// storage without ever seeing long-lived credentials. The presign client is
// built once at startup and shared across requests.
type Uploader struct {
	presign *s3.PresignClient
	cfg     config.StorageConfig
}

// NewUploader builds the S3 presign client from service configuration.
func NewUploader(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("object storage configured",
		zap.String("bucket", cfg.Bucket),
		zap.String("region", cfg.Region))
	return &Uploader{presign: s3.NewPresignClient(client), cfg: cfg}, nil
}

// PresignedUpload returns a time-limited upload URL plus the public URL the
// object will have once uploaded.
func (u *Uploader) PresignedUpload(ctx context.Context, fileName, fileType, folder string) (string, string, error) {
	key := storageKey(folder, fileName)

	req, err := u.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(u.cfg.PresignTTL()))
	if err != nil {
		return "", "", err
	}

	return req.URL, u.fileURL(key), nil
}

func (u *Uploader) fileURL(key string) string {
	if u.cfg.BaseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.cfg.BaseEndpoint, "/"), u.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}

// storageKey builds a date-partitioned random key; the uuid prefix keeps
// concurrent uploads of identically named files from colliding.
func storageKey(folder, fileName string) string {
	d := time.Now()
	name := sanitizeFileName(fileName)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%d/%02d/%02d/%s-%s", folder, d.Year(), int(d.Month()), d.Day(), uuid.NewString(), name)
}

func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		name = "file"
	}
	return name
}
