package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vidsummary/backend/internal/config"
)

// Uploader is the subset of manager.Uploader used by S3Archive.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Archive stores raw model output in an S3-compatible bucket, one private object per summary.
type S3Archive struct {
	uploader Uploader
	bucket   string
}

// NewS3Archive configures an uploader targeting the archive bucket.
func NewS3Archive(ctx context.Context, cfg config.ArchiveConfig) (*S3Archive, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("s3 archive: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.LeavePartsOnError = false
	})

	return NewS3ArchiveWithUploader(uploader, cfg.Bucket), nil
}

// NewS3ArchiveWithUploader builds an archive around an existing uploader.
func NewS3ArchiveWithUploader(uploader Uploader, bucket string) *S3Archive {
	return &S3Archive{uploader: uploader, bucket: bucket}
}

// Key returns the object key for a summary's raw output.
func Key(userID, summaryID string) string {
	return fmt.Sprintf("%s/%s.txt", strings.Trim(userID, "/"), strings.Trim(summaryID, "/"))
}

// Archive uploads the raw text under <userID>/<summaryID>.txt.
func (a *S3Archive) Archive(ctx context.Context, userID, summaryID, raw string) error {
	if userID == "" || summaryID == "" {
		return fmt.Errorf("s3 archive: user and summary ids are required")
	}
	key := Key(userID, summaryID)

	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(raw),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("s3 archive upload %s: %w", key, err)
	}
	return nil
}
