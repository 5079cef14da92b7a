package backup

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/config"
)

var errUpload = &apperr.Error{
	Message: "uploading backup to s3://%s failed",
	Kind:    apperr.Persistence,
}

// Replaced in tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(ctx context.Context, c *s3.Client, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}
)

// Key returns the object key for a backup file of userID.
func Key(cfg config.S3Config, userID, fileName string) string {
	return path.Join(cfg.Prefix, userID, fileName)
}

// Upload stores data under key in the configured bucket. Static credentials
// are used when an access key is configured; otherwise the default AWS
// credential chain applies. A custom endpoint switches to path-style
// addressing for MinIO and similar services.
func Upload(ctx context.Context, cfg config.S3Config, key string, data []byte) error {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return errUpload.Fmt(cfg.Bucket).Wrap(err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	err = putObject(ctx, client, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errUpload.Fmt(cfg.Bucket).Wrap(err)
	}

	return nil
}
