package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"file-share-api/config"
	"file-share-api/internal/application/ports"
)

type Client struct {
	logger *zap.Logger
	api    *s3.Client
	region string
	bucket string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			// minio and other S3-compatible stores
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("s3 client ready", zap.String("bucket", cfg.BucketUploads))

	return &Client{
		logger: logger,
		api:    api,
		region: cfg.Region,
		bucket: cfg.BucketUploads,
	}, nil
}

func (c *Client) Upload(ctx context.Context, body io.Reader, key, contentType string, size int64) (*ports.BlobUpload, error) {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 put object: %w", err)
	}

	return &ports.BlobUpload{
		URL:        c.objectURL("http", key),
		SecureURL:  c.objectURL("https", key),
		ProviderID: key,
		SizeBytes:  uint64(size),
	}, nil
}

func (c *Client) Delete(ctx context.Context, providerID string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(providerID),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object: %w", err)
	}
	return nil
}

func (c *Client) GetPublicURL(key string) string { return c.objectURL("https", key) }
func (c *Client) GetBucket() string              { return c.bucket }

func (c *Client) objectURL(scheme, key string) string {
	return fmt.Sprintf("%s://%s.s3.%s.amazonaws.com/%s", scheme, c.bucket, c.region, key)
}
