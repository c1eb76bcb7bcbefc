package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/raushankrgupta/retailnext/models"
)

const presignExpiry = time.Hour

// S3Archiver uploads images to a bucket and hands out presigned GET URLs.
type S3Archiver struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Archiver loads the default AWS credential chain for region.
func NewS3Archiver(ctx context.Context, region, bucket string) (*S3Archiver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return NewS3ArchiverFromClient(s3.NewFromConfig(cfg), bucket), nil
}

// NewS3ArchiverFromClient wraps an existing client.
func NewS3ArchiverFromClient(client *s3.Client, bucket string) *S3Archiver {
	return &S3Archiver{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}
}

func (a *S3Archiver) Archive(ctx context.Context, img *models.GeneratedImage) (string, error) {
	data, contentType, err := payload(ctx, img)
	if err != nil {
		return "", err
	}

	key := newKey(contentType)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("bucket", a.bucket).Str("key", key).Msg("Uploaded generated image")
	return key, nil
}

func (a *S3Archiver) URL(ctx context.Context, key string) (string, error) {
	req, err := a.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return req.URL, nil
}
