// Package archive keeps a copy of exported reports in an S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"library-admin/internal/config"
	"library-admin/internal/timeutil"
)

// Uploader stores report files under a date-partitioned prefix.
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// New builds an uploader from the archive settings. Static keys are used
// when configured; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Archive.Region),
	}
	if cfg.Archive.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("configure archive client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{client: client, bucket: cfg.Archive.Bucket, prefix: cfg.Archive.Prefix}, nil
}

// Key places name under prefix/YYYY/MM/.
func Key(prefix, name string, t time.Time) string {
	t = t.In(timeutil.Location)
	return path.Join(strings.Trim(prefix, "/"), t.Format("2006"), t.Format("01"), name)
}

// Upload stores data and returns the object key.
func (u *Uploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := Key(u.prefix, name, timeutil.Now())

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("[Archive] Uploaded %s (%d bytes)", key, len(data))
	return key, nil
}
