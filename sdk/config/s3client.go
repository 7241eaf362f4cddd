// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// multipart above this size
const multipartThreshold = 100 * 1024 * 1024

type S3Client struct {
	s3 *s3.Client
}

func NewS3Client(ctx context.Context, cfgCreds S3Config) (*S3Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfgCreds.Region),
	}
	if cfgCreds.AccessKey != "" {
		creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfgCreds.AccessKey,
			cfgCreds.SecretKey,
			cfgCreds.AccessToken,
		))
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Options := func(o *s3.Options) {
		if cfgCreds.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfgCreds.EndpointURL)
			o.UsePathStyle = true // most S3-compatible stores need this
		}
	}

	return &S3Client{
		s3: s3.NewFromConfig(cfg, s3Options),
	}, nil
}

// ObjectSizes maps every key under prefix to its size.
func (c *S3Client) ObjectSizes(ctx context.Context, bucket, prefix string) (map[string]int64, error) {
	sizes := map[string]int64{}
	p := s3.NewListObjectsV2Paginator(c.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in S3: %w", err)
		}
		for _, obj := range page.Contents {
			sizes[aws.ToString(obj.Key)] = aws.ToInt64(obj.Size)
		}
	}
	return sizes, nil
}

/* -------------------- PROGRESS HOOK -------------------- */

type ProgressHook struct {
	OnStart    func(key string, totalBytes int64)
	OnProgress func(key string, written, totalBytes int64)
	OnDone     func(key string, totalBytes int64, took time.Duration)
}

type progressReader struct {
	r          io.Reader
	key        string
	total      int64
	read       int64
	lastEmit   time.Time
	interval   time.Duration
	onProgress func(key string, written, total int64)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.read += int64(n)
	now := time.Now()
	if pr.onProgress != nil && n > 0 && (pr.read == pr.total || now.Sub(pr.lastEmit) >= pr.interval) {
		pr.onProgress(pr.key, pr.read, pr.total)
		pr.lastEmit = now
	}
	return n, err
}

/* -------------------- UPLOAD -------------------- */

// PutObject uploads body (size bytes) under key, switching to the multipart
// manager for large objects.
func (c *S3Client) PutObject(
	ctx context.Context,
	bucket, key string,
	body io.ReadSeeker,
	size int64,
	hook *ProgressHook,
) error {
	head := make([]byte, 512)
	n, _ := io.ReadFull(body, head)
	mime := http.DetectContentType(head[:n])
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind error: %w", err)
	}

	if hook != nil && hook.OnStart != nil {
		hook.OnStart(key, size)
	}
	pr := &progressReader{r: body, key: key, total: size, interval: 250 * time.Millisecond}
	if hook != nil {
		pr.onProgress = hook.OnProgress
	}

	start := time.Now()
	var err error
	if size > multipartThreshold {
		_, err = manager.NewUploader(c.s3).Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        pr,
			ContentType: aws.String(mime),
		})
	} else {
		_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(bucket),
			Key:           aws.String(key),
			Body:          pr,
			ContentLength: aws.Int64(size),
			ContentType:   aws.String(mime),
		})
	}
	if err != nil {
		return fmt.Errorf("upload of %s failed: %w", key, err)
	}
	if hook != nil && hook.OnDone != nil {
		hook.OnDone(key, size, time.Since(start))
	}
	return nil
}
