// Package blob delegates raw file bytes to an S3-compatible object store and
// produces time-limited retrieval links. The API layer never proxies download
// bytes; clients fetch blobs directly via presigned URLs.
package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/mihailvs/docshare/internal/server/config"
)

// Gateway stores uploaded blobs and issues signed retrieval URLs.
type Gateway interface {
	Store(ctx context.Context, key string, contentType string, body io.Reader) error
	PresignGetURL(ctx context.Context, key string) (string, error)
}

// Seams for tests; production code never touches these.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// MakeStorageKey generates an object key from the upload timestamp and the
// original filename. Two files sharing the exact millisecond and name would
// collide; at this scale the window is accepted.
func MakeStorageKey(filename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filename)
}

// S3Gateway talks to an S3-compatible backend (AWS or MinIO) using static
// credentials and an optional base endpoint override.
type S3Gateway struct {
	config *sc.Config
}

func NewS3Gateway(config *sc.Config) *S3Gateway {
	return &S3Gateway{config: config}
}

func (g *S3Gateway) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(g.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			g.config.S3AccessKeyID,
			g.config.S3SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(g.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Store writes the blob under key with the given content type.
func (g *S3Gateway) Store(ctx context.Context, key string, contentType string, body io.Reader) error {

	client, err := g.getClient(ctx)
	if err != nil {
		return err
	}

	bucket := g.config.S3Bucket

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})

	return err
}

// PresignGetURL produces a pre-authorized GET link for key, valid for the
// configured signed-URL lifetime.
func (g *S3Gateway) PresignGetURL(ctx context.Context, key string) (string, error) {

	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := g.config.S3Bucket

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(g.config.SignedURLValidityDuration))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
