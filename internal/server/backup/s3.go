// Package backup archives sealed vault envelopes in S3-compatible object
// storage and hands out short-lived download links for them. Only the
// envelope is ever uploaded; the server has no plaintext to leak.
package backup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophvault/internal/server/config"
	"github.com/google/uuid"
)

// LinkTTL is how long a presigned download link stays valid.
const LinkTTL = 15 * time.Minute

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Exporter stores an envelope on behalf of userID and returns a URL it can
// be downloaded from.
type Exporter interface {
	Export(ctx context.Context, userID, envelope string) (string, error)
}

// S3Exporter is an Exporter backed by an S3 bucket (MinIO in development).
type S3Exporter struct {
	region       string
	accessKey    string
	secretKey    string
	bucket       string
	baseEndpoint string
}

func NewS3Exporter(cfg *config.Config) *S3Exporter {
	return &S3Exporter{
		region:       cfg.S3Region,
		accessKey:    cfg.S3RootUser,
		secretKey:    cfg.S3RootPassword,
		bucket:       cfg.S3Bucket,
		baseEndpoint: cfg.S3BaseEndpoint,
	}
}

// ObjectKey builds a unique key for one export of userID's vault.
func ObjectKey(userID string, now time.Time) string {
	return fmt.Sprintf("vaults/%s/%d/%02d/%02d/%s.vault", userID, now.Year(), now.Month(), now.Day(), uuid.New())
}

func (e *S3Exporter) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(e.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.accessKey,
			e.secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(e.baseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export uploads envelope and presigns a GET for the new object.
func (e *S3Exporter) Export(ctx context.Context, userID, envelope string) (string, error) {
	c, err := e.client(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 config: %w", err)
	}

	key := ObjectKey(userID, time.Now().UTC())

	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(envelope),
		ContentType: aws.String("text/plain"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put: %w", err)
	}

	req, err := presignGetObject(s3.NewPresignClient(c), ctx, &s3.GetObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(LinkTTL))
	if err != nil {
		return "", fmt.Errorf("s3 presign: %w", err)
	}

	return req.URL, nil
}
