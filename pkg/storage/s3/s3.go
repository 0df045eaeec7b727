package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/gabriel-vasile/mimetype"

	uploadconfig "github.com/williamokano/s3_uploader/pkg/config"
	"github.com/williamokano/s3_uploader/pkg/storage"
)

// fallbackRegion is signed for when neither the settings nor the SDK chain name a region
const fallbackRegion = "us-east-1"

// Service error codes that mean the credentials were rejected
var credentialErrorCodes = map[string]bool{
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"InvalidToken":          true,
	"ExpiredToken":          true,
	"InvalidSecurity":       true,
}

type Client struct {
	client   *s3.Client
	uploader *manager.Uploader
}

var _ storage.Factory = NewObjectStore

// NewObjectStore is the storage.Factory for S3-compatible stores
func NewObjectStore(ctx context.Context, cfg uploadconfig.UploadConfig) (storage.ObjectStore, error) {
	return New(ctx, cfg)
}

// New creates an S3 client from the resolved upload configuration
func New(ctx context.Context, cfg uploadconfig.UploadConfig) (*Client, error) {
	endpoint, err := ResolveEndpoint(cfg.EndpointURL, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	// Build AWS config
	opts := []func(*config.LoadOptions) error{
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		),
	}
	if region, ok := ExplicitRegion(cfg.RegionName); ok {
		opts = append(opts, config.WithRegion(region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, storage.WrapError("load aws config", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = fallbackRegion
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.PathStyle
	})

	return &Client{
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Upload uploads a local file to bucket/key
func (c *Client) Upload(ctx context.Context, localPath, bucket, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return storage.WrapError("upload", err)
	}
	defer file.Close()

	_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(DetectContentType(localPath)),
	})
	if err != nil {
		return translateError("upload", err)
	}

	return nil
}

// ListObjects lists up to maxKeys objects of bucket
func (c *Client) ListObjects(ctx context.Context, bucket string, maxKeys int32) ([]storage.ObjectInfo, error) {
	out, err := c.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(maxKeys),
	})
	if err != nil {
		return nil, translateError("list", err)
	}

	objects := make([]storage.ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		objects = append(objects, storage.ObjectInfo{
			Key:     aws.ToString(obj.Key),
			Size:    aws.ToInt64(obj.Size),
			ModTime: aws.ToTime(obj.LastModified),
		})
	}

	return objects, nil
}

// ExplicitRegion returns the region to pin the client to.
// "" and "auto" leave the choice to the SDK.
func ExplicitRegion(region string) (string, bool) {
	if region == "" || region == "auto" {
		return "", false
	}
	return region, true
}

// ResolveEndpoint normalises the configured endpoint URL.
// A bare host gets its scheme from useSSL; an explicit scheme is kept.
func ResolveEndpoint(raw string, useSSL bool) (string, error) {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return "", fmt.Errorf("%w: endpoint is empty", storage.ErrInvalidConfig)
	}

	if !strings.Contains(endpoint, "://") {
		scheme := "https"
		if !useSSL {
			scheme = "http"
		}
		endpoint = scheme + "://" + endpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: endpoint %q: %v", storage.ErrInvalidConfig, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: endpoint %q: unsupported scheme %q", storage.ErrInvalidConfig, raw, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: endpoint %q: missing host", storage.ErrInvalidConfig, raw)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// DetectContentType sniffs the MIME type of a local file
func DetectContentType(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil || mt == nil {
		return "application/octet-stream"
	}
	return mt.String()
}

func translateError(op string, err error) error {
	var emptyCreds *credentials.StaticCredentialsEmptyError
	if errors.As(err, &emptyCreds) {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrCredentials, err)
	}

	statusCode := 0
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		statusCode = respErr.HTTPStatusCode()
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if credentialErrorCodes[apiErr.ErrorCode()] {
			return fmt.Errorf("%s: %w: %w", op, storage.ErrCredentials, err)
		}
		return storage.WrapError(op, &storage.ServiceError{
			Code:       apiErr.ErrorCode(),
			Message:    apiErr.ErrorMessage(),
			StatusCode: statusCode,
			Err:        err,
		})
	}

	if respErr != nil {
		return storage.WrapError(op, &storage.ServiceError{StatusCode: statusCode, Err: err})
	}

	return storage.WrapError(op, err)
}
