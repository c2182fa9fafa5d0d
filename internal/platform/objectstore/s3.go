package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds S3 compatible storage configuration.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3 stores objects in S3 compatible bucket.
type S3 struct {
	client *s3.Client
	bucket string
}

// NewS3 returns new S3 using default AWS credentials chain unless static keys are provided.
// Custom endpoint (e.g. R2 or MinIO) switches client to path style addressing.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("can't load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		// S3 compatible storages reject default flexible checksums.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return NewS3FromClient(client, cfg.Bucket), nil
}

// NewS3FromClient returns new S3 using provided client.
func NewS3FromClient(client *s3.Client, bucket string) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
	}
}

// Get returns object with body or ErrNotFound.
func (s *S3) Get(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("can't get object %q: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read object %q: %w", key, err)
	}

	return &Object{
		Key:         key,
		Body:        body,
		ContentType: aws.ToString(out.ContentType),
		Metadata:    decodeMetadata(out.Metadata),
	}, nil
}

// Head returns object metadata or ErrNotFound.
func (s *S3) Head(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("can't head object %q: %w", key, err)
	}

	return &Object{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Metadata:    decodeMetadata(out.Metadata),
	}, nil
}

// Put creates or overwrites object.
func (s *S3) Put(ctx context.Context, key string, body []byte, opts PutOptions) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(opts.ContentType),
		Metadata:      encodeMetadata(opts.Metadata),
	})
	if err != nil {
		return fmt.Errorf("can't put object %q: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}

// encodeMetadata escapes values, S3 metadata headers must be ASCII.
func encodeMetadata(metadata map[string]string) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	encoded := make(map[string]string, len(metadata))
	for k, v := range metadata {
		encoded[strings.ToLower(k)] = url.PathEscape(v)
	}
	return encoded
}

func decodeMetadata(metadata map[string]string) map[string]string {
	decoded := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if unescaped, err := url.PathUnescape(v); err == nil {
			v = unescaped
		}
		decoded[strings.ToLower(k)] = v
	}
	return decoded
}
