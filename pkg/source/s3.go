package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/dd0wney/convograph/pkg/graph"
)

// ObjectGetter is the part of the S3 client the source uses
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads the graph document from one object
type S3 struct {
	Client   ObjectGetter
	Bucket   string
	Key      string
	Envelope string
}

// S3Options configures NewS3
type S3Options struct {
	Bucket   string
	Key      string
	Region   string
	Endpoint string // for S3-compatible stores
	// Static credentials; empty uses the default chain
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3 builds an S3 source from the default AWS configuration chain
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	loaders := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{Client: client, Bucket: opts.Bucket, Key: opts.Key, Envelope: DefaultEnvelope}, nil
}

// Fetch downloads and decodes the object
func (s *S3) Fetch(ctx context.Context) (*graph.Data, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, s3Err(s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return Decode(body, s.Envelope)
}

func s3Err(bucket, key string, err error) error {
	var noKey *types.NoSuchKey
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noKey) || errors.As(err, &noBucket) {
		return fmt.Errorf("%w: s3://%s/%s", ErrNotFound, bucket, key)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return fmt.Errorf("%w: s3://%s/%s", ErrNotFound, bucket, key)
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		code := respErr.HTTPStatusCode()
		if code == http.StatusNotFound || code >= http.StatusInternalServerError {
			return fmt.Errorf("s3://%s/%s: %w", bucket, key, statusErr(code, ""))
		}
	}

	return fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
}
