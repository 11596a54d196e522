package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Scheme prefixes object references such as s3://bucket/resumes/alice.pdf.
const S3Scheme = "s3://"

// ObjectGetter is the subset of the S3 client used for ingestion.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config configures the object storage client. Endpoint is optional and
// allows S3-compatible stores (R2, MinIO).
type S3Config struct {
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
}

// NewS3Client builds an S3 client. Static credentials are used when both keys
// are set; otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// IsS3URI reports whether ref is an s3:// reference.
func IsS3URI(ref string) bool {
	return strings.HasPrefix(ref, S3Scheme)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !IsS3URI(uri) {
		return "", "", &SourceError{Source: uri, Message: "not an s3:// URI"}
	}
	rest := strings.TrimPrefix(uri, S3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", &SourceError{Source: uri, Message: "S3 URI must be s3://bucket/key"}
	}
	return bucket, key, nil
}

// IngestFromS3 downloads the object named by uri and extracts its text using
// the key's extension to pick the decoder.
func IngestFromS3(ctx context.Context, client ObjectGetter, uri string, verbose bool) (string, *Metadata, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return "", nil, err
	}
	if client == nil {
		return "", nil, &SourceError{Source: uri, Message: "no S3 client configured"}
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", nil, &SourceError{Source: uri, Message: "failed to get object", Cause: err}
	}
	defer func() { _ = out.Body.Close() }()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return "", nil, &SourceError{Source: uri, Message: "failed to read object body", Cause: err}
	}
	if verbose {
		log.Printf("[VERBOSE] Downloaded s3://%s/%s: %d bytes", bucket, key, buf.Len())
	}

	text, err := ExtractFromBytes(key, buf.Bytes())
	if err != nil {
		return "", nil, err
	}
	return text, NewMetadata(text, uri, FormatFromName(key)), nil
}
