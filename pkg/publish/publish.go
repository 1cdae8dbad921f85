// Package publish uploads the artifacts of a run to an S3 bucket, keyed
// by run ID so repeated runs never overwrite each other.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-coauthor/pkg/config"
	"github.com/dd0wney/cluso-coauthor/pkg/logging"
)

// ErrNoBucket is returned when publishing is attempted without a bucket
var ErrNoBucket = errors.New("no bucket configured")

// ObjectPutter is the part of the S3 API the publisher needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads files under <prefix>/<run id>/<file name>
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	logger logging.Logger
}

// Object describes one uploaded file
type Object struct {
	Path string
	Key  string
	Size int64
	ETag string
}

// NewS3Client builds an S3 client from cfg. Static credentials are used
// when both keys are set; otherwise the default AWS credential chain
// applies. A custom endpoint switches to path-style addressing, as
// S3-compatible stores such as MinIO require.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// New creates a publisher for bucket
func New(client ObjectPutter, bucket, prefix string, logger logging.Logger) (*Publisher, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger.With(logging.Component("publish")),
	}, nil
}

// Key returns the object key a file is stored under
func (p *Publisher) Key(runID, file string) string {
	return path.Join(p.prefix, runID, filepath.Base(file))
}

// Upload puts every file in order, stopping at the first failure. The
// objects uploaded before the failure are returned with the error.
func (p *Publisher) Upload(ctx context.Context, runID string, files []string) ([]Object, error) {
	uploaded := make([]Object, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return uploaded, err
		}

		obj, err := p.put(ctx, runID, file)
		if err != nil {
			return uploaded, err
		}
		p.logger.Debug("object uploaded",
			logging.String("bucket", p.bucket),
			logging.String("key", obj.Key),
			logging.Int("bytes", int(obj.Size)))
		uploaded = append(uploaded, obj)
	}

	p.logger.Info("artifacts published",
		logging.String("bucket", p.bucket),
		logging.String("prefix", path.Join(p.prefix, runID)),
		logging.Count(len(uploaded)))
	return uploaded, nil
}

func (p *Publisher) put(ctx context.Context, runID, file string) (Object, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Object{}, fmt.Errorf("failed to read %s: %w", file, err)
	}

	key := p.Key(runID, file)
	out, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType(file)),
		Metadata:      map[string]string{"run-id": runID},
	})
	if err != nil {
		return Object{}, fmt.Errorf("failed to upload s3://%s/%s: %w", p.bucket, key, err)
	}

	obj := Object{Path: file, Key: key, Size: int64(len(data))}
	if out != nil && out.ETag != nil {
		obj.ETag = *out.ETag
	}
	return obj, nil
}

// ContentType picks the MIME type stored with an artifact
func ContentType(file string) string {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".prom":
		return "text/plain; version=0.0.4"
	case ".sz":
		return "application/octet-stream"
	case ".json":
		return "application/json"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
