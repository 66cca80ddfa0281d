package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Writer stores an encoded document under name.
type Writer interface {
	Write(ctx context.Context, name string, data []byte) error
}

// Marshal encodes v as indented JSON without HTML escaping, so URLs keep their
// literal '&'.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return buf.Bytes(), nil
}

// Save encodes v once and hands it to every writer in order, stopping at the
// first failure.
func Save(ctx context.Context, writers []Writer, name string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}

	for _, w := range writers {
		if err := w.Write(ctx, name, data); err != nil {
			return err
		}
	}

	return nil
}

type FileWriter struct{}

func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// Write replaces the file at name through a temporary file and a rename.
func (w *FileWriter) Write(_ context.Context, name string, data []byte) error {
	if dir := filepath.Dir(name); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tempPath := name + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempPath, name); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save output: %w", err)
	}

	slog.Info("Output saved", "path", name, "bytes", len(data))
	return nil
}

// S3Config contains S3 upload settings
type S3Config struct {
	Endpoint        string // Optional: custom endpoint for MinIO or DigitalOcean Spaces
	Region          string
	Bucket          string
	Prefix          string // Optional: key prefix inside the bucket
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool // Required for MinIO
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Writer uploads output documents to an S3-compatible bucket.
type S3Writer struct {
	client putObjectAPI
	bucket string
	prefix string
}

func NewS3Writer(ctx context.Context, cfg S3Config) (*S3Writer, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("S3 credentials are required")
	}

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Writer{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Key maps an output path to its object key: the prefix joined with the file name.
func (w *S3Writer) Key(name string) string {
	return strings.TrimPrefix(path.Join(w.prefix, filepath.Base(name)), "/")
}

func (w *S3Writer) Write(ctx context.Context, name string, data []byte) error {
	key := w.Key(name)

	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload output to S3: %w", err)
	}

	slog.Info("Output uploaded", "bucket", w.bucket, "key", key, "bytes", len(data))
	return nil
}
