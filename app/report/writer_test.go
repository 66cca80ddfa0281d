package report

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestMarshalKeepsAmpersands(t *testing.T) {
	data, err := Marshal(map[string]string{"url": "https://example.com/?a=1&b=2"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := "{\n  \"url\": \"https://example.com/?a=1&b=2\"\n}\n"
	if string(data) != expected {
		t.Errorf("Expected %q, got %q", expected, string(data))
	}
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build", "nested", "feed.json")

	if err := NewFileWriter().Write(context.Background(), path, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("Expected written content, got %s", data)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be renamed away")
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	data, _ := io.ReadAll(params.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3WriterWrite(t *testing.T) {
	client := &fakeS3{}
	writer := &S3Writer{client: client, bucket: "deals", prefix: "feeds/"}

	if err := writer.Write(context.Background(), "build/comprehensive_feed.json", []byte("{}")); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if *client.input.Bucket != "deals" {
		t.Errorf("Expected bucket 'deals', got '%s'", *client.input.Bucket)
	}
	if *client.input.Key != "feeds/comprehensive_feed.json" {
		t.Errorf("Expected key 'feeds/comprehensive_feed.json', got '%s'", *client.input.Key)
	}
	if *client.input.ContentType != "application/json" {
		t.Errorf("Expected JSON content type, got '%s'", *client.input.ContentType)
	}
	if client.body != "{}" {
		t.Errorf("Expected body '{}', got '%s'", client.body)
	}
}

func TestS3WriterWriteError(t *testing.T) {
	writer := &S3Writer{client: &fakeS3{err: errors.New("access denied")}, bucket: "deals"}

	err := writer.Write(context.Background(), "feed.json", []byte("{}"))
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Expected wrapped upload error, got: %v", err)
	}
}

func TestS3WriterKey(t *testing.T) {
	if got := (&S3Writer{}).Key("public/feed.json"); got != "feed.json" {
		t.Errorf("Expected 'feed.json', got '%s'", got)
	}
}

func TestNewS3WriterValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{"missing bucket", S3Config{Region: "us-east-1"}, "bucket name is required"},
		{"missing region", S3Config{Bucket: "deals"}, "region is required"},
		{"missing credentials", S3Config{Bucket: "deals", Region: "us-east-1"}, "credentials are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3Writer(context.Background(), tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing '%s', got: %v", tt.want, err)
			}
		})
	}
}

func TestNewS3Writer(t *testing.T) {
	writer, err := NewS3Writer(context.Background(), S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		Bucket:          "deals",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if writer.bucket != "deals" {
		t.Errorf("Expected bucket 'deals', got '%s'", writer.bucket)
	}
}

type recordingWriter struct {
	names []string
}

func (w *recordingWriter) Write(_ context.Context, name string, _ []byte) error {
	w.names = append(w.names, name)
	return nil
}

func TestSave(t *testing.T) {
	first, second := &recordingWriter{}, &recordingWriter{}

	if err := Save(context.Background(), []Writer{first, second}, "out.json", Batch{}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(first.names) != 1 || len(second.names) != 1 {
		t.Errorf("Expected each writer to be called once, got %d and %d", len(first.names), len(second.names))
	}
}
