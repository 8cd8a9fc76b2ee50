package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/szzz666/PalEasyBreeding/internal/config"
	minioclient "github.com/szzz666/PalEasyBreeding/internal/store/minio"
)

//go:embed data/pals.json
var embedded []byte

// Source yields a raw dataset document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// Load opens src and parses its document.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer rc.Close()

	ds, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return ds, nil
}

// Embedded is the sample dataset compiled into the binary.
type Embedded struct{}

func (Embedded) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(embedded)), nil
}

func (Embedded) String() string { return "embedded dataset" }

// File reads a dataset from the local filesystem.
type File struct {
	Path string
}

func (f File) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(f.Path)
}

func (f File) String() string { return "file " + f.Path }

// ObjectOpener is satisfied by the MinIO client.
type ObjectOpener interface {
	Open(ctx context.Context, objectName string) (io.ReadCloser, error)
	Bucket() string
}

// Object reads a dataset from an object store bucket.
type Object struct {
	Client ObjectOpener
	Key    string
}

func (o Object) Open(ctx context.Context) (io.ReadCloser, error) {
	return o.Client.Open(ctx, o.Key)
}

func (o Object) String() string {
	return fmt.Sprintf("object %s/%s", o.Client.Bucket(), o.Key)
}

// S3 reads a dataset from an S3-compatible bucket. Works with both AWS S3 and
// MinIO via Endpoint.
type S3 struct {
	client *s3.Client
	bucket string
	key    string
}

func NewS3(ctx context.Context, cfg config.S3Config, key string) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = &cfg.Endpoint
			o.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: cfg.Bucket, key: key}, nil
}

func (s *S3) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &s.key,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (s *S3) String() string { return fmt.Sprintf("s3://%s/%s", s.bucket, s.key) }

// NewSource picks the source named by cfg.Dataset.Source.
func NewSource(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.Dataset.Source {
	case config.SourceFile:
		return File{Path: cfg.Dataset.Path}, nil
	case config.SourceMinIO:
		mc, err := minioclient.NewClient(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		return Object{Client: mc, Key: cfg.Dataset.Object}, nil
	case config.SourceS3:
		return NewS3(ctx, cfg.S3, cfg.Dataset.Object)
	default:
		return Embedded{}, nil
	}
}
