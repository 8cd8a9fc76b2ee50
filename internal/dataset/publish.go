package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// Uploader stores a named document. The MinIO client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64) error
}

// Publish validates the document from src and uploads it unchanged under key.
func Publish(ctx context.Context, src Source, dst Uploader, key string) (*Dataset, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	ds, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	if err := dst.Upload(ctx, key, bytes.NewReader(raw), int64(len(raw))); err != nil {
		return nil, err
	}
	return ds, nil
}
