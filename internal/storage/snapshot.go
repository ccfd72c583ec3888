package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Lister is satisfied by *gateway.Gateway[T].
type Lister[T any] interface {
	ListAll(ctx context.Context) ([]T, error)
}

// Uploader stores one object.
type Uploader interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// SnapshotKey names the object for a snapshot of collection taken at t.
func SnapshotKey(collection string, t time.Time) string {
	return fmt.Sprintf("snapshots/%s/%s.json", collection, t.UTC().Format("20060102T150405Z"))
}

// WriteSnapshot lists every document through l and uploads them as one JSON array.
// It returns the number of documents written.
func WriteSnapshot[T any](ctx context.Context, l Lister[T], up Uploader, key string) (int, error) {
	docs, err := l.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list: %w", err)
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := up.UploadFile(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return 0, fmt.Errorf("upload %s: %w", key, err)
	}
	return len(docs), nil
}
