package bundle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agenthands/literalkg/internal/config"
	"github.com/agenthands/literalkg/internal/core"
	"github.com/agenthands/literalkg/internal/logger"
)

// Store moves encoded bundles to and from durable storage.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// FileStore keeps bundles on the local filesystem. Keys are paths.
type FileStore struct{}

func (FileStore) Put(ctx context.Context, key string, r io.Reader) error {
	if dir := filepath.Dir(key); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create bundle directory: %w", err)
		}
	}

	// the target only ever holds a complete bundle
	tmp, err := os.CreateTemp(filepath.Dir(key), ".bundle-*")
	if err != nil {
		return fmt.Errorf("failed to create bundle file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	return os.Rename(tmp.Name(), key)
}

func (FileStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(key)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle: %w", err)
	}
	return f, nil
}

// OpenStore picks the store for a location. s3://bucket/key goes to S3,
// anything else is a local path. The returned key is what Put and Get expect.
func OpenStore(ctx context.Context, location string, cfg config.S3Config) (Store, string, error) {
	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return FileStore{}, location, nil
	}

	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return nil, "", fmt.Errorf("invalid s3 location %q, want s3://bucket/key", location)
	}
	store, err := NewS3Store(ctx, bucket, cfg)
	if err != nil {
		return nil, "", err
	}
	return store, key, nil
}

// Save encodes ds and writes it to location.
func Save(ctx context.Context, location string, cfg config.S3Config, ds *core.Dataset) error {
	store, key, err := OpenStore(ctx, location, cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, ds); err != nil {
		return err
	}
	size := buf.Len()
	if err := store.Put(ctx, key, bytes.NewReader(buf.Bytes())); err != nil {
		return err
	}
	logger.Info("bundle saved", "location", location, "bytes", size, "build_id", ds.BuildID)
	return nil
}

// Load reads and decodes the bundle at location.
func Load(ctx context.Context, location string, cfg config.S3Config) (*core.Dataset, error) {
	store, key, err := OpenStore(ctx, location, cfg)
	if err != nil {
		return nil, err
	}

	rc, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	ds, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	logger.Debug("bundle loaded", "location", location, "build_id", ds.BuildID)
	return ds, nil
}
