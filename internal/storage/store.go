// Package storage persists intake records as JSON blobs. The intake service
// only sees BlobStore; S3 backs it in deployed environments and an in-memory
// map backs it in tests and local runs.
package storage

import (
	"context"
	"fmt"

	"github.com/Vero970/ProjFit/internal/config"

	"go.uber.org/zap"
)

// BlobStore is a keyed write target addressable by container and blob name.
type BlobStore interface {
	// EnsureContainer creates the container, treating "already exists" as
	// success. Other failures are returned as KindPersistenceFailure.
	EnsureContainer(ctx context.Context) error
	// Put uploads data under name, overwriting any existing blob.
	Put(ctx context.Context, name string, data []byte, contentType string) error
}

// New creates the BlobStore selected by cfg.Provider.
func New(ctx context.Context, cfg config.Storage, logger *zap.Logger) (BlobStore, error) {
	switch cfg.Provider {
	case config.StorageProviderMemory:
		logger.Warn("Using in-memory blob store; records are not durable",
			zap.String("container", cfg.Container))
		return NewMemoryStore(cfg.Container), nil
	case config.StorageProviderS3, "":
		client, region, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.Container, region, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
