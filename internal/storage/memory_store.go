package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	appErrors "github.com/Vero970/ProjFit/pkg/errors"
)

// MemoryStore is a process-local BlobStore.
type MemoryStore struct {
	container string

	mu      sync.RWMutex
	created bool
	blobs   map[string]Blob
}

// Blob is a stored object.
type Blob struct {
	Data        []byte
	ContentType string
}

// NewMemoryStore creates an empty store for container.
func NewMemoryStore(container string) *MemoryStore {
	return &MemoryStore{
		container: container,
		blobs:     make(map[string]Blob),
	}
}

func (m *MemoryStore) EnsureContainer(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = true
	return nil
}

func (m *MemoryStore) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.created {
		return appErrors.NewPersistenceFailure("failed to upload blob "+name,
			errors.New("container "+m.container+" does not exist"))
	}
	m.blobs[name] = Blob{Data: buf, ContentType: contentType}
	return nil
}

// Get returns the blob stored under name.
func (m *MemoryStore) Get(name string) (Blob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[name]
	return b, ok
}

// Names lists stored blob names in order.
func (m *MemoryStore) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Created reports whether EnsureContainer has run.
func (m *MemoryStore) Created() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.created
}
