package bank

import (
	"context"
	"slices"
	"sync"
)

// MemoryBlob keeps the blob in process memory.
type MemoryBlob struct {
	mu   sync.Mutex
	data []byte
	ok   bool
	// SaveErr, when set, is returned by every Save.
	SaveErr error
}

// NewMemoryBlob returns an empty in-memory blob.
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

func (m *MemoryBlob) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.data), m.ok, nil
}

func (m *MemoryBlob) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = slices.Clone(data)
	m.ok = true
	return nil
}

// Set replaces the stored blob directly, bypassing SaveErr.
func (m *MemoryBlob) Set(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = slices.Clone(data)
	m.ok = true
}

func (m *MemoryBlob) Close() error {
	return nil
}
