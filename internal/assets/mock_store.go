package assets

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
)

// MockStore is an in-memory asset store for tests.
type MockStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	FailPut error
}

// NewMockStore creates an empty in-memory asset store.
func NewMockStore() *MockStore {
	return &MockStore{objects: make(map[string][]byte)}
}

func (m *MockStore) Put(_ context.Context, name string, r io.Reader) (string, error) {
	if m.FailPut != nil {
		return "", m.FailPut
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	url := "mock://" + hex.EncodeToString(sum[:]) + sanitizeExt(name)

	m.mu.Lock()
	m.objects[url] = data
	m.mu.Unlock()
	return url, nil
}

func (m *MockStore) Open(_ context.Context, url string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.objects[url]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound{URL: url}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockStore) Exists(_ context.Context, url string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[url]
	return ok, nil
}
