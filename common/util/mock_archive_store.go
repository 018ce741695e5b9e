package util

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Ensure MockArchiveStore implements IArchiveStore
var _ IArchiveStore = (*MockArchiveStore)(nil)

// MockArchiveStore is a mock implementation for testing
type MockArchiveStore struct {
	UploadFunc     func(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	DeleteFunc     func(ctx context.Context, objectName string) error
	ListBeforeFunc func(ctx context.Context, prefix string, cutoff time.Time) ([]string, error)

	// Now stamps uploads; defaults to time.Now.
	Now func() time.Time

	mu         sync.Mutex
	Uploaded   map[string][]byte
	UploadedAt map[string]time.Time
}

// NewMockArchiveStore creates a new mock store
func NewMockArchiveStore() *MockArchiveStore {
	return &MockArchiveStore{
		Uploaded:   make(map[string][]byte),
		UploadedAt: make(map[string]time.Time),
	}
}

func (m *MockArchiveStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, objectName, data, contentType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Uploaded == nil {
		m.Uploaded = make(map[string][]byte)
	}
	if m.UploadedAt == nil {
		m.UploadedAt = make(map[string]time.Time)
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	m.Uploaded[objectName] = data
	m.UploadedAt[objectName] = now()
	return "https://storage.test/" + objectName, nil
}

func (m *MockArchiveStore) Delete(ctx context.Context, objectName string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, objectName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Uploaded, objectName)
	delete(m.UploadedAt, objectName)
	return nil
}

func (m *MockArchiveStore) ListBefore(ctx context.Context, prefix string, cutoff time.Time) ([]string, error) {
	if m.ListBeforeFunc != nil {
		return m.ListBeforeFunc(ctx, prefix, cutoff)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for name, at := range m.UploadedAt {
		if strings.HasPrefix(name, prefix) && at.Before(cutoff) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
