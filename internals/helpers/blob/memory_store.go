package blob

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps objects in a map. Used by tests and BLOB_DRIVER=memory.
type MemoryStore struct {
	mu      sync.RWMutex
	base    string
	objects map[string]memoryObject

	// FailDeletes makes Delete return an error, to exercise the
	// best-effort cleanup paths.
	FailDeletes bool
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemoryStore(publicBase string) *MemoryStore {
	if publicBase == "" {
		publicBase = "https://blob.local"
	}
	return &MemoryStore{
		base:    strings.TrimRight(publicBase, "/"),
		objects: map[string]memoryObject{},
	}
}

func (m *MemoryStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (m *MemoryStore) Copy(ctx context.Context, srcKey, dstKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[srcKey]
	if !ok {
		return ErrObjectNotFound
	}
	m.objects[dstKey] = obj
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDeletes {
		return errDeleteRefused
	}
	if _, ok := m.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return m.base + "/" + key
}

func (m *MemoryStore) KeyFromURL(url string) (string, error) {
	return keyUnderBase(m.base, url)
}

func (m *MemoryStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

func (m *MemoryStore) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, obj.contentType, ok
}

func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type memoryError string

func (e memoryError) Error() string { return string(e) }

const errDeleteRefused = memoryError("blob: delete refused")
