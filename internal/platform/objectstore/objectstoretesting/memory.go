package objectstoretesting

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/MichalMitros/catalog-sync/internal/platform/objectstore"
)

// Memory is in-memory object storage for tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]objectstore.Object
	puts    []string
	gets    int
	heads   int

	// PutErr, when set, is called before every put. Returned error fails the put.
	PutErr func(key string) error
	// GetErr, when set, is called before every get and head.
	GetErr func(key string) error
}

// NewMemory returns empty Memory.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]objectstore.Object)}
}

// Get returns copy of stored object or objectstore.ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (*objectstore.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++

	if m.GetErr != nil {
		if err := m.GetErr(key); err != nil {
			return nil, err
		}
	}

	obj, ok := m.objects[key]
	if !ok {
		return nil, objectstore.ErrNotFound
	}
	obj.Body = slices.Clone(obj.Body)
	obj.Metadata = maps.Clone(obj.Metadata)
	return &obj, nil
}

// Head returns stored object metadata or objectstore.ErrNotFound.
func (m *Memory) Head(_ context.Context, key string) (*objectstore.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heads++

	if m.GetErr != nil {
		if err := m.GetErr(key); err != nil {
			return nil, err
		}
	}

	obj, ok := m.objects[key]
	if !ok {
		return nil, objectstore.ErrNotFound
	}
	obj.Body = nil
	obj.Metadata = maps.Clone(obj.Metadata)
	return &obj, nil
}

// Put stores copy of object.
func (m *Memory) Put(_ context.Context, key string, body []byte, opts objectstore.PutOptions) error {
	if m.PutErr != nil {
		if err := m.PutErr(key); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts = append(m.puts, key)
	m.objects[key] = objectstore.Object{
		Key:         key,
		Body:        slices.Clone(body),
		ContentType: opts.ContentType,
		Metadata:    maps.Clone(opts.Metadata),
	}
	return nil
}

// Object returns stored object and whether it exists.
func (m *Memory) Object(key string) (objectstore.Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Keys returns sorted keys of all stored objects.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.objects))
}

// Puts returns keys of all successful puts in order.
func (m *Memory) Puts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.puts)
}

// Reads returns number of gets and heads.
func (m *Memory) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gets + m.heads
}
