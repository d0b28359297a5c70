package storage

import "sync"

// MemoryStorage - blob store kept in memory, for local runs and tests
type MemoryStorage struct {
	mu    sync.Mutex
	blobs map[string]struct{}

	// Deleted records every path handed to DeleteFile, in order.
	Deleted []string
}

// NewMemoryStorage creates an empty in-memory blob store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]struct{})}
}

// Put registers a blob at the given path.
func (s *MemoryStorage) Put(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[path] = struct{}{}
}

// Has reports whether a blob exists at the given path.
func (s *MemoryStorage) Has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[path]
	return ok
}

func (s *MemoryStorage) DeleteFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, path)
	s.Deleted = append(s.Deleted, path)
	return nil
}
