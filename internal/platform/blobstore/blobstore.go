// Package blobstore stores encrypted report content under opaque file names.
// It defines the Store interface, a filesystem implementation used in
// production, and an in-memory implementation for testing and development.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrInvalidName  = errors.New("invalid blob name")
)

// Store is the contract for encrypted content storage. Write replaces any
// existing blob under the same name.
type Store interface {
	Write(ctx context.Context, name string, data []byte) error
	Read(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// validateName rejects empty names and names that could escape the storage
// directory.
func validateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// FSStore keeps blobs as files in a single directory.
type FSStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFSStore creates the directory if needed and returns a store rooted at it.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blobstore: create directory %s: %w", dir, err)
	}
	return &FSStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the storage directory.
func (s *FSStore) Dir() string { return s.dir }

// nameLock returns the per-name mutex, creating it on first use. Writers to
// the same name serialize; writers to different names do not.
func (s *FSStore) nameLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Write stores data under name, atomically replacing any previous content.
// The data is written to a temporary file first and renamed into place so a
// concurrent Read never observes a partial blob.
func (s *FSStore) Write(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}

	l := s.nameLock(name)
	l.Lock()
	defer l.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("blobstore: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("blobstore: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("blobstore: close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("blobstore: replace %s: %w", name, err)
	}
	return nil
}

// Read returns the content stored under name.
func (s *FSStore) Read(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("blobstore: read %s: %w", name, err)
	}
	return data, nil
}

// Delete removes the blob. Deleting a name that does not exist returns
// ErrBlobNotFound.
func (s *FSStore) Delete(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	l := s.nameLock(name)
	l.Lock()
	defer l.Unlock()

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("blobstore: delete %s: %w", name, err)
	}
	return nil
}

// MemStore is a thread-safe, in-memory Store for testing and development.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemStore returns a ready-to-use MemStore.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (s *MemStore) Write(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.blobs[name] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Read(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.blobs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrBlobNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *MemStore) Delete(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[name]; !ok {
		return ErrBlobNotFound
	}
	delete(s.blobs, name)
	return nil
}

// Len reports how many blobs the store holds.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
