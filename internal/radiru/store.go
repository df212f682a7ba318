package radiru

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

const (
	// AppName names the per-application cache directory.
	AppName = "radiru"

	// CacheFileName is the cached document's file name inside the cache directory.
	CacheFileName = "config.xml"
)

// Store is the persistence abstraction for the cached config document.
// Implementations can be file-based or in-memory; Cache uses Store for all
// reads and writes and does not need to know which one it has.
type Store interface {
	// Stat returns the document's last-modified time. ok is false if no
	// document has been stored yet.
	Stat() (modTime time.Time, ok bool, err error)

	// Read returns the stored document.
	Read() ([]byte, error)

	// Write replaces the stored document. A failed Write leaves the previous
	// document intact.
	Write(doc []byte) error
}

// DefaultCachePath returns <user cache dir>/radiru/config.xml.
func DefaultCachePath() (string, error) {
	root, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%w: locate user cache dir: %v", ErrCacheWrite, err)
	}
	return filepath.Join(root, AppName, CacheFileName), nil
}

// FileStore keeps the document in a single file. The file's mtime is the
// document's last-modified time.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The containing
// directory is created on the first Write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the cache file path.
func (s *FileStore) Path() string { return s.path }

// Stat implements Store.Stat. A path whose parent is not a directory counts
// as absent, so the following Write reports why the directory is unusable.
func (s *FileStore) Stat() (time.Time, bool, error) {
	fi, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}
	return fi.ModTime(), true, nil
}

// Read implements Store.Read.
func (s *FileStore) Read() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}
	return b, nil
}

// Write implements Store.Write. The document is written to a temporary file
// in the same directory and renamed over the old one.
func (s *FileStore) Write(doc []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	tmp, err := os.CreateTemp(dir, "."+CacheFileName+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

// InMemoryStore is an in-memory implementation of Store.
type InMemoryStore struct {
	mu      sync.RWMutex
	doc     []byte
	modTime time.Time
	ok      bool
	now     func() time.Time
}

// NewInMemoryStore returns a new empty in-memory store. now stamps each
// Write; nil means time.Now.
func NewInMemoryStore(now func() time.Time) *InMemoryStore {
	if now == nil {
		now = time.Now
	}
	return &InMemoryStore{now: now}
}

// Stat implements Store.Stat.
func (s *InMemoryStore) Stat() (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modTime, s.ok, nil
}

// Read implements Store.Read.
func (s *InMemoryStore) Read() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ok {
		return nil, fmt.Errorf("%w: nothing stored", ErrCacheRead)
	}
	return append([]byte(nil), s.doc...), nil
}

// Write implements Store.Write.
func (s *InMemoryStore) Write(doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = append([]byte(nil), doc...)
	s.modTime = s.now()
	s.ok = true
	return nil
}

// SetModTime overrides the stored document's last-modified time.
func (s *InMemoryStore) SetModTime(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modTime = t
}
