package gen

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/syssam/vogen"
)

var (
	_ vogen.Cache = (*MemoryStore)(nil)
	_ vogen.Cache = (*DiskStore)(nil)
)

// MemoryStore is an in-memory artifact store, shared by the caches of
// several sessions of one process.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string][]byte)}
}

// Get implements vogen.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[key], nil
}

// Set implements vogen.Cache.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements vogen.Cache.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// DeletePrefix implements vogen.Cache.
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.m {
		if strings.HasPrefix(k, prefix) {
			delete(s.m, k)
		}
	}
	return nil
}

// Clear implements vogen.Cache.
func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[string][]byte)
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// DiskStore stores artifacts as files of one directory, one file per key.
// Writes are atomic: a reader sees either the previous or the new value.
type DiskStore struct {
	mu  sync.RWMutex
	dir string
}

const (
	// diskExt is the extension of entry files named after their key.
	diskExt = ".vgc"
	// hashExt is the extension of entry files named after the hash of a
	// key too long for a file name. Their first line is the escaped key.
	hashExt = ".vgh"
	// maxName bounds escaped keys used as file names, below the 255 bytes
	// most file systems allow.
	maxName = 200
)

// OpenDiskStore returns a store rooted at dir, creating it if needed.
func OpenDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, NewConfigError("CacheDir", dir, "empty cache directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create cache directory")
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *DiskStore) Dir() string { return s.dir }

// path returns the file of key, and the header of its content for keys
// stored under their hash.
func (s *DiskStore) path(key string) (string, []byte) {
	name := url.QueryEscape(key)
	if len(name) <= maxName {
		return filepath.Join(s.dir, name+diskExt), nil
	}
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+hashExt), []byte(name + "\n")
}

// Get implements vogen.Cache.
func (s *DiskStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	path, header := s.path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil || header == nil {
		return data, err
	}
	data, ok := bytes.CutPrefix(data, header)
	if !ok {
		return nil, nil
	}
	return data, nil
}

// Set implements vogen.Cache.
func (s *DiskStore) Set(ctx context.Context, key string, value []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path, header := s.path(key)
	f, err := os.CreateTemp(s.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(append(header, value...)); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Delete implements vogen.Cache.
func (s *DiskStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path, _ := s.path(key)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// DeletePrefix implements vogen.Cache.
func (s *DiskStore) DeletePrefix(ctx context.Context, prefix string) error {
	return s.remove(ctx, func(key string) bool { return strings.HasPrefix(key, prefix) })
}

// Clear implements vogen.Cache.
func (s *DiskStore) Clear(ctx context.Context) error {
	return s.remove(ctx, func(string) bool { return true })
}

func (s *DiskStore) remove(ctx context.Context, match func(string) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() {
			continue
		}
		key, ok := s.key(e.Name())
		if !ok || !match(key) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// key returns the key of the entry file name.
func (s *DiskStore) key(file string) (string, bool) {
	name, ok := strings.CutSuffix(file, diskExt)
	if !ok {
		if _, ok := strings.CutSuffix(file, hashExt); !ok {
			return "", false
		}
		data, err := os.ReadFile(filepath.Join(s.dir, file))
		if err != nil {
			return "", false
		}
		line, _, ok := bytes.Cut(data, []byte("\n"))
		if !ok {
			return "", false
		}
		name = string(line)
	}
	key, err := url.QueryUnescape(name)
	return key, err == nil
}
