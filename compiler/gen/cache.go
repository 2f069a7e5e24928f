package gen

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/syssam/vogen"
)

// Cache memoizes type models by fingerprint and artifacts by cache key.
// Concurrent requests for the same entry share one computation. A Cache is
// safe for concurrent use and is meant to outlive a single generation run.
type Cache struct {
	log   *zap.Logger
	store vogen.Cache
	group singleflight.Group

	mu        sync.RWMutex
	models    map[Fingerprint]modelEntry
	artifacts map[string]artifactEntry

	hits      atomic.Int64 // Memory cache hits
	misses    atomic.Int64 // Memory cache misses
	storeHits atomic.Int64 // Persistent store hits
	builds    atomic.Int64 // Models built
	emits     atomic.Int64 // Artifacts emitted
}

type (
	modelEntry struct {
		t   *Type
		err error
	}
	artifactEntry struct {
		src []byte
		err error
	}
	// artifactRecord is the persisted form of an artifact.
	artifactRecord struct {
		Version int
		Source  []byte
	}
)

// CacheStats is a snapshot of the cache counters.
type CacheStats struct {
	Hits      int64
	Misses    int64
	StoreHits int64
	Builds    int64
	Emits     int64
}

// NewCache returns an empty cache. The store, if not nil, persists artifacts
// across caches.
func NewCache(log *zap.Logger, store vogen.Cache) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		log:       log,
		store:     store,
		models:    make(map[Fingerprint]modelEntry),
		artifacts: make(map[string]artifactEntry),
	}
}

// Model returns the model built for the fingerprint, calling build on a
// miss. Build errors are cached with the model, unless ctx was canceled
// while building.
func (c *Cache) Model(ctx context.Context, fp Fingerprint, build func() (*Type, error)) (*Type, error) {
	c.mu.RLock()
	e, ok := c.models[fp]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return e.t, e.err
	}
	c.misses.Add(1)
	v, err, _ := c.group.Do("model:"+fp.String(), func() (any, error) {
		c.mu.RLock()
		e, ok := c.models[fp]
		c.mu.RUnlock()
		if ok {
			return e.t, e.err
		}
		c.builds.Add(1)
		t, err := build()
		if ctx.Err() != nil {
			return t, err
		}
		c.mu.Lock()
		c.models[fp] = modelEntry{t: t, err: err}
		c.mu.Unlock()
		return t, err
	})
	t, _ := v.(*Type)
	return t, err
}

// Artifact returns the source of the artifact identified by key, calling
// emit on a miss. The persistent store is consulted before emitting, and
// updated after.
func (c *Cache) Artifact(ctx context.Context, key vogen.CacheKey, emit func() ([]byte, error)) ([]byte, error) {
	k := key.String()
	c.mu.RLock()
	e, ok := c.artifacts[k]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return e.src, e.err
	}
	c.misses.Add(1)
	v, err, _ := c.group.Do("artifact:"+k, func() (any, error) {
		c.mu.RLock()
		e, ok := c.artifacts[k]
		c.mu.RUnlock()
		if ok {
			return e.src, e.err
		}
		if src, ok := c.load(ctx, k); ok {
			c.storeHits.Add(1)
			c.put(k, artifactEntry{src: src})
			return src, nil
		}
		c.emits.Add(1)
		src, err := emit()
		if ctx.Err() != nil {
			return src, err
		}
		c.put(k, artifactEntry{src: src, err: err})
		if err == nil {
			c.save(ctx, k, src)
		}
		return src, err
	})
	src, _ := v.([]byte)
	return src, err
}

func (c *Cache) put(k string, e artifactEntry) {
	c.mu.Lock()
	c.artifacts[k] = e
	c.mu.Unlock()
}

// load reads an artifact from the store. Store failures are logged and
// handled as misses.
func (c *Cache) load(ctx context.Context, k string) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	data, err := c.store.Get(ctx, k)
	if err != nil {
		c.log.Warn("read cached artifact", zap.String("key", k), zap.Error(err))
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	var r artifactRecord
	if err := msgpack.Unmarshal(data, &r); err != nil || r.Version != formatVersion {
		c.log.Debug("discard cached artifact", zap.String("key", k), zap.Error(err))
		return nil, false
	}
	return r.Source, true
}

func (c *Cache) save(ctx context.Context, k string, src []byte) {
	if c.store == nil {
		return
	}
	data, err := msgpack.Marshal(&artifactRecord{Version: formatVersion, Source: src})
	if err == nil {
		err = c.store.Set(ctx, k, data)
	}
	if err != nil {
		c.log.Warn("persist artifact", zap.String("key", k), zap.Error(err))
	}
}

// Invalidate drops the artifacts of the type with the given ID from memory
// and from the store.
func (c *Cache) Invalidate(ctx context.Context, id string) error {
	prefix := id + ":"
	c.mu.Lock()
	for k := range c.artifacts {
		if strings.HasPrefix(k, prefix) {
			delete(c.artifacts, k)
		}
	}
	c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	return errors.Wrapf(c.store.DeletePrefix(ctx, prefix), "invalidate %s", id)
}

// Reset drops every cached model and artifact. The store is left untouched.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models = make(map[Fingerprint]modelEntry)
	c.artifacts = make(map[string]artifactEntry)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		StoreHits: c.storeHits.Load(),
		Builds:    c.builds.Load(),
		Emits:     c.emits.Load(),
	}
}
