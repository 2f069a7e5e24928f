package gen

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/vogen"
)

func key(typ, concern string) vogen.CacheKey {
	return vogen.CacheKey{Type: typ, Concern: concern, Fingerprint: digest([]byte(typ)).String()}
}

func TestCache_ArtifactOnce(t *testing.T) {
	c := NewCache(nil, nil)
	var (
		calls   atomic.Int32
		release = make(chan struct{})
		wg      sync.WaitGroup
	)
	emit := func() ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("package p"), nil
	}
	srcs := make([][]byte, 8)
	for i := range srcs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src, err := c.Artifact(context.Background(), key("p.T", "definition"), emit)
			assert.NoError(t, err)
			srcs[i] = src
		}()
	}
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, src := range srcs {
		assert.Equal(t, "package p", string(src))
	}
	assert.EqualValues(t, 1, c.Stats().Emits)
}

func TestCache_ArtifactError(t *testing.T) {
	c := NewCache(nil, nil)
	boom := errors.New("boom")
	calls := 0
	emit := func() ([]byte, error) {
		calls++
		return nil, boom
	}
	for range 3 {
		_, err := c.Artifact(context.Background(), key("p.T", "equality"), emit)
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 1, calls, "failures are cached")
	assert.EqualValues(t, 2, c.Stats().Hits)
}

func TestCache_Canceled(t *testing.T) {
	c := NewCache(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	_, err := c.Artifact(ctx, key("p.T", "string"), func() ([]byte, error) {
		cancel()
		return nil, context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	src, err := c.Artifact(context.Background(), key("p.T", "string"), func() ([]byte, error) {
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(src), "canceled emissions are not cached")
}

func TestCache_Model(t *testing.T) {
	c := NewCache(nil, nil)
	fp := digest([]byte("T"))
	want := &Type{GoName: "T"}
	builds := 0
	build := func() (*Type, error) {
		builds++
		return want, nil
	}
	for range 2 {
		got, err := c.Model(context.Background(), fp, build)
		require.NoError(t, err)
		assert.Same(t, want, got)
	}
	assert.Equal(t, 1, builds)

	c.Reset()
	_, err := c.Model(context.Background(), fp, build)
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
	assert.EqualValues(t, 2, c.Stats().Builds)
}

func TestCache_Invalidate(t *testing.T) {
	store := NewMemoryStore()
	c := NewCache(nil, store)
	ctx := context.Background()
	emits := 0
	emit := func() ([]byte, error) {
		emits++
		return []byte("src"), nil
	}
	for _, k := range []vogen.CacheKey{key("p.T", "definition"), key("p.T", "equality"), key("p.TT", "definition")} {
		_, err := c.Artifact(ctx, k, emit)
		require.NoError(t, err)
	}
	require.Equal(t, 3, store.Len())

	require.NoError(t, c.Invalidate(ctx, "p.T"))
	assert.Equal(t, 1, store.Len(), "p.TT shares the name prefix but not the key prefix")

	_, err := c.Artifact(ctx, key("p.T", "definition"), emit)
	require.NoError(t, err)
	_, err = c.Artifact(ctx, key("p.TT", "definition"), emit)
	require.NoError(t, err)
	assert.Equal(t, 4, emits)
}

func TestCache_Store(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	k := key("p.T", "definition")

	_, err := NewCache(nil, store).Artifact(ctx, k, func() ([]byte, error) { return []byte("v1"), nil })
	require.NoError(t, err)

	t.Run("hit", func(t *testing.T) {
		c := NewCache(nil, store)
		src, err := c.Artifact(ctx, k, func() ([]byte, error) { return []byte("v2"), nil })
		require.NoError(t, err)
		assert.Equal(t, "v1", string(src))
		assert.EqualValues(t, 1, c.Stats().StoreHits)
		assert.Zero(t, c.Stats().Emits)
	})

	t.Run("version mismatch", func(t *testing.T) {
		data, err := msgpack.Marshal(&artifactRecord{Version: formatVersion + 1, Source: []byte("old")})
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, k.String(), data))

		c := NewCache(nil, store)
		src, err := c.Artifact(ctx, k, func() ([]byte, error) { return []byte("v3"), nil })
		require.NoError(t, err)
		assert.Equal(t, "v3", string(src))
		assert.Zero(t, c.Stats().StoreHits)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, k.String(), []byte{0xc1}))
		c := NewCache(nil, store)
		src, err := c.Artifact(ctx, k, func() ([]byte, error) { return []byte("v4"), nil })
		require.NoError(t, err)
		assert.Equal(t, "v4", string(src))
	})
}

// failingStore fails every operation.
type failingStore struct{ MemoryStore }

func (*failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("unavailable") }
func (*failingStore) Set(context.Context, string, []byte) error   { return errors.New("unavailable") }

func TestCache_StoreFailure(t *testing.T) {
	c := NewCache(nil, &failingStore{})
	src, err := c.Artifact(context.Background(), key("p.T", "definition"), func() ([]byte, error) {
		return []byte("src"), nil
	})
	require.NoError(t, err, "store failures degrade to misses")
	assert.Equal(t, "src", string(src))
}
