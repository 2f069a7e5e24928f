package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) vogen.Cache{
		"memory": func(*testing.T) vogen.Cache { return NewMemoryStore() },
		"disk": func(t *testing.T) vogen.Cache {
			s, err := OpenDiskStore(filepath.Join(t.TempDir(), "cache"))
			require.NoError(t, err)
			return s
		},
	}
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			v, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, v)

			keys := []string{
				"example.com/shop.Color:definition:ab",
				"example.com/shop.Color:equality:ab",
				"example.com/shop.BrandColor:definition:cd",
			}
			for _, k := range keys {
				require.NoError(t, s.Set(ctx, k, []byte(k)))
			}
			for _, k := range keys {
				v, err := s.Get(ctx, k)
				require.NoError(t, err)
				assert.Equal(t, k, string(v))
			}

			require.NoError(t, s.Set(ctx, keys[0], []byte("updated")))
			v, err = s.Get(ctx, keys[0])
			require.NoError(t, err)
			assert.Equal(t, "updated", string(v))

			require.NoError(t, s.DeletePrefix(ctx, "example.com/shop.Color:"))
			for i, k := range keys {
				v, err := s.Get(ctx, k)
				require.NoError(t, err)
				assert.Equal(t, i == 2, v != nil, k)
			}

			require.NoError(t, s.Delete(ctx, keys[2]))
			require.NoError(t, s.Delete(ctx, keys[2]), "deleting a missing key is not an error")

			require.NoError(t, s.Set(ctx, "k", []byte("v")))
			require.NoError(t, s.Clear(ctx))
			v, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestMemoryStore_Copies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	b := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", b))
	b[0] = 'x'
	v, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
	assert.Equal(t, 1, s.Len())
}

func TestDiskStore(t *testing.T) {
	t.Run("empty dir", func(t *testing.T) {
		_, err := OpenDiskStore("")
		var ce *ConfigError
		require.ErrorAs(t, err, &ce)
	})

	t.Run("reopen", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "cache")
		ctx := context.Background()
		s, err := OpenDiskStore(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.Dir())
		require.NoError(t, s.Set(ctx, "a/b:c", []byte("v")))

		s2, err := OpenDiskStore(dir)
		require.NoError(t, err)
		v, err := s2.Get(ctx, "a/b:c")
		require.NoError(t, err)
		assert.Equal(t, "v", string(v))
	})

	t.Run("no temporary files left", func(t *testing.T) {
		dir := t.TempDir()
		s, err := OpenDiskStore(dir)
		require.NoError(t, err)
		require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "k"+diskExt, entries[0].Name())
	})

	t.Run("long keys", func(t *testing.T) {
		dir := t.TempDir()
		ctx := context.Background()
		s, err := OpenDiskStore(dir)
		require.NoError(t, err)
		long := "example.com/" + strings.Repeat("very/deep/package/", 20) + "Type:"
		require.NoError(t, s.Set(ctx, long+"definition", []byte("def")))
		require.NoError(t, s.Set(ctx, long+"equality", []byte("eq")))
		require.NoError(t, s.Set(ctx, "short", []byte("s")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for _, e := range entries {
			assert.LessOrEqual(t, len(e.Name()), 255, e.Name())
		}
		v, err := s.Get(ctx, long+"definition")
		require.NoError(t, err)
		assert.Equal(t, "def", string(v))

		require.NoError(t, s.DeletePrefix(ctx, long))
		v, err = s.Get(ctx, long+"equality")
		require.NoError(t, err)
		assert.Nil(t, v)
		v, err = s.Get(ctx, "short")
		require.NoError(t, err)
		assert.Equal(t, "s", string(v))

		require.NoError(t, s.Set(ctx, long+"string", []byte("str")))
		require.NoError(t, s.Delete(ctx, long+"string"))
		entries, err = os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("canceled", func(t *testing.T) {
		s, err := OpenDiskStore(t.TempDir())
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Set(ctx, "k", nil), context.Canceled)
		_, err = s.Get(ctx, "k")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
