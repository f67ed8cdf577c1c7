package cache

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/atelier/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixes(t *testing.T) {
	assert.Equal(t, []string{"/"}, prefixes("/"))
	assert.Equal(t, []string{"/"}, prefixes(""))
	assert.Equal(t, []string{"/", "/a", "/a/b"}, prefixes("/a/b/"))
}

func newRedisCache(t *testing.T) *Redis {
	t.Helper()
	_, client := testutils.Redis(t)
	return NewRedis(client, "")
}

// backends runs fn against every Cache implementation.
func backends(t *testing.T, fn func(t *testing.T, c Cache)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
	t.Run("redis", func(t *testing.T) { fn(t, newRedisCache(t)) })
}

func TestInvalidate_Layout(t *testing.T) {
	backends(t, func(t *testing.T, c Cache) {
		ctx := context.Background()
		root, err := c.Version(ctx, "/")
		require.NoError(t, err)
		dash, err := c.Version(ctx, "/dashboard/settings")
		require.NoError(t, err)

		require.NoError(t, c.Invalidate(ctx, "/", ScopeLayout))

		root2, _ := c.Version(ctx, "/")
		dash2, _ := c.Version(ctx, "/dashboard/settings")
		assert.NotEqual(t, root, root2)
		assert.NotEqual(t, dash, dash2, "a layout flush at / reaches every page")
	})
}

func TestInvalidate_LayoutSubtree(t *testing.T) {
	backends(t, func(t *testing.T, c Cache) {
		ctx := context.Background()
		home, _ := c.Version(ctx, "/")
		other, _ := c.Version(ctx, "/login")
		nested, _ := c.Version(ctx, "/dashboard/a")

		require.NoError(t, c.Invalidate(ctx, "/dashboard", ScopeLayout))

		home2, _ := c.Version(ctx, "/")
		other2, _ := c.Version(ctx, "/login")
		nested2, _ := c.Version(ctx, "/dashboard/a")
		assert.Equal(t, home, home2)
		assert.Equal(t, other, other2)
		assert.NotEqual(t, nested, nested2)
	})
}

func TestInvalidate_Page(t *testing.T) {
	backends(t, func(t *testing.T, c Cache) {
		ctx := context.Background()
		page, _ := c.Version(ctx, "/dashboard")
		child, _ := c.Version(ctx, "/dashboard/a")

		require.NoError(t, c.Invalidate(ctx, "/dashboard", ScopePage))

		page2, _ := c.Version(ctx, "/dashboard")
		child2, _ := c.Version(ctx, "/dashboard/a")
		assert.NotEqual(t, page, page2)
		assert.Equal(t, child, child2)
	})
}

func TestGetSet(t *testing.T) {
	backends(t, func(t *testing.T, c Cache) {
		ctx := context.Background()
		_, ok, err := c.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.Set(ctx, "k", []byte("<p>hi</p>"), time.Minute))
		body, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "<p>hi</p>", string(body))
	})
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory()
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	now = now.Add(2 * time.Second)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_ExpiredGetKeepsConcurrentSet(t *testing.T) {
	c := NewMemory()
	now := time.Now()
	ctx := context.Background()
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(ctx, "k", []byte("old"), time.Second))
	now = now.Add(2 * time.Second)

	// Replace the entry between Get's read and its expiry cleanup.
	refreshed := false
	c.now = func() time.Time {
		if !refreshed {
			refreshed = true
			require.NoError(t, c.Set(ctx, "k", []byte("fresh"), time.Minute))
		}
		return now
	}

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "the stale read still misses")

	body, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok, "the fresh entry survives the cleanup")
	assert.Equal(t, "fresh", string(body))
}
