package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/own"
)

type blob struct {
	key       string
	destroyed *int
}

func (b *blob) Destroy() { *b.destroyed++ }

func maker(key string, destroyed *int, calls *int) func() own.Shared[blob] {
	return func() own.Shared[blob] {
		*calls++
		return own.NewShared(&blob{key: key, destroyed: destroyed})
	}
}

func TestAcquireCreatesOnce(t *testing.T) {
	c := New[string, blob](4)
	var destroyed, calls int

	a := c.Acquire("a", maker("a", &destroyed, &calls))
	b := c.Acquire("a", maker("a", &destroyed, &calls))

	require.False(t, a.IsNull())
	assert.Equal(t, 1, calls)
	assert.True(t, a.SameFamily(&b))
	// cache + two callers
	assert.Equal(t, 3, a.UseCount())

	a.Drop()
	b.Drop()
	assert.Equal(t, 0, destroyed, "cache still owns the value")

	st := c.Stats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)

	c.Clear()
	assert.Equal(t, 1, destroyed)
	assert.Equal(t, 0, c.Len())
}

func TestEvictionKeepsBorrowedValueAlive(t *testing.T) {
	c := New[string, blob](2)
	var destroyed, calls int

	first := c.Acquire("a", maker("a", &destroyed, &calls))
	for _, k := range []string{"b", "c"} {
		s := c.Acquire(k, maker(k, &destroyed, &calls))
		s.Drop()
	}

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, uint64(1), c.Stats().Evictions)
	assert.Equal(t, 0, destroyed, "evicted value is still borrowed")
	assert.Equal(t, 1, first.UseCount())
	assert.Equal(t, "a", first.Value().key)

	first.Drop()
	assert.Equal(t, 1, destroyed)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestLRUOrder(t *testing.T) {
	c := New[string, blob](2)
	var destroyed, calls int

	for _, k := range []string{"a", "b"} {
		s := c.Acquire(k, maker(k, &destroyed, &calls))
		s.Drop()
	}
	// Touch a so that b becomes the oldest.
	s, ok := c.Get("a")
	require.True(t, ok)
	s.Drop()

	s = c.Acquire("c", maker("c", &destroyed, &calls))
	s.Drop()

	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	hit, ok := c.Get("a")
	assert.True(t, ok)
	hit.Drop()
	assert.Equal(t, 1, destroyed)
}

func TestDelete(t *testing.T) {
	c := New[int, blob](0)
	var destroyed, calls int
	s := c.Acquire(1, func() own.Shared[blob] { return maker("x", &destroyed, &calls)() })
	s.Drop()

	assert.True(t, c.Delete(1))
	assert.False(t, c.Delete(1))
	assert.Equal(t, 1, destroyed)
	assert.Equal(t, DefaultCapacity, c.Stats().Capacity)
}

func TestAcquireEmptyNotCached(t *testing.T) {
	c := New[string, blob](2)
	s := c.Acquire("nil", func() own.Shared[blob] { return own.Shared[blob]{} })
	assert.True(t, s.IsNull())
	assert.Equal(t, 0, c.Len())
}

func TestLRUList(t *testing.T) {
	var l lruList[int]
	n1 := l.PushFront(1)
	l.PushFront(2)
	n3 := l.PushFront(3)
	require.Equal(t, 3, l.Len())

	l.MoveToFront(n1)
	k, ok := l.RemoveOldest()
	require.True(t, ok)
	assert.Equal(t, 2, k)

	l.Remove(n3)
	k, ok = l.RemoveOldest()
	require.True(t, ok)
	assert.Equal(t, 1, k)

	_, ok = l.RemoveOldest()
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}
