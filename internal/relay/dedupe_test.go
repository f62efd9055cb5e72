package relay

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyCacheHitAndMiss(t *testing.T) {
	cache := NewReplyCache(100)

	_, ok := cache.Get(Key("+91111", "hello"))
	assert.False(t, ok)

	cache.Put(Key("+91111", "hello"), "Namaste!")
	reply, ok := cache.Get(Key("+91111", "hello"))
	require.True(t, ok)
	assert.Equal(t, "Namaste!", reply)

	// Same body from a different sender is a distinct key.
	_, ok = cache.Get(Key("+92222", "hello"))
	assert.False(t, ok)
}

func TestReplyCacheBound(t *testing.T) {
	cache := NewReplyCache(100)

	for i := 0; i <= 100; i++ {
		cache.Put(Key("+91111", fmt.Sprintf("msg %d", i)), "reply")
	}

	assert.Equal(t, 100, cache.Len())
	_, ok := cache.Get(Key("+91111", "msg 0"))
	assert.False(t, ok, "first-inserted key should be evicted")
	_, ok = cache.Get(Key("+91111", "msg 1"))
	assert.True(t, ok)
}

func TestReplyCacheEvictsByInsertionOrderNotAccess(t *testing.T) {
	cache := NewReplyCache(2)

	cache.Put("a", "1")
	cache.Put("b", "2")

	// Reading "a" must not rescue it from eviction.
	_, ok := cache.Get("a")
	require.True(t, ok)

	cache.Put("c", "3")

	_, ok = cache.Get("a")
	assert.False(t, ok, "oldest-inserted entry evicted even if recently read")
	_, ok = cache.Get("b")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestReplyCacheOverwriteKeepsPosition(t *testing.T) {
	cache := NewReplyCache(2)

	cache.Put("a", "1")
	cache.Put("b", "2")
	cache.Put("a", "updated")
	cache.Put("c", "3")

	// "a" kept its original insertion slot, so it is still the oldest.
	_, ok := cache.Get("a")
	assert.False(t, ok)

	reply, ok := cache.Get("b")
	require.True(t, ok)
	assert.Equal(t, "2", reply)
}
