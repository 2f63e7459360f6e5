package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNewResponseCache(t *testing.T) {
	cache := NewResponseCache(time.Minute)
	require.NotNil(t, cache)
	assert.Equal(t, time.Minute, cache.Timeout())
	assert.Equal(t, 0, cache.Len())
}

func TestResponseCache_GetMiss(t *testing.T) {
	cache := NewResponseCache(time.Minute)

	value, ok := cache.Get("missing")

	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestResponseCache_SetAndGet(t *testing.T) {
	cache := NewResponseCache(time.Minute)

	cache.Set("GET https://api.github.com/rate_limit", []byte(`{"ok":true}`))
	value, ok := cache.Get("GET https://api.github.com/rate_limit")

	require.True(t, ok)
	assert.JSONEq(t, `{"ok":true}`, string(value))
}

func TestResponseCache_SetCopiesValue(t *testing.T) {
	cache := NewResponseCache(time.Minute)
	body := []byte("abc")

	cache.Set("key", body)
	body[0] = 'z'

	value, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, "abc", string(value))
}

func TestResponseCache_Expiry(t *testing.T) {
	clock := newFakeClock()
	cache := NewResponseCache(5*time.Minute, WithClock(clock.Now))

	cache.Set("key", []byte("v"))

	t.Run("fresh within timeout", func(t *testing.T) {
		clock.Advance(4 * time.Minute)
		_, ok := cache.Get("key")
		assert.True(t, ok)
	})

	t.Run("still fresh exactly at timeout", func(t *testing.T) {
		clock.Advance(time.Minute)
		_, ok := cache.Get("key")
		assert.True(t, ok)
	})

	t.Run("stale past timeout and removed on read", func(t *testing.T) {
		clock.Advance(time.Millisecond)
		assert.Equal(t, 1, cache.Len(), "expiry is lazy")

		_, ok := cache.Get("key")

		assert.False(t, ok)
		assert.Equal(t, 0, cache.Len())
	})
}

func TestResponseCache_SetRefreshesTimestamp(t *testing.T) {
	clock := newFakeClock()
	cache := NewResponseCache(time.Minute, WithClock(clock.Now))

	cache.Set("key", []byte("old"))
	clock.Advance(50 * time.Second)
	cache.Set("key", []byte("new"))
	clock.Advance(50 * time.Second)

	value, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, "new", string(value))
}

func TestResponseCache_Clear(t *testing.T) {
	cache := NewResponseCache(time.Minute)
	cache.Set("a", []byte("1"))
	cache.Set("b", []byte("2"))
	require.Equal(t, 2, cache.Len())

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestResponseCache_WithNilClockKeepsDefault(t *testing.T) {
	cache := NewResponseCache(time.Minute, WithClock(nil))
	cache.Set("key", []byte("v"))

	_, ok := cache.Get("key")
	assert.True(t, ok)
}

func TestResponseCache_ConcurrentAccess(t *testing.T) {
	cache := NewResponseCache(time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%5))
			cache.Set(key, []byte{byte(i)})
			cache.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, cache.Len())
}
