package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/frame"
)

func chartRequest() Request {
	return Request{
		ChartType: "bar",
		XAxis:     "country",
		YAxis:     "pop",
		Data: []frame.Row{
			{"country": "A", "pop": float64(10)},
			{"country": "B", "pop": float64(20)},
		},
		Width:  800,
		Height: 500,
		Format: "png",
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := chartRequest()
	b := chartRequest()
	assert.Equal(t, a.Key(), b.Key())

	b.Data[0]["pop"] = float64(11)
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestKeyNormalizesDefaults(t *testing.T) {
	explicit := chartRequest()

	defaulted := chartRequest()
	defaulted.Width = 0
	defaulted.Height = 0
	defaulted.Format = "jpeg" // unknown formats fall back to png

	assert.Equal(t, explicit.Key(), defaulted.Key())
}

// fakeClock drives the cache's lazy TTL expiry without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(clk *fakeClock) *Cache {
	c := NewCache()
	c.now = clk.now
	return c
}

func TestCacheHitWithinTTL(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := newTestCache(clk)

	c.Put("k", "image-bytes")
	clk.advance(DefaultTTL - time.Second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "image-bytes", got)
}

func TestCacheExpiresLazily(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := newTestCache(clk)

	c.Put("k", "image-bytes")
	clk.advance(DefaultTTL)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Zero(t, c.Len(), "expired entry must be deleted on lookup")
}

func TestCacheEvictsOldestBeyondCapacity(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := newTestCache(clk)

	for i := 0; i <= DefaultMaxEntries; i++ {
		c.Put(fmt.Sprintf("k%02d", i), "img")
		clk.advance(time.Second)
	}

	assert.Equal(t, DefaultMaxEntries, c.Len())
	_, ok := c.Get("k00")
	assert.False(t, ok, "oldest entry must be swept")
	_, ok = c.Get(fmt.Sprintf("k%02d", DefaultMaxEntries))
	assert.True(t, ok)
}

func TestCacheHitsDoNotRefreshRecency(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := newTestCache(clk)

	c.Put("old", "img")
	clk.advance(time.Second)
	for i := 0; i < DefaultMaxEntries-1; i++ {
		c.Put(fmt.Sprintf("k%02d", i), "img")
	}

	// Hitting the oldest entry must not save it from the next sweep.
	_, ok := c.Get("old")
	require.True(t, ok)
	clk.advance(time.Second)
	c.Put("overflow", "img")

	_, ok = c.Get("old")
	assert.False(t, ok)
}
