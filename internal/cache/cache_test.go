package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/casevalue/internal/model"
)

func TestKey(t *testing.T) {
	a := Key("motor", "TX", `{"medical_bills":1}`)
	assert.Equal(t, a, Key("motor", "TX", `{"medical_bills":1}`))
	assert.NotEqual(t, a, Key("motorTX", `{"medical_bills":1}`))
	assert.Contains(t, a, "casevalue:v1:")
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("a", []byte("1"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok, "expired entries miss")
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	key := Key("x")
	require.NoError(t, c.Set(key, []byte("payload"), 0))

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)

	now = now.Add(2 * time.Hour)
	_, ok = c.Get(key)
	assert.False(t, ok)

	_, err := os.Stat(c.path(key))
	assert.True(t, os.IsNotExist(err), "expired file removed")
}

func TestDiskCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	require.NoError(t, os.WriteFile(c.path("bad"), []byte("{not json"), 0o644))

	_, ok := c.Get("bad")
	assert.False(t, ok)
}

func TestDiskCache_ClearKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	require.NoError(t, c.Clear())

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, err := os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)

	assert.NoError(t, c.Delete("missing"))
	assert.NoError(t, NewDiskCache(filepath.Join(dir, "nope"), 0).Clear())
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	require.NoError(t, NewDiskCache(dir, time.Hour).Set("k", []byte("from disk"), 0))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("from disk"), got)

	mem, ok := c.memory.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("from disk"), mem)

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestJSONHelpers(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	type payload struct {
		Value float64 `json:"value"`
	}

	require.NoError(t, SetJSON(c, "p", payload{Value: 240000}, 0))
	got, ok := GetJSON[payload](c, "p")
	require.True(t, ok)
	assert.Equal(t, 240000.0, got.Value)

	require.NoError(t, c.Set("junk", []byte("nope"), 0))
	_, ok = GetJSON[payload](c, "junk")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	assert.IsType(t, Nop{}, New(model.CacheConfig{Enabled: false}))
	assert.IsType(t, &MemoryCache{}, New(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute}))
	assert.IsType(t, &LayeredCache{}, New(model.CacheConfig{Enabled: true, Dir: t.TempDir()}))

	n := Nop{}
	require.NoError(t, n.Set("k", []byte("v"), 0))
	_, ok := n.Get("k")
	assert.False(t, ok)
}
