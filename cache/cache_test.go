package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(filepath.Join(t.TempDir(), "nested", "test_cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestNewCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "test_cache.db")

	cache, err := NewCache(cachePath)
	require.NoError(t, err)
	defer cache.Close()

	_, err = os.Stat(cachePath)
	assert.NoError(t, err, "cache database file should be created")
}

func TestChannelCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	pageURL := "https://www.youtube.com/@GoogleDevelopers"

	require.NoError(t, cache.SetChannelID(pageURL, "UC_x5XG1OV2P6uZZ5FSM9Ttw"))

	id, found, err := cache.GetChannelID(pageURL)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "UC_x5XG1OV2P6uZZ5FSM9Ttw", id)
}

func TestChannelCache_Miss(t *testing.T) {
	cache := newTestCache(t)

	id, found, err := cache.GetChannelID("https://www.youtube.com/@nobody")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, id)
}

func TestChannelCache_Overwrite(t *testing.T) {
	cache := newTestCache(t)
	pageURL := "https://www.youtube.com/@renamed"

	require.NoError(t, cache.SetChannelID(pageURL, "UCold"))
	require.NoError(t, cache.SetChannelID(pageURL, "UCnew"))

	id, found, err := cache.GetChannelID(pageURL)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "UCnew", id)
}

func TestChannelCache_ClearAndStats(t *testing.T) {
	cache := newTestCache(t)
	before := time.Now().Add(-time.Second)

	require.NoError(t, cache.SetChannelID("https://www.youtube.com/@a", "UCa"))
	require.NoError(t, cache.SetChannelID("https://www.youtube.com/@b", "UCb"))

	stats, err := cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Channels)
	assert.True(t, stats.OldestEntry.After(before))

	require.NoError(t, cache.Clear())

	stats, err = cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Channels)
	assert.True(t, stats.OldestEntry.IsZero())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	long := strings.Repeat("x", 60)
	assert.Equal(t, strings.Repeat("x", 50)+"...", truncate(long, 50))
}
