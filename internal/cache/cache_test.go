package cache_test

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/leighmacdonald/gridiron-tui/internal/cache"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (cache.Filesystem, string) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("CACHE_DIR", dir)

	fsCache, err := cache.New()
	require.NoError(t, err)

	return fsCache, dir
}

func TestSetGet(t *testing.T) {
	fsCache, _ := newCache(t)
	const url = "https://example.com/plays.csv"

	_, err := fsCache.Get(url, cache.VariantPlays)
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, fsCache.Set(url, cache.VariantPlays, []byte("week,posteam\n")))
	body, err := fsCache.Get(url, cache.VariantPlays)
	require.NoError(t, err)
	require.Equal(t, "week,posteam\n", string(body))

	// Variants of the same key are stored separately.
	_, err = fsCache.Get(url, cache.VariantTeams)
	require.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestStaleEntryRemoved(t *testing.T) {
	fsCache, dir := newCache(t)
	fsCache = fsCache.WithMaxAge(time.Minute)
	const url = "https://example.com/teams.csv"

	require.NoError(t, fsCache.Set(url, cache.VariantTeams, []byte("team_abbr\n")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path.Join(dir, entries[0].Name()), old, old))

	_, err = fsCache.Get(url, cache.VariantTeams)
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
