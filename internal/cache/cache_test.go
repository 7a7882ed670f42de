package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modbound/modbound/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateKey_DeterministicRegardlessOfFileOrder(t *testing.T) {
	a := cache.KeyInputs{
		Files: []cache.FileStat{
			{Path: "b.py", Size: 2, ModTime: 20},
			{Path: "a.py", Size: 1, ModTime: 10},
		},
		ConfigBytes:        []byte("config"),
		InterpreterVersion: "3.11",
	}
	b := cache.KeyInputs{
		Files: []cache.FileStat{
			{Path: "a.py", Size: 1, ModTime: 10},
			{Path: "b.py", Size: 2, ModTime: 20},
		},
		ConfigBytes:        []byte("config"),
		InterpreterVersion: "3.11",
	}

	assert.Equal(t, cache.CreateKey(a), cache.CreateKey(b))
}

func TestCreateKey_ChangesWithContent(t *testing.T) {
	a := cache.KeyInputs{ConfigBytes: []byte("v1")}
	b := cache.KeyInputs{ConfigBytes: []byte("v2")}
	assert.NotEqual(t, cache.CreateKey(a), cache.CreateKey(b))
}

func TestStore_CheckUpdate(t *testing.T) {
	s, err := cache.NewStore(4)
	require.NoError(t, err)

	key := "k1"
	_, ok := s.Check(key)
	assert.False(t, ok)

	s.Update(key, cache.Result{ExitCode: 0, Payload: []byte("ok")})
	result, ok := s.Check(key)
	require.True(t, ok)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, []byte("ok"), result.Payload)
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s, err := cache.NewStore(1)
	require.NoError(t, err)

	s.Update("a", cache.Result{ExitCode: 1})
	s.Update("b", cache.Result{ExitCode: 2})

	_, ok := s.Check("a")
	assert.False(t, ok, "expected 'a' to be evicted once capacity was exceeded")

	r, ok := s.Check("b")
	require.True(t, ok)
	assert.Equal(t, 2, r.ExitCode)
}

func TestReadCache_CachesAndInvalidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.py")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	rc := cache.NewReadCache()
	data, err := rc.Read(dir, path)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	// Overwrite on disk; cached read should still see the old content.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	data, err = rc.Read(dir, path)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	rc.Invalidate(dir, path)
	data, err = rc.Read(dir, path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestStatSourceRoots(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "pkg", "a.py"), []byte("x"), 0o644))

	stats, err := cache.StatSourceRoots(dir, []string{"src"})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "src/pkg/a.py", stats[0].Path)
}
