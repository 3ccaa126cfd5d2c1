package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store := NewCheckpointStore(path)

	require.NoError(t, store.Save(42, 38, 4))

	cp, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 42, cp.LastRow)
	assert.Equal(t, 38, cp.Succeeded)
	assert.Equal(t, 4, cp.Failed)
	assert.NotEmpty(t, cp.Timestamp)
}

func TestCheckpointMissingFileStartsFresh(t *testing.T) {
	store := NewCheckpointStore(filepath.Join(t.TempDir(), "absent.json"))

	cp, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cp.LastRow)
	assert.Equal(t, 0, cp.Succeeded)
	assert.Equal(t, 0, cp.Failed)
}

func TestCheckpointCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewCheckpointStore(path).Load()
	assert.Error(t, err)
}

func TestCheckpointOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store := NewCheckpointStore(path)

	require.NoError(t, store.Save(1, 1, 0))
	require.NoError(t, store.Save(7, 5, 2))

	cp, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cp.LastRow)
	assert.Equal(t, 5, cp.Succeeded)
	assert.Equal(t, 2, cp.Failed)
}

func TestNewestAudioFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.mp3"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("b"), 0o644))

	newer := filepath.Join(dir, "second.wav")
	require.NoError(t, os.WriteFile(newer, []byte("c"), 0o644))
	// Force a strictly newer modification time
	futureStat, err := os.Stat(filepath.Join(dir, "first.mp3"))
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(newer, futureStat.ModTime().Add(time.Second), futureStat.ModTime().Add(time.Second)))

	got, err := newestAudioFile(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestNewestAudioFileEmptyDir(t *testing.T) {
	_, err := newestAudioFile(t.TempDir())
	assert.Error(t, err)
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leftover.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	require.NoError(t, ClearDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
