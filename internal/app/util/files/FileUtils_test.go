package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestGetAllFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, filepath.Join(dir, "new.mp3"), "x", now)
	writeFile(t, filepath.Join(dir, "old.MP3"), "x", now.Add(-time.Hour))
	writeFile(t, filepath.Join(dir, "notes.txt"), "x", now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755))

	got, err := GetAllFiles(dir, []string{".mp3"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "old.MP3", got[0].Name)
	assert.Equal(t, "new.mp3", got[1].Name)
	assert.Equal(t, int64(1), got[0].Size)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	a := filepath.Join(dir, "a.mp3")
	b := filepath.Join(dir, "b.ogg")
	writeFile(t, a, "a", now)
	writeFile(t, b, "b", now)

	got, err := CollectFiles([]string{dir, a, b}, []string{".mp3"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].FullPath)
	assert.Equal(t, b, got[1].FullPath)

	_, err = CollectFiles([]string{filepath.Join(dir, "missing.mp3")}, []string{".mp3"})
	assert.Error(t, err)
}

func TestCheckNonEmpty(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full.wav")
	empty := filepath.Join(dir, "empty.wav")
	writeFile(t, full, "RIFF", time.Now())
	writeFile(t, empty, "", time.Now())

	assert.NoError(t, CheckNonEmpty(full))
	assert.ErrorIs(t, CheckNonEmpty(empty), ErrEmptyFile)
	assert.ErrorIs(t, CheckNonEmpty(filepath.Join(dir, "missing.wav")), os.ErrNotExist)
	assert.Error(t, CheckNonEmpty(dir))
}

func TestCheckExists(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "silence.txt")
	writeFile(t, empty, "", time.Now())

	assert.NoError(t, CheckExists(empty))
	assert.ErrorIs(t, CheckExists(filepath.Join(dir, "missing.txt")), os.ErrNotExist)
	assert.Error(t, CheckExists(dir))
}

func TestReadOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	writeFile(t, path, "  hello world\n\n", time.Now())

	got, err := ReadOutputFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
}
