package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAcquire_Layout(t *testing.T) {
	root := t.TempDir()
	m := NewManager(root, zap.NewNop())

	ws, err := m.Acquire("req-1", ".mp3")
	require.NoError(t, err)
	defer ws.Release()

	assert.Equal(t, root, filepath.Dir(ws.Dir))
	assert.True(t, strings.HasPrefix(filepath.Base(ws.Dir), "wavify-"))
	assert.Equal(t, filepath.Join(ws.Dir, "source.mp3"), ws.SourcePath)
	assert.Equal(t, filepath.Join(ws.Dir, "waveform.wav"), ws.WaveformPath)
	assert.Equal(t, filepath.Join(ws.Dir, "transcript"), ws.TranscriptDir)
	assert.DirExists(t, ws.Dir)
}

func TestAcquire_CreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "work")
	m := NewManager(root, zap.NewNop())

	ws, err := m.Acquire("req-1", ".mp3")
	require.NoError(t, err)
	assert.DirExists(t, ws.Dir)
	require.NoError(t, ws.Release())
}

func TestRelease_RemovesEverything(t *testing.T) {
	root := t.TempDir()
	m := NewManager(root, zap.NewNop())

	ws, err := m.Acquire("req-1", ".mp3")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(ws.SourcePath, []byte("mp3"), 0o600))
	require.NoError(t, os.WriteFile(ws.WaveformPath, []byte("wav"), 0o600))
	require.NoError(t, os.MkdirAll(ws.TranscriptDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(ws.TranscriptDir, "waveform.txt"), []byte("hi"), 0o600))

	outside := filepath.Join(root, "extra.tmp")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))
	ws.Track(outside)

	require.NoError(t, ws.Release())

	assert.NoDirExists(t, ws.Dir)
	assert.NoFileExists(t, outside)
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRelease_Idempotent(t *testing.T) {
	m := NewManager(t.TempDir(), zap.NewNop())

	ws, err := m.Acquire("req-1", ".mp3")
	require.NoError(t, err)

	require.NoError(t, ws.Release())
	require.NoError(t, ws.Release())
	assert.NoDirExists(t, ws.Dir)
}

func TestAcquire_ConcurrentUnique(t *testing.T) {
	m := NewManager(t.TempDir(), zap.NewNop())
	const n = 64

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		dirs = make(map[string]struct{}, n)
		errs []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws, err := m.Acquire("req", ".mp3")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			dirs[ws.SourcePath] = struct{}{}
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, dirs, n)
}
