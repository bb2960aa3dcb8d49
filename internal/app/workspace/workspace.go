package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wavify/internal/app/metrics"
)

const dirPrefix = "wavify-"

// Manager allocates per-request workspaces under a root directory.
type Manager struct {
	root string
	log  *zap.Logger
}

// NewManager creates a manager rooted at root. An empty root means os.TempDir().
func NewManager(root string, log *zap.Logger) *Manager {
	if root == "" {
		root = os.TempDir()
	}
	return &Manager{root: root, log: log.With(zap.String("component", "workspace"))}
}

// Workspace is a set of paths owned by a single conversion.
type Workspace struct {
	ID            string
	RequestID     string
	Dir           string
	SourcePath    string
	WaveformPath  string
	TranscriptDir string

	log      *zap.Logger
	mu       sync.Mutex
	tracked  []string
	once     sync.Once
	released error
}

// Acquire creates a fresh workspace directory. The name comes from a random
// uuid; sourceExt must already be validated against the accepted set.
func (m *Manager) Acquire(requestID, sourceExt string) (*Workspace, error) {
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}

	id := uuid.NewString()
	dir := filepath.Join(m.root, dirPrefix+id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	ws := &Workspace{
		ID:            id,
		RequestID:     requestID,
		Dir:           dir,
		SourcePath:    filepath.Join(dir, "source"+sourceExt),
		WaveformPath:  filepath.Join(dir, "waveform.wav"),
		TranscriptDir: filepath.Join(dir, "transcript"),
		log:           m.log.With(zap.String("workspace", id), zap.String("request_id", requestID)),
	}
	ws.tracked = []string{ws.SourcePath, ws.WaveformPath, ws.TranscriptDir}

	metrics.ActiveWorkspaces.Inc()
	ws.log.Debug("workspace acquired", zap.String("dir", dir))
	return ws, nil
}

// Track registers an extra path for deletion on Release.
func (w *Workspace) Track(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tracked = append(w.tracked, path)
}

// Release deletes every tracked path and the workspace directory. Only the
// first call does any work. Deletion errors are logged and joined, and the
// caller is expected to log rather than return them.
func (w *Workspace) Release() error {
	w.once.Do(func() {
		w.mu.Lock()
		paths := append([]string(nil), w.tracked...)
		w.mu.Unlock()

		var errs []error
		for _, p := range paths {
			if err := os.RemoveAll(p); err != nil {
				errs = append(errs, err)
			}
		}
		if err := os.RemoveAll(w.Dir); err != nil {
			errs = append(errs, err)
		}

		metrics.ActiveWorkspaces.Dec()
		w.released = errors.Join(errs...)
		if w.released != nil {
			metrics.CleanupErrorsTotal.Inc()
			w.log.Warn("workspace cleanup incomplete", zap.Error(w.released))
			return
		}
		w.log.Debug("workspace released")
	})
	return w.released
}
