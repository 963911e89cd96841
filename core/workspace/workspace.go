package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Workspace is a scratch directory owned by a single run.
// Every run gets its own directory, so concurrent runs never share files.
type Workspace struct {
	root string

	mu     sync.Mutex
	closed bool
}

// New creates a uniquely named workspace under baseDir. An empty baseDir uses the OS temp dir.
// The directory name carries runID for easier debugging of leftovers.
func New(baseDir, runID string) (*Workspace, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: failed to create base directory: %w", err)
	}

	prefix := "compact_"
	if runID != "" {
		prefix = fmt.Sprintf("compact_%s_", shortID(runID))
	}

	root, err := os.MkdirTemp(baseDir, prefix)
	if err != nil {
		return nil, fmt.Errorf("workspace: failed to create directory: %w", err)
	}

	return &Workspace{root: root}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Dir returns a sub-directory for name, creating it if needed.
// Names are sanitized so they can never escape the workspace.
func (w *Workspace) Dir(name string) (string, error) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return "", errors.New("workspace: already closed")
	}

	dir := filepath.Join(w.root, sanitize(name))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("workspace: failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// Create creates (or truncates) file inside the sub-directory dir.
func (w *Workspace) Create(dir, file string) (*os.File, error) {
	d, err := w.Dir(dir)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(d, sanitize(file)))
	if err != nil {
		return nil, fmt.Errorf("workspace: failed to create file: %w", err)
	}
	return f, nil
}

// Remove deletes the sub-directory name and its files. Missing directories are not an error.
func (w *Workspace) Remove(name string) error {
	if err := os.RemoveAll(filepath.Join(w.root, sanitize(name))); err != nil {
		return fmt.Errorf("workspace: failed to remove %s: %w", name, err)
	}
	return nil
}

// Close removes the workspace and everything in it. It is safe to call more than once.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return os.RemoveAll(w.root)
}

func sanitize(name string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	if name == "" || name == "." || name == "/" {
		return "_"
	}
	return name
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
