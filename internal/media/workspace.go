package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is a build-unique scratch directory for intermediate crop files.
// Each deck build gets its own directory, so concurrent builds in the same
// process never collide on file names.
type Workspace struct {
	dir string
}

func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "deckbuild-"+uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("create build workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

func (w *Workspace) Dir() string { return w.dir }

// WriteCrop stores the cropped image for one slide under a slide-unique name
// and returns its path.
func (w *Workspace) WriteCrop(slideIndex int, data []byte) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("slide_%d.crop.png", slideIndex))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write crop for slide %d: %w", slideIndex, err)
	}
	return path, nil
}

// Cleanup removes the workspace and everything in it. Safe to call on a nil
// or already-removed workspace.
func (w *Workspace) Cleanup() {
	if w == nil || w.dir == "" {
		return
	}
	_ = os.RemoveAll(w.dir)
}
