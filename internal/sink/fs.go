package sink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Dir writes files below a local directory. Each file is replaced atomically.
type Dir struct {
	root string
	claims
}

// NewDir returns a sink rooted at dir, creating it if needed.
func NewDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Dir{root: dir}, nil
}

// Root returns the directory the sink writes to.
func (d *Dir) Root() string {
	return d.root
}

// Put writes data to name, relative to the sink root.
func (d *Dir) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := checkName(name); err != nil {
		return err
	}

	if err := d.claim(name); err != nil {
		return err
	}

	target := filepath.Join(d.root, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(target), dirPermissions); err != nil {
		return fmt.Errorf("creating directory for %s: %w", name, err)
	}

	if err := atomic.WriteFile(target, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	// atomic.WriteFile keeps the temp file mode on new files.
	if err := os.Chmod(target, filePermissions); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", name, err)
	}

	return nil
}

// Get reads name, relative to the sink root.
func (d *Dir) Get(_ context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return data, nil
}
