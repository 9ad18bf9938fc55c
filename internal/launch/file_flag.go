package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// MarkerFileName is the file FileFlag creates on first launch.
const MarkerFileName = ".launched"

// FileFlag stores the flag as a marker file. Creation uses O_EXCL so two
// processes racing on the same directory still see a single winner.
type FileFlag struct {
	fs   afero.Fs
	path string
}

// NewFileFlag creates a flag backed by path on fs.
func NewFileFlag(fs afero.Fs, path string) *FileFlag {
	return &FileFlag{fs: fs, path: path}
}

// SetOnce implements Flag.
func (f *FileFlag) SetOnce(_ context.Context) (bool, error) {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return false, fmt.Errorf("create flag directory: %w", err)
	}

	file, err := f.fs.OpenFile(f.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create flag %s: %w", f.path, err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString(time.Now().UTC().Format(time.RFC3339) + "\n"); err != nil {
		return false, fmt.Errorf("write flag %s: %w", f.path, err)
	}
	return true, nil
}

// Reset implements Flag. A missing marker is not an error.
func (f *FileFlag) Reset(_ context.Context) error {
	if err := f.fs.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove flag %s: %w", f.path, err)
	}
	return nil
}
