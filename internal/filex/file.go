// Package filex exposes files on disk through the models.File contract.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskFile is a regular file identified by its path. Size is captured when
// the file is opened with Stat so the manifest and the transfer agree.
type DiskFile struct {
	path string
	size int64
}

// Stat returns a DiskFile for path, failing for directories and missing files.
func Stat(path string) (*DiskFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("stat %s: is a directory", path)
	}
	return &DiskFile{path: path, size: fi.Size()}, nil
}

func (f *DiskFile) Name() string { return filepath.Base(f.path) }

func (f *DiskFile) Size() int64 { return f.size }

func (f *DiskFile) Path() string { return f.path }

func (f *DiskFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
