// Package models defines the client-side view of a radicación: local files,
// the manifest sent on initiation, upload tokens and the finalize outcome.
package models

import (
	"bytes"
	"io"
)

// File is a user-selected document that can be read more than once,
// since a retried transfer re-opens it.
type File interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// MemoryFile is a File backed by a byte slice.
type MemoryFile struct {
	FileName string
	Data     []byte
	// OpenErr, when set, is returned by Open; useful to model unreadable files.
	OpenErr error
}

// NewMemoryFile returns a MemoryFile holding data.
func NewMemoryFile(name string, data []byte) *MemoryFile {
	return &MemoryFile{FileName: name, Data: data}
}

func (f *MemoryFile) Name() string { return f.FileName }

func (f *MemoryFile) Size() int64 { return int64(len(f.Data)) }

func (f *MemoryFile) Open() (io.ReadCloser, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return io.NopCloser(bytes.NewReader(f.Data)), nil
}
