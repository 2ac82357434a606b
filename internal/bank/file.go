package bank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBlob keeps the bank blob in a single JSON file.
type FileBlob struct {
	Path string
}

// NewFileBlob returns file persistence rooted at path.
func NewFileBlob(path string) *FileBlob {
	return &FileBlob{Path: path}
}

// Load reads the blob; a missing file means nothing was saved yet.
func (f *FileBlob) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if f.Path == "" {
		return nil, false, fmt.Errorf("bank path is required")
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Save writes the blob through a synced temporary file and an atomic rename.
func (f *FileBlob) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.Path == "" {
		return fmt.Errorf("bank path is required")
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	tmpPath := f.Path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(data)
	syncErr := file.Sync()
	closeErr := file.Close()
	if err := errors.Join(writeErr, syncErr, closeErr); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Close is a no-op.
func (f *FileBlob) Close() error {
	return nil
}
