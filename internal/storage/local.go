package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalProvider stores objects as plain files below RootPath.
type LocalProvider struct {
	RootPath string
}

func NewLocalProvider(root string) (*LocalProvider, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalProvider{RootPath: root}, nil
}

func (l *LocalProvider) Save(_ context.Context, key string, r io.Reader) (string, error) {
	path := filepath.Join(l.RootPath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	// Close errors matter here: the bytes must be durable before any
	// record referencing them is created.
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (l *LocalProvider) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.RootPath, filepath.FromSlash(key)))
}
