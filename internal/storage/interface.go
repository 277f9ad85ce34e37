package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidKey   = errors.New("invalid storage key")
)

// FileInfo describes a stored object.
type FileInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// StorageInterface defines the interface for attachment storage backends
type StorageInterface interface {
	// SaveFile stores the reader's content under key and returns the bytes written
	SaveFile(ctx context.Context, key string, reader io.Reader) (int64, error)

	// OpenFile opens a stored file for reading; ErrFileNotFound when absent
	OpenFile(ctx context.Context, key string) (io.ReadCloser, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage. Missing files are not an error.
	DeleteFile(ctx context.Context, key string) error

	// ListFiles walks every stored object
	ListFiles(ctx context.Context) ([]FileInfo, error)

	// URL returns the public download URL for key
	URL(key string) string
}
