// Package fsx abstracts the object storage used for uploaded resumes.
package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned when a path has no stored object.
var ErrNotExist = errors.New("file does not exist")

// FileSystem stores opaque blobs under slash-separated relative paths.
type FileSystem interface {
	WriteFile(ctx context.Context, path string, r io.Reader, contentType string) error
	ReadFile(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
	DeleteFile(ctx context.Context, path string) error
}
