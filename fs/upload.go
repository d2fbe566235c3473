// Package fs provides file-based storage for uploaded documents.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docchat"
)

// UploadPath returns the path inside dir where an upload named filename is
// stored. Only the base name is kept, so a client-supplied name cannot point
// outside dir.
func UploadPath(dir, filename string) (string, error) {
	// Browsers on Windows may send the full client path.
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || name == ".." || strings.TrimSpace(name) == "" {
		return "", docchat.Errorf(docchat.EINVALID, "invalid file name %q", filename)
	}
	return filepath.Join(dir, name), nil
}

// Ensure UploadStore implements docchat.UploadStore at compile time.
var _ docchat.UploadStore = (*UploadStore)(nil)

// UploadStore saves uploads as files in a single directory.
// Files are written to a temporary name and renamed into place, so a reader
// never sees a half-written upload. Uploads with the same name replace each
// other; the last write wins.
type UploadStore struct {
	dir string
}

// NewUploadStore creates the upload directory if needed and returns a store
// writing into it.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Dir returns the upload directory.
func (s *UploadStore) Dir() string {
	return s.dir
}

// SaveUpload writes r to the upload directory under the base name of filename.
func (s *UploadStore) SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if filename == "" {
		return "", docchat.Errorf(docchat.EINVALID, "file name required")
	}

	path, err := UploadPath(s.dir, filename)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, readerWithContext(ctx, r)); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// readerWithContext stops reading once ctx is done.
func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return readerFunc(func(p []byte) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return r.Read(p)
	})
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
