package docchat

import (
	"context"
	"io"
)

// UploadStore persists uploaded files so they can be read back by path.
type UploadStore interface {
	// SaveUpload writes r under a path derived from filename and returns
	// that path. A later upload with the same name overwrites the earlier one.
	// Returns EINVALID if filename is empty.
	SaveUpload(ctx context.Context, filename string, r io.Reader) (path string, err error)
}
