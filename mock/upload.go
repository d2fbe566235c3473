package mock

import (
	"context"
	"io"

	"github.com/fwojciec/docchat"
)

var _ docchat.UploadStore = (*UploadStore)(nil)

// UploadStore is a mock implementation of docchat.UploadStore.
type UploadStore struct {
	SaveUploadFn func(ctx context.Context, filename string, r io.Reader) (string, error)
}

func (s *UploadStore) SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	return s.SaveUploadFn(ctx, filename, r)
}
