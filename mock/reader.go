package mock

import (
	"context"

	"github.com/fwojciec/docchat"
)

var _ docchat.WebsiteReader = (*WebsiteReader)(nil)

// WebsiteReader is a mock implementation of docchat.WebsiteReader.
type WebsiteReader struct {
	ReadWebsiteFn func(ctx context.Context, url string) (string, error)
}

func (r *WebsiteReader) ReadWebsite(ctx context.Context, url string) (string, error) {
	return r.ReadWebsiteFn(ctx, url)
}

var _ docchat.PDFReader = (*PDFReader)(nil)

// PDFReader is a mock implementation of docchat.PDFReader.
type PDFReader struct {
	ReadPDFFn func(ctx context.Context, path string) (string, error)
}

func (r *PDFReader) ReadPDF(ctx context.Context, path string) (string, error) {
	return r.ReadPDFFn(ctx, path)
}
