// Package pdf extracts plain text from PDF files using
// github.com/ledongthuc/pdf.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docchat"
	"github.com/ledongthuc/pdf"
)

// Ensure Reader implements docchat.PDFReader at compile time.
var _ docchat.PDFReader = (*Reader)(nil)

// Reader implements docchat.PDFReader. Only the text layer is read; scanned
// pages without one yield no text.
type Reader struct {
	maxChars int
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxChars sets the maximum passage length in characters.
// Defaults to docchat.DefaultMaxChars.
func WithMaxChars(n int) Option {
	return func(r *Reader) {
		r.maxChars = n
	}
}

// NewReader creates a new Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{maxChars: docchat.DefaultMaxChars}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadPDF extracts the text of every page of the file at path. Pages are
// joined with a single space; pages that fail to decode are skipped.
func (r *Reader) ReadPDF(ctx context.Context, path string) (text string, err error) {
	if path == "" {
		return "", docchat.Errorf(docchat.EINVALID, "PDF path required")
	}

	// The PDF parser panics on some malformed documents.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	f, doc, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}

	text = strings.Join(pages, " ")
	if text == "" {
		return "", docchat.Errorf(docchat.ENOTFOUND, docchat.MsgNoPDFText)
	}

	return docchat.Truncate(text, r.maxChars), nil
}
