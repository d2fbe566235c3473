package slog

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/docchat"
)

// Ensure LoggingWebsiteReader implements docchat.WebsiteReader.
var _ docchat.WebsiteReader = (*LoggingWebsiteReader)(nil)

// LoggingWebsiteReader wraps a WebsiteReader with logging.
type LoggingWebsiteReader struct {
	next   docchat.WebsiteReader
	logger *slog.Logger
}

// NewLoggingWebsiteReader creates a new LoggingWebsiteReader.
func NewLoggingWebsiteReader(next docchat.WebsiteReader, logger *slog.Logger) *LoggingWebsiteReader {
	return &LoggingWebsiteReader{next: next, logger: logger}
}

// ReadWebsite delegates to the wrapped reader and logs the outcome.
func (r *LoggingWebsiteReader) ReadWebsite(ctx context.Context, url string) (text string, err error) {
	defer func(begin time.Time) {
		logCall(ctx, r.logger, "read website", err,
			"url", url,
			"chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.ReadWebsite(ctx, url)
}

// Ensure LoggingPDFReader implements docchat.PDFReader.
var _ docchat.PDFReader = (*LoggingPDFReader)(nil)

// LoggingPDFReader wraps a PDFReader with logging.
type LoggingPDFReader struct {
	next   docchat.PDFReader
	logger *slog.Logger
}

// NewLoggingPDFReader creates a new LoggingPDFReader.
func NewLoggingPDFReader(next docchat.PDFReader, logger *slog.Logger) *LoggingPDFReader {
	return &LoggingPDFReader{next: next, logger: logger}
}

// ReadPDF delegates to the wrapped reader and logs the outcome.
func (r *LoggingPDFReader) ReadPDF(ctx context.Context, path string) (text string, err error) {
	defer func(begin time.Time) {
		logCall(ctx, r.logger, "read pdf", err,
			"file", filepath.Base(path),
			"chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.ReadPDF(ctx, path)
}
