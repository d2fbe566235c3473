package docchat

import "context"

// Messages returned when a source yields no text.
const (
	MsgNoWebsiteText = "No readable text found."
	MsgNoPDFText     = "No readable text found in the PDF."
)

// WebsiteReader turns a website URL into a passage of plain text.
type WebsiteReader interface {
	// ReadWebsite fetches url and returns its readable text, truncated to the
	// configured maximum length.
	// Returns ENOTFOUND if the page has no readable text.
	ReadWebsite(ctx context.Context, url string) (string, error)
}

// PDFReader turns a local PDF file into a passage of plain text.
type PDFReader interface {
	// ReadPDF extracts the text of every page of the file at path, truncated
	// to the configured maximum length.
	// Returns ENOTFOUND if the document has no readable text.
	ReadPDF(ctx context.Context, path string) (string, error)
}
