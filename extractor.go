package docchat

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the readable part of the page as HTML.
	// What counts as readable depends on the implementation.
	ContentHTML string
}

// Extractor selects the readable content of an HTML page.
type Extractor interface {
	// Extract processes raw HTML and returns the selected content.
	Extract(html string) (*ExtractResult, error)
}
