package docchat

// NoContentMessage is the passage used when neither a website nor a PDF has
// been loaded.
const NoContentMessage = "No content available. please upload a PDF or enter a website URL"

// Source identifies which content slot backs a passage.
type Source string

// Source constants for Passage.
const (
	SourceNone    Source = "none"
	SourceWebsite Source = "website"
	SourcePDF     Source = "pdf"
)

// Passage is the text selected to back the next question.
type Passage struct {
	Source Source
	Text   string
}

// ContentStore holds the most recently extracted website and PDF text and
// decides which of them answers the next question.
//
// Implementations must be safe for concurrent use. Each call is atomic, but
// nothing ties a read to an earlier write from the same client.
type ContentStore interface {
	// SetScraped replaces the website text and clears the PDF text, so the
	// website becomes the active source.
	SetScraped(text string)

	// SetPDF replaces the PDF text.
	SetPDF(text string)

	// ClearPDF empties the PDF slot.
	ClearPDF()

	// SelectActive returns the PDF text if present, else the website text if
	// present, else NoContentMessage. It never fails.
	SelectActive() Passage
}
