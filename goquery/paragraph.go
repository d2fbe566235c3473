// Package goquery implements HTML content selection and plain-text rendering
// using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docchat"
)

// Ensure ParagraphExtractor implements docchat.Extractor at compile time.
var _ docchat.Extractor = (*ParagraphExtractor)(nil)

// ParagraphExtractor keeps only the paragraph elements of a page.
// Unlike the readability-based extractors it does not try to find the main
// article; every <p> on the page is kept, in document order.
type ParagraphExtractor struct{}

// NewParagraphExtractor creates a new ParagraphExtractor.
func NewParagraphExtractor() *ParagraphExtractor {
	return &ParagraphExtractor{}
}

// Extract returns the page title and the outer HTML of every <p> element.
// A page without paragraphs yields an empty ContentHTML, not an error.
func (e *ParagraphExtractor) Extract(rawHTML string) (*docchat.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docchat.Errorf(docchat.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docchat.Errorf(docchat.EINVALID, "failed to parse HTML: %v", err)
	}

	var sb strings.Builder
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			return
		}
		sb.WriteString(html)
	})

	return &docchat.ExtractResult{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		ContentHTML: sb.String(),
	}, nil
}
