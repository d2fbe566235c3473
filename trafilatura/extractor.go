// Package trafilatura selects the main content of a page using
// github.com/markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/docchat"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docchat.Extractor at compile time.
var _ docchat.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Comment sections are excluded and
// the readability/dom-distiller fallbacks are enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (result *docchat.ExtractResult, err error) {
	if rawHTML == "" {
		return nil, docchat.Errorf(docchat.EINVALID, "empty HTML input")
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("trafilatura: %v", r)
		}
	}()

	extracted, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}

	var contentHTML string
	if extracted.ContentNode != nil {
		contentHTML, err = renderNode(extracted.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &docchat.ExtractResult{
		Title:       extracted.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
