// Package readability selects the main article of a page using
// github.com/go-shiori/go-readability.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docchat"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docchat.Extractor at compile time.
var _ docchat.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main article from HTML.
// Navigation, sidebars and footers are dropped.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article.
func (e *Extractor) Extract(rawHTML string) (result *docchat.ExtractResult, err error) {
	if rawHTML == "" {
		return nil, docchat.Errorf(docchat.EINVALID, "empty HTML input")
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("readability: %v", r)
		}
	}()

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	return &docchat.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
