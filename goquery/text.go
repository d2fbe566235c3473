package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docchat"
)

// Ensure TextConverter implements docchat.Converter at compile time.
var _ docchat.Converter = (*TextConverter)(nil)

// TextConverter renders HTML as plain text.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert returns the text of every <p> element joined by a single space.
// HTML without paragraphs falls back to the text of the whole document with
// scripts and styles dropped and runs of whitespace collapsed.
func (c *TextConverter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docchat.Errorf(docchat.EINVALID, "failed to parse HTML: %v", err)
	}

	paragraphs := doc.Find("p")
	if paragraphs.Length() > 0 {
		texts := paragraphs.Map(func(_ int, sel *goquery.Selection) string {
			return sel.Text()
		})
		return strings.Join(texts, " "), nil
	}

	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
