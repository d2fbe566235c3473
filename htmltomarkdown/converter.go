// Package htmltomarkdown renders extracted HTML as Markdown using
// github.com/JohannesKaufmann/html-to-markdown/v2.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/docchat"
)

// Ensure Converter implements docchat.Converter at compile time.
var _ docchat.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown. Markdown
// keeps headings, lists and tables visible to the model, at the cost of a
// few extra characters of the passage budget.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with CommonMark and table support.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docchat.Errorf(docchat.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(md), nil
}
