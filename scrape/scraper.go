// Package scrape turns a website URL into a passage of plain text by
// composing a docchat.Fetcher, a docchat.Extractor and a docchat.Converter.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/docchat"
)

// Ensure Scraper implements docchat.WebsiteReader at compile time.
var _ docchat.WebsiteReader = (*Scraper)(nil)

// Scraper implements docchat.WebsiteReader by orchestrating fetching,
// extraction and conversion through injected dependencies.
type Scraper struct {
	fetcher   docchat.Fetcher
	extractor docchat.Extractor
	converter docchat.Converter
	maxChars  int
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithMaxChars sets the maximum passage length in characters.
// Defaults to docchat.DefaultMaxChars.
func WithMaxChars(n int) Option {
	return func(s *Scraper) {
		s.maxChars = n
	}
}

// NewScraper creates a new Scraper with the given dependencies.
func NewScraper(
	fetcher docchat.Fetcher,
	extractor docchat.Extractor,
	converter docchat.Converter,
	opts ...Option,
) *Scraper {
	s := &Scraper{
		fetcher:   fetcher,
		extractor: extractor,
		converter: converter,
		maxChars:  docchat.DefaultMaxChars,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadWebsite fetches rawURL and returns its readable text.
func (s *Scraper) ReadWebsite(ctx context.Context, rawURL string) (text string, err error) {
	if err := validateURL(rawURL); err != nil {
		return "", err
	}

	// Panics from third-party HTML parsers surface as errors.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parsing %s: %v", rawURL, r)
		}
	}()

	html, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(html) == "" {
		return "", docchat.Errorf(docchat.ENOTFOUND, docchat.MsgNoWebsiteText)
	}

	result, err := s.extractor.Extract(html)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(result.ContentHTML) == "" {
		return "", docchat.Errorf(docchat.ENOTFOUND, docchat.MsgNoWebsiteText)
	}

	text, err = s.converter.Convert(result.ContentHTML)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", docchat.Errorf(docchat.ENOTFOUND, docchat.MsgNoWebsiteText)
	}

	return docchat.Truncate(text, s.maxChars), nil
}

// validateURL rejects URLs that cannot be fetched over HTTP.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return docchat.Errorf(docchat.EINVALID, "Invalid URL %q.", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return docchat.Errorf(docchat.EINVALID, "Invalid URL %q: must start with http:// or https://.", rawURL)
	}
	if u.Host == "" {
		return docchat.Errorf(docchat.EINVALID, "Invalid URL %q: missing host.", rawURL)
	}
	return nil
}
