package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docchat"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodyBytes caps how much of a page body is read.
const DefaultMaxBodyBytes = 10 << 20

// userAgent identifies the fetcher to remote sites.
const userAgent = "docchat/1.0 (+https://github.com/fwojciec/docchat)"

// Ensure Fetcher implements docchat.Fetcher at compile time.
var _ docchat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP GET requests.
// It does not execute JavaScript; see the rod package for that.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodyBytes sets how many bytes of the response body are read.
// The rest of the body is ignored.
func WithMaxBodyBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Any status outside 2xx is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
