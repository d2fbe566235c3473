// Package rod provides a docchat.Fetcher that renders pages in headless
// Chrome using github.com/go-rod/rod, for sites that build their text with
// JavaScript.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/docchat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load, matching http.DefaultFetchTimeout.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements docchat.Fetcher at compile time.
var _ docchat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL, waits for the load event and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close shuts down the browser and the launched Chrome process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
