// Package inmem provides process-memory implementations of docchat services.
package inmem

import (
	"sync"

	"github.com/fwojciec/docchat"
)

// Ensure ContentStore implements docchat.ContentStore at compile time.
var _ docchat.ContentStore = (*ContentStore)(nil)

// ContentStore keeps the website and PDF content slots in memory.
// It is shared by every request; there is no per-user partitioning.
type ContentStore struct {
	mu      sync.RWMutex
	scraped string
	pdf     string
}

// NewContentStore returns an empty ContentStore.
func NewContentStore() *ContentStore {
	return &ContentStore{}
}

// SetScraped replaces the website text and clears the PDF text.
func (s *ContentStore) SetScraped(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scraped = text
	s.pdf = ""
}

// SetPDF replaces the PDF text.
func (s *ContentStore) SetPDF(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pdf = text
}

// ClearPDF empties the PDF slot.
func (s *ContentStore) ClearPDF() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pdf = ""
}

// SelectActive returns the passage backing the next question.
// PDF text wins over website text.
func (s *ContentStore) SelectActive() docchat.Passage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.pdf != "":
		return docchat.Passage{Source: docchat.SourcePDF, Text: s.pdf}
	case s.scraped != "":
		return docchat.Passage{Source: docchat.SourceWebsite, Text: s.scraped}
	default:
		return docchat.Passage{Source: docchat.SourceNone, Text: docchat.NoContentMessage}
	}
}
