package slog

import (
	"log/slog"
	"unicode/utf8"

	"github.com/fwojciec/docchat"
)

// Ensure LoggingContentStore implements docchat.ContentStore.
var _ docchat.ContentStore = (*LoggingContentStore)(nil)

// LoggingContentStore wraps a ContentStore with debug logging of slot changes
// and selections.
type LoggingContentStore struct {
	next   docchat.ContentStore
	logger *slog.Logger
}

// NewLoggingContentStore creates a new LoggingContentStore.
func NewLoggingContentStore(next docchat.ContentStore, logger *slog.Logger) *LoggingContentStore {
	return &LoggingContentStore{next: next, logger: logger}
}

func (s *LoggingContentStore) SetScraped(text string) {
	s.next.SetScraped(text)
	s.logger.Debug("content set", "slot", docchat.SourceWebsite, "chars", utf8.RuneCountInString(text))
}

func (s *LoggingContentStore) SetPDF(text string) {
	s.next.SetPDF(text)
	s.logger.Debug("content set", "slot", docchat.SourcePDF, "chars", utf8.RuneCountInString(text))
}

func (s *LoggingContentStore) ClearPDF() {
	s.next.ClearPDF()
	s.logger.Debug("content cleared", "slot", docchat.SourcePDF)
}

func (s *LoggingContentStore) SelectActive() docchat.Passage {
	p := s.next.SelectActive()
	s.logger.Debug("content selected", "source", p.Source, "chars", utf8.RuneCountInString(p.Text))
	return p
}
