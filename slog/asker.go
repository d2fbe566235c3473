package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/docchat"
)

// Ensure LoggingAsker implements docchat.Asker.
var _ docchat.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging. Question and passage text are
// not logged, only their sizes.
type LoggingAsker struct {
	next   docchat.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next docchat.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the outcome.
func (a *LoggingAsker) Ask(ctx context.Context, question, passage string) (answer string, err error) {
	defer func(begin time.Time) {
		logCall(ctx, a.logger, "ask", err,
			"question_chars", utf8.RuneCountInString(question),
			"passage_chars", utf8.RuneCountInString(passage),
			"answer_chars", utf8.RuneCountInString(answer),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return a.next.Ask(ctx, question, passage)
}
