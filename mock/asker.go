package mock

import (
	"context"

	"github.com/fwojciec/docchat"
)

var _ docchat.Asker = (*Asker)(nil)

// Asker is a mock implementation of docchat.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question, passage string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question, passage string) (string, error) {
	return a.AskFn(ctx, question, passage)
}
