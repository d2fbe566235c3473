// Package gemini implements docchat.Asker using Google Gemini through
// google.golang.org/genai.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docchat"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements docchat.Asker at compile time.
var _ docchat.Asker = (*Asker)(nil)

// Asker implements docchat.Asker using Google Gemini.
type Asker struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// Option configures an Asker.
type Option func(*Asker)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(a *Asker) {
		if model != "" {
			a.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(a *Asker) {
		a.temperature = float32(t)
	}
}

// WithMaxTokens sets the maximum number of output tokens.
func WithMaxTokens(n int) Option {
	return func(a *Asker) {
		a.maxTokens = int32(n)
	}
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, opts ...Option) *Asker {
	a := &Asker{
		client:      client,
		model:       DefaultModel,
		temperature: docchat.DefaultTemperature,
		maxTokens:   docchat.DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask answers a natural language question about the passage.
func (a *Asker) Ask(ctx context.Context, question, passage string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", docchat.Errorf(docchat.EINVALID, docchat.MsgEmptyQuestion)
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Role:  string(genai.RoleUser),
			Parts: []*genai.Part{{Text: docchat.FormatPrompt(passage, question)}},
		}},
		BuildConfig(a.temperature, a.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if result == nil {
		return "", docchat.Errorf(docchat.EINTERNAL, docchat.MsgNoResponse)
	}

	text := result.Text()
	if text == "" {
		return "", docchat.Errorf(docchat.EINTERNAL, docchat.MsgNoResponse)
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(temperature float32, maxTokens int32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: docchat.SystemInstruction}},
		},
		Temperature:     &temperature,
		MaxOutputTokens: maxTokens,
	}
}
