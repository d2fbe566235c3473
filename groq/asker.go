// Package groq implements docchat.Asker against Groq's OpenAI-compatible
// chat completions API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docchat"
)

// Defaults for the Groq API.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"
	DefaultTimeout = 60 * time.Second
)

// Ensure Asker implements docchat.Asker at compile time.
var _ docchat.Asker = (*Asker)(nil)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request payload for the chat completions endpoint.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

// ChatResponse is the subset of the chat completions response we read.
type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// apiError is the error envelope returned on non-2xx responses.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Asker implements docchat.Asker using Groq.
type Asker struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// Option configures an Asker.
type Option func(*Asker)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(a *Asker) {
		a.baseURL = strings.TrimRight(u, "/")
	}
}

// WithModel sets the model name.
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
		a.temperature = t
	}
}

// WithMaxTokens sets the maximum number of output tokens.
func WithMaxTokens(n int) Option {
	return func(a *Asker) {
		a.maxTokens = n
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Asker) {
		a.client = c
	}
}

// NewAsker creates a new Asker authenticating with apiKey.
func NewAsker(apiKey string, opts ...Option) *Asker {
	a := &Asker{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		model:       DefaultModel,
		temperature: docchat.DefaultTemperature,
		maxTokens:   docchat.DefaultMaxTokens,
		client:      &http.Client{Timeout: DefaultTimeout},
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

	body, err := json.Marshal(BuildRequest(a.model, a.temperature, a.maxTokens, passage, question))
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq: %s", describeError(resp))
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("groq: decoding response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", docchat.Errorf(docchat.EINTERNAL, docchat.MsgNoResponse)
	}
	return out.Choices[0].Message.Content, nil
}

// BuildRequest returns the chat completions payload for a question.
func BuildRequest(model string, temperature float64, maxTokens int, passage, question string) *ChatRequest {
	return &ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: docchat.SystemInstruction},
			{Role: "user", Content: docchat.FormatPrompt(passage, question)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// describeError turns a non-200 response into a short description,
// preferring the API's own error message.
func describeError(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var e apiError
	if err := json.Unmarshal(b, &e); err == nil && e.Error.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, e.Error.Message)
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
