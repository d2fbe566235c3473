package docchat

import (
	"context"
	"fmt"
)

// SystemInstruction is the fixed instruction given to the completion model.
const SystemInstruction = "You are an AI chatbot answering questions based on given content."

// Completion defaults shared by all Asker implementations.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1024
)

// Messages returned by Asker implementations.
const (
	MsgEmptyQuestion = "Please enter a question."
	MsgNoResponse    = "No response from AI."
)

// Asker answers natural language questions about a passage of text.
type Asker interface {
	// Ask sends the question and the passage to the completion model and
	// returns the generated answer. It makes a single attempt.
	// Returns EINVALID if the question is empty.
	Ask(ctx context.Context, question, passage string) (string, error)
}

// FormatPrompt builds the user message sent along with SystemInstruction.
func FormatPrompt(passage, question string) string {
	return fmt.Sprintf("Content: %s\nUser Question: %s", passage, question)
}
