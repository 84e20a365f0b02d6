// Package llm abstracts text-generation providers behind a small interface.
// Concrete implementations wrap the Anthropic and OpenAI SDKs via jetify's
// unified client, plus a raw chat/completions client for OpenAI-compatible
// gateways.
package llm

import "context"

// Provider is the abstraction for a single configured LLM backend.
type Provider interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ID returns the configured provider identifier.
	ID() string

	// ModelID returns the model this provider is configured to use.
	ModelID() string
}

// Request describes a single-turn generation call.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens caps the response length. Zero uses the provider default.
	MaxTokens int
}

// Response holds the provider's output and token accounting.
type Response struct {
	Text string

	// InputTokens and OutputTokens come from the provider's usage report
	// when available, otherwise from EstimateTokens.
	InputTokens  int
	OutputTokens int
}

// EstimateTokens approximates the token count of a text when the provider
// does not report usage. Roughly four characters per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}
