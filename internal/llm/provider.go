package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one prompt to a model and returns its output.
type Provider interface {
	// Generate runs req. When req.Schema is set the returned Content is JSON
	// that has already been checked against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the resolved model name, used in logs and pricing.
	ModelID() string
}

// Request is a single-turn prompt. Problem authoring sends a system prompt
// and one user message; retries append the feedback as another message.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the provider to its structured output mode.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document, e.g. "catalog-problem".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is what a provider produced for a Request.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Stop reasons after provider-specific values are normalized.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finalize rejects truncated output and checks structured output against
// the request schema. Every real provider returns through it.
func finalize(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	if resp.Usage.TotalTokens == 0 {
		resp.Usage.TotalTokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}
	return resp, nil
}
