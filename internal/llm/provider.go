package llm

import (
	"context"
	"encoding/json"
)

// Provider is a generative text backend.
type Provider interface {
	// Generate sends a prompt to the model. Without a Schema the response
	// Text is whatever the model wrote and callers normalize it. With a
	// Schema the provider uses its structured output mode and Text holds
	// the validated JSON document.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is one prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, constrains the response to a JSON document.
	Schema *Schema

	MaxTokens int

	// Temperature from 0 to 1. Zero leaves the provider default.
	Temperature float64
}

// Ask builds the single-turn request every coach prompt uses.
func Ask(system, user string, maxTokens int, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is the model output.
type Response struct {
	Text  string
	Usage Usage
	// Model is the model that actually served the request.
	Model      string
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// JSON returns Text as a raw JSON message.
func (r *Response) JSON() json.RawMessage {
	return json.RawMessage(r.Text)
}

// complete checks provider output against the request and builds the
// Response. Structured output cut off at the token limit cannot be valid,
// so it is reported as truncated rather than as a schema failure.
func complete(req Request, text, stop string, usage Usage, model string) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(text)}
		}
		if err := req.Schema.Validate([]byte(text)); err != nil {
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Text: text, Usage: usage, Model: model, StopReason: stop}, nil
}
