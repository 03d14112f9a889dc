// Package llm wraps the chat-completion providers behind one interface.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates text, or schema-validated JSON, from a prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for JSON and validates the reply against it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
	}
}

// Schema is a JSON Schema definition, named for caching and for the
// provider's structured-output setting.
type Schema struct {
	Name       string
	Definition map[string]any
}

type Response struct {
	// Text is the reply with surrounding whitespace and code fences removed.
	Text  string
	Model string
}

// Decode unmarshals a JSON reply into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal([]byte(r.Text), v); err != nil {
		return &ErrInvalidResponse{Content: r.Text, Err: err}
	}
	return nil
}
