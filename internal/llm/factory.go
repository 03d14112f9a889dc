package llm

import (
	"context"
	"errors"
	"fmt"

	"aasaasi/config"
)

// unconfigured stands in when no API key is set, so the server still starts
// and AI endpoints answer 401.
type unconfigured struct {
	provider string
}

func (u unconfigured) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrUnauthorized{}
}

func (u unconfigured) ModelID() string { return u.provider + ":unconfigured" }

// NewProvider builds the provider selected by configuration.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		p, err = NewOpenAIProvider(OpenAIConfig{APIKey: cfg.AI.OpenAIKey, Model: cfg.AI.OpenAIModel})
	case config.ProviderGemini:
		p, err = NewGeminiProvider(ctx, GeminiConfig{APIKey: cfg.AI.GeminiKey, Model: cfg.AI.GeminiModel})
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.AI.Provider)
	}

	var unauth *ErrUnauthorized
	if errors.As(err, &unauth) {
		return unconfigured{provider: cfg.AI.Provider}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.AI.Provider, err)
	}
	return p, nil
}

// Configured reports whether p can reach a real model.
func Configured(p Provider) bool {
	_, stub := p.(unconfigured)
	return p != nil && !stub
}
