package llm

import (
	"context"
	"fmt"
)

// Gateway sends one prompt to a generative model and returns the trimmed text.
type Gateway interface {
	// Generate waits for the complete response.
	Generate(ctx context.Context, prompt string, profile Profile) (string, error)
	// GenerateStream receives the response incrementally and concatenates the
	// chunks in arrival order.
	GenerateStream(ctx context.Context, prompt string, profile Profile) (string, error)
	// Model returns the configured model identifier
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// Credentials carries provider secrets. Vertex uses ambient Google credentials
// and needs none.
type Credentials struct {
	GeminiAPIKey string
	OpenAIAPIKey string
}

// NewClient creates the gateway for the configured provider.
func NewClient(ctx context.Context, config *Config, creds Credentials) (Gateway, error) {
	if config == nil {
		return nil, fmt.Errorf("llm config is required")
	}

	switch config.Provider {
	case ProviderVertex:
		return NewVertexClient(ctx, config)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, creds.GeminiAPIKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, creds.OpenAIAPIKey)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", config.Provider)
	}
}

// Call dispatches to GenerateStream or Generate.
func Call(ctx context.Context, gw Gateway, prompt string, profile Profile, stream bool) (string, error) {
	if stream {
		return gw.GenerateStream(ctx, prompt, profile)
	}
	return gw.Generate(ctx, prompt, profile)
}
