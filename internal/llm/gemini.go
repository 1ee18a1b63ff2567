package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiClient implements Gateway for the Gemini developer API
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate implements Gateway
func (c *GeminiClient) Generate(ctx context.Context, prompt string, profile Profile) (string, error) {
	model := c.model(profile)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", c.gatewayError(err)
	}

	return finish(geminiText(resp), c.config.Model)
}

// GenerateStream implements Gateway
func (c *GeminiClient) GenerateStream(ctx context.Context, prompt string, profile Profile) (string, error) {
	model := c.model(profile)

	var agg chunkAggregator
	iter := model.GenerateContentStream(ctx, genai.Text(prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return "", c.gatewayError(err)
		}
		agg.Add(geminiText(resp))
	}

	return finish(agg.String(), c.config.Model)
}

// Model implements Gateway
func (c *GeminiClient) Model() string {
	return c.config.Model
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) model(profile Profile) *genai.GenerativeModel {
	params := c.config.Params(profile)

	model := c.client.GenerativeModel(c.config.Model)
	model.SetMaxOutputTokens(params.MaxOutputTokens)
	model.SetTemperature(params.Temperature)
	model.SetTopP(params.TopP)
	if params.TopK > 0 {
		model.SetTopK(params.TopK)
	}
	return model
}

func (c *GeminiClient) gatewayError(err error) error {
	status := statusFrom(err)
	var gerr *googleapi.Error
	if status == 0 && errors.As(err, &gerr) {
		status = gerr.Code
	}
	return &GatewayError{Provider: ProviderGemini, Status: status, Cause: err}
}

// geminiText joins the text parts of the first candidate. Missing candidates
// yield an empty string so the caller reports an empty response.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var agg chunkAggregator
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			agg.Add(string(text))
		}
	}
	return agg.String()
}
