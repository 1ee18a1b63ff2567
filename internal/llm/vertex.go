package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// VertexClient implements Gateway for Gemini models served by Vertex AI.
// Authentication uses Application Default Credentials.
type VertexClient struct {
	client *genai.Client
	config *Config
}

// NewVertexClient creates a Vertex AI client for the configured project and region.
func NewVertexClient(ctx context.Context, config *Config) (*VertexClient, error) {
	if config.Project == "" || config.Location == "" {
		return nil, fmt.Errorf("vertex provider requires a project and location")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  config.Project,
		Location: config.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexClient{client: client, config: config}, nil
}

// Generate implements Gateway
func (c *VertexClient) Generate(ctx context.Context, prompt string, profile Profile) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), c.generationConfig(profile))
	if err != nil {
		return "", c.gatewayError(err)
	}
	return finish(vertexText(resp), c.config.Model)
}

// GenerateStream implements Gateway
func (c *VertexClient) GenerateStream(ctx context.Context, prompt string, profile Profile) (string, error) {
	var agg chunkAggregator
	for resp, err := range c.client.Models.GenerateContentStream(ctx, c.config.Model, genai.Text(prompt), c.generationConfig(profile)) {
		if err != nil {
			return "", c.gatewayError(err)
		}
		agg.Add(vertexText(resp))
	}
	return finish(agg.String(), c.config.Model)
}

// Model implements Gateway
func (c *VertexClient) Model() string {
	return c.config.Model
}

// Close implements Gateway. The genai client holds no closable resources.
func (c *VertexClient) Close() error {
	return nil
}

func (c *VertexClient) generationConfig(profile Profile) *genai.GenerateContentConfig {
	params := c.config.Params(profile)

	gc := &genai.GenerateContentConfig{
		MaxOutputTokens: params.MaxOutputTokens,
		Temperature:     genai.Ptr(params.Temperature),
		TopP:            genai.Ptr(params.TopP),
	}
	if params.TopK > 0 {
		gc.TopK = genai.Ptr(float32(params.TopK))
	}
	return gc
}

func (c *VertexClient) gatewayError(err error) error {
	return &GatewayError{Provider: ProviderVertex, Status: vertexStatus(err), Cause: err}
}

func vertexStatus(err error) int {
	for e := err; e != nil; e = unwrapOnce(e) {
		switch v := e.(type) {
		case genai.APIError:
			return v.Code
		case *genai.APIError:
			return v.Code
		}
	}
	return statusFrom(err)
}

// vertexText joins the non-thought text parts of the first candidate.
func vertexText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var agg chunkAggregator
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		agg.Add(part.Text)
	}
	return agg.String()
}
