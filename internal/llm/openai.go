package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
)

// OpenAIClient implements Gateway for the OpenAI chat completions API.
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string, opts ...oaioption.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	// Failed calls surface immediately; the service never retries upstream.
	opts = append([]oaioption.RequestOption{
		oaioption.WithAPIKey(apiKey),
		oaioption.WithMaxRetries(0),
	}, opts...)
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		config: config,
	}, nil
}

// Generate implements Gateway
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, profile Profile) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.params(prompt, profile))
	if err != nil {
		return "", c.gatewayError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &EmptyResponseError{Model: c.config.Model}
	}
	return finish(resp.Choices[0].Message.Content, c.config.Model)
}

// GenerateStream implements Gateway
func (c *OpenAIClient) GenerateStream(ctx context.Context, prompt string, profile Profile) (string, error) {
	stream := c.client.Chat.Completions.NewStreaming(ctx, c.params(prompt, profile))
	defer stream.Close()

	var agg chunkAggregator
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 {
			agg.Add(chunk.Choices[0].Delta.Content)
		}
	}
	if err := stream.Err(); err != nil {
		return "", c.gatewayError(err)
	}

	return finish(agg.String(), c.config.Model)
}

// Model implements Gateway
func (c *OpenAIClient) Model() string {
	return c.config.Model
}

// Close implements Gateway
func (c *OpenAIClient) Close() error {
	return nil
}

func (c *OpenAIClient) params(prompt string, profile Profile) openai.ChatCompletionNewParams {
	p := c.config.Params(profile)
	// The chat API has no top-k parameter; TopK is ignored here.
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(int64(p.MaxOutputTokens)),
		Temperature:         openai.Float(float64(p.Temperature)),
		TopP:                openai.Float(float64(p.TopP)),
	}
}

func (c *OpenAIClient) gatewayError(err error) error {
	status := 0
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	return &GatewayError{Provider: ProviderOpenAI, Status: status, Cause: err}
}
