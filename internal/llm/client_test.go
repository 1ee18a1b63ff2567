package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway records which call path was used.
type stubGateway struct {
	streamed bool
	single   bool
}

func (s *stubGateway) Generate(_ context.Context, _ string, _ Profile) (string, error) {
	s.single = true
	return "single", nil
}

func (s *stubGateway) GenerateStream(_ context.Context, _ string, _ Profile) (string, error) {
	s.streamed = true
	return "stream", nil
}

func (s *stubGateway) Model() string { return "stub" }
func (s *stubGateway) Close() error  { return nil }

func TestNewClient_NilConfig(t *testing.T) {
	_, err := NewClient(context.Background(), nil, Credentials{})
	assert.Error(t, err)
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), NewConfig("anthropic", "claude"), Credentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported llm provider")
}

func TestNewClient_MissingKeys(t *testing.T) {
	_, err := NewClient(context.Background(), NewConfig(ProviderGemini, ""), Credentials{})
	assert.Error(t, err)

	_, err = NewClient(context.Background(), NewConfig(ProviderOpenAI, ""), Credentials{})
	assert.Error(t, err)
}

func TestNewClient_VertexRequiresLocation(t *testing.T) {
	_, err := NewClient(context.Background(), NewConfig(ProviderVertex, ""), Credentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project and location")
}

func TestNewClient_OpenAI(t *testing.T) {
	gw, err := NewClient(context.Background(), NewConfig(ProviderOpenAI, ""), Credentials{OpenAIAPIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", gw.Model())
	assert.NoError(t, gw.Close())
}

func TestCall_Dispatch(t *testing.T) {
	stub := &stubGateway{}

	text, err := Call(context.Background(), stub, "p", ProfileEnhance, true)
	require.NoError(t, err)
	assert.Equal(t, "stream", text)
	assert.True(t, stub.streamed)
	assert.False(t, stub.single)

	text, err = Call(context.Background(), stub, "p", ProfileEnhance, false)
	require.NoError(t, err)
	assert.Equal(t, "single", text)
	assert.True(t, stub.single)
}
