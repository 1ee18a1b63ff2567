package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeAPIError struct {
	code int
}

func (e *fakeAPIError) Error() string { return fmt.Sprintf("api error %d", e.code) }
func (e *fakeAPIError) HTTPCode() int { return e.code }

func TestGatewayError(t *testing.T) {
	cause := errors.New("connection reset")

	withStatus := &GatewayError{Provider: ProviderVertex, Status: 503, Cause: cause}
	assert.Contains(t, withStatus.Error(), "status 503")
	assert.ErrorIs(t, withStatus, cause)

	withoutStatus := &GatewayError{Provider: ProviderGemini, Cause: cause}
	assert.Equal(t, "gemini gateway error: connection reset", withoutStatus.Error())
}

func TestIsEmptyResponse(t *testing.T) {
	wrapped := fmt.Errorf("enhance: %w", &EmptyResponseError{Model: "m"})
	assert.True(t, IsEmptyResponse(wrapped))
	assert.False(t, IsEmptyResponse(&GatewayError{Provider: ProviderOpenAI, Cause: errors.New("x")}))
	assert.False(t, IsEmptyResponse(nil))
}

func TestStatusFrom(t *testing.T) {
	assert.Equal(t, 429, statusFrom(fmt.Errorf("wrapped: %w", &fakeAPIError{code: 429})))
	assert.Equal(t, 0, statusFrom(&fakeAPIError{code: -1}))
	assert.Equal(t, 0, statusFrom(errors.New("plain")))
}
