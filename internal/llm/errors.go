package llm

import (
	"errors"
	"fmt"
)

// EmptyResponseError indicates the model returned no usable text.
type EmptyResponseError struct {
	Model string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("model %s returned an empty response", e.Model)
}

// GatewayError indicates the call to the provider failed. Status is the
// upstream HTTP status when the provider reported one, otherwise zero.
type GatewayError struct {
	Provider Provider
	Status   int
	Cause    error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s gateway error (status %d): %v", e.Provider, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s gateway error: %v", e.Provider, e.Cause)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// IsEmptyResponse reports whether err is or wraps an EmptyResponseError.
func IsEmptyResponse(err error) bool {
	var empty *EmptyResponseError
	return errors.As(err, &empty)
}

// httpCoder is implemented by gax apierror.APIError.
type httpCoder interface {
	HTTPCode() int
}

// statusFrom extracts an upstream HTTP status from common Google client errors.
func statusFrom(err error) int {
	var coder httpCoder
	if errors.As(err, &coder) {
		if code := coder.HTTPCode(); code > 0 {
			return code
		}
	}
	return 0
}

func unwrapOnce(err error) error {
	return errors.Unwrap(err)
}
