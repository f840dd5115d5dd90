package httpclient

import (
	"errors"
	"fmt"
)

var (
	ErrRequestFailed   = errors.New("httpclient: request failed")
	ErrServiceError    = errors.New("httpclient: service error")
	ErrDecodeResponse  = errors.New("httpclient: failed to decode response")
	ErrCreateRequest   = errors.New("httpclient: failed to create request")
	ErrEncodeBody      = errors.New("httpclient: failed to encode request body")
	ErrInvalidBaseURL  = errors.New("httpclient: invalid base url")
	ErrInvalidAuth     = errors.New("httpclient: invalid auth settings")
	ErrMetricsConflict = errors.New("httpclient: metric already registered with another type")
)

type ServiceError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("httpclient: service returned status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("httpclient: service returned status %d", e.StatusCode)
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(target, ErrServiceError)
}

func (e *ServiceError) Unwrap() error {
	return ErrServiceError
}

func NewServiceError(statusCode int, message string, body []byte) *ServiceError {
	return &ServiceError{
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}

	return nil, false
}

// newServiceErrorFromBody pulls a "message" field out of a JSON error body when one
// is present; the raw body is always kept.
func newServiceErrorFromBody(resp *Response) *ServiceError {
	var errResp ErrorResponse
	if err := json.Unmarshal(resp.Body, &errResp); err == nil && errResp.Message != "" {
		return NewServiceError(resp.StatusCode, errResp.Message, resp.Body)
	}

	return NewServiceError(resp.StatusCode, "", resp.Body)
}
