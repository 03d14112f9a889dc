package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized means the API key is missing or was rejected.
type ErrUnauthorized struct {
	Err error
}

func (e *ErrUnauthorized) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AI provider rejected credentials: %v", e.Err)
	}
	return "AI provider API key is not configured"
}

func (e *ErrUnauthorized) Unwrap() error { return e.Err }

// ErrRateLimit means the provider refused the request for quota reasons.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("AI provider quota exceeded: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

type ErrTimeout struct {
	Err error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("AI provider timeout: %v", e.Err)
}

func (e *ErrTimeout) Unwrap() error { return e.Err }

type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AI provider error: %v", e.Err)
	}
	return "AI provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse means the reply was not the JSON that was asked for.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid AI response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status reported by a provider SDK.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrUnauthorized{Err: err}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusGatewayTimeout || status == http.StatusRequestTimeout:
		return &ErrTimeout{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// classifyGeneric handles errors that carry no status code.
func classifyGeneric(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ErrTimeout{Err: err}
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "invalid_api_key") || strings.Contains(msg, "Incorrect API key"):
		return &ErrUnauthorized{Err: err}
	case strings.Contains(msg, "insufficient_quota"):
		return &ErrRateLimit{Err: err}
	case strings.Contains(msg, "timed out") || strings.Contains(msg, "Timeout"):
		return &ErrTimeout{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// HTTPStatus returns the status and client message for an AI failure.
func HTTPStatus(err error) (int, string) {
	var (
		unauth  *ErrUnauthorized
		limited *ErrRateLimit
		timeout *ErrTimeout
	)
	switch {
	case errors.As(err, &unauth):
		if unauth.Err == nil {
			return http.StatusUnauthorized, "Missing AI provider API key"
		}
		return http.StatusUnauthorized, "Invalid AI provider API key"
	case errors.As(err, &limited):
		return http.StatusTooManyRequests, "AI provider quota exceeded"
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout, "AI provider timeout"
	}
	return http.StatusBadGateway, err.Error()
}

// IsProviderError reports whether err came from an AI provider call.
func IsProviderError(err error) bool {
	var (
		unauth   *ErrUnauthorized
		limited  *ErrRateLimit
		timeout  *ErrTimeout
		down     *ErrProviderUnavailable
		response *ErrInvalidResponse
	)
	return errors.As(err, &unauth) || errors.As(err, &limited) || errors.As(err, &timeout) ||
		errors.As(err, &down) || errors.As(err, &response)
}
