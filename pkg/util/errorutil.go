package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidInput(message string) error {
	return NewDomainError("invalid_input", message, http.StatusBadRequest, nil)
}

func NewInvalidToken(message string) error {
	return NewDomainError("invalid_token", message, http.StatusUnauthorized, nil)
}

// NewTokenExpired signals that the quota window has elapsed. The client must
// request a fresh token; verification never rotates expired tokens itself.
func NewTokenExpired(resetAt int64) error {
	return NewDomainError("token_expired", "token expired - reset required", http.StatusUnauthorized, map[string]any{
		"expired":       true,
		"resetRequired": true,
		"resetAt":       resetAt,
	})
}

// NewLimitReached reports quota exhaustion within an open window. resetAt lets
// the client render a countdown.
func NewLimitReached(used, limit int, resetAt int64) error {
	return NewDomainError("limit_reached", "message limit reached", http.StatusTooManyRequests, map[string]any{
		"messagesUsed":  used,
		"messagesLimit": limit,
		"resetAt":       resetAt,
		"limitReached":  true,
	})
}

func NewFingerprintMismatch() error {
	return NewDomainError("fingerprint_mismatch", "token does not match requesting client", http.StatusForbidden, nil)
}

// NewUpstreamError surfaces a non-success response from the completion API,
// keeping upstream status and body for operator diagnosis.
func NewUpstreamError(status int, body string) error {
	return NewDomainError("openrouter_error", "upstream completion request failed", http.StatusInternalServerError, map[string]any{
		"status": status,
		"body":   body,
	})
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "server_error",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "server_error",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
