package core

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrUnauthenticated is a sentinel error for delegated calls that have no
// usable stored credential
var ErrUnauthenticated = errors.New("user not authenticated or token not found")

// ErrNonActionableFeedback is a sentinel error for feedback the classifier
// rejected as not actionable
var ErrNonActionableFeedback = errors.New("non-actionable feedback")

// ErrFeedbackRejected is a sentinel error for feedback text rejected by
// input sanitization
var ErrFeedbackRejected = errors.New("feedback text rejected")

// ConfigurationError signals a required secret or credential is missing.
// Only the dependent feature degrades; the process keeps running.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Key)
}

// UpstreamAuthError signals the OAuth provider rejected a token exchange
type UpstreamAuthError struct {
	Message string
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("upstream auth error: %s", e.Message)
}

// UpstreamDataError signals the upstream returned a response missing
// required fields
type UpstreamDataError struct {
	Message string
}

func (e *UpstreamDataError) Error() string {
	return fmt.Sprintf("upstream data error: %s", e.Message)
}

// UpstreamError signals a non-success upstream response; StatusCode carries
// the upstream status so handlers can pass it through
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d: %s", e.StatusCode, e.Message)
}

// PersistenceError signals a failed or unconfirmed store write. Fatal for
// the request, never retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence error: %s", e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// CryptoError signals an encrypt/decrypt failure. A decrypt failure never
// falls back to treating ciphertext as plaintext.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto error: %s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// IsNotFoundError checks if an error is a "not found" error
// This function handles both the ErrNotFound sentinel error and legacy string-based errors
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return containsNotFound(err.Error())
}

// containsNotFound checks if an error message contains "not found"
func containsNotFound(errMsg string) bool {
	return len(errMsg) > 0 && (regexp.MustCompile(`(?i)not found`).MatchString(errMsg))
}
