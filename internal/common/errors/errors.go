// Package errors provides standardized error handling for the agent fleet.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeWebsiteFetchFailed      ErrorCode = "WEBSITE_FETCH_FAILED"
	ErrCodeNewsAPIFailed           ErrorCode = "NEWS_API_FAILED"
	ErrCodeTickerLookupFailed      ErrorCode = "TICKER_LOOKUP_FAILED"
	ErrCodeFundamentalsFetchFailed ErrorCode = "FUNDAMENTALS_FETCH_FAILED"
	ErrCodeLLMCallFailed           ErrorCode = "LLM_CALL_FAILED"
	ErrCodeLLMParseFailed          ErrorCode = "LLM_PARSE_FAILED"
	ErrCodeMessageDecodeFailed     ErrorCode = "MESSAGE_DECODE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WireText renders the error into the text carried by an error message.
// Callers of a failing agent see this string, nothing more.
func (e *StandardError) WireText() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

// NewWebsiteFetchFailedError covers a homepage GET that raised or timed out.
func NewWebsiteFetchFailedError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebsiteFetchFailed,
		Message:   fmt.Sprintf("Error extracting content from website %s", url),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNewsAPIFailedError covers a failed or non-ok news search call.
func NewNewsAPIFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNewsAPIFailed,
		Message:   "Failed to fetch news",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTickerLookupFailedError covers a failed finance symbol search.
func NewTickerLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTickerLookupFailed,
		Message:   "Exception during ticker lookup",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFundamentalsFetchFailedError covers a failed fundamentals snapshot call.
func NewFundamentalsFetchFailedError(ticker string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFundamentalsFetchFailed,
		Message:   fmt.Sprintf("Failed to fetch fundamentals for %s", ticker),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMCallFailedError covers a generative model call that raised.
func NewLLMCallFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMCallFailed,
		Message:   "Generative model call failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMParseFailedError covers model output that could not be parsed.
func NewLLMParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMParseFailed,
		Message:   "Could not parse generative model output",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMessageDecodeFailedError covers an inbound payload that failed to decode.
func NewMessageDecodeFailedError(msgType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMessageDecodeFailed,
		Message:   fmt.Sprintf("Could not decode %s payload", msgType),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
