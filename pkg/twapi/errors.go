package twapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrIncompleteSettings    = errors.New("incomplete settings passed")
	ErrUnsupportedAuthMode   = errors.New("auth mode not implemented")
	ErrUnsupportedHTTPMethod = errors.New("unsupported HTTP method")
	ErrMissingFilter         = errors.New("a filter on keyword, user or conversation is required")
	ErrAccountIDRequired     = errors.New("account_id is required for this resource")
	ErrTargetRequired        = errors.New("an id or username is required")
	ErrNoOperation           = errors.New("no operation selected")
	ErrEmptyMedia            = errors.New("media data is empty")
	ErrEmptyBody             = errors.New("request body is required")
	ErrInvalidOperator       = errors.New("operator must be OR or AND")
	ErrConfigRequired        = errors.New("config is required")
	ErrTransport             = errors.New("transport failure")
)

// SettingsError reports missing credential keys.
type SettingsError struct {
	Missing []string
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteSettings, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrIncompleteSettings.
func (e *SettingsError) Unwrap() error {
	return ErrIncompleteSettings
}

// UnsupportedModeError is returned when a request selects an auth mode the
// library cannot perform.
type UnsupportedModeError struct {
	Mode AuthMode
}

// Error implements the error interface.
func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedAuthMode, e.Mode)
}

// Unwrap returns ErrUnsupportedAuthMode.
func (e *UnsupportedModeError) Unwrap() error {
	return ErrUnsupportedAuthMode
}

// ValidationError is a client-side failure raised before any network call.
type ValidationError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StatusCode is the HTTP-equivalent status of a validation failure.
func (e *ValidationError) StatusCode() int {
	return http.StatusForbidden
}

// TransportError wraps network, timeout and TLS failures. It has no status code.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, ErrTransport, e.Err)
}

// Unwrap returns the transport cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// APIError is a single entry of an upstream "errors" array.
type APIError struct {
	Title   string `json:"title,omitempty"   yaml:"title,omitempty"`
	Detail  string `json:"detail,omitempty"  yaml:"detail,omitempty"`
	Type    string `json:"type,omitempty"    yaml:"type,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Code    int    `json:"code,omitempty"    yaml:"code,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Message
	}

	if e.Title == "" {
		return msg
	}

	return fmt.Sprintf("%s: %s", e.Title, msg)
}

// ResponseError is an upstream failure (HTTP status >= 400).
type ResponseError struct {
	StatusCode int        `json:"-"                yaml:"-"`
	Title      string     `json:"title,omitempty"  yaml:"title,omitempty"`
	Detail     string     `json:"detail,omitempty" yaml:"detail,omitempty"`
	Type       string     `json:"type,omitempty"   yaml:"type,omitempty"`
	Status     int        `json:"status,omitempty" yaml:"status,omitempty"`
	Errors     []APIError `json:"errors,omitempty" yaml:"errors,omitempty"`
	Body       []byte     `json:"-"                yaml:"-"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
	case len(e.Errors) == 1:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Errors[0].Error())
	case len(e.Errors) > 1:
		return fmt.Sprintf("HTTP %d: multiple errors: %v", e.StatusCode, e.Errors)
	case e.Title != "":
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Title)
	default:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// FirstError returns the first upstream error entry or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// ParseResponseError builds a ResponseError from an error response body.
// Bodies that are not JSON are kept verbatim in Detail.
func ParseResponseError(statusCode int, data []byte) *ResponseError {
	errResp := &ResponseError{StatusCode: statusCode, Body: data}
	if len(data) == 0 {
		return errResp
	}

	err := json.Unmarshal(data, errResp)
	if err != nil {
		errResp.Detail = strings.TrimSpace(string(data))
	}

	return errResp
}

// DecodeError is returned when a response body is not valid JSON.
type DecodeError struct {
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("parsing response (HTTP %d): %v", e.StatusCode, e.Err)
}

// Unwrap returns the JSON error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status carried by err. Transport failures and
// unknown errors report 0.
func StatusCode(err error) int {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	valErr := &ValidationError{}
	if errors.As(err, &valErr) {
		return valErr.StatusCode()
	}

	return 0
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return upstreamStatus(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 from the API.
func IsUnauthorized(err error) bool {
	return upstreamStatus(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a 403 from the API.
func IsForbidden(err error) bool {
	return upstreamStatus(err) == http.StatusForbidden
}

// IsRateLimited checks if the error is a 429 from the API.
func IsRateLimited(err error) bool {
	return upstreamStatus(err) == http.StatusTooManyRequests
}

func upstreamStatus(err error) int {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}
