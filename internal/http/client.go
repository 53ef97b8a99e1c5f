// Package http is the transport used by the resource builders. It sends
// exactly one attempt per request and classifies the outcome.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
	"github.com/hashicorp/go-retryablehttp"
)

const defaultUserAgent = "twapi-go/1.0.0"

// Authorizer produces the Authorization header value for a request.
type Authorizer interface {
	Authorize(method, rawURL string, body map[string]any) (string, error)
}

// Client is the HTTP client.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	userAgent  string
	logger     twapi.Logger
	debug      bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger twapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryLogger forwards the transport's own diagnostics to a leveled
// logger such as *slog.Logger.
func WithRetryLogger(logger retryablehttp.LeveledLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.httpClient.Logger = logger
		}
	}
}

// NewClient creates a new HTTP client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		httpClient: retryClient,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the root every request path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request represents an HTTP request.
type Request struct {
	Method string
	// Path is relative to the base URL and may carry an encoded query.
	Path    string
	Body    map[string]any
	Form    map[string]string
	Headers map[string]string
	Auth    Authorizer
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// URL resolves the request against the base URL.
func (c *Client) URL(req *Request) string {
	return c.baseURL + strings.TrimLeft(req.Path, "/")
}

// Do performs one HTTP request. Status >= 400 returns both the response and a
// *twapi.ResponseError; network failures return a *twapi.TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.URL(req)

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if req.Auth != nil {
		// Form bodies are multipart here, which OAuth 1.0a leaves unsigned.
		header, authErr := req.Auth.Authorize(req.Method, fullURL, req.Body)
		if authErr != nil {
			return nil, fmt.Errorf("authorizing request: %w", authErr)
		}

		httpReq.Header.Set("Authorization", header)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  req.Method,
			"url":     fullURL,
			"headers": maskHeaders(httpReq.Header),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &twapi.TransportError{Method: req.Method, URL: fullURL, Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &twapi.TransportError{Method: req.Method, URL: fullURL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"body":     string(respBody),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode >= constants.HTTPStatusBadRequest {
		return resp, twapi.ParseResponseError(httpResp.StatusCode, respBody)
	}

	return resp, nil
}

// encodeBody returns nil for an empty body: the API rejects "{}".
func encodeBody(req *Request) (io.Reader, string, error) {
	if len(req.Form) > 0 {
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)

		for key, value := range req.Form {
			err := writer.WriteField(key, value)
			if err != nil {
				return nil, "", fmt.Errorf("writing form field %s: %w", key, err)
			}
		}

		err := writer.Close()
		if err != nil {
			return nil, "", fmt.Errorf("closing multipart body: %w", err)
		}

		return buf, writer.FormDataContentType(), nil
	}

	if len(req.Body) == 0 {
		return nil, "application/json", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request body: %w", err)
	}

	return bytes.NewReader(data), "application/json", nil
}

func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

func maskHeaders(headers http.Header) map[string]string {
	masked := make(map[string]string, len(headers))

	for key := range headers {
		if strings.EqualFold(key, "Authorization") {
			scheme, _, _ := strings.Cut(headers.Get(key), " ")
			masked[key] = scheme + " " + constants.MaskedSecret

			continue
		}

		masked[key] = headers.Get(key)
	}

	return masked
}
