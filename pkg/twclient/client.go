// Package twclient provides the main entry point for creating API clients.
package twclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fivetwenty-io/twapi/internal/client"
	"github.com/fivetwenty-io/twapi/internal/config"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// Option adjusts the client configuration built by NewFromSettings and NewFromFile.
type Option func(*twapi.Config)

// WithAPIBaseURL overrides the REST root.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *twapi.Config) {
		c.APIBaseURL = baseURL
	}
}

// WithUploadBaseURL overrides the media upload root.
func WithUploadBaseURL(baseURL string) Option {
	return func(c *twapi.Config) {
		c.UploadBaseURL = baseURL
	}
}

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *twapi.Config) {
		c.HTTPClient = httpClient
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *twapi.Config) {
		c.HTTPTimeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *twapi.Config) {
		c.UserAgent = userAgent
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger twapi.Logger) Option {
	return func(c *twapi.Config) {
		c.Logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *twapi.Config) {
		c.Debug = debug
	}
}

// WithObserver sets the per-request observer.
func WithObserver(observer twapi.Observer) Option {
	return func(c *twapi.Config) {
		c.Observer = observer
	}
}

// New creates a new API client from config.
func New(config *twapi.Config) (twapi.Client, error) {
	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewFromSettings validates a flat settings map and creates a client from it.
// All of consumer_key, consumer_secret, bearer_token, access_token and
// access_token_secret are required; account_id and free_mode are optional.
func NewFromSettings(settings map[string]string, opts ...Option) (twapi.Client, error) {
	creds, err := twapi.ValidateSettings(settings)
	if err != nil {
		return nil, err
	}

	cfg := &twapi.Config{Credentials: creds}
	for _, opt := range opts {
		opt(cfg)
	}

	return New(cfg)
}

// NewFromFile loads settings from a yaml, json or .env file, overlaid with
// TWITTER_* environment variables, and creates a client from them.
func NewFromFile(path string, opts ...Option) (twapi.Client, error) {
	settings, err := config.NewLoader(nil).Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return NewFromSettings(settings, opts...)
}
