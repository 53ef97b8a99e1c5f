package client

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/fivetwenty-io/twapi/internal/auth"
	"github.com/fivetwenty-io/twapi/internal/endpoint"
	"github.com/fivetwenty-io/twapi/internal/http"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// plan is what a builder's pending operation resolves to.
type plan struct {
	path     string
	route    string
	method   string
	auth     twapi.AuthMode
	body     map[string]any
	needBody bool
	decorate endpoint.Decorator
}

// request is the base embedded by every resource builder. It owns the
// endpoint state and runs the dispatch sequence.
type request struct {
	client       *Client
	state        endpoint.State
	authOverride *twapi.AuthMode
	resolve      func() (plan, error)
}

func newRequest(client *Client, resolve func() (plan, error)) request {
	return request{
		client:  client,
		state:   endpoint.New("", twapi.AuthBearer),
		resolve: resolve,
	}
}

func (r *request) setAuthMode(mode twapi.AuthMode) {
	r.authOverride = &mode
}

func (r *request) setPaginationToken(token string) {
	r.state.SetPaginationToken(token)
}

// accountID returns the configured account or a validation error.
func (r *request) accountID() (string, error) {
	if r.client.credentials.AccountID == "" {
		return "", &twapi.ValidationError{Field: twapi.SettingAccountID, Err: twapi.ErrAccountIDRequired}
	}

	return endpoint.PathSegment(r.client.credentials.AccountID), nil
}

// prepare resolves the pending operation into the endpoint state.
func (r *request) prepare() (plan, error) {
	p, err := r.resolve()
	if err != nil {
		return plan{}, err
	}

	if r.authOverride != nil {
		p.auth = *r.authOverride
	}

	r.state.SetEndpoint(p.path)
	r.state.Route = p.route
	r.state.Auth = p.auth

	err = r.state.SetHTTPMethod(p.method)
	if err != nil {
		return plan{}, err
	}

	return p, nil
}

// Endpoint returns the relative URL the builder would request.
func (r *request) Endpoint() (string, error) {
	p, err := r.prepare()
	if err != nil {
		return "", err
	}

	return r.state.Construct(p.decorate)
}

// Perform runs Idle → AuthResolved → URLResolved → Sent → Succeeded|Failed.
// It never retries.
func (r *request) Perform(ctx context.Context, body map[string]any, opts ...twapi.PerformOption) (*twapi.Response, error) {
	options := &twapi.PerformOptions{}
	for _, opt := range opts {
		opt(options)
	}

	p, err := r.prepare()
	if err != nil {
		return nil, err
	}

	authorizer, err := auth.Select(r.state.Auth, r.client.credentials, r.client.signerOpts...)
	if err != nil {
		return nil, err
	}

	path, err := r.state.Construct(p.decorate)
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		body = p.body
	}

	if p.needBody && len(body) == 0 {
		return nil, &twapi.ValidationError{Field: "body", Err: twapi.ErrEmptyBody}
	}

	return r.client.dispatch(ctx, &http.Request{
		Method: r.state.Method,
		Path:   path,
		Body:   body,
		Auth:   authorizer,
	}, r.state.Route, options)
}

// dispatch sends req and normalizes the outcome.
func (c *Client) dispatch(ctx context.Context, req *http.Request, route string, options *twapi.PerformOptions) (*twapi.Response, error) {
	start := time.Now()

	resp, err := c.apiClient.Do(ctx, req)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}

		c.observe(req.Method, route, status, start, err)

		return nil, err
	}

	result, err := decodeResponse(resp, options)
	c.observe(req.Method, route, resp.StatusCode, start, err)

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) observe(method, route string, status int, start time.Time, err error) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, route, status, time.Since(start), err)
	}
}

// decodeResponse parses a successful body. An empty body yields a nil payload.
func decodeResponse(resp *http.Response, options *twapi.PerformOptions) (*twapi.Response, error) {
	result := &twapi.Response{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}

	if options.IncludeHeaders {
		result.Headers = resp.Headers
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return result, nil
	}

	var payload map[string]any

	err := json.Unmarshal(resp.Body, &payload)
	if err != nil {
		return nil, &twapi.DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	result.Payload = payload

	return result, nil
}
