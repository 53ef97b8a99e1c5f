// Package endpoint holds the request state shared by every resource builder
// and assembles the final relative URL.
package endpoint

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// Decorator appends resource-specific query fragments in a fixed order. It
// runs once per Construct call, so it must not retain q.
type Decorator func(q *Query) error

// State is the mutable endpoint state of one builder.
type State struct {
	Path            string
	Method          string
	Auth            twapi.AuthMode
	PaginationToken string
	// Route is the path template, e.g. "users/:id/blocking". It labels metrics.
	Route string
}

// New creates a GET state for path.
func New(path string, mode twapi.AuthMode) State {
	return State{
		Path:   path,
		Method: http.MethodGet,
		Auth:   mode,
		Route:  path,
	}
}

// SetEndpoint replaces the resource path.
func (s *State) SetEndpoint(path string) {
	s.Path = path
}

// SetHTTPMethod sets the verb. Only GET, POST, PUT and DELETE are accepted;
// anything else leaves the state unchanged.
func (s *State) SetHTTPMethod(verb string) error {
	method := strings.ToUpper(strings.TrimSpace(verb))

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		s.Method = method

		return nil
	default:
		return fmt.Errorf("%w: %q", twapi.ErrUnsupportedHTTPMethod, verb)
	}
}

// SetPaginationToken stores the cursor appended by Construct.
func (s *State) SetPaginationToken(token string) {
	s.PaginationToken = token
}

// Construct returns the path plus the query built by decorate, with the
// pagination token appended last.
func (s *State) Construct(decorate Decorator) (string, error) {
	query := &Query{}

	if decorate != nil {
		err := decorate(query)
		if err != nil {
			return "", err
		}
	}

	if s.PaginationToken != "" {
		query.Add(constants.PaginationParam, s.PaginationToken)
	}

	if query.Len() == 0 {
		return s.Path, nil
	}

	separator := "?"
	if strings.Contains(s.Path, "?") {
		separator = "&"
	}

	return s.Path + separator + query.Encode(), nil
}

// Query is an insertion-ordered query string.
type Query struct {
	parts []string
}

// Add appends key=value with value percent-encoded.
func (q *Query) Add(key, value string) {
	q.parts = append(q.parts, key+"="+Escape(value))
}

// AddRaw appends an already encoded fragment such as "a=1&b=2".
func (q *Query) AddRaw(fragment string) {
	fragment = strings.Trim(fragment, "&")
	if fragment != "" {
		q.parts = append(q.parts, fragment)
	}
}

// Len returns the number of fragments.
func (q *Query) Len() int {
	return len(q.parts)
}

// Encode joins the fragments with "&".
func (q *Query) Encode() string {
	return strings.Join(q.parts, "&")
}

// Escape percent-encodes s for the query mini-language: spaces become %20,
// never "+".
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// PathSegment escapes a single path segment.
func PathSegment(s string) string {
	return url.PathEscape(s)
}

// List escapes each item and joins them with commas.
func List(items []string) string {
	escaped := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			escaped = append(escaped, Escape(item))
		}
	}

	return strings.Join(escaped, ",")
}
