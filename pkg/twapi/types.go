package twapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthMode selects how a request is authorized.
type AuthMode int

const (
	// AuthBearer sends the application bearer token.
	AuthBearer AuthMode = iota
	// AuthOAuth1 signs the request with OAuth 1.0a user context.
	AuthOAuth1
	// AuthOAuth2CodeFlow is the OAuth 2.0 Authorization Code Flow with PKCE.
	// It needs interactive user consent and is not supported.
	AuthOAuth2CodeFlow
)

// String implements fmt.Stringer.
func (m AuthMode) String() string {
	switch m {
	case AuthBearer:
		return "bearer"
	case AuthOAuth1:
		return "oauth1"
	case AuthOAuth2CodeFlow:
		return "oauth2-code-flow"
	default:
		return fmt.Sprintf("AuthMode(%d)", int(m))
	}
}

// Operator joins filter groups in the search query grammar.
type Operator string

const (
	// OperatorOr is the default operator.
	OperatorOr Operator = "OR"
	// OperatorAnd is implicit juxtaposition in the query grammar, so it renders empty.
	OperatorAnd Operator = ""
)

// Credentials holds the validated credential material.
type Credentials struct {
	ConsumerKey       string `json:"consumer_key"        yaml:"consumer_key"`
	ConsumerSecret    string `json:"consumer_secret"     yaml:"consumer_secret"`
	BearerToken       string `json:"bearer_token"        yaml:"bearer_token"`
	AccessToken       string `json:"access_token"        yaml:"access_token"`
	AccessTokenSecret string `json:"access_token_secret" yaml:"access_token_secret"`
	AccountID         string `json:"account_id"          yaml:"account_id"`
	// FreeMode trims field selections that the free API tier rejects.
	FreeMode bool `json:"free_mode" yaml:"free_mode"`
}

// Response is the normalized outcome of a successful request.
type Response struct {
	StatusCode int `json:"status_code" yaml:"status_code"`
	// Headers is only populated when WithResponseHeaders is passed to Perform.
	Headers http.Header    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    []byte         `json:"-"                 yaml:"-"`
	Payload map[string]any `json:"payload"           yaml:"payload"`
}

// Decode unmarshals the raw response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}

	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return &DecodeError{StatusCode: r.StatusCode, Err: err}
	}

	return nil
}

// Data returns the "data" member of the payload, or nil.
func (r *Response) Data() any {
	if r.Payload == nil {
		return nil
	}

	return r.Payload["data"]
}

// PerformOptions holds per-dispatch settings.
type PerformOptions struct {
	IncludeHeaders bool
}

// PerformOption configures a single Perform call.
type PerformOption func(*PerformOptions)

// WithResponseHeaders attaches the response headers to the returned Response.
func WithResponseHeaders() PerformOption {
	return func(o *PerformOptions) {
		o.IncludeHeaders = true
	}
}

// Tweet is a minimal tweet object as returned in "data".
type Tweet struct {
	ID            string         `json:"id"                       yaml:"id"`
	Text          string         `json:"text"                     yaml:"text"`
	AuthorID      string         `json:"author_id,omitempty"      yaml:"author_id,omitempty"`
	CreatedAt     string         `json:"created_at,omitempty"     yaml:"created_at,omitempty"`
	Lang          string         `json:"lang,omitempty"           yaml:"lang,omitempty"`
	PublicMetrics map[string]int `json:"public_metrics,omitempty" yaml:"public_metrics,omitempty"`
}

// User is a minimal user object as returned in "data" or "includes.users".
type User struct {
	ID          string `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Username    string `json:"username"              yaml:"username"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Meta carries list metadata, including the cursor for the next page.
type Meta struct {
	ResultCount   int    `json:"result_count"             yaml:"result_count"`
	NextToken     string `json:"next_token,omitempty"     yaml:"next_token,omitempty"`
	PreviousToken string `json:"previous_token,omitempty" yaml:"previous_token,omitempty"`
	NewestID      string `json:"newest_id,omitempty"      yaml:"newest_id,omitempty"`
	OldestID      string `json:"oldest_id,omitempty"      yaml:"oldest_id,omitempty"`
}

// ListResponse is a page of results.
type ListResponse[T any] struct {
	Data     []T      `json:"data"               yaml:"data"`
	Includes Includes `json:"includes,omitempty" yaml:"includes,omitempty"`
	Meta     Meta     `json:"meta"               yaml:"meta"`
}

// Includes holds expanded objects.
type Includes struct {
	Users []User `json:"users,omitempty" yaml:"users,omitempty"`
	Media []any  `json:"media,omitempty" yaml:"media,omitempty"`
}

// MediaUpload is the upload endpoint response.
type MediaUpload struct {
	MediaID       int64  `json:"media_id"                     yaml:"media_id"`
	MediaIDString string `json:"media_id_string"              yaml:"media_id_string"`
	Size          int64  `json:"size"                         yaml:"size"`
	ExpiresAfter  int64  `json:"expires_after_secs,omitempty" yaml:"expires_after_secs,omitempty"`
}
