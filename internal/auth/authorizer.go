package auth

import (
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// Authorizer produces the Authorization header value for one request.
type Authorizer interface {
	Mode() twapi.AuthMode
	Authorize(method, rawURL string, body map[string]any) (string, error)
}

// Select returns the authorizer for mode. The OAuth 2.0 code flow and unknown
// modes fail with *twapi.UnsupportedModeError; there is no fallback.
func Select(mode twapi.AuthMode, creds twapi.Credentials, opts ...SignerOption) (Authorizer, error) {
	switch mode {
	case twapi.AuthBearer:
		return &BearerAuthorizer{token: creds.BearerToken}, nil
	case twapi.AuthOAuth1:
		return &OAuth1Authorizer{signer: NewSigner(creds, opts...)}, nil
	case twapi.AuthOAuth2CodeFlow:
		return nil, &twapi.UnsupportedModeError{Mode: mode}
	default:
		return nil, &twapi.UnsupportedModeError{Mode: mode}
	}
}

// BearerAuthorizer sends the static application token.
type BearerAuthorizer struct {
	token string
}

// Mode implements Authorizer.
func (a *BearerAuthorizer) Mode() twapi.AuthMode {
	return twapi.AuthBearer
}

// Authorize implements Authorizer.
func (a *BearerAuthorizer) Authorize(string, string, map[string]any) (string, error) {
	return "Bearer " + a.token, nil
}

// OAuth1Authorizer signs each request with a fresh nonce and timestamp.
type OAuth1Authorizer struct {
	signer *Signer
}

// Mode implements Authorizer.
func (a *OAuth1Authorizer) Mode() twapi.AuthMode {
	return twapi.AuthOAuth1
}

// Authorize implements Authorizer.
func (a *OAuth1Authorizer) Authorize(method, rawURL string, body map[string]any) (string, error) {
	return a.signer.Sign(method, rawURL, body)
}
