// Package twapi provides types, interfaces, and helpers for working with the
// Twitter API v2.
//
// # Overview
//
// The twapi package defines the credential and response types, the typed
// errors, and the interfaces of the resource builders (TweetsClient,
// TweetSearchClient, UsersClient, ...). A concrete implementation is provided
// by the twclient package, which wires configuration, transport and
// authentication. Most consumers should import twclient to construct a client
// and then use the builder interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/twapi/pkg/twapi"
//	  "github.com/fivetwenty-io/twapi/pkg/twclient"
//	)
//
//	func example(settings map[string]string) {
//	  cli, err := twclient.NewFromSettings(settings)
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.Search().
//	    Keywords("golang").
//	    Locales("en").
//	    MaxResults(10).
//	    ShowMetrics().
//	    Perform(context.Background(), nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = resp.Data()
//	}
//
// # Authentication
//
// Every builder picks an AuthMode when an operation is selected: read-only
// application calls use the bearer token, user-context and mutating calls
// are signed with OAuth 1.0a. Bookmarks require the OAuth 2.0 Authorization
// Code Flow, which is not implemented; those requests fail with an
// UnsupportedModeError before any network call.
//
// # Errors
//
// Perform returns one of:
//
//   - *SettingsError when credentials are incomplete (at construction),
//   - *ValidationError when the builder lacks a required filter or id,
//   - *UnsupportedModeError for the OAuth 2.0 code flow,
//   - *TransportError for network, timeout and TLS failures,
//   - *ResponseError for HTTP status >= 400,
//   - *DecodeError when a successful response is not valid JSON.
//
// Use StatusCode, IsNotFound, IsUnauthorized, IsForbidden and IsRateLimited
// to inspect them. The library never retries.
package twapi
