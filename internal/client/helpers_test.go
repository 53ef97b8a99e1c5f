package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twapi/internal/auth"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// FixtureCredentials returns a complete credential set with account 42.
func FixtureCredentials() twapi.Credentials {
	return twapi.Credentials{
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		BearerToken:       "bearer-token",
		AccessToken:       "tk",
		AccessTokenSecret: "ts",
		AccountID:         "42",
	}
}

// RecordedRequest is what a test server saw.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          []byte
}

// TestServer records requests and answers with a fixed response.
type TestServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewTestServer starts a server answering every request with status and body.
func NewTestServer(t *testing.T, status int, body string) *TestServer {
	t.Helper()

	server := &TestServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, err := io.ReadAll(request.Body)
		assert.NoError(t, err)

		server.mu.Lock()
		server.requests = append(server.requests, RecordedRequest{
			Method:        request.Method,
			Path:          request.URL.Path,
			RawQuery:      request.URL.RawQuery,
			Authorization: request.Header.Get("Authorization"),
			ContentType:   request.Header.Get("Content-Type"),
			Body:          data,
		})
		server.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.Header().Set("X-Rate-Limit-Remaining", "99")
		writer.WriteHeader(status)
		_, _ = io.WriteString(writer, body)
	}))
	t.Cleanup(server.Close)

	return server
}

// Requests returns a copy of the recorded requests.
func (s *TestServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]RecordedRequest(nil), s.requests...)
}

// Last returns the most recent request.
func (s *TestServer) Last(t *testing.T) RecordedRequest {
	t.Helper()

	requests := s.Requests()
	require.NotEmpty(t, requests, "no request reached the server")

	return requests[len(requests)-1]
}

// NewTestClient creates a client rooted at baseURL with a fixed OAuth clock
// and nonce. mutate may adjust the credentials first.
func NewTestClient(t *testing.T, baseURL string, mutate ...func(*twapi.Credentials)) *Client {
	t.Helper()

	creds := FixtureCredentials()
	for _, fn := range mutate {
		fn(&creds)
	}

	client, err := New(&twapi.Config{
		Credentials:   creds,
		APIBaseURL:    baseURL + "/2/",
		UploadBaseURL: baseURL + "/1.1/",
	}, WithSignerOptions(
		auth.WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
		auth.WithNonce(func() string { return "12345" }),
	))
	require.NoError(t, err)

	return client
}

// EndpointCase is a builder expected to resolve to a method and relative URL.
type EndpointCase struct {
	Name     string
	Build    func(*Client) twapi.Requester
	Method   string
	Endpoint string
	Auth     twapi.AuthMode
}

// RunEndpointTests checks Endpoint() for each case and that Perform sends the
// same method and URL.
func RunEndpointTests(t *testing.T, tests []EndpointCase) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := NewTestServer(t, http.StatusOK, `{"data":{}}`)
			client := NewTestClient(t, server.URL)

			got, err := testCase.Build(client).Endpoint()
			require.NoError(t, err)
			assert.Equal(t, testCase.Endpoint, got)

			_, err = testCase.Build(client).Perform(context.Background(), nil)
			require.NoError(t, err)

			last := server.Last(t)
			assert.Equal(t, testCase.Method, last.Method)

			sent := last.Path
			if last.RawQuery != "" {
				sent += "?" + last.RawQuery
			}

			assert.Equal(t, "/2/"+testCase.Endpoint, sent)

			switch testCase.Auth {
			case twapi.AuthBearer:
				assert.Equal(t, "Bearer bearer-token", last.Authorization)
			case twapi.AuthOAuth1:
				assert.Contains(t, last.Authorization, `OAuth oauth_consumer_key="ck"`)
			case twapi.AuthOAuth2CodeFlow:
				t.Fatalf("code flow requests never reach the server")
			}
		})
	}
}
