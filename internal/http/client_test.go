package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	twhttp "github.com/fivetwenty-io/twapi/internal/http"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAuthorize = errors.New("cannot sign")

// MockAuthorizer for testing.
type MockAuthorizer struct {
	header string
	err    error
	method string
	url    string
	body   map[string]any
}

func (a *MockAuthorizer) Authorize(method, rawURL string, body map[string]any) (string, error) {
	a.method = method
	a.url = rawURL
	a.body = body

	return a.header, a.err
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/tweets", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			_ = json.NewEncoder(writer).Encode(map[string]any{"data": map[string]string{"id": "1"}})
		}))
		defer server.Close()

		client := twhttp.NewClient(server.URL + "/2/")

		req := &twhttp.Request{
			Method: "GET",
			Path:   "tweets",
			Auth:   &MockAuthorizer{header: "Bearer test-token"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.JSONEq(t, `{"data":{"id":"1"}}`, string(resp.Body))
	})

	t.Run("authorizer sees the final URL and body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		authorizer := &MockAuthorizer{header: "OAuth x"}
		client := twhttp.NewClient(server.URL + "/2")

		_, err := client.Do(context.Background(), &twhttp.Request{
			Method: "POST",
			Path:   "/tweets?ids=1",
			Body:   map[string]any{"text": "hi"},
			Auth:   authorizer,
		})
		require.NoError(t, err)
		assert.Equal(t, "POST", authorizer.method)
		assert.Equal(t, server.URL+"/2/tweets?ids=1", authorizer.url)
		assert.Equal(t, map[string]any{"text": "hi"}, authorizer.body)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/2/users", request.URL.Path)
			assert.Equal(t, "ids=1%2C2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := twhttp.NewClient(server.URL + "/2/")

		resp, err := client.Do(context.Background(), &twhttp.Request{Method: http.MethodGet, Path: "users?ids=1%2C2"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "hello", body["text"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := twhttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &twhttp.Request{
			Method: http.MethodPost,
			Path:   "tweets",
			Body:   map[string]any{"text": "hello"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("empty body is sent as no body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			data, _ := io.ReadAll(request.Body)
			assert.Empty(t, data)
			assert.Equal(t, int64(0), request.ContentLength)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := twhttp.NewClient(server.URL)

		_, err := client.Do(context.Background(), &twhttp.Request{
			Method: http.MethodPost,
			Path:   "users/1/retweets",
			Body:   map[string]any{},
		})
		require.NoError(t, err)
	})

	t.Run("multipart form", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			require.NoError(t, request.ParseMultipartForm(1<<20))
			assert.Equal(t, "aGVsbG8=", request.FormValue("media_data"))
			assert.Equal(t, "TWEET_IMAGE", request.URL.Query().Get("media_category"))

			_, _ = writer.Write([]byte(`{"media_id":1,"media_id_string":"1"}`))
		}))
		defer server.Close()

		authorizer := &MockAuthorizer{header: "OAuth x"}
		client := twhttp.NewClient(server.URL + "/1.1/")

		_, err := client.Do(context.Background(), &twhttp.Request{
			Method: "POST",
			Path:   "media/upload.json?media_category=TWEET_IMAGE",
			Form:   map[string]string{"media_data": "aGVsbG8="},
			Auth:   authorizer,
		})
		require.NoError(t, err)
		assert.Nil(t, authorizer.body)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
			_, _ = writer.Write([]byte(`{"detail":"Forbidden","status":403}`))
		}))
		defer server.Close()

		client := twhttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &twhttp.Request{Method: http.MethodGet, Path: "tweets"})
		require.Error(t, err)
		assert.Equal(t, 403, resp.StatusCode)

		errResp := &twapi.ResponseError{}
		ok := errors.As(err, &errResp)
		require.True(t, ok)
		assert.Equal(t, 403, errResp.StatusCode)
		assert.Equal(t, "Forbidden", errResp.Detail)
		assert.Equal(t, 403, errResp.Status)
	})

	t.Run("server errors are not retried", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := twhttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &twhttp.Request{Method: http.MethodGet, Path: "tweets"})
		require.Error(t, err)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client := twhttp.NewClient(serverURL, twhttp.WithTimeout(time.Second))

		resp, err := client.Do(context.Background(), &twhttp.Request{Method: http.MethodGet, Path: "tweets"})
		require.Error(t, err)
		assert.Nil(t, resp)
		require.ErrorIs(t, err, twapi.ErrTransport)
		assert.Equal(t, 0, twapi.StatusCode(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := twhttp.NewClient(server.URL)

		_, err := client.Do(ctx, &twhttp.Request{Method: http.MethodGet, Path: "tweets"})
		require.ErrorIs(t, err, twapi.ErrTransport)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("authorizer failure stops the request", func(t *testing.T) {
		t.Parallel()

		var called int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&called, 1)
		}))
		defer server.Close()

		client := twhttp.NewClient(server.URL)

		_, err := client.Do(context.Background(), &twhttp.Request{
			Method: "GET",
			Path:   "tweets",
			Auth:   &MockAuthorizer{err: errAuthorize},
		})
		require.ErrorIs(t, err, errAuthorize)
		assert.Equal(t, int32(0), atomic.LoadInt32(&called))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "my-agent", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := twhttp.NewClient(server.URL, twhttp.WithUserAgent("my-agent"))

		req := &twhttp.Request{
			Method: "GET",
			Path:   "tweets",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := twhttp.NewClient(server.URL, twhttp.WithLogger(logger), twhttp.WithDebug(true))

		_, err := client.Do(context.Background(), &twhttp.Request{
			Method: "GET",
			Path:   "tweets",
			Auth:   &MockAuthorizer{header: "Bearer secret-token"},
		})
		require.NoError(t, err)

		// Should have logged request and response
		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])

		fields, ok := logger.logs[0]["fields"].(map[string]interface{})
		require.True(t, ok)
		headers, ok := fields["headers"].(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "Bearer ***", headers["Authorization"])
	})

	t.Run("no logging without debug", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := twhttp.NewClient(server.URL, twhttp.WithLogger(logger))

		_, err := client.Do(context.Background(), &twhttp.Request{Method: http.MethodGet, Path: "tweets"})
		require.NoError(t, err)
		assert.Empty(t, logger.logs)
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		body     map[string]any
		wantBody string
	}{
		{name: "GET", method: http.MethodGet},
		{name: "POST", method: http.MethodPost, body: map[string]any{"key": "value"}, wantBody: `{"key":"value"}`},
		{name: "PUT", method: http.MethodPut, body: map[string]any{"key": "value"}, wantBody: `{"key":"value"}`},
		{name: "DELETE", method: http.MethodDelete},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)

				data, _ := io.ReadAll(request.Body)
				if testCase.wantBody == "" {
					assert.Empty(t, data)
				} else {
					assert.JSONEq(t, testCase.wantBody, string(data))
				}

				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := twhttp.NewClient(server.URL)
			resp, err := client.Do(context.Background(), &twhttp.Request{
				Method: testCase.method,
				Path:   "/test",
				Body:   testCase.body,
			})
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}
