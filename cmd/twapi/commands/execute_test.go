package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// The commands share the global viper instance, so these tests are not parallel.

type apiRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          string
}

type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []apiRequest
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()

	api := &fakeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)

		api.mu.Lock()
		api.requests = append(api.requests, apiRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(data),
		})
		api.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(api.Close)

	return api
}

func (a *fakeAPI) Requests() []apiRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]apiRequest(nil), a.requests...)
}

func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	content := `consumer_key: ck
consumer_secret: cs
bearer_token: bt
access_token: tk
access_token_secret: ts
` + extra

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCommand("1.2.3", "abc123", "2024-01-01")

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestExecute_Search(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK,
		`{"data":[{"id":"1","text":"php rocks","author_id":"9"}],"meta":{"result_count":1}}`)
	cfg := writeTestConfig(t, "")

	out, err := executeCommand(t, "search", "--keyword", "php", "--max-results", "10",
		"--output", "json", "--config", cfg, "--api-url", api.URL+"/2/")
	require.NoError(t, err)

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Equal(t, "/2/tweets/search/recent", requests[0].Path)
	assert.Equal(t, `query=("php"%20OR%20%23php)&max_results=10`, requests[0].RawQuery)
	assert.Equal(t, "Bearer bt", requests[0].Authorization)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))

	data, ok := payload["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "1", data[0].(map[string]any)["id"])
}

func TestExecute_SearchRequiresFilter(t *testing.T) {
	cfg := writeTestConfig(t, "")

	_, err := executeCommand(t, "search", "--output", "json", "--config", cfg)
	require.ErrorIs(t, err, constants.ErrNoSearchFilter)
}

func TestExecute_TweetCreate(t *testing.T) {
	api := newFakeAPI(t, http.StatusCreated, `{"data":{"id":"7","text":"hello"}}`)
	cfg := writeTestConfig(t, "")

	out, err := executeCommand(t, "tweet", "create", "hello",
		"--output", "yaml", "--config", cfg, "--api-url", api.URL+"/2/")
	require.NoError(t, err)

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "/2/tweets", requests[0].Path)
	assert.True(t, strings.HasPrefix(requests[0].Authorization, "OAuth "))
	assert.JSONEq(t, `{"text":"hello"}`, requests[0].Body)

	assert.Contains(t, out, "text: hello")
}

func TestExecute_TweetCreateWithMedia(t *testing.T) {
	api := newFakeAPI(t, http.StatusCreated, `{"data":{"id":"7","text":""}}`)
	cfg := writeTestConfig(t, "")

	_, err := executeCommand(t, "tweet", "create", "--media-id", "111", "--reply-to", "5",
		"--output", "json", "--config", cfg, "--api-url", api.URL+"/2/")
	require.NoError(t, err)

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.JSONEq(t, `{"media":{"media_ids":["111"]},"reply":{"in_reply_to_tweet_id":"5"}}`, requests[0].Body)
}

func TestExecute_TweetCreateRequiresText(t *testing.T) {
	cfg := writeTestConfig(t, "")

	_, err := executeCommand(t, "tweet", "create", "  ", "--output", "json", "--config", cfg)
	require.ErrorIs(t, err, constants.ErrTextRequired)
}

func TestExecute_RetweetUndoUsesAccountFlag(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"data":{"retweeted":false}}`)
	cfg := writeTestConfig(t, "")

	_, err := executeCommand(t, "retweet", "7", "--undo", "--account-id", "42",
		"--output", "json", "--config", cfg, "--api-url", api.URL+"/2/")
	require.NoError(t, err)

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodDelete, requests[0].Method)
	assert.Equal(t, "/2/users/42/retweets/7", requests[0].Path)
}

func TestExecute_FollowsWithoutAccountID(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	cfg := writeTestConfig(t, "")

	_, err := executeCommand(t, "follows", "followers", "--output", "json", "--config", cfg, "--api-url", api.URL+"/2/")
	require.ErrorIs(t, err, twapi.ErrAccountIDRequired)
	assert.Empty(t, api.Requests())
}

func TestExecute_UsersLookupTable(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"data":{"id":"12","username":"jack","name":"Jack","description":"just setting up"}}`)
	cfg := writeTestConfig(t, "")

	out, err := executeCommand(t, "users", "lookup", "--username", "jack",
		"--output", "table", "--config", cfg, "--api-url", api.URL+"/2/")
	require.NoError(t, err)

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/2/users/by/username/jack", requests[0].Path)
	assert.Equal(t, "user.fields=description", requests[0].RawQuery)

	assert.Contains(t, out, "@jack")
	assert.Contains(t, out, "just setting up")
}

func TestExecute_UsersLookupRequiresSelector(t *testing.T) {
	cfg := writeTestConfig(t, "")

	_, err := executeCommand(t, "users", "lookup", "--output", "json", "--config", cfg)
	require.ErrorIs(t, err, constants.ErrNoUserSelector)
}

func TestExecute_UsersLookupRejectsPositionalArgs(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	cfg := writeTestConfig(t, "")

	_, err := executeCommand(t, "users", "lookup", "jack", "--output", "json", "--config", cfg, "--api-url", api.URL+"/2/")
	require.Error(t, err)
	assert.NotErrorIs(t, err, constants.ErrNoUserSelector)
	assert.Contains(t, err.Error(), `unknown command "jack"`)
	assert.Empty(t, api.Requests())
}

func TestExecute_APIError(t *testing.T) {
	api := newFakeAPI(t, http.StatusUnauthorized, `{"title":"Unauthorized","detail":"Unauthorized","status":401}`)
	cfg := writeTestConfig(t, "")

	_, err := executeCommand(t, "tweet", "get", "1", "--output", "json", "--config", cfg, "--api-url", api.URL+"/2/")
	require.Error(t, err)
	assert.True(t, twapi.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "failed to get tweets")
}

func TestExecute_ConfigShowMasksSecrets(t *testing.T) {
	cfg := writeTestConfig(t, "account_id: \"42\"\n")

	out, err := executeCommand(t, "config", "show", "--output", "json", "--config", cfg)
	require.NoError(t, err)

	var shown map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &shown))

	assert.Equal(t, "ck", shown["consumer_key"])
	assert.Equal(t, constants.MaskedSecret, shown["consumer_secret"])
	assert.Equal(t, constants.MaskedSecret, shown["bearer_token"])
	assert.Equal(t, "42", shown["account_id"])
}

func TestExecute_ConfigValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"consumer_key":"ck"}`), 0o600))

	_, err := executeCommand(t, "config", "validate", "--output", "json", "--config", path)

	var settingsErr *twapi.SettingsError
	require.ErrorAs(t, err, &settingsErr)
	assert.Equal(t, []string{"consumer_secret", "bearer_token", "access_token", "access_token_secret"}, settingsErr.Missing)
}

func TestExecute_ConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "twapi", "config.yml")
	cfg := writeTestConfig(t, "")

	out, err := executeCommand(t, "config", "init", "--path", target, "--output", "json", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	_, err = os.Stat(target)
	require.NoError(t, err)

	_, err = executeCommand(t, "config", "init", "--path", target, "--output", "json", "--config", cfg)
	require.ErrorIs(t, err, os.ErrExist)
}

func TestExecute_MissingConfigFile(t *testing.T) {
	_, err := executeCommand(t, "tweet", "get", "1", "--output", "json",
		"--config", filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, constants.ErrConfigFileNotFound)
}

func TestExecute_InvalidOutputFormat(t *testing.T) {
	_, err := executeCommand(t, "version", "--output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutputFormat)
}

func TestExecute_Version(t *testing.T) {
	out, err := executeCommand(t, "version", "--output", "json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, VersionInfo{Version: "1.2.3", Commit: "abc123", Built: "2024-01-01"}, info)
}

func TestExecute_MediaUpload(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"media_id":710511363345354753,"media_id_string":"710511363345354753","size":4}`)
	cfg := writeTestConfig(t, "")

	image := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(image, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	out, err := executeCommand(t, "media", "upload", image,
		"--output", "json", "--config", cfg, "--upload-url", api.URL+"/1.1/")
	require.NoError(t, err)

	requests := api.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/1.1/media/upload.json", requests[0].Path)
	assert.Contains(t, requests[0].Body, "iVBORw==")

	var upload twapi.MediaUpload
	require.NoError(t, json.Unmarshal([]byte(out), &upload))
	assert.Equal(t, "710511363345354753", upload.MediaIDString)
}
