package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twapi/internal/config"
	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), constants.ConfigFilePerm))

	return path
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.yml", `
consumer_key: ck
consumer_secret: cs
bearer_token: bt
access_token: tk
access_token_secret: ts
account_id: "42"
free_mode: true
`)

		settings, err := config.NewLoader(viper.New()).Load(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"consumer_key":        "ck",
			"consumer_secret":     "cs",
			"bearer_token":        "bt",
			"access_token":        "tk",
			"access_token_secret": "ts",
			"account_id":          "42",
			"free_mode":           "true",
		}, settings)

		creds, err := twapi.ValidateSettings(settings)
		require.NoError(t, err)
		assert.True(t, creds.FreeMode)
	})

	t.Run("dotenv file with prefixed keys", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "twitter.env", `TWITTER_CONSUMER_KEY=ck
TWITTER_CONSUMER_SECRET=cs
TWITTER_BEARER_TOKEN=bt
TWITTER_ACCESS_TOKEN=tk
TWITTER_ACCESS_TOKEN_SECRET=ts
`)

		settings, err := config.NewLoader(nil).Load(path)
		require.NoError(t, err)
		assert.Equal(t, "ck", settings["consumer_key"])
		assert.Equal(t, "ts", settings["access_token_secret"])
		assert.NotContains(t, settings, "account_id")
	})

	t.Run("partial file reports missing keys on validation", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.json", `{"consumer_key":"ck","bearer_token":"bt"}`)

		settings, err := config.NewLoader(nil).Load(path)
		require.NoError(t, err)

		_, err = twapi.ValidateSettings(settings)

		settingsErr := &twapi.SettingsError{}
		require.ErrorAs(t, err, &settingsErr)
		assert.Equal(t, []string{"consumer_secret", "access_token", "access_token_secret"}, settingsErr.Missing)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.NewLoader(nil).Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.ErrorIs(t, err, constants.ErrConfigFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := config.NewLoader(nil).Load(t.TempDir())
		require.ErrorIs(t, err, constants.ErrNotRegularFile)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.toml", `consumer_key = "ck"`)

		_, err := config.NewLoader(nil).Load(path)
		require.ErrorIs(t, err, constants.ErrUnsupportedConfigExt)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.yaml", "consumer_key: [unterminated")

		_, err := config.NewLoader(nil).Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("flag values take precedence", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.yml", "account_id: \"1\"\n")

		v := viper.New()
		v.Set("account_id", "2")

		loader := config.NewLoader(v)

		settings, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "2", settings["account_id"])
		assert.Equal(t, path, loader.FileUsed())
	})
}

func TestLoader_Environment(t *testing.T) {
	t.Setenv("TWITTER_CONSUMER_KEY", "env-ck")
	t.Setenv("TWITTER_ACCOUNT_ID", "99")

	path := writeFile(t, "config.yml", "consumer_key: file-ck\nconsumer_secret: cs\n")

	settings, err := config.NewLoader(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-ck", settings["consumer_key"])
	assert.Equal(t, "cs", settings["consumer_secret"])
	assert.Equal(t, "99", settings["account_id"])
}

func TestRedact(t *testing.T) {
	t.Parallel()

	redacted := config.Redact(map[string]string{
		"consumer_key":        "ck",
		"consumer_secret":     "cs",
		"bearer_token":        "bt",
		"access_token":        "tk",
		"access_token_secret": "",
		"account_id":          "42",
	})

	assert.Equal(t, map[string]string{
		"consumer_key":        "ck",
		"consumer_secret":     constants.MaskedSecret,
		"bearer_token":        constants.MaskedSecret,
		"access_token":        constants.MaskedSecret,
		"access_token_secret": "",
		"account_id":          "42",
	}, redacted)
}

func TestIsSecret(t *testing.T) {
	t.Parallel()

	assert.True(t, config.IsSecret("bearer_token"))
	assert.True(t, config.IsSecret("access_token_secret"))
	assert.False(t, config.IsSecret("consumer_key"))
	assert.False(t, config.IsSecret("account_id"))
}
