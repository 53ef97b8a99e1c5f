package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	creds := twapi.Credentials{
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		BearerToken:       "bearer-token",
		AccessToken:       "tk",
		AccessTokenSecret: "ts",
	}

	t.Run("bearer", func(t *testing.T) {
		t.Parallel()

		authorizer, err := Select(twapi.AuthBearer, creds)
		require.NoError(t, err)
		assert.Equal(t, twapi.AuthBearer, authorizer.Mode())

		header, err := authorizer.Authorize("GET", "https://api.example.com/2/tweets", nil)
		require.NoError(t, err)
		assert.Equal(t, "Bearer bearer-token", header)
	})

	t.Run("oauth1 delegates to the signer", func(t *testing.T) {
		t.Parallel()

		authorizer, err := Select(twapi.AuthOAuth1, creds,
			WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
			WithNonce(func() string { return "12345" }),
		)
		require.NoError(t, err)
		assert.Equal(t, twapi.AuthOAuth1, authorizer.Mode())

		header, err := authorizer.Authorize("POST", "https://api.example.com/2/tweets", nil)
		require.NoError(t, err)
		assert.Contains(t, header, `oauth_signature="ZWmdXAxUotzRC5b9GPaweW25%2BF4%3D"`)
	})

	t.Run("oauth2 code flow fails fast", func(t *testing.T) {
		t.Parallel()

		authorizer, err := Select(twapi.AuthOAuth2CodeFlow, creds)
		require.Error(t, err)
		assert.Nil(t, authorizer)
		assert.True(t, errors.Is(err, twapi.ErrUnsupportedAuthMode))

		modeErr := &twapi.UnsupportedModeError{}
		require.ErrorAs(t, err, &modeErr)
		assert.Equal(t, twapi.AuthOAuth2CodeFlow, modeErr.Mode)
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()

		_, err := Select(twapi.AuthMode(42), creds)
		require.ErrorIs(t, err, twapi.ErrUnsupportedAuthMode)
		assert.Contains(t, err.Error(), "AuthMode(42)")
	})
}
