// Package config loads the flat credential settings map from a config file,
// TWITTER_* environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// Keys lists every settings key the loader resolves.
var Keys = []string{
	twapi.SettingConsumerKey,
	twapi.SettingConsumerSecret,
	twapi.SettingBearerToken,
	twapi.SettingAccessToken,
	twapi.SettingAccessTokenSecret,
	twapi.SettingAccountID,
	twapi.SettingFreeMode,
}

// secretKeys are masked by Redact.
var secretKeys = map[string]bool{
	twapi.SettingConsumerSecret:    true,
	twapi.SettingBearerToken:       true,
	twapi.SettingAccessToken:       true,
	twapi.SettingAccessTokenSecret: true,
}

// Loader resolves settings through a viper instance. Precedence is the
// viper one: bound flags, then environment, then the config file.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader over v. A nil v gets a fresh instance.
func NewLoader(v *viper.Viper) *Loader {
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Viper returns the underlying viper instance, e.g. for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// ReadFile reads path. An empty path searches ./.env, then
// $HOME/.twapi/config.yml; finding neither is not an error.
func (l *Loader) ReadFile(path string) error {
	if path == "" {
		path = l.defaultPath()
		if path == "" {
			return nil
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", constants.ErrConfigFileNotFound, path)
		}

		return fmt.Errorf("checking config file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", constants.ErrNotRegularFile, path)
	}

	configType, err := typeOf(path)
	if err != nil {
		return err
	}

	l.v.SetConfigFile(path)
	l.v.SetConfigType(configType)

	err = l.v.ReadInConfig()
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return nil
}

// FileUsed returns the config file that was read, if any.
func (l *Loader) FileUsed() string {
	return l.v.ConfigFileUsed()
}

// Settings returns the non-empty settings. A dotenv file may spell keys
// either way: consumer_key or TWITTER_CONSUMER_KEY.
func (l *Loader) Settings() map[string]string {
	prefix := strings.ToLower(constants.EnvPrefix) + "_"
	settings := make(map[string]string, len(Keys))

	for _, key := range Keys {
		value := strings.TrimSpace(l.v.GetString(key))
		if value == "" {
			value = strings.TrimSpace(l.v.GetString(prefix + key))
		}

		if value != "" {
			settings[key] = value
		}
	}

	return settings
}

// Load reads path and returns the resolved settings.
func (l *Loader) Load(path string) (map[string]string, error) {
	err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return l.Settings(), nil
}

func (l *Loader) defaultPath() string {
	candidates := []string{".env"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".twapi", "config.yml"))
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}

	return ""
}

func typeOf(path string) (string, error) {
	base := filepath.Base(path)
	if base == ".env" || strings.HasSuffix(base, ".env") {
		return "dotenv", nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return "yaml", nil
	case ".json":
		return "json", nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedConfigExt, path)
	}
}

// Redact returns a copy of settings with secret values masked.
func Redact(settings map[string]string) map[string]string {
	redacted := make(map[string]string, len(settings))

	for key, value := range settings {
		if secretKeys[key] && value != "" {
			value = constants.MaskedSecret
		}

		redacted[key] = value
	}

	return redacted
}

// IsSecret reports whether key holds a secret.
func IsSecret(key string) bool {
	return secretKeys[key]
}
