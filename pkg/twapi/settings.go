package twapi

import "strings"

// Settings keys.
const (
	SettingConsumerKey       = "consumer_key"
	SettingConsumerSecret    = "consumer_secret"
	SettingBearerToken       = "bearer_token"
	SettingAccessToken       = "access_token"
	SettingAccessTokenSecret = "access_token_secret"
	SettingAccountID         = "account_id"
	SettingFreeMode          = "free_mode"
)

// RequiredSettings lists the keys every settings bundle must carry, in the
// order they are reported when missing.
var RequiredSettings = []string{
	SettingConsumerKey,
	SettingConsumerSecret,
	SettingBearerToken,
	SettingAccessToken,
	SettingAccessTokenSecret,
}

// ValidateSettings checks a flat settings map and returns the credentials it
// describes. A key that is present but empty counts as missing.
func ValidateSettings(settings map[string]string) (Credentials, error) {
	var missing []string

	for _, key := range RequiredSettings {
		if strings.TrimSpace(settings[key]) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return Credentials{}, &SettingsError{Missing: missing}
	}

	return Credentials{
		ConsumerKey:       settings[SettingConsumerKey],
		ConsumerSecret:    settings[SettingConsumerSecret],
		BearerToken:       settings[SettingBearerToken],
		AccessToken:       settings[SettingAccessToken],
		AccessTokenSecret: settings[SettingAccessTokenSecret],
		AccountID:         strings.TrimSpace(settings[SettingAccountID]),
		FreeMode:          parseBool(settings[SettingFreeMode]),
	}, nil
}

// Validate re-checks credentials built by hand rather than through ValidateSettings.
func (c Credentials) Validate() error {
	_, err := ValidateSettings(c.Settings())

	return err
}

// Settings returns the flat settings form of the credentials.
func (c Credentials) Settings() map[string]string {
	settings := map[string]string{
		SettingConsumerKey:       c.ConsumerKey,
		SettingConsumerSecret:    c.ConsumerSecret,
		SettingBearerToken:       c.BearerToken,
		SettingAccessToken:       c.AccessToken,
		SettingAccessTokenSecret: c.AccessTokenSecret,
	}

	if c.AccountID != "" {
		settings[SettingAccountID] = c.AccountID
	}

	if c.FreeMode {
		settings[SettingFreeMode] = "true"
	}

	return settings
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
