package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API roots.
const (
	// DefaultAPIBaseURL is the versioned REST root.
	DefaultAPIBaseURL = "https://api.twitter.com/2/"

	// DefaultUploadBaseURL is the media upload root.
	DefaultUploadBaseURL = "https://upload.twitter.com/1.1/"

	// MediaUploadPath is relative to the upload root.
	MediaUploadPath = "media/upload.json?media_category=TWEET_IMAGE"

	// MediaDataField is the multipart field carrying base64 media.
	MediaDataField = "media_data"

	// PaginationParam is the cursor query parameter name.
	PaginationParam = "pagination_token"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second

	// MetricsShutdownTimeout bounds the metrics server shutdown.
	MetricsShutdownTimeout = 5 * time.Second
)

// HTTP status codes commonly used.
const (
	// HTTPStatusBadRequest is the first error status.
	HTTPStatusBadRequest = 400
)

// Search result bounds. The API rejects values outside this range.
const (
	MinMaxResults = 10
	MaxMaxResults = 100
)

// Field selections.
const (
	// UserDescriptionFields is appended by user lookups and follows.
	UserDescriptionFields = "user.fields=description"

	// SearchMetricsFields is appended when search metrics are requested.
	SearchMetricsFields = "tweet.fields=public_metrics"

	// SearchUserDetailsFields is appended when search user details are requested.
	SearchUserDetailsFields = "expansions=attachments.media_keys,author_id&user.fields=description"

	// SearchMediaDetailsFields is appended when search media details are requested.
	SearchMediaDetailsFields = "media.fields=preview_image_url,type,url"

	// TimelineFields is the complete selection appended to timelines.
	TimelineFields = "tweet.fields=article,attachments,author_id,card_uri,community_id,conversation_id," +
		"created_at,display_text_range,edit_controls,edit_history_tweet_ids,entities,id,lang,media_metadata," +
		"note_tweet,possibly_sensitive,public_metrics,reply_settings,scopes,source,text,withheld" +
		"&expansions=article.cover_media,article.media_entities,attachments.media_keys," +
		"attachments.media_source_tweet,author_id,edit_history_tweet_ids" +
		"&media.fields=alt_text,duration_ms,height,media_key,preview_image_url,public_metrics,type,url,variants,width" +
		"&user.fields=affiliation,connection_status,created_at,description,entities,id,location," +
		"most_recent_tweet_id,name,pinned_tweet_id,profile_banner_url,profile_image_url,protected," +
		"public_metrics,receives_your_dm,subscription_type,url,username,verified,verified_type,withheld" +
		"&place.fields=contained_within,country,country_code,full_name,id,name,place_type"

	// MeFreeFields is the users/me selection accepted by the free tier.
	MeFreeFields = "user.fields=created_at,description,entities,id,location,name,most_recent_tweet_id," +
		"profile_image_url,protected,public_metrics,url,username,verified,verified_type" +
		"&expansions=pinned_tweet_id"

	// MeFields is the complete users/me selection.
	MeFields = "user.fields=created_at,description,entities,id,location,name,most_recent_tweet_id," +
		"profile_image_url,protected,public_metrics,url,username,verified,verified_type,withheld" +
		"&tweet.fields=attachments,author_id,context_annotations,conversation_id,created_at,edit_controls," +
		"edit_history_tweet_ids,entities,geo,id,in_reply_to_user_id,lang,non_public_metrics,note_tweet," +
		"organic_metrics,possibly_sensitive,public_metrics,referenced_tweets,reply_settings,source,text,withheld" +
		"&expansions=pinned_tweet_id"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// TextDisplayLength is the default length for displaying tweet text.
	TextDisplayLength = 80

	// DescriptionDisplayLength is the default length for displaying descriptions.
	DescriptionDisplayLength = 60
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Environment.
const (
	// CLIVersion is reported in the CLI User-Agent.
	CLIVersion = "1.0.0"

	// EnvPrefix is the prefix of credential environment variables.
	EnvPrefix = "TWITTER"
)
