package client

import (
	"github.com/fivetwenty-io/twapi/internal/auth"
	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/internal/http"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// Client implements the twapi.Client interface.
type Client struct {
	apiClient    *http.Client
	uploadClient *http.Client
	credentials  twapi.Credentials
	observer     twapi.Observer
	signerOpts   []auth.SignerOption
}

// Option configures the client beyond twapi.Config.
type Option func(*Client)

// WithSignerOptions passes options to every OAuth 1.0a signer the client creates.
func WithSignerOptions(opts ...auth.SignerOption) Option {
	return func(c *Client) {
		c.signerOpts = append(c.signerOpts, opts...)
	}
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *twapi.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))

		if slogger, ok := config.Logger.(*twapi.SlogLogger); ok && config.Debug {
			httpOpts = append(httpOpts, http.WithRetryLogger(slogger.Slog()))
		}
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	// WithTimeout must follow WithHTTPClient so a replaced client gets it as well.
	if config.HTTPClient == nil || config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(timeout))
	}

	return httpOpts
}

// New creates a new API client. The credentials are validated before anything
// else happens.
func New(config *twapi.Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, twapi.ErrConfigRequired
	}

	err := config.Credentials.Validate()
	if err != nil {
		return nil, err
	}

	apiBase := config.APIBaseURL
	if apiBase == "" {
		apiBase = constants.DefaultAPIBaseURL
	}

	uploadBase := config.UploadBaseURL
	if uploadBase == "" {
		uploadBase = constants.DefaultUploadBaseURL
	}

	httpOpts := createHTTPClientOptions(config)

	client := &Client{
		apiClient:    http.NewClient(apiBase, httpOpts...),
		uploadClient: http.NewClient(uploadBase, httpOpts...),
		credentials:  config.Credentials,
		observer:     config.Observer,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Credentials implements twapi.Client.Credentials.
func (c *Client) Credentials() twapi.Credentials {
	return c.credentials
}

// Resource builder accessors. Each call returns a fresh builder.

// Tweets implements twapi.Client.Tweets.
func (c *Client) Tweets() twapi.TweetsClient {
	return NewTweetsClient(c)
}

// Timeline implements twapi.Client.Timeline.
func (c *Client) Timeline() twapi.TimelineClient {
	return NewTimelineClient(c)
}

// Search implements twapi.Client.Search.
func (c *Client) Search() twapi.TweetSearchClient {
	return NewTweetSearchClient(c)
}

// Retweets implements twapi.Client.Retweets.
func (c *Client) Retweets() twapi.RetweetsClient {
	return NewRetweetsClient(c)
}

// Likes implements twapi.Client.Likes.
func (c *Client) Likes() twapi.LikesClient {
	return NewLikesClient(c)
}

// Bookmarks implements twapi.Client.Bookmarks.
func (c *Client) Bookmarks() twapi.BookmarksClient {
	return NewBookmarksClient(c)
}

// Quotes implements twapi.Client.Quotes.
func (c *Client) Quotes() twapi.QuotesClient {
	return NewQuotesClient(c)
}

// Replies implements twapi.Client.Replies.
func (c *Client) Replies() twapi.RepliesClient {
	return NewRepliesClient(c)
}

// Users implements twapi.Client.Users.
func (c *Client) Users() twapi.UsersClient {
	return NewUsersClient(c)
}

// Me implements twapi.Client.Me.
func (c *Client) Me() twapi.MeClient {
	return NewMeClient(c)
}

// Follows implements twapi.Client.Follows.
func (c *Client) Follows() twapi.FollowsClient {
	return NewFollowsClient(c)
}

// Blocks implements twapi.Client.Blocks.
func (c *Client) Blocks() twapi.BlocksClient {
	return NewBlocksClient(c)
}

// Mutes implements twapi.Client.Mutes.
func (c *Client) Mutes() twapi.MutesClient {
	return NewMutesClient(c)
}

// Media implements twapi.Client.Media.
func (c *Client) Media() twapi.MediaClient {
	return NewMediaClient(c)
}

var (
	_ twapi.Client            = (*Client)(nil)
	_ twapi.TweetsClient      = (*TweetsClient)(nil)
	_ twapi.TimelineClient    = (*TimelineClient)(nil)
	_ twapi.TweetSearchClient = (*TweetSearchClient)(nil)
	_ twapi.RetweetsClient    = (*RetweetsClient)(nil)
	_ twapi.LikesClient       = (*LikesClient)(nil)
	_ twapi.BookmarksClient   = (*BookmarksClient)(nil)
	_ twapi.QuotesClient      = (*QuotesClient)(nil)
	_ twapi.RepliesClient     = (*RepliesClient)(nil)
	_ twapi.UsersClient       = (*UsersClient)(nil)
	_ twapi.MeClient          = (*MeClient)(nil)
	_ twapi.FollowsClient     = (*FollowsClient)(nil)
	_ twapi.BlocksClient      = (*BlocksClient)(nil)
	_ twapi.MutesClient       = (*MutesClient)(nil)
	_ twapi.MediaClient       = (*MediaClient)(nil)
)
