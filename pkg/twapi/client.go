package twapi

import (
	"context"
	"net/http"
	"time"
)

// Requester is the terminal half shared by every resource builder.
//
// A builder accumulates endpoint state through its fluent methods and is then
// dispatched once with Perform. Builders are not safe for concurrent use;
// obtain a fresh one from the Client for each logical request.
type Requester interface {
	// Endpoint returns the path and query the builder would request,
	// relative to the API base URL.
	Endpoint() (string, error)
	// Perform authorizes and sends the request. A nil or empty body is sent as
	// no body at all.
	Perform(ctx context.Context, body map[string]any, opts ...PerformOption) (*Response, error)
}

// TweetsClient manages tweets.
type TweetsClient interface {
	Requester
	Fetch(ids ...string) TweetsClient
	Create(text string) TweetsClient
	Delete(tweetID string) TweetsClient
	WithAuthMode(mode AuthMode) TweetsClient
}

// TimelineClient reads user timelines.
type TimelineClient interface {
	Requester
	RecentMentions(userID string) TimelineClient
	RecentTweets(userID string) TimelineClient
	ReverseChronological() TimelineClient
	MaxResults(n int) TimelineClient
	PaginationToken(token string) TimelineClient
	WithAuthMode(mode AuthMode) TimelineClient
}

// TweetSearchClient queries recent tweets.
type TweetSearchClient interface {
	Requester
	Keywords(keywords ...string) TweetSearchClient
	KeywordOperator(op Operator) TweetSearchClient
	FromUsers(usernames ...string) TweetSearchClient
	FromOperator(op Operator) TweetSearchClient
	ToUsers(usernames ...string) TweetSearchClient
	ToOperator(op Operator) TweetSearchClient
	Conversation(conversationID string) TweetSearchClient
	Locales(locales ...string) TweetSearchClient
	OnlyWithMedia() TweetSearchClient
	MaxResults(n int) TweetSearchClient
	ShowMetrics() TweetSearchClient
	ShowUserDetails() TweetSearchClient
	ShowMediaDetails() TweetSearchClient
	PaginationToken(token string) TweetSearchClient
	WithAuthMode(mode AuthMode) TweetSearchClient
}

// RetweetsClient retweets on behalf of the configured account.
type RetweetsClient interface {
	Requester
	Retweet(tweetID string) RetweetsClient
	Undo(tweetID string) RetweetsClient
}

// LikesClient manages likes.
type LikesClient interface {
	Requester
	LikedTweets(userID string) LikesClient
	LikingUsers(tweetID string) LikesClient
	Like(tweetID string) LikesClient
	Unlike(tweetID string) LikesClient
	MaxResults(n int) LikesClient
	PaginationToken(token string) LikesClient
}

// BookmarksClient manages bookmarks. The upstream only accepts the OAuth 2.0
// Authorization Code Flow for these endpoints, so every request fails with an
// UnsupportedModeError.
type BookmarksClient interface {
	Requester
	Lookup() BookmarksClient
	Add(tweetID string) BookmarksClient
	Remove(tweetID string) BookmarksClient
	PaginationToken(token string) BookmarksClient
}

// QuotesClient lists quote tweets.
type QuotesClient interface {
	Requester
	QuoteTweets(tweetID string) QuotesClient
	MaxResults(n int) QuotesClient
	PaginationToken(token string) QuotesClient
}

// RepliesClient hides and unhides replies.
type RepliesClient interface {
	Requester
	Hide(tweetID string) RepliesClient
	Unhide(tweetID string) RepliesClient
}

// UsersClient looks users up by id or username.
type UsersClient interface {
	Requester
	ByID(id string) UsersClient
	ByIDs(ids ...string) UsersClient
	ByUsername(username string) UsersClient
	ByUsernames(usernames ...string) UsersClient
	PaginationToken(token string) UsersClient
	WithAuthMode(mode AuthMode) UsersClient
}

// MeClient reads the authenticated user.
type MeClient interface {
	Requester
}

// FollowsClient manages the follow graph of the configured account.
type FollowsClient interface {
	Requester
	Followers() FollowsClient
	Following() FollowsClient
	Follow(targetUserID string) FollowsClient
	Unfollow(targetUserID string) FollowsClient
	MaxResults(n int) FollowsClient
	PaginationToken(token string) FollowsClient
}

// BlocksClient manages blocks of the configured account.
type BlocksClient interface {
	Requester
	Lookup() BlocksClient
	Block(targetUserID string) BlocksClient
	Unblock(targetUserID string) BlocksClient
	MaxResults(n int) BlocksClient
	PaginationToken(token string) BlocksClient
}

// MutesClient manages mutes of the configured account.
type MutesClient interface {
	Requester
	Lookup() MutesClient
	Mute(targetUserID string) MutesClient
	Unmute(targetUserID string) MutesClient
	MaxResults(n int) MutesClient
	PaginationToken(token string) MutesClient
}

// MediaClient uploads media through the upload API.
type MediaClient interface {
	// Upload sends base64-encoded image data and returns the media id.
	Upload(ctx context.Context, base64Data string) (*MediaUpload, error)
}

// TweetClients provides access to tweet resource builders.
type TweetClients interface {
	Tweets() TweetsClient
	Timeline() TimelineClient
	Search() TweetSearchClient
	Retweets() RetweetsClient
	Likes() LikesClient
	Bookmarks() BookmarksClient
	Quotes() QuotesClient
	Replies() RepliesClient
}

// UserClients provides access to user resource builders.
type UserClients interface {
	Users() UsersClient
	Me() MeClient
	Follows() FollowsClient
	Blocks() BlocksClient
	Mutes() MutesClient
}

// Client is the root API client. It is safe for concurrent use; the builders
// it hands out are not.
type Client interface {
	TweetClients
	UserClients
	Media() MediaClient
	Credentials() Credentials
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Observer is notified once per dispatched request. Endpoint is the request
// path without its query string; statusCode is 0 for transport failures.
type Observer interface {
	ObserveRequest(method, endpoint string, statusCode int, duration time.Duration, err error)
}

// Config represents client configuration for building a Client.
type Config struct {
	// Credentials must satisfy ValidateSettings; twclient.New re-checks them.
	Credentials Credentials

	// APIBaseURL is the versioned API root. Default: https://api.twitter.com/2/
	APIBaseURL string
	// UploadBaseURL is the media upload root. Default: https://upload.twitter.com/1.1/
	UploadBaseURL string

	// HTTPTimeout bounds each request when the context has no deadline.
	HTTPTimeout time.Duration
	// HTTPClient replaces the underlying *http.Client, mostly for tests.
	HTTPClient *http.Client
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// Observer receives per-request outcomes, e.g. for metrics.
	Observer Observer
}
