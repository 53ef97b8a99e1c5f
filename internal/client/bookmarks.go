package client

import (
	"net/http"

	"github.com/fivetwenty-io/twapi/internal/endpoint"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type bookmarksOp interface{ isBookmarksOp() }

type (
	bookmarksLookup struct{}
	bookmarksAdd    struct{ tweetID string }
	bookmarksRemove struct{ tweetID string }
)

func (bookmarksLookup) isBookmarksOp() {}
func (bookmarksAdd) isBookmarksOp()    {}
func (bookmarksRemove) isBookmarksOp() {}

// BookmarksClient implements twapi.BookmarksClient. The endpoints only accept
// the OAuth 2.0 code flow, so Perform always fails before the network.
type BookmarksClient struct {
	request

	op bookmarksOp
}

// NewBookmarksClient creates a new bookmarks builder.
func NewBookmarksClient(c *Client) *BookmarksClient {
	b := &BookmarksClient{}
	b.request = newRequest(c, b.plan)

	return b
}

// Lookup implements twapi.BookmarksClient.Lookup.
func (b *BookmarksClient) Lookup() twapi.BookmarksClient {
	b.op = bookmarksLookup{}

	return b
}

// Add implements twapi.BookmarksClient.Add.
func (b *BookmarksClient) Add(tweetID string) twapi.BookmarksClient {
	b.op = bookmarksAdd{tweetID: tweetID}

	return b
}

// Remove implements twapi.BookmarksClient.Remove.
func (b *BookmarksClient) Remove(tweetID string) twapi.BookmarksClient {
	b.op = bookmarksRemove{tweetID: tweetID}

	return b
}

// PaginationToken implements twapi.BookmarksClient.PaginationToken.
func (b *BookmarksClient) PaginationToken(token string) twapi.BookmarksClient {
	b.setPaginationToken(token)

	return b
}

// plan does not validate the account: the auth mode check rejects every
// bookmark request first.
func (b *BookmarksClient) plan() (plan, error) {
	account := endpoint.PathSegment(b.client.credentials.AccountID)

	switch op := b.op.(type) {
	case bookmarksLookup:
		return plan{
			path:   "users/" + account + "/bookmarks",
			route:  "users/:id/bookmarks",
			method: http.MethodGet,
			auth:   twapi.AuthOAuth2CodeFlow,
		}, nil
	case bookmarksAdd:
		return plan{
			path:   "users/" + account + "/bookmarks",
			route:  "users/:id/bookmarks",
			method: http.MethodPost,
			auth:   twapi.AuthOAuth2CodeFlow,
			body:   map[string]any{"tweet_id": op.tweetID},
		}, nil
	case bookmarksRemove:
		return plan{
			path:   "users/" + account + "/bookmarks/" + endpoint.PathSegment(op.tweetID),
			route:  "users/:id/bookmarks/:tweet_id",
			method: http.MethodDelete,
			auth:   twapi.AuthOAuth2CodeFlow,
		}, nil
	default:
		return plan{}, errNoOperation
	}
}
