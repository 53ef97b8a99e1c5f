package client

import (
	"net/http"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// QuotesClient implements twapi.QuotesClient.
type QuotesClient struct {
	request

	tweetID    string
	selected   bool
	maxResults int
}

// NewQuotesClient creates a new quote tweets builder.
func NewQuotesClient(c *Client) *QuotesClient {
	b := &QuotesClient{}
	b.request = newRequest(c, b.plan)

	return b
}

// QuoteTweets implements twapi.QuotesClient.QuoteTweets.
func (b *QuotesClient) QuoteTweets(tweetID string) twapi.QuotesClient {
	b.tweetID = tweetID
	b.selected = true

	return b
}

// MaxResults implements twapi.QuotesClient.MaxResults.
func (b *QuotesClient) MaxResults(n int) twapi.QuotesClient {
	b.maxResults = n

	return b
}

// PaginationToken implements twapi.QuotesClient.PaginationToken.
func (b *QuotesClient) PaginationToken(token string) twapi.QuotesClient {
	b.setPaginationToken(token)

	return b
}

func (b *QuotesClient) plan() (plan, error) {
	if !b.selected {
		return plan{}, errNoOperation
	}

	id, err := requireID("tweet_id", b.tweetID)
	if err != nil {
		return plan{}, err
	}

	return plan{
		path:     "tweets/" + id + "/quote_tweets",
		route:    "tweets/:id/quote_tweets",
		method:   http.MethodGet,
		auth:     twapi.AuthOAuth1,
		decorate: listQuery(b.maxResults),
	}, nil
}
