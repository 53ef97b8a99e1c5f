package client

import (
	"net/http"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type retweetsOp interface{ isRetweetsOp() }

type (
	retweetsRetweet struct{ tweetID string }
	retweetsUndo    struct{ tweetID string }
)

func (retweetsRetweet) isRetweetsOp() {}
func (retweetsUndo) isRetweetsOp()    {}

// RetweetsClient implements twapi.RetweetsClient.
type RetweetsClient struct {
	request

	op retweetsOp
}

// NewRetweetsClient creates a new retweets builder.
func NewRetweetsClient(c *Client) *RetweetsClient {
	b := &RetweetsClient{}
	b.request = newRequest(c, b.plan)

	return b
}

// Retweet implements twapi.RetweetsClient.Retweet.
func (b *RetweetsClient) Retweet(tweetID string) twapi.RetweetsClient {
	b.op = retweetsRetweet{tweetID: tweetID}

	return b
}

// Undo implements twapi.RetweetsClient.Undo.
func (b *RetweetsClient) Undo(tweetID string) twapi.RetweetsClient {
	b.op = retweetsUndo{tweetID: tweetID}

	return b
}

func (b *RetweetsClient) plan() (plan, error) {
	account, err := b.accountID()
	if err != nil {
		return plan{}, err
	}

	switch op := b.op.(type) {
	case retweetsRetweet:
		_, err = requireID("tweet_id", op.tweetID)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path:   "users/" + account + "/retweets",
			route:  "users/:id/retweets",
			method: http.MethodPost,
			auth:   twapi.AuthOAuth1,
			body:   map[string]any{"tweet_id": op.tweetID},
		}, nil
	case retweetsUndo:
		id, err := requireID("tweet_id", op.tweetID)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path:   "users/" + account + "/retweets/" + id,
			route:  "users/:id/retweets/:tweet_id",
			method: http.MethodDelete,
			auth:   twapi.AuthOAuth1,
		}, nil
	default:
		return plan{}, errNoOperation
	}
}
