package client

import (
	"net/http"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type repliesOp interface{ isRepliesOp() }

type (
	repliesHide   struct{ tweetID string }
	repliesUnhide struct{ tweetID string }
)

func (repliesHide) isRepliesOp()   {}
func (repliesUnhide) isRepliesOp() {}

// RepliesClient implements twapi.RepliesClient.
type RepliesClient struct {
	request

	op repliesOp
}

// NewRepliesClient creates a new replies builder.
func NewRepliesClient(c *Client) *RepliesClient {
	b := &RepliesClient{}
	b.request = newRequest(c, b.plan)

	return b
}

// Hide implements twapi.RepliesClient.Hide.
func (b *RepliesClient) Hide(tweetID string) twapi.RepliesClient {
	b.op = repliesHide{tweetID: tweetID}

	return b
}

// Unhide implements twapi.RepliesClient.Unhide.
func (b *RepliesClient) Unhide(tweetID string) twapi.RepliesClient {
	b.op = repliesUnhide{tweetID: tweetID}

	return b
}

func (b *RepliesClient) plan() (plan, error) {
	var (
		tweetID string
		hidden  bool
	)

	switch op := b.op.(type) {
	case repliesHide:
		tweetID, hidden = op.tweetID, true
	case repliesUnhide:
		tweetID, hidden = op.tweetID, false
	default:
		return plan{}, errNoOperation
	}

	id, err := requireID("tweet_id", tweetID)
	if err != nil {
		return plan{}, err
	}

	return plan{
		path:   "tweets/" + id + "/hidden",
		route:  "tweets/:id/hidden",
		method: http.MethodPut,
		auth:   twapi.AuthOAuth1,
		body:   map[string]any{"hidden": hidden},
	}, nil
}
