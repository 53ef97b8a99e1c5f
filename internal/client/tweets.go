package client

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/twapi/internal/endpoint"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type tweetsOp interface{ isTweetsOp() }

type (
	tweetsFetch  struct{ ids []string }
	tweetsCreate struct{ text string }
	tweetsDelete struct{ id string }
)

func (tweetsFetch) isTweetsOp()  {}
func (tweetsCreate) isTweetsOp() {}
func (tweetsDelete) isTweetsOp() {}

// TweetsClient implements twapi.TweetsClient.
type TweetsClient struct {
	request

	op tweetsOp
}

// NewTweetsClient creates a new tweets builder.
func NewTweetsClient(c *Client) *TweetsClient {
	b := &TweetsClient{}
	b.request = newRequest(c, b.plan)

	return b
}

// Fetch implements twapi.TweetsClient.Fetch.
func (b *TweetsClient) Fetch(ids ...string) twapi.TweetsClient {
	b.op = tweetsFetch{ids: ids}

	return b
}

// Create implements twapi.TweetsClient.Create. A body passed to Perform
// replaces the {"text": text} default.
func (b *TweetsClient) Create(text string) twapi.TweetsClient {
	b.op = tweetsCreate{text: text}

	return b
}

// Delete implements twapi.TweetsClient.Delete.
func (b *TweetsClient) Delete(tweetID string) twapi.TweetsClient {
	b.op = tweetsDelete{id: tweetID}

	return b
}

// WithAuthMode implements twapi.TweetsClient.WithAuthMode.
func (b *TweetsClient) WithAuthMode(mode twapi.AuthMode) twapi.TweetsClient {
	b.setAuthMode(mode)

	return b
}

func (b *TweetsClient) plan() (plan, error) {
	switch op := b.op.(type) {
	case tweetsFetch:
		ids := endpoint.List(op.ids)
		if ids == "" {
			return plan{}, &twapi.ValidationError{Field: "ids", Err: twapi.ErrTargetRequired}
		}

		return plan{
			path:   "tweets",
			route:  "tweets",
			method: http.MethodGet,
			auth:   twapi.AuthOAuth1,
			decorate: func(q *endpoint.Query) error {
				q.AddRaw("ids=" + ids)

				return nil
			},
		}, nil
	case tweetsCreate:
		p := plan{path: "tweets", route: "tweets", method: http.MethodPost, auth: twapi.AuthOAuth1, needBody: true}
		if strings.TrimSpace(op.text) != "" {
			p.body = map[string]any{"text": op.text}
		}

		return p, nil
	case tweetsDelete:
		id, err := requireID("tweet_id", op.id)
		if err != nil {
			return plan{}, err
		}

		return plan{path: "tweets/" + id, route: "tweets/:id", method: http.MethodDelete, auth: twapi.AuthOAuth1}, nil
	case nil:
		return plan{}, errNoOperation
	default:
		return plan{}, errNoOperation
	}
}

// Shared helpers for the resource builders.

var errNoOperation = &twapi.ValidationError{Field: "operation", Err: twapi.ErrNoOperation}

// requireID escapes a path id or reports it missing.
func requireID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &twapi.ValidationError{Field: field, Err: twapi.ErrTargetRequired}
	}

	return endpoint.PathSegment(id), nil
}

// listQuery appends max_results when set, then the given raw fragments.
func listQuery(maxResults int, fragments ...string) endpoint.Decorator {
	return func(q *endpoint.Query) error {
		if maxResults > 0 {
			q.Add("max_results", strconv.Itoa(maxResults))
		}

		for _, fragment := range fragments {
			q.AddRaw(fragment)
		}

		return nil
	}
}
