package client

import (
	"net/http"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type timelineOp interface{ isTimelineOp() }

type (
	timelineMentions             struct{ userID string }
	timelineTweets               struct{ userID string }
	timelineReverseChronological struct{}
)

func (timelineMentions) isTimelineOp()             {}
func (timelineTweets) isTimelineOp()               {}
func (timelineReverseChronological) isTimelineOp() {}

// TimelineClient implements twapi.TimelineClient.
type TimelineClient struct {
	request

	op         timelineOp
	maxResults int
}

// NewTimelineClient creates a new timeline builder.
func NewTimelineClient(c *Client) *TimelineClient {
	b := &TimelineClient{}
	b.request = newRequest(c, b.plan)

	return b
}

// RecentMentions implements twapi.TimelineClient.RecentMentions.
func (b *TimelineClient) RecentMentions(userID string) twapi.TimelineClient {
	b.op = timelineMentions{userID: userID}

	return b
}

// RecentTweets implements twapi.TimelineClient.RecentTweets.
func (b *TimelineClient) RecentTweets(userID string) twapi.TimelineClient {
	b.op = timelineTweets{userID: userID}

	return b
}

// ReverseChronological implements twapi.TimelineClient.ReverseChronological.
func (b *TimelineClient) ReverseChronological() twapi.TimelineClient {
	b.op = timelineReverseChronological{}

	return b
}

// MaxResults implements twapi.TimelineClient.MaxResults.
func (b *TimelineClient) MaxResults(n int) twapi.TimelineClient {
	b.maxResults = n

	return b
}

// PaginationToken implements twapi.TimelineClient.PaginationToken.
func (b *TimelineClient) PaginationToken(token string) twapi.TimelineClient {
	b.setPaginationToken(token)

	return b
}

// WithAuthMode implements twapi.TimelineClient.WithAuthMode.
func (b *TimelineClient) WithAuthMode(mode twapi.AuthMode) twapi.TimelineClient {
	b.setAuthMode(mode)

	return b
}

func (b *TimelineClient) plan() (plan, error) {
	decorate := listQuery(b.maxResults, constants.TimelineFields)

	switch op := b.op.(type) {
	case timelineMentions:
		id, err := requireID("user_id", op.userID)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path: "users/" + id + "/mentions", route: "users/:id/mentions",
			method: http.MethodGet, auth: twapi.AuthBearer, decorate: decorate,
		}, nil
	case timelineTweets:
		id, err := requireID("user_id", op.userID)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path: "users/" + id + "/tweets", route: "users/:id/tweets",
			method: http.MethodGet, auth: twapi.AuthBearer, decorate: decorate,
		}, nil
	case timelineReverseChronological:
		account, err := b.accountID()
		if err != nil {
			return plan{}, err
		}

		return plan{
			path: "users/" + account + "/timelines/reverse_chronological", route: "users/:id/timelines/reverse_chronological",
			method: http.MethodGet, auth: twapi.AuthOAuth1, decorate: decorate,
		}, nil
	default:
		return plan{}, errNoOperation
	}
}
