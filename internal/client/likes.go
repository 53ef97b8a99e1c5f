package client

import (
	"net/http"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type likesOp interface{ isLikesOp() }

type (
	likesLikedTweets struct{ userID string }
	likesLikingUsers struct{ tweetID string }
	likesLike        struct{ tweetID string }
	likesUnlike      struct{ tweetID string }
)

func (likesLikedTweets) isLikesOp() {}
func (likesLikingUsers) isLikesOp() {}
func (likesLike) isLikesOp()        {}
func (likesUnlike) isLikesOp()      {}

// LikesClient implements twapi.LikesClient.
type LikesClient struct {
	request

	op         likesOp
	maxResults int
}

// NewLikesClient creates a new likes builder.
func NewLikesClient(c *Client) *LikesClient {
	b := &LikesClient{}
	b.request = newRequest(c, b.plan)

	return b
}

// LikedTweets implements twapi.LikesClient.LikedTweets.
func (b *LikesClient) LikedTweets(userID string) twapi.LikesClient {
	b.op = likesLikedTweets{userID: userID}

	return b
}

// LikingUsers implements twapi.LikesClient.LikingUsers.
func (b *LikesClient) LikingUsers(tweetID string) twapi.LikesClient {
	b.op = likesLikingUsers{tweetID: tweetID}

	return b
}

// Like implements twapi.LikesClient.Like.
func (b *LikesClient) Like(tweetID string) twapi.LikesClient {
	b.op = likesLike{tweetID: tweetID}

	return b
}

// Unlike implements twapi.LikesClient.Unlike.
func (b *LikesClient) Unlike(tweetID string) twapi.LikesClient {
	b.op = likesUnlike{tweetID: tweetID}

	return b
}

// MaxResults implements twapi.LikesClient.MaxResults.
func (b *LikesClient) MaxResults(n int) twapi.LikesClient {
	b.maxResults = n

	return b
}

// PaginationToken implements twapi.LikesClient.PaginationToken.
func (b *LikesClient) PaginationToken(token string) twapi.LikesClient {
	b.setPaginationToken(token)

	return b
}

func (b *LikesClient) plan() (plan, error) {
	switch op := b.op.(type) {
	case likesLikedTweets:
		id, err := requireID("user_id", op.userID)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path:     "users/" + id + "/liked_tweets",
			route:    "users/:id/liked_tweets",
			method:   http.MethodGet,
			auth:     twapi.AuthOAuth1,
			decorate: listQuery(b.maxResults),
		}, nil
	case likesLikingUsers:
		id, err := requireID("tweet_id", op.tweetID)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path:     "tweets/" + id + "/liking_users",
			route:    "tweets/:id/liking_users",
			method:   http.MethodGet,
			auth:     twapi.AuthOAuth1,
			decorate: listQuery(b.maxResults),
		}, nil
	case likesLike:
		account, err := b.accountID()
		if err != nil {
			return plan{}, err
		}

		_, err = requireID("tweet_id", op.tweetID)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path:   "users/" + account + "/likes",
			route:  "users/:id/likes",
			method: http.MethodPost,
			auth:   twapi.AuthOAuth1,
			body:   map[string]any{"tweet_id": op.tweetID},
		}, nil
	case likesUnlike:
		account, err := b.accountID()
		if err != nil {
			return plan{}, err
		}

		id, err := requireID("tweet_id", op.tweetID)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path:   "users/" + account + "/likes/" + id,
			route:  "users/:id/likes/:tweet_id",
			method: http.MethodDelete,
			auth:   twapi.AuthOAuth1,
		}, nil
	default:
		return plan{}, errNoOperation
	}
}
