package client

import (
	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// FollowsClient implements twapi.FollowsClient. Listing followers reads
// users/:id/followers; following, follow and unfollow use users/:id/following.
type FollowsClient struct {
	relation
}

// NewFollowsClient creates a new follows builder.
func NewFollowsClient(c *Client) *FollowsClient {
	b := &FollowsClient{}
	b.segment = "following"
	b.fields = []string{constants.UserDescriptionFields}
	b.request = newRequest(c, b.plan)

	return b
}

// Followers implements twapi.FollowsClient.Followers.
func (b *FollowsClient) Followers() twapi.FollowsClient {
	b.op = relationList{segment: "followers"}

	return b
}

// Following implements twapi.FollowsClient.Following.
func (b *FollowsClient) Following() twapi.FollowsClient {
	b.op = relationList{segment: "following"}

	return b
}

// Follow implements twapi.FollowsClient.Follow.
func (b *FollowsClient) Follow(targetUserID string) twapi.FollowsClient {
	b.op = relationAdd{target: targetUserID}

	return b
}

// Unfollow implements twapi.FollowsClient.Unfollow.
func (b *FollowsClient) Unfollow(targetUserID string) twapi.FollowsClient {
	b.op = relationRemove{target: targetUserID}

	return b
}

// MaxResults implements twapi.FollowsClient.MaxResults.
func (b *FollowsClient) MaxResults(n int) twapi.FollowsClient {
	b.maxResults = n

	return b
}

// PaginationToken implements twapi.FollowsClient.PaginationToken.
func (b *FollowsClient) PaginationToken(token string) twapi.FollowsClient {
	b.setPaginationToken(token)

	return b
}
