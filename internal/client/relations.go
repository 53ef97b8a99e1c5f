package client

import (
	"net/http"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// relationOp is the pending operation of an account relation builder
// (follows, blocks, mutes).
type relationOp interface{ isRelationOp() }

type (
	relationList   struct{ segment string }
	relationAdd    struct{ target string }
	relationRemove struct{ target string }
)

func (relationList) isRelationOp()   {}
func (relationAdd) isRelationOp()    {}
func (relationRemove) isRelationOp() {}

// relation resolves the users/:id/<segment> family of endpoints.
type relation struct {
	request

	// segment is the relation collection, e.g. "blocking".
	segment    string
	op         relationOp
	maxResults int
	fields     []string
}

func (r *relation) plan() (plan, error) {
	account, err := r.accountID()
	if err != nil {
		return plan{}, err
	}

	switch op := r.op.(type) {
	case relationList:
		return plan{
			path:     "users/" + account + "/" + op.segment,
			route:    "users/:id/" + op.segment,
			method:   http.MethodGet,
			auth:     twapi.AuthOAuth1,
			decorate: listQuery(r.maxResults, r.fields...),
		}, nil
	case relationAdd:
		_, err = requireID("target_user_id", op.target)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path:   "users/" + account + "/" + r.segment,
			route:  "users/:id/" + r.segment,
			method: http.MethodPost,
			auth:   twapi.AuthOAuth1,
			body:   map[string]any{"target_user_id": op.target},
		}, nil
	case relationRemove:
		target, err := requireID("target_user_id", op.target)
		if err != nil {
			return plan{}, err
		}

		return plan{
			path:   "users/" + account + "/" + r.segment + "/" + target,
			route:  "users/:id/" + r.segment + "/:target_user_id",
			method: http.MethodDelete,
			auth:   twapi.AuthOAuth1,
		}, nil
	default:
		return plan{}, errNoOperation
	}
}

// BlocksClient implements twapi.BlocksClient.
type BlocksClient struct {
	relation
}

// NewBlocksClient creates a new blocks builder.
func NewBlocksClient(c *Client) *BlocksClient {
	b := &BlocksClient{}
	b.segment = "blocking"
	b.request = newRequest(c, b.plan)

	return b
}

// Lookup implements twapi.BlocksClient.Lookup.
func (b *BlocksClient) Lookup() twapi.BlocksClient {
	b.op = relationList{segment: b.segment}

	return b
}

// Block implements twapi.BlocksClient.Block.
func (b *BlocksClient) Block(targetUserID string) twapi.BlocksClient {
	b.op = relationAdd{target: targetUserID}

	return b
}

// Unblock implements twapi.BlocksClient.Unblock.
func (b *BlocksClient) Unblock(targetUserID string) twapi.BlocksClient {
	b.op = relationRemove{target: targetUserID}

	return b
}

// MaxResults implements twapi.BlocksClient.MaxResults.
func (b *BlocksClient) MaxResults(n int) twapi.BlocksClient {
	b.maxResults = n

	return b
}

// PaginationToken implements twapi.BlocksClient.PaginationToken.
func (b *BlocksClient) PaginationToken(token string) twapi.BlocksClient {
	b.setPaginationToken(token)

	return b
}

// MutesClient implements twapi.MutesClient.
type MutesClient struct {
	relation
}

// NewMutesClient creates a new mutes builder.
func NewMutesClient(c *Client) *MutesClient {
	b := &MutesClient{}
	b.segment = "muting"
	b.request = newRequest(c, b.plan)

	return b
}

// Lookup implements twapi.MutesClient.Lookup.
func (b *MutesClient) Lookup() twapi.MutesClient {
	b.op = relationList{segment: b.segment}

	return b
}

// Mute implements twapi.MutesClient.Mute.
func (b *MutesClient) Mute(targetUserID string) twapi.MutesClient {
	b.op = relationAdd{target: targetUserID}

	return b
}

// Unmute implements twapi.MutesClient.Unmute.
func (b *MutesClient) Unmute(targetUserID string) twapi.MutesClient {
	b.op = relationRemove{target: targetUserID}

	return b
}

// MaxResults implements twapi.MutesClient.MaxResults.
func (b *MutesClient) MaxResults(n int) twapi.MutesClient {
	b.maxResults = n

	return b
}

// PaginationToken implements twapi.MutesClient.PaginationToken.
func (b *MutesClient) PaginationToken(token string) twapi.MutesClient {
	b.setPaginationToken(token)

	return b
}
