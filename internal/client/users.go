package client

import (
	"net/http"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/internal/endpoint"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type usersOp interface{ isUsersOp() }

type (
	usersByID        struct{ id string }
	usersByIDs       struct{ ids []string }
	usersByUsername  struct{ username string }
	usersByUsernames struct{ usernames []string }
)

func (usersByID) isUsersOp()        {}
func (usersByIDs) isUsersOp()       {}
func (usersByUsername) isUsersOp()  {}
func (usersByUsernames) isUsersOp() {}

// UsersClient implements twapi.UsersClient.
type UsersClient struct {
	request

	op usersOp
}

// NewUsersClient creates a new user lookup builder.
func NewUsersClient(c *Client) *UsersClient {
	b := &UsersClient{}
	b.request = newRequest(c, b.plan)

	return b
}

// ByID implements twapi.UsersClient.ByID.
func (b *UsersClient) ByID(id string) twapi.UsersClient {
	b.op = usersByID{id: id}

	return b
}

// ByIDs implements twapi.UsersClient.ByIDs.
func (b *UsersClient) ByIDs(ids ...string) twapi.UsersClient {
	b.op = usersByIDs{ids: ids}

	return b
}

// ByUsername implements twapi.UsersClient.ByUsername.
func (b *UsersClient) ByUsername(username string) twapi.UsersClient {
	b.op = usersByUsername{username: username}

	return b
}

// ByUsernames implements twapi.UsersClient.ByUsernames.
func (b *UsersClient) ByUsernames(usernames ...string) twapi.UsersClient {
	b.op = usersByUsernames{usernames: usernames}

	return b
}

// PaginationToken implements twapi.UsersClient.PaginationToken.
func (b *UsersClient) PaginationToken(token string) twapi.UsersClient {
	b.setPaginationToken(token)

	return b
}

// WithAuthMode implements twapi.UsersClient.WithAuthMode.
func (b *UsersClient) WithAuthMode(mode twapi.AuthMode) twapi.UsersClient {
	b.setAuthMode(mode)

	return b
}

func (b *UsersClient) plan() (plan, error) {
	p := plan{method: http.MethodGet, auth: twapi.AuthBearer}

	switch op := b.op.(type) {
	case usersByID:
		id, err := requireID("id", op.id)
		if err != nil {
			return plan{}, err
		}

		p.path, p.route = "users/"+id, "users/:id"
		p.decorate = listQuery(0, constants.UserDescriptionFields)
	case usersByIDs:
		ids := endpoint.List(op.ids)
		if ids == "" {
			return plan{}, &twapi.ValidationError{Field: "ids", Err: twapi.ErrTargetRequired}
		}

		p.path, p.route = "users", "users"
		p.decorate = listQuery(0, "ids="+ids, constants.UserDescriptionFields)
	case usersByUsername:
		username, err := requireID("username", op.username)
		if err != nil {
			return plan{}, err
		}

		p.path, p.route = "users/by/username/"+username, "users/by/username/:username"
		p.decorate = listQuery(0, constants.UserDescriptionFields)
	case usersByUsernames:
		usernames := endpoint.List(op.usernames)
		if usernames == "" {
			return plan{}, &twapi.ValidationError{Field: "usernames", Err: twapi.ErrTargetRequired}
		}

		p.path, p.route = "users/by", "users/by"
		p.decorate = listQuery(0, "usernames="+usernames, constants.UserDescriptionFields)
	default:
		return plan{}, &twapi.ValidationError{Field: "id", Err: twapi.ErrTargetRequired}
	}

	return p, nil
}

// MeClient implements twapi.MeClient.
type MeClient struct {
	request
}

// NewMeClient creates a new authenticated-user builder.
func NewMeClient(c *Client) *MeClient {
	b := &MeClient{}
	b.request = newRequest(c, b.plan)

	return b
}

func (b *MeClient) plan() (plan, error) {
	fields := constants.MeFields
	if b.client.credentials.FreeMode {
		fields = constants.MeFreeFields
	}

	return plan{
		path:     "users/me",
		route:    "users/me",
		method:   http.MethodGet,
		auth:     twapi.AuthOAuth1,
		decorate: listQuery(0, fields),
	}, nil
}
