package sqldb

import (
	"github.com/hashicorp/go-hclog"

	"github.com/scimbridge/endpoint-plugins/pkg/config"
	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
)

func NewTestClient(open OpenFunc) *Client {
	return NewClientWithOpener(&config.Resolved{
		Host:     "localhost",
		Port:     5432,
		Database: "idstore",
		Username: "gateway",
		Password: "gateway-secret",
	}, hclog.NewNullLogger(), open)
}

func (c *Client) DSN() string {
	return c.dsn(c.creds)
}

var (
	SelectUsersQuery = selectUsersQuery
	InsertUserQuery  = insertUserQuery
	UpdateUserQuery  = updateUserQuery
	DeleteUserQuery  = deleteUserQuery
	InsertGroupQuery = insertGroupQuery
)

type UserRow = userRow

func Resource(r UserRow) gateway.User {
	return r.resource()
}
