// Package sqluser implements the gateway endpoint that provisions users
// into a fixed SQL User table.
package sqluser

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/scimbridge/endpoint-plugins/pkg/clients/sqldb"
	"github.com/scimbridge/endpoint-plugins/pkg/config"
	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
	"github.com/scimbridge/endpoint-plugins/pkg/utils/errs"
)

var (
	ErrID           = oops.In("SQL User Endpoint Plugin")
	ErrNoClient     = errors.New("no database client exists")
	ErrNotSupported = errors.New("not supported")
	ErrGetUsers     = errors.New("failed to get users")
	ErrCreateUser   = errors.New("failed to create user")
	ErrModifyUser   = errors.New("failed to modify user")
	ErrDeleteUser   = errors.New("failed to delete user")
	ErrGetGroups    = errors.New("failed to get groups")
	ErrCreateGroup  = errors.New("failed to create group")
	ErrModifyGroup  = errors.New("failed to modify group")
	ErrDeleteGroup  = errors.New("failed to delete group")
)

// Plugin bridges the gateway's user/group operations to the SQL client.
// It holds no per-request state; concurrent calls share only the resolved
// configuration inside the client, which is read-only after Configure.
type Plugin struct {
	logger hclog.Logger
	client *sqldb.Client
}

var _ gateway.Endpoint = (*Plugin)(nil)

func NewPlugin() *Plugin {
	return &Plugin{logger: hclog.NewNullLogger()}
}

func (p *Plugin) SetLogger(logger hclog.Logger) {
	p.logger = logger
}

func (p *Plugin) Configure(_ context.Context, yamlConfiguration string) error {
	p.logger.Info("configuring SQL user endpoint")

	cfg := config.Config{}

	err := yaml.Unmarshal([]byte(yamlConfiguration), &cfg)
	if err != nil {
		return ErrID.Wrapf(err, "failed to parse yaml configuration")
	}

	resolved, err := cfg.Resolve()
	if err != nil {
		return ErrID.Wrapf(err, "failed to resolve connection configuration")
	}

	p.client = sqldb.NewClient(resolved, p.logger)

	return nil
}

func (p *Plugin) GetUsers(
	ctx context.Context,
	baseEntity string,
	params gateway.QueryParams,
) (*gateway.UserList, error) {
	if p.client == nil {
		return nil, ErrNoClient
	}

	p.logger.Debug("getting users", "baseEntity", baseEntity, "attribute", params.Attribute)

	users, err := p.client.GetUsers(ctx, params)
	if err != nil {
		return nil, errs.Wrap(ErrGetUsers, err)
	}

	return users, nil
}

func (p *Plugin) CreateUser(
	ctx context.Context,
	baseEntity string,
	attrs gateway.UserAttributes,
) error {
	if p.client == nil {
		return ErrNoClient
	}

	p.logger.Debug("creating user", "baseEntity", baseEntity)

	err := p.client.CreateUser(ctx, attrs)
	if err != nil {
		return errs.Wrap(ErrCreateUser, err)
	}

	return nil
}

func (p *Plugin) ModifyUser(
	ctx context.Context,
	baseEntity, id string,
	attrs gateway.UserAttributes,
) error {
	if p.client == nil {
		return ErrNoClient
	}

	p.logger.Debug("modifying user", "baseEntity", baseEntity, "id", id)

	err := p.client.ModifyUser(ctx, id, attrs)
	if err != nil {
		return errs.Wrap(ErrModifyUser, err)
	}

	return nil
}

func (p *Plugin) DeleteUser(ctx context.Context, baseEntity, id string) error {
	if p.client == nil {
		return ErrNoClient
	}

	p.logger.Debug("deleting user", "baseEntity", baseEntity, "id", id)

	err := p.client.DeleteUser(ctx, id)
	if err != nil {
		return errs.Wrap(ErrDeleteUser, err)
	}

	return nil
}

func (p *Plugin) GetGroups(
	ctx context.Context,
	baseEntity string,
	params gateway.QueryParams,
) (*gateway.GroupList, error) {
	if p.client == nil {
		return nil, ErrNoClient
	}

	p.logger.Debug("getting groups", "baseEntity", baseEntity)

	groups, err := p.client.GetGroups(ctx, params)
	if err != nil {
		return nil, errs.Wrap(ErrGetGroups, err)
	}

	return groups, nil
}

func (p *Plugin) CreateGroup(
	ctx context.Context,
	baseEntity string,
	attrs gateway.GroupAttributes,
) error {
	if p.client == nil {
		return ErrNoClient
	}

	p.logger.Debug("creating group", "baseEntity", baseEntity)

	err := p.client.CreateGroup(ctx, attrs)
	if err != nil {
		return errs.Wrap(ErrCreateGroup, err)
	}

	return nil
}

func (p *Plugin) ModifyGroup(_ context.Context, baseEntity, id string, _ gateway.GroupAttributes) error {
	p.logger.Debug("modify group rejected", "baseEntity", baseEntity, "id", id)
	return errs.Wrap(ErrModifyGroup, ErrNotSupported)
}

func (p *Plugin) DeleteGroup(_ context.Context, baseEntity, id string) error {
	p.logger.Debug("delete group rejected", "baseEntity", baseEntity, "id", id)
	return errs.Wrap(ErrDeleteGroup, ErrNotSupported)
}
