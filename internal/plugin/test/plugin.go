package testplugin

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/scimbridge/endpoint-plugins/pkg/gateway"
)

// TestPlugin is a no-op endpoint used to exercise the gateway plugin
// contract without a database.
type TestPlugin struct {
	logger hclog.Logger
}

var _ gateway.Endpoint = (*TestPlugin)(nil)

func NewTestPlugin() *TestPlugin {
	return &TestPlugin{logger: hclog.NewNullLogger()}
}

func (p *TestPlugin) SetLogger(logger hclog.Logger) {
	p.logger = logger
	p.logger.Info("SetLogger method has been called;")
}

func (p *TestPlugin) Configure(_ context.Context, _ string) error {
	p.logger.Info("Configure method has been called;")
	return nil
}

func (p *TestPlugin) GetUsers(
	_ context.Context,
	_ string,
	_ gateway.QueryParams,
) (*gateway.UserList, error) {
	p.logger.Info("GetUsers method has been called;")
	return &gateway.UserList{Resources: []gateway.User{}}, nil
}

func (p *TestPlugin) CreateUser(_ context.Context, _ string, _ gateway.UserAttributes) error {
	p.logger.Info("CreateUser method has been called;")
	return nil
}

func (p *TestPlugin) ModifyUser(_ context.Context, _, _ string, _ gateway.UserAttributes) error {
	p.logger.Info("ModifyUser method has been called;")
	return nil
}

func (p *TestPlugin) DeleteUser(_ context.Context, _, _ string) error {
	p.logger.Info("DeleteUser method has been called;")
	return nil
}

func (p *TestPlugin) GetGroups(
	_ context.Context,
	_ string,
	_ gateway.QueryParams,
) (*gateway.GroupList, error) {
	p.logger.Info("GetGroups method has been called;")
	return &gateway.GroupList{Resources: []gateway.Group{}}, nil
}

func (p *TestPlugin) CreateGroup(_ context.Context, _ string, _ gateway.GroupAttributes) error {
	p.logger.Info("CreateGroup method has been called;")
	return nil
}

func (p *TestPlugin) ModifyGroup(_ context.Context, _, _ string, _ gateway.GroupAttributes) error {
	p.logger.Info("ModifyGroup method has been called;")
	return nil
}

func (p *TestPlugin) DeleteGroup(_ context.Context, _, _ string) error {
	p.logger.Info("DeleteGroup method has been called;")
	return nil
}
