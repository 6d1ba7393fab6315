package gateway

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"
)

// Endpoint is the operation surface the gateway invokes on a loaded plugin.
// Every method receives the baseEntity the host resolved from the request
// path; it identifies the configured target and is opaque beyond logging.
type Endpoint interface {
	Configure(ctx context.Context, yamlConfiguration string) error

	GetUsers(ctx context.Context, baseEntity string, params QueryParams) (*UserList, error)
	CreateUser(ctx context.Context, baseEntity string, attrs UserAttributes) error
	ModifyUser(ctx context.Context, baseEntity, id string, attrs UserAttributes) error
	DeleteUser(ctx context.Context, baseEntity, id string) error

	GetGroups(ctx context.Context, baseEntity string, params QueryParams) (*GroupList, error)
	CreateGroup(ctx context.Context, baseEntity string, attrs GroupAttributes) error
	ModifyGroup(ctx context.Context, baseEntity, id string, attrs GroupAttributes) error
	DeleteGroup(ctx context.Context, baseEntity, id string) error
}

// PluginName is the dispense name the host uses for endpoint plugins.
const PluginName = "endpoint"

// Handshake must match the host's handshake configuration; it keeps the
// gateway from executing arbitrary binaries as plugins by accident.
var Handshake = goplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "SCIM_ENDPOINT_PLUGIN",
	MagicCookieValue: "scimbridge-endpoint",
}

// EndpointPlugin adapts an Endpoint to go-plugin's net/rpc protocol.
type EndpointPlugin struct {
	Impl Endpoint
}

var _ goplugin.Plugin = (*EndpointPlugin)(nil)

func (p *EndpointPlugin) Server(*goplugin.MuxBroker) (any, error) {
	return &rpcServer{impl: p.Impl}, nil
}

func (p *EndpointPlugin) Client(_ *goplugin.MuxBroker, c *rpc.Client) (any, error) {
	return &rpcClient{client: c}, nil
}

// Serve hands the endpoint to the gateway host process. It blocks until the
// host closes the plugin.
func Serve(endpoint Endpoint, logger hclog.Logger) {
	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]goplugin.Plugin{
			PluginName: &EndpointPlugin{Impl: endpoint},
		},
		Logger: logger,
	})
}
