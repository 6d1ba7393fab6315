package gateway

import (
	"context"
	"encoding/json"
	"net/rpc"
)

// Args and reply types for the net/rpc transport. The Authorization header
// travels explicitly because a context cannot cross the process boundary;
// the server side reinjects it before calling the implementation.
//
// Attribute payloads travel as JSON, not as gob structs: gob flattens
// pointers and drops zero values, which would turn a present-but-empty
// attribute ("clear this column") into an absent one. The json tags on the
// attribute types keep that distinction intact.

type ConfigureArgs struct {
	YamlConfiguration string
}

type GetUsersArgs struct {
	BaseEntity    string
	Params        QueryParams
	Authorization string
}

type GetUsersReply struct {
	Users *UserList
}

type CreateUserArgs struct {
	BaseEntity    string
	Attributes    []byte
	Authorization string
}

type ModifyUserArgs struct {
	BaseEntity    string
	ID            string
	Attributes    []byte
	Authorization string
}

type DeleteUserArgs struct {
	BaseEntity    string
	ID            string
	Authorization string
}

type GetGroupsArgs struct {
	BaseEntity    string
	Params        QueryParams
	Authorization string
}

type GetGroupsReply struct {
	Groups *GroupList
}

type CreateGroupArgs struct {
	BaseEntity    string
	Attributes    []byte
	Authorization string
}

type ModifyGroupArgs struct {
	BaseEntity    string
	ID            string
	Attributes    []byte
	Authorization string
}

type DeleteGroupArgs struct {
	BaseEntity    string
	ID            string
	Authorization string
}

type rpcServer struct {
	impl Endpoint
}

func callContext(authorization string) context.Context {
	ctx := context.Background()
	if authorization != "" {
		ctx = WithAuthorization(ctx, authorization)
	}

	return ctx
}

func (s *rpcServer) Configure(args ConfigureArgs, _ *struct{}) error {
	return s.impl.Configure(context.Background(), args.YamlConfiguration)
}

func (s *rpcServer) GetUsers(args GetUsersArgs, reply *GetUsersReply) error {
	users, err := s.impl.GetUsers(callContext(args.Authorization), args.BaseEntity, args.Params)
	if err != nil {
		return err
	}

	reply.Users = users

	return nil
}

func (s *rpcServer) CreateUser(args CreateUserArgs, _ *struct{}) error {
	var attrs UserAttributes

	err := json.Unmarshal(args.Attributes, &attrs)
	if err != nil {
		return err
	}

	return s.impl.CreateUser(callContext(args.Authorization), args.BaseEntity, attrs)
}

func (s *rpcServer) ModifyUser(args ModifyUserArgs, _ *struct{}) error {
	var attrs UserAttributes

	err := json.Unmarshal(args.Attributes, &attrs)
	if err != nil {
		return err
	}

	return s.impl.ModifyUser(callContext(args.Authorization), args.BaseEntity, args.ID, attrs)
}

func (s *rpcServer) DeleteUser(args DeleteUserArgs, _ *struct{}) error {
	return s.impl.DeleteUser(callContext(args.Authorization), args.BaseEntity, args.ID)
}

func (s *rpcServer) GetGroups(args GetGroupsArgs, reply *GetGroupsReply) error {
	groups, err := s.impl.GetGroups(callContext(args.Authorization), args.BaseEntity, args.Params)
	if err != nil {
		return err
	}

	reply.Groups = groups

	return nil
}

func (s *rpcServer) CreateGroup(args CreateGroupArgs, _ *struct{}) error {
	var attrs GroupAttributes

	err := json.Unmarshal(args.Attributes, &attrs)
	if err != nil {
		return err
	}

	return s.impl.CreateGroup(callContext(args.Authorization), args.BaseEntity, attrs)
}

func (s *rpcServer) ModifyGroup(args ModifyGroupArgs, _ *struct{}) error {
	var attrs GroupAttributes

	err := json.Unmarshal(args.Attributes, &attrs)
	if err != nil {
		return err
	}

	return s.impl.ModifyGroup(callContext(args.Authorization), args.BaseEntity, args.ID, attrs)
}

func (s *rpcServer) DeleteGroup(args DeleteGroupArgs, _ *struct{}) error {
	return s.impl.DeleteGroup(callContext(args.Authorization), args.BaseEntity, args.ID)
}

// rpcClient is the host-side view of a served endpoint.
type rpcClient struct {
	client *rpc.Client
}

var _ Endpoint = (*rpcClient)(nil)

func authorizationArg(ctx context.Context) string {
	header, _ := AuthorizationFromContext(ctx)
	return header
}

func (c *rpcClient) Configure(_ context.Context, yamlConfiguration string) error {
	return c.client.Call("Plugin.Configure", ConfigureArgs{YamlConfiguration: yamlConfiguration}, &struct{}{})
}

func (c *rpcClient) GetUsers(ctx context.Context, baseEntity string, params QueryParams) (*UserList, error) {
	args := GetUsersArgs{
		BaseEntity:    baseEntity,
		Params:        params,
		Authorization: authorizationArg(ctx),
	}

	var reply GetUsersReply

	err := c.client.Call("Plugin.GetUsers", args, &reply)
	if err != nil {
		return nil, err
	}

	// An all-zero list is omitted from the gob stream entirely; restore
	// the non-nil empty list the contract promises.
	if reply.Users == nil {
		reply.Users = &UserList{}
	}

	if reply.Users.Resources == nil {
		reply.Users.Resources = []User{}
	}

	return reply.Users, nil
}

func (c *rpcClient) CreateUser(ctx context.Context, baseEntity string, attrs UserAttributes) error {
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	args := CreateUserArgs{
		BaseEntity:    baseEntity,
		Attributes:    encoded,
		Authorization: authorizationArg(ctx),
	}

	return c.client.Call("Plugin.CreateUser", args, &struct{}{})
}

func (c *rpcClient) ModifyUser(ctx context.Context, baseEntity, id string, attrs UserAttributes) error {
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	args := ModifyUserArgs{
		BaseEntity:    baseEntity,
		ID:            id,
		Attributes:    encoded,
		Authorization: authorizationArg(ctx),
	}

	return c.client.Call("Plugin.ModifyUser", args, &struct{}{})
}

func (c *rpcClient) DeleteUser(ctx context.Context, baseEntity, id string) error {
	args := DeleteUserArgs{
		BaseEntity:    baseEntity,
		ID:            id,
		Authorization: authorizationArg(ctx),
	}

	return c.client.Call("Plugin.DeleteUser", args, &struct{}{})
}

func (c *rpcClient) GetGroups(ctx context.Context, baseEntity string, params QueryParams) (*GroupList, error) {
	args := GetGroupsArgs{
		BaseEntity:    baseEntity,
		Params:        params,
		Authorization: authorizationArg(ctx),
	}

	var reply GetGroupsReply

	err := c.client.Call("Plugin.GetGroups", args, &reply)
	if err != nil {
		return nil, err
	}

	if reply.Groups == nil {
		reply.Groups = &GroupList{}
	}

	if reply.Groups.Resources == nil {
		reply.Groups.Resources = []Group{}
	}

	return reply.Groups, nil
}

func (c *rpcClient) CreateGroup(ctx context.Context, baseEntity string, attrs GroupAttributes) error {
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	args := CreateGroupArgs{
		BaseEntity:    baseEntity,
		Attributes:    encoded,
		Authorization: authorizationArg(ctx),
	}

	return c.client.Call("Plugin.CreateGroup", args, &struct{}{})
}

func (c *rpcClient) ModifyGroup(ctx context.Context, baseEntity, id string, attrs GroupAttributes) error {
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	args := ModifyGroupArgs{
		BaseEntity:    baseEntity,
		ID:            id,
		Attributes:    encoded,
		Authorization: authorizationArg(ctx),
	}

	return c.client.Call("Plugin.ModifyGroup", args, &struct{}{})
}

func (c *rpcClient) DeleteGroup(ctx context.Context, baseEntity, id string) error {
	args := DeleteGroupArgs{
		BaseEntity:    baseEntity,
		ID:            id,
		Authorization: authorizationArg(ctx),
	}

	return c.client.Call("Plugin.DeleteGroup", args, &struct{}{})
}
