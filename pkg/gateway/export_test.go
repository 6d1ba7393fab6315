package gateway

import "net/rpc"

func NewRPCServer(impl Endpoint) any {
	return &rpcServer{impl: impl}
}

func NewRPCClient(c *rpc.Client) Endpoint {
	return &rpcClient{client: c}
}
