package sqluser

import "github.com/scimbridge/endpoint-plugins/pkg/clients/sqldb"

func (p *Plugin) SetTestClient(client *sqldb.Client) {
	p.client = client
}
