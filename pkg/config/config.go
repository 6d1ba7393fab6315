// Package config holds the endpoint plugin configuration. Connection
// settings and credentials are declared as source references so they can be
// read from the environment, mounted files, or an external secret store;
// Resolve reads every reference exactly once and returns plain values.
package config

import (
	"crypto/tls"
	"errors"

	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/scimbridge/endpoint-plugins/pkg/utils/errs"
	"github.com/scimbridge/endpoint-plugins/pkg/utils/tlsconfig"
)

const DefaultPort = 5432

var (
	ErrAuthNotImplemented = errors.New("database auth type not implemented")
	ErrHost               = errors.New("failed to load the database host")
	ErrDatabase           = errors.New("failed to load the database name")
	ErrUsername           = errors.New("failed to load the database username")
	ErrPassword           = errors.New("failed to load the database password")
	ErrClientCertificate  = errors.New("failed to parse client certificate x509 pair")
	ErrServerCA           = errors.New("failed to load the database server CA")
)

type Connection struct {
	Host     commoncfg.SourceRef `yaml:"host"`
	Port     int                 `yaml:"port"`
	Database commoncfg.SourceRef `yaml:"database"`
	SSLMode  string              `yaml:"sslMode"`
	CAFile   string              `yaml:"caFile"`
}

type Config struct {
	Connection Connection          `yaml:"connection"`
	Auth       commoncfg.SecretRef `yaml:"auth"`
}

// Resolved is the immutable result of reading every source reference. It is
// built once at Configure time; per-request credential overrides operate on
// copies, never on this value.
type Resolved struct {
	Host     string
	Port     int
	Database string
	SSLMode  string

	Username string
	Password string

	// TLS is non-nil when the database connection needs a custom TLS
	// setup: a client certificate pair, or a private server CA.
	TLS *tls.Config
}

func (c *Config) Resolve() (*Resolved, error) {
	host, err := commoncfg.LoadValueFromSourceRef(c.Connection.Host)
	if err != nil {
		return nil, errs.Wrap(ErrHost, err)
	}

	database, err := commoncfg.LoadValueFromSourceRef(c.Connection.Database)
	if err != nil {
		return nil, errs.Wrap(ErrDatabase, err)
	}

	resolved := &Resolved{
		Host:     string(host),
		Port:     c.Connection.Port,
		Database: string(database),
		SSLMode:  c.Connection.SSLMode,
	}

	if resolved.Port == 0 {
		resolved.Port = DefaultPort
	}

	switch c.Auth.Type {
	case commoncfg.BasicSecretType:
		username, err := commoncfg.LoadValueFromSourceRef(c.Auth.Basic.Username)
		if err != nil {
			return nil, errs.Wrap(ErrUsername, err)
		}

		password, err := commoncfg.LoadValueFromSourceRef(c.Auth.Basic.Password)
		if err != nil {
			return nil, errs.Wrap(ErrPassword, err)
		}

		resolved.Username = string(username)
		resolved.Password = string(password)

		if c.Connection.CAFile != "" {
			resolved.TLS, err = ServerTLS(c.Connection.CAFile)
			if err != nil {
				return nil, err
			}
		}
	case commoncfg.MTLSSecretType:
		mtls, err := commoncfg.LoadMTLSConfig(&c.Auth.MTLS)
		if err != nil {
			return nil, errs.Wrap(ErrClientCertificate, err)
		}

		// A configured server CA applies to the mTLS setup too.
		if c.Connection.CAFile != "" {
			err = tlsconfig.WithCA(c.Connection.CAFile)(mtls)
			if err != nil {
				return nil, errs.Wrap(ErrServerCA, err)
			}
		}

		resolved.TLS = mtls
	default:
		return nil, ErrAuthNotImplemented
	}

	return resolved, nil
}

// ServerTLS builds the TLS configuration used to verify a database server
// signed by a private CA.
func ServerTLS(caFile string) (*tls.Config, error) {
	cfg, err := tlsconfig.NewTLSConfig(tlsconfig.WithCA(caFile))
	if err != nil {
		return nil, errs.Wrap(ErrServerCA, err)
	}

	return cfg, nil
}
