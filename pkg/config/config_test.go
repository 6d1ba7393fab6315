package config_test

import (
	"crypto/tls"
	"testing"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/scimbridge/endpoint-plugins/pkg/config"
	"github.com/scimbridge/endpoint-plugins/pkg/utils/cert"
)

func mtlsConfig(t *testing.T, caFile string) config.Config {
	t.Helper()

	certPath, keyPath, err := cert.GenerateTemporaryCertAndKey(t.TempDir())
	require.NoError(t, err)

	return config.Config{
		Connection: config.Connection{
			Host: commoncfg.SourceRef{
				Source: commoncfg.EmbeddedSourceValue,
				Value:  "localhost",
			},
			Database: commoncfg.SourceRef{
				Source: commoncfg.EmbeddedSourceValue,
				Value:  "idstore",
			},
			CAFile: caFile,
		},
		Auth: commoncfg.SecretRef{
			Type: commoncfg.MTLSSecretType,
			MTLS: commoncfg.MTLS{
				Cert: commoncfg.SourceRef{
					Source: commoncfg.FileSourceValue,
					File: commoncfg.CredentialFile{
						Path:   certPath,
						Format: commoncfg.BinaryFileFormat,
					},
				},
				CertKey: commoncfg.SourceRef{
					Source: commoncfg.FileSourceValue,
					File: commoncfg.CredentialFile{
						Path:   keyPath,
						Format: commoncfg.BinaryFileFormat,
					},
				},
			},
		},
	}
}

func TestServerTLS(t *testing.T) {
	caPath, _, err := cert.GenerateTemporaryCertAndKey(t.TempDir())
	require.NoError(t, err)

	tlsConfig, err := config.ServerTLS(caPath)

	require.NoError(t, err)
	assert.NotNil(t, tlsConfig.RootCAs)
	assert.GreaterOrEqual(t, tlsConfig.MinVersion, uint16(tls.VersionTLS12))
}

func TestServerTLSMissingFile(t *testing.T) {
	_, err := config.ServerTLS("testdata/does-not-exist.pem")

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrServerCA)
}

func TestResolveMTLSWithServerCA(t *testing.T) {
	caPath, _, err := cert.GenerateTemporaryCertAndKey(t.TempDir())
	require.NoError(t, err)

	cfg := mtlsConfig(t, caPath)

	resolved, err := cfg.Resolve()

	require.NoError(t, err)
	require.NotNil(t, resolved.TLS)
	assert.NotEmpty(t, resolved.TLS.Certificates)
	assert.NotNil(t, resolved.TLS.RootCAs)
}

func TestResolveMTLSWithMissingServerCA(t *testing.T) {
	cfg := mtlsConfig(t, "testdata/does-not-exist.pem")

	_, err := cfg.Resolve()

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrServerCA)
}

func TestUnmarshalConnection(t *testing.T) {
	input := "connection:\n" +
		"  port: 5433\n" +
		"  sslMode: require\n" +
		"  caFile: /etc/ssl/db-ca.pem\n"

	cfg := config.Config{}

	require.NoError(t, yaml.Unmarshal([]byte(input), &cfg))
	assert.Equal(t, 5433, cfg.Connection.Port)
	assert.Equal(t, "require", cfg.Connection.SSLMode)
	assert.Equal(t, "/etc/ssl/db-ca.pem", cfg.Connection.CAFile)
}
