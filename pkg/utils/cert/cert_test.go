package cert_test

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scimbridge/endpoint-plugins/pkg/utils/cert"
)

func TestGenerateTemporaryCertAndKey(t *testing.T) {
	certPath, keyPath, err := cert.GenerateTemporaryCertAndKey(t.TempDir())
	require.NoError(t, err)

	_, err = tls.LoadX509KeyPair(certPath, keyPath)
	assert.NoError(t, err)
}

func TestGeneratedCertificateIsSelfSigned(t *testing.T) {
	certPath, _, err := cert.GenerateTemporaryCertAndKey(t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(certPath)
	require.NoError(t, err)

	block, _ := pem.Decode(data)
	require.NotNil(t, block)

	parsed, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)

	assert.Equal(t, parsed.Subject.String(), parsed.Issuer.String())
}

func TestGenerateIntoMissingDirectory(t *testing.T) {
	_, _, err := cert.GenerateTemporaryCertAndKey("/nonexistent/dir")

	assert.ErrorIs(t, err, cert.ErrFailedToWriteCertFile)
}
