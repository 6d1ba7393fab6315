// Package cert generates self-signed X.509 certificates and private keys
// as PEM files. It exists for test purposes only: components that verify
// TLS material need real files on disk to load.
package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/scimbridge/endpoint-plugins/pkg/utils/errs"
)

var (
	ErrFailedToGeneratePrivateKey = errors.New("failed to generate private key")
	ErrFailedToCreateCertificate  = errors.New("failed to create certificate")
	ErrFailedToMarshalPrivateKey  = errors.New("failed to marshal private key")
	ErrFailedToWriteCertFile      = errors.New("failed to write cert.pem")
	ErrFailedToWriteKeyFile       = errors.New("failed to write key.pem")
)

// GenerateTemporaryCertAndKey writes a self-signed certificate and its
// ECDSA private key as cert.pem and key.pem into dir and returns both
// paths. Callers normally pass t.TempDir() so cleanup is automatic.
func GenerateTemporaryCertAndKey(dir string) (string, string, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", errs.Wrap(ErrFailedToGeneratePrivateKey, err)
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"Test Org"},
		},
		NotBefore: time.Now(),
		NotAfter:  time.Now().Add(365 * 24 * time.Hour),

		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	derBytes, err := x509.CreateCertificate(
		rand.Reader,
		&template,
		&template,
		&priv.PublicKey,
		priv,
	)
	if err != nil {
		return "", "", errs.Wrap(ErrFailedToCreateCertificate, err)
	}

	certPath := filepath.Join(dir, "cert.pem")

	certData := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: derBytes})

	err = os.WriteFile(certPath, certData, 0o600)
	if err != nil {
		return "", "", errs.Wrap(ErrFailedToWriteCertFile, err)
	}

	privBytes, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return "", "", errs.Wrap(ErrFailedToMarshalPrivateKey, err)
	}

	keyPath := filepath.Join(dir, "key.pem")

	keyData := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privBytes})

	err = os.WriteFile(keyPath, keyData, 0o600)
	if err != nil {
		return "", "", errs.Wrap(ErrFailedToWriteKeyFile, err)
	}

	return certPath, keyPath, nil
}
