package security

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/cuemby/vesinspect/pkg/config"
	"github.com/cuemby/vesinspect/pkg/log"
	"github.com/cuemby/vesinspect/pkg/types"
	"software.sslmate.com/src/go-pkcs12"
)

// Source identifies where client credentials were loaded from
type Source string

const (
	SourcePKCS12 Source = "pkcs12"
	SourcePEM    Source = "pem"
)

// Credentials is a resolved client certificate and private key
type Credentials struct {
	Certificate tls.Certificate
	Source      Source
	Path        string // Bundle path for PKCS#12, certificate path for PEM
}

// ResolveCredentials resolves the client certificate used for mutual TLS.
//
// A PKCS#12 bundle is tried first: its path comes from params.P12File or
// VOLT_API_P12_FILE and its passphrase only from VES_P12_PASSWORD. When
// either is missing, separate PEM files are used instead, from
// params.CertFile/VOLT_API_CERT and params.KeyFile/VOLT_API_KEY. A bundle
// that is configured but cannot be decoded is an error; it never falls
// through to PEM.
func ResolveCredentials(params config.Params, env config.Env) (*Credentials, error) {
	logger := log.WithComponent("security")

	p12Path := config.Resolve(params.P12File, env, config.EnvP12File)
	password, hasPassword := lookupRaw(env, config.EnvP12Password)
	if p12Path != "" && hasPassword {
		creds, err := LoadPKCS12(p12Path, password)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("source", string(creds.Source)).Str("path", p12Path).Msg("Resolved client credentials")
		return creds, nil
	}

	certPath := config.Resolve(params.CertFile, env, config.EnvCert)
	keyPath := config.Resolve(params.KeyFile, env, config.EnvKey)
	if certPath != "" && keyPath != "" {
		creds, err := LoadPEM(certPath, keyPath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("source", string(creds.Source)).Str("path", certPath).Msg("Resolved client credentials")
		return creds, nil
	}

	return nil, fmt.Errorf("%w: unable to resolve client credentials (set %s and %s, or %s and %s)",
		types.ErrConfiguration, config.EnvP12File, config.EnvP12Password, config.EnvCert, config.EnvKey)
}

// LoadPKCS12 decodes a PKCS#12 bundle into a client certificate
func LoadPKCS12(path, password string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read PKCS#12 bundle: %v", types.ErrConfiguration, err)
	}

	key, cert, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode PKCS#12 bundle %s: %v", types.ErrConfiguration, path, err)
	}

	chain := [][]byte{cert.Raw}
	for _, ca := range caCerts {
		chain = append(chain, ca.Raw)
	}

	return &Credentials{
		Certificate: tls.Certificate{
			Certificate: chain,
			PrivateKey:  key,
			Leaf:        cert,
		},
		Source: SourcePKCS12,
		Path:   path,
	}, nil
}

// LoadPEM loads a client certificate and private key from PEM files
func LoadPEM(certPath, keyPath string) (*Credentials, error) {
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load certificate: %v", types.ErrConfiguration, err)
	}

	// Parse certificate to populate Leaf field
	if cert.Leaf == nil {
		x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse certificate: %v", types.ErrConfiguration, err)
		}
		cert.Leaf = x509Cert
	}

	return &Credentials{
		Certificate: cert,
		Source:      SourcePEM,
		Path:        certPath,
	}, nil
}

// LoadCAPool returns the system roots extended with the PEM certificates in
// path. An empty path returns nil so the transport uses the system roots.
func LoadCAPool(path string) (*x509.CertPool, error) {
	if path == "" {
		return nil, nil
	}

	caPEM, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CA certificate: %v", types.ErrConfiguration, err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}

	added := 0
	for {
		var block *pem.Block
		block, caPEM = pem.Decode(caPEM)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		caCert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse CA certificate: %v", types.ErrConfiguration, err)
		}
		pool.AddCert(caCert)
		added++
	}
	if added == 0 {
		return nil, fmt.Errorf("%w: no CA certificate found in %s", types.ErrConfiguration, path)
	}

	return pool, nil
}

// lookupRaw returns the untrimmed value; passphrases may contain spaces
func lookupRaw(env config.Env, key string) (string, bool) {
	if env == nil {
		return "", false
	}
	v, ok := env.Lookup(key)
	return v, ok && v != ""
}
