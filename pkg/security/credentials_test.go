package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cuemby/vesinspect/internal/testpki"
	"github.com/cuemby/vesinspect/pkg/config"
	"github.com/cuemby/vesinspect/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCredentialsPKCS12(t *testing.T) {
	dir := t.TempDir()
	ca := testpki.NewCA(t, "test-ca")
	leaf := ca.IssueClient(t, "p12-client")
	p12Path := leaf.WritePKCS12(t, dir, "s3cret pass", ca)

	// PEM material that must not be used when the bundle resolves
	other := ca.IssueClient(t, "pem-client")
	certPath, keyPath := other.WritePEM(t, dir)

	tests := []struct {
		name   string
		params config.Params
		env    config.MapEnv
	}{
		{
			name:   "bundle from parameter",
			params: config.Params{P12File: p12Path, CertFile: certPath, KeyFile: keyPath},
			env:    config.MapEnv{config.EnvP12Password: "s3cret pass"},
		},
		{
			name: "bundle from environment",
			env: config.MapEnv{
				config.EnvP12File:     p12Path,
				config.EnvP12Password: "s3cret pass",
				config.EnvCert:        certPath,
				config.EnvKey:         keyPath,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ResolveCredentials(tt.params, tt.env)
			require.NoError(t, err)

			assert.Equal(t, SourcePKCS12, creds.Source)
			assert.Equal(t, p12Path, creds.Path)
			require.NotNil(t, creds.Certificate.Leaf)
			assert.Equal(t, "p12-client", creds.Certificate.Leaf.Subject.CommonName)
			assert.NotNil(t, creds.Certificate.PrivateKey)
			assert.Len(t, creds.Certificate.Certificate, 2, "leaf plus CA chain")
		})
	}
}

func TestResolveCredentialsFallsBackToPEM(t *testing.T) {
	dir := t.TempDir()
	ca := testpki.NewCA(t, "test-ca")
	leaf := ca.IssueClient(t, "pem-client")
	certPath, keyPath := leaf.WritePEM(t, dir)
	p12Path := leaf.WritePKCS12(t, dir, "pw", nil)

	tests := []struct {
		name   string
		params config.Params
		env    config.MapEnv
	}{
		{
			name:   "parameters",
			params: config.Params{CertFile: certPath, KeyFile: keyPath},
		},
		{
			name: "environment",
			env:  config.MapEnv{config.EnvCert: certPath, config.EnvKey: keyPath},
		},
		{
			name:   "bundle without passphrase",
			params: config.Params{P12File: p12Path, CertFile: certPath, KeyFile: keyPath},
		},
		{
			name:   "passphrase without bundle",
			params: config.Params{CertFile: certPath, KeyFile: keyPath},
			env:    config.MapEnv{config.EnvP12Password: "pw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ResolveCredentials(tt.params, tt.env)
			require.NoError(t, err)
			assert.Equal(t, SourcePEM, creds.Source)
			assert.Equal(t, certPath, creds.Path)
			assert.Equal(t, "pem-client", creds.Certificate.Leaf.Subject.CommonName)
		})
	}
}

func TestResolveCredentialsParameterBeatsEnvironment(t *testing.T) {
	dir := t.TempDir()
	ca := testpki.NewCA(t, "test-ca")

	paramDir := filepath.Join(dir, "param")
	envDir := filepath.Join(dir, "env")
	require.NoError(t, os.MkdirAll(paramDir, 0700))
	require.NoError(t, os.MkdirAll(envDir, 0700))

	paramCert, paramKey := ca.IssueClient(t, "from-param").WritePEM(t, paramDir)
	envCert, envKey := ca.IssueClient(t, "from-env").WritePEM(t, envDir)

	creds, err := ResolveCredentials(
		config.Params{CertFile: paramCert, KeyFile: paramKey},
		config.MapEnv{config.EnvCert: envCert, config.EnvKey: envKey},
	)
	require.NoError(t, err)
	assert.Equal(t, "from-param", creds.Certificate.Leaf.Subject.CommonName)
}

func TestResolveCredentialsErrors(t *testing.T) {
	dir := t.TempDir()
	ca := testpki.NewCA(t, "test-ca")
	leaf := ca.IssueClient(t, "client")
	certPath, keyPath := leaf.WritePEM(t, dir)
	p12Path := leaf.WritePKCS12(t, dir, "right", nil)

	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a certificate"), 0600))

	tests := []struct {
		name   string
		params config.Params
		env    config.MapEnv
	}{
		{name: "nothing configured"},
		{name: "cert without key", params: config.Params{CertFile: certPath}},
		{name: "key without cert", env: config.MapEnv{config.EnvKey: keyPath}},
		{
			name:   "wrong passphrase does not fall through",
			params: config.Params{P12File: p12Path, CertFile: certPath, KeyFile: keyPath},
			env:    config.MapEnv{config.EnvP12Password: "wrong"},
		},
		{
			name:   "missing bundle file",
			params: config.Params{P12File: filepath.Join(dir, "missing.p12")},
			env:    config.MapEnv{config.EnvP12Password: "right"},
		},
		{
			name:   "malformed PEM",
			params: config.Params{CertFile: garbage, KeyFile: keyPath},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ResolveCredentials(tt.params, tt.env)
			require.Error(t, err)
			assert.Nil(t, creds)
			assert.ErrorIs(t, err, types.ErrConfiguration)
		})
	}
}

func TestResolveCredentialsMessage(t *testing.T) {
	_, err := ResolveCredentials(config.Params{}, config.MapEnv{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to resolve client credentials")
}

func TestLoadCAPool(t *testing.T) {
	dir := t.TempDir()
	ca := testpki.NewCA(t, "test-ca")
	caPath := ca.WriteCA(t, dir)

	pool, err := LoadCAPool(caPath)
	require.NoError(t, err)
	require.NotNil(t, pool)

	leaf := ca.IssueServer(t)
	_, err = leaf.Cert.Verify(x509VerifyOptions(pool))
	assert.NoError(t, err)

	pool, err = LoadCAPool("")
	assert.NoError(t, err)
	assert.Nil(t, pool)

	empty := filepath.Join(dir, "empty.pem")
	require.NoError(t, os.WriteFile(empty, []byte("nothing here"), 0600))
	_, err = LoadCAPool(empty)
	assert.ErrorIs(t, err, types.ErrConfiguration)
}
