package config

import (
	"os"
	"strings"
)

// Environment variables consulted when a parameter is not set
const (
	EnvP12File     = "VOLT_API_P12_FILE"
	EnvP12Password = "VES_P12_PASSWORD"
	EnvCert        = "VOLT_API_CERT"
	EnvKey         = "VOLT_API_KEY"
	EnvCA          = "VOLT_API_CA"
	EnvURL         = "VOLT_API_URL"
	EnvTimeout     = "VOLT_API_TIMEOUT"
)

const (
	// DefaultURL is the API endpoint of the default tenant console
	DefaultURL = "https://console.ves.volterra.io/api"

	// DefaultNamespace is used when no namespace is given
	DefaultNamespace = "system"
)

// Params is the explicit parameter bag. Empty fields fall back to the
// environment and then to defaults. The PKCS#12 passphrase is not a
// parameter; it is only read from VES_P12_PASSWORD.
type Params struct {
	Name      string `yaml:"name" mapstructure:"name"`
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
	P12File   string `yaml:"api_p12_file" mapstructure:"api_p12_file"`
	CertFile  string `yaml:"api_cert" mapstructure:"api_cert"`
	KeyFile   string `yaml:"api_key" mapstructure:"api_key"`
	CAFile    string `yaml:"api_ca" mapstructure:"api_ca"`
	URL       string `yaml:"url" mapstructure:"url"`
	Timeout   string `yaml:"timeout" mapstructure:"timeout"`
}

// Env looks up environment variables
type Env interface {
	Lookup(key string) (string, bool)
}

// EnvFunc adapts a function to Env
type EnvFunc func(key string) (string, bool)

// Lookup implements Env
func (f EnvFunc) Lookup(key string) (string, bool) {
	return f(key)
}

// OSEnv reads the process environment
var OSEnv Env = EnvFunc(os.LookupEnv)

// MapEnv is a fixed environment, mostly useful in tests
type MapEnv map[string]string

// Lookup implements Env
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Lookup returns the trimmed value of key, or "" when unset or nil env
func Lookup(env Env, key string) string {
	if env == nil {
		return ""
	}
	v, _ := env.Lookup(key)
	return strings.TrimSpace(v)
}

// Resolve returns param when set, else the environment value of key
func Resolve(param string, env Env, key string) string {
	if p := strings.TrimSpace(param); p != "" {
		return p
	}
	return Lookup(env, key)
}

// BaseURL returns the API base URL without a trailing slash
func (p Params) BaseURL(env Env) string {
	u := Resolve(p.URL, env, EnvURL)
	if u == "" {
		u = DefaultURL
	}
	return strings.TrimRight(u, "/")
}

// TimeoutValue returns the raw timeout setting, unparsed
func (p Params) TimeoutValue(env Env) string {
	return Resolve(p.Timeout, env, EnvTimeout)
}

// NamespaceOrDefault returns the namespace, defaulting to "system"
func (p Params) NamespaceOrDefault() string {
	if ns := strings.TrimSpace(p.Namespace); ns != "" {
		return ns
	}
	return DefaultNamespace
}
