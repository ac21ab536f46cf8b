package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cuemby/vesinspect/pkg/config"
	"github.com/cuemby/vesinspect/pkg/log"
	"github.com/cuemby/vesinspect/pkg/metrics"
	"github.com/cuemby/vesinspect/pkg/security"
	"github.com/cuemby/vesinspect/pkg/types"
	"github.com/google/uuid"
)

const (
	// ConnectTimeout bounds TCP connect and TLS handshake
	ConnectTimeout = 5 * time.Second

	// DefaultReadTimeout applies when Config.ReadTimeout is zero
	DefaultReadTimeout = DefaultTimeoutSeconds * time.Second

	// UserAgent is sent with every request
	UserAgent = "vesinspect/1.0"

	// maxErrorBody limits how much of an error response is kept
	maxErrorBody = 512
)

// Config configures a Client
type Config struct {
	BaseURL     string
	Credentials *security.Credentials
	RootCAs     *x509.CertPool // nil uses the system roots
	ReadTimeout time.Duration
}

// Client performs authenticated reads against the VES API. It is safe to
// reuse across lookups; the underlying transport pools connections.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	readTimeout time.Duration
}

// StatusError reports an unexpected HTTP status. It unwraps to
// types.ErrTransport.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d %s from %s", types.ErrTransport, e.Code, http.StatusText(e.Code), e.URL)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return types.ErrTransport
}

// NewFromParams resolves credentials, CA bundle, base URL and read timeout
// from params and env, then builds a Client
func NewFromParams(params config.Params, env config.Env) (*Client, error) {
	creds, err := security.ResolveCredentials(params, env)
	if err != nil {
		return nil, err
	}

	pool, err := security.LoadCAPool(config.Resolve(params.CAFile, env, config.EnvCA))
	if err != nil {
		return nil, err
	}

	readTimeout := time.Duration(ParseTimeout(params.TimeoutValue(env))) * time.Second
	if readTimeout <= 0 {
		// Sub-second settings truncate to zero; never disable the timeout
		readTimeout = time.Second
	}

	return New(Config{
		BaseURL:     params.BaseURL(env),
		Credentials: creds,
		RootCAs:     pool,
		ReadTimeout: readTimeout,
	})
}

// New creates a Client using mutual TLS
func New(cfg Config) (*Client, error) {
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("%w: client credentials are required", types.ErrConfiguration)
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = config.DefaultURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid API URL %q", types.ErrConfiguration, cfg.BaseURL)
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cfg.Credentials.Certificate},
		RootCAs:      cfg.RootCAs,
		MinVersion:   tls.VersionTLS12,
	}

	dialer := &net.Dialer{
		Timeout:   ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   ConnectTimeout,
		ResponseHeaderTimeout: readTimeout,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   ConnectTimeout + readTimeout,
		},
		readTimeout: readTimeout,
	}, nil
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ReadTimeout returns the effective read timeout
func (c *Client) ReadTimeout() time.Duration {
	return c.readTimeout
}

// Close releases idle connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Fetch performs a GET of path (relative to the base URL) and returns the
// decoded value of the top-level "object" key. A 404 yields (nil, nil):
// the object does not exist, which is not an error.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	requestID := uuid.NewString()
	logger := log.WithComponent("client").With().
		Str("request_id", requestID).
		Str("url", target).
		Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", types.ErrTransport, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	timer := metrics.NewTimer()
	resp, err := c.httpClient.Do(req)
	timer.ObserveDuration(metrics.APIRequestDuration)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(metrics.StatusLabel(0)).Inc()
		logger.Error().Err(err).Dur("duration", timer.Duration()).Msg("Request failed")
		return nil, fmt.Errorf("%w: GET %s: %w", types.ErrTransport, target, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(metrics.StatusLabel(resp.StatusCode)).Inc()
	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", timer.Duration()).
		Msg("Request completed")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Code: resp.StatusCode,
			URL:  target,
			Body: strings.TrimSpace(string(body)),
		}
	}

	return decodeObject(resp.Body)
}

// decodeObject decodes {"object": {...}} keeping JSON numbers exact
func decodeObject(r io.Reader) (map[string]any, error) {
	var envelope map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&envelope); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return nil, fmt.Errorf("%w: failed to read response body: %w", types.ErrTransport, err)
		}
		return nil, fmt.Errorf("%w: failed to decode response body: %v", types.ErrParse, err)
	}

	raw, ok := envelope["object"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: response has no \"object\" key", types.ErrParse)
	}
	object, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: response \"object\" is %T, not an object", types.ErrParse, raw)
	}
	return object, nil
}
