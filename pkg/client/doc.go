/*
Package client provides the HTTPS client for the VES configuration API.

The client authenticates with a client certificate (mutual TLS) and performs
single GET requests, returning the decoded "object" of the response. It is
read-only: there are no create, replace or delete operations.

# Architecture

	┌──────────────────── CALLER ────────────────────────────────┐
	│                                                              │
	│  c, err := client.NewFromParams(params, config.OSEnv)       │
	│  raw, err := c.Fetch(ctx, "/config/namespaces/...", nil)    │
	│                                                              │
	└──────────────────┬───────────────────────────────────────┘
	                   │
	┌──────────────────▼──── pkg/client ─────────────────────────┐
	│                                                              │
	│  NewFromParams                                               │
	│    - credentials via security.ResolveCredentials             │
	│    - optional CA bundle via security.LoadCAPool              │
	│    - base URL: param, VOLT_API_URL, DefaultURL               │
	│    - read timeout: ParseTimeout(param or VOLT_API_TIMEOUT)   │
	│                                                              │
	│  http.Client                                                 │
	│    - TLS 1.2 minimum, server verification on                 │
	│    - 5s connect + handshake timeout                          │
	│    - read timeout on response headers and whole request      │
	└─────────────────────┬────────────────────────────────────┘
	                      │ HTTPS GET
	                      ▼
	              VES configuration API

# Responses

  - 2xx: the body is decoded with json.Decoder.UseNumber and the value of
    the top-level "object" key is returned
  - 404: (nil, nil). A missing object is not an error
  - anything else: *StatusError, which matches types.ErrTransport

Connection, TLS and timeout failures also wrap types.ErrTransport. A body
that is not JSON, or has no "object", wraps types.ErrParse. There are no
retries.

# Timeouts

ParseTimeout accepts seconds ("30") or a duration made of unit tokens
("1h30m", "90s", "1500ms"). Each token is truncated to whole seconds before
summing, so "1500ms" is 1 second and "500ms" is 0. Anything it cannot read
yields DefaultTimeoutSeconds (20).

# Observability

Every request carries a random X-Request-Id header, logged at debug level
with the status and duration, and is counted in
vesinspect_api_requests_total and vesinspect_api_request_duration_seconds.
*/
package client
