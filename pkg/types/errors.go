package types

import "errors"

// Error kinds. Callers match them with errors.Is; concrete errors wrap one
// of these with context.
var (
	// ErrConfiguration covers unusable credentials and raw objects missing
	// fields the API guarantees.
	ErrConfiguration = errors.New("configuration error")

	// ErrTransport covers connection, TLS and timeout failures as well as
	// unexpected HTTP statuses.
	ErrTransport = errors.New("transport error")

	// ErrParse covers malformed IP literals, timestamps and response bodies.
	ErrParse = errors.New("parse error")
)
