/*
Package log provides structured logging for vesinspect using zerolog.

The package keeps a single global zerolog.Logger that every other package
derives child loggers from. Until Init is called the logger discards all
output, so importing vesinspect as a library stays silent.

# Architecture

	┌──────────────────── LOGGING ─────────────────────────────┐
	│                                                            │
	│  log.Init(Config)          global Logger (zerolog)         │
	│        │                                                   │
	│        ├── WithComponent("client")   request outcomes      │
	│        ├── WithComponent("mapper")   unknown-field warnings│
	│        └── WithResource("site", ns, name)                  │
	│                                                            │
	│  Output: JSON (machines) or ConsoleWriter (humans)         │
	└────────────────────────────────────────────────────────────┘

# Levels

  - Debug: every HTTP request with status, duration and request ID
  - Info: resolved credential source, resource lookups
  - Warn: diagnostics raised while mapping (unknown fields); the default
  - Error: failed fetches and mappings

# Usage

	log.Init(log.Config{
		Level:      log.DebugLevel,
		JSONOutput: true,
		Output:     os.Stderr,
	})

	logger := log.WithComponent("client")
	logger.Debug().Str("request_id", id).Int("status", 200).Msg("request completed")

The CLI wires --log-level and --log-json to Init. Logs go to stderr so the
rendered resource on stdout stays machine readable.
*/
package log
