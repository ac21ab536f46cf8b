package client

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTimeoutSeconds is used when the timeout setting is absent or
// cannot be parsed
const DefaultTimeoutSeconds = 20

var (
	integerPattern  = regexp.MustCompile(`^\d+$`)
	durationPattern = regexp.MustCompile(`^(?:\d+(?:ns|us|µs|μs|ms|s|m|h))+$`)
	tokenPattern    = regexp.MustCompile(`(\d+)(ns|us|µs|μs|ms|s|m|h)`)
)

// ParseTimeout converts a timeout setting into whole seconds.
//
// Integer-like values are taken as seconds. Otherwise the value must be a
// sequence of <digits><unit> tokens with units ns, us/µs, ms, s, m or h;
// a unit may repeat ("1h30m", "1s1s"). Each token is converted to whole
// seconds, truncating, and the results are summed. Anything else yields
// DefaultTimeoutSeconds; ParseTimeout never fails.
func ParseTimeout(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTimeoutSeconds
	}

	if integerPattern.MatchString(value) {
		n, err := strconv.Atoi(value)
		if err != nil || n > math.MaxInt32 {
			return DefaultTimeoutSeconds
		}
		return n
	}

	if !durationPattern.MatchString(value) {
		return DefaultTimeoutSeconds
	}

	total := 0
	for _, m := range tokenPattern.FindAllStringSubmatch(value, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return DefaultTimeoutSeconds
		}
		secs, ok := tokenSeconds(n, m[2])
		if !ok || total > math.MaxInt32-secs {
			return DefaultTimeoutSeconds
		}
		total += secs
	}
	return total
}

func tokenSeconds(n int, unit string) (int, bool) {
	switch unit {
	case "h":
		if n > math.MaxInt32/3600 {
			return 0, false
		}
		return n * 3600, true
	case "m":
		if n > math.MaxInt32/60 {
			return 0, false
		}
		return n * 60, true
	case "s":
		return n, n <= math.MaxInt32
	case "ms":
		return n / 1_000, true
	case "us", "µs", "μs":
		return n / 1_000_000, true
	case "ns":
		return n / 1_000_000_000, true
	default:
		return 0, false
	}
}
