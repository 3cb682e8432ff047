package internal

import (
	"strconv"
	"sync/atomic"
)

// Output modes. Seeded from linker flags and overridden by CLI flags.
var (
	quiet   atomic.Bool // Warnings and errors only.
	debug   atomic.Bool // Debug level. Wins over quiet.
	verbose atomic.Bool // Caller and timestamp on the console.
)

func init() {
	seed(&quiet, rawQuiet)
	seed(&debug, rawDebug)
	seed(&verbose, rawVerbose)
}

// Stores the boolean parsed from raw, leaving the flag untouched when raw is
// not a valid boolean.
func seed(flag *atomic.Bool, raw string) {
	if v, err := strconv.ParseBool(raw); err == nil {
		flag.Store(v)
	}
}

// Enables or disables quiet mode.
func SetQuiet(enabled bool) { quiet.Store(enabled) }

// Enables or disables debug mode.
func SetDebug(enabled bool) { debug.Store(enabled) }

// Enables or disables verbose logging.
func SetVerbose(enabled bool) { verbose.Store(enabled) }

// Reports whether only warnings and errors should be logged.
func IsQuiet() bool { return quiet.Load() }

// Reports whether debug logging is enabled. Debug takes precedence over quiet.
func IsDebug() bool { return debug.Load() }

// Reports whether log lines carry caller and timestamp on the console.
func IsVerbose() bool { return verbose.Load() }
