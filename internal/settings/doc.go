// Package settings loads tripd runtime configuration.
//
// Values come from, in increasing order of precedence: built-in defaults, a
// dotenv file, the process environment, and explicit overrides supplied by
// the command line. Environment keys are unprefixed (LOG_FILE, GEMINI_KEY,
// YI_KEY, ...) so that the container image and existing .env files keep
// working unchanged.
package settings
