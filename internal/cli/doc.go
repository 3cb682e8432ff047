// Parses flags, configures logging and runs the tripd subcommands.
//
// Global flags:
//
//	-q, --quiet       Suppress informational output.
//	-v, --verbose     Enable verbose output.
//	-d, --debug       Enable debug output.
//	    --env-file    Dotenv file read before the environment (default .env).
//	    --log-file    Log file path, overriding LOG_FILE.
//
// Subcommands:
//
//	start        Serve the chat API over HTTP until SIGINT or SIGTERM.
//	chat         Converse with the travel planner from the terminal.
//	hash-token   Print the bcrypt hash of an API token for AUTH_TOKEN_HASH.
//	version      Print version information.
//
// Flags override build-time defaults set via linker flags. After parsing,
// the global logger is reconfigured to reflect the final level and
// verbosity; commands that load settings then attach the log file.
package cli
