package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/tripguide/tripd/internal"
	"github.com/tripguide/tripd/internal/logging"
)

// Command-line interface of tripd.
type CLI struct {
	Quiet     bool         `short:"q" help:"Suppress informational output."`
	Verbose   bool         `short:"v" help:"Enable verbose output."`
	Debug     bool         `short:"d" help:"Enable debug output."`
	EnvFile   string       `help:"Dotenv file read before the environment." default:".env" placeholder:"PATH"`
	LogFile   string       `help:"Log file path. Overrides LOG_FILE." placeholder:"PATH"`
	Start     StartCmd     `cmd:"" help:"Serve the chat API over HTTP."`
	Chat      ChatCmd      `cmd:"" help:"Chat with the travel planner from the terminal."`
	HashToken HashTokenCmd `cmd:"" name:"hash-token" help:"Print the bcrypt hash of an API token."`
	Version   VersionCmd   `cmd:"" help:"Show version information."`
}

// Parsed command line.
var RootCmd CLI

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Travel-planner chat service.\n\nForwards conversations to a hosted language model and serves the replies over HTTP."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Applies the parsed output flags to the global logger.
func configureLogger() {
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	handler, ok := defaultHandler()
	if !ok {
		return // Not ours, nothing to configure
	}

	handler.SetLevel(LogLevel())
	handler.SetVerbose(internal.IsVerbose())
	handler.SetStream(os.Stderr)
}

// Returns the level implied by the debug and quiet modes.
func LogLevel() slog.Level {
	switch {
	case internal.IsDebug():
		return slog.LevelDebug
	case internal.IsQuiet():
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Returns the handler behind the default logger, if it is ours.
func defaultHandler() (*logging.Handler, bool) {
	h, ok := slog.Default().Handler().(*logging.Handler)
	return h, ok
}
