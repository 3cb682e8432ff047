// Package logging provides the slog handler used by tripd.
//
// A [Handler] fans every record out to a console sink and, once a log file
// is opened, a file sink. Both sinks are charmbracelet/log loggers: the
// console sink renders for humans, the file sink writes plain text lines
// with millisecond timestamps. Level and verbosity live in state shared by
// every handler derived through WithAttrs or WithGroup, so the logger can be
// installed as the slog default before flags are parsed and reconfigured
// afterwards.
//
// Example usage:
//
//	h := logging.NewHandler()
//	slog.SetDefault(slog.New(h.WithGroup("tripd")))
//
//	h.SetLevel(slog.LevelDebug)
//	if err := h.OpenFile("/app/logs/app.log"); err != nil {
//	    return err
//	}
//	defer h.Close()
package logging
