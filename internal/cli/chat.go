package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/tripguide/tripd/internal"
	"github.com/tripguide/tripd/internal/chat"
	"github.com/tripguide/tripd/internal/paths"
	"github.com/tripguide/tripd/internal/settings"
)

// REPL commands.
const (
	cmdQuit  = "/quit"
	cmdExit  = "/exit"
	cmdReset = "/reset"
)

// Represents the 'tripd chat' command.
type ChatCmd struct {
	Provider string `short:"p" help:"Chat provider, yi or gemini. Overrides CHAT_PROVIDER."`
}

// Source of input lines. Satisfied by [readline.Instance].
type lineReader interface {
	Readline() (string, error)
}

// Executes the chat command.
//
// Console logging is silenced unless debug mode is on; the log file still
// receives every record.
func (c *ChatCmd) Run(ctx context.Context) error {
	a, err := bootstrap(map[string]string{settings.KeyProvider: c.Provider})
	if err != nil {
		return err
	}
	defer a.Close()

	if h, ok := defaultHandler(); ok && !internal.IsDebug() {
		h.SetStream(io.Discard)
	}

	historyFile := paths.ChatHistory()
	if err := paths.EnsureParent(historyFile); err != nil {
		slog.Warn("chat history disabled", "error", err)
		historyFile = ""
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       cmdQuit,
	})
	if err != nil {
		return fmt.Errorf("starting line editor: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "Talking to %s. %s clears the conversation, %s leaves.\n",
		a.service.Provider(), cmdReset, cmdQuit)

	return converse(ctx, a.service, rl, rl.Stdout())
}

// Reads lines from in and answers each through svc until in is exhausted,
// interrupted, or a quit command arrives.
//
// History carries over between turns. A failed turn prints the fallback
// reply and leaves the history as it was.
func converse(ctx context.Context, svc *chat.Service, in lineReader, out io.Writer) error {
	var history []string

	for ctx.Err() == nil {
		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case cmdQuit, cmdExit:
			return nil
		case cmdReset:
			history = nil
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		}

		reply, err := svc.Chat(ctx, chat.Request{Message: line, History: history})
		fmt.Fprintf(out, "guide> %s\n", reply.Text)
		if err != nil {
			continue
		}
		history = reply.History
	}

	return nil
}
