package chat

import (
	"log/slog"
	"strings"
)

// Speaker prefixes of history lines.
const (
	userPrefix      = "User: "
	assistantPrefix = "Assistant: "
)

// Builds the prompt sent to a provider and the history including the new
// user turn. history is not modified.
//
// The prompt is the role, a newline, the history lines joined by newlines,
// and a final "\nAssistant:" cue.
func GeneratePrompt(input, role string, history []string) (string, []string) {
	turns := make([]string, 0, len(history)+2)
	turns = append(turns, history...)
	turns = append(turns, userPrefix+input)

	var b strings.Builder
	b.WriteString(role)
	b.WriteByte('\n')
	b.WriteString(strings.Join(turns, "\n"))
	b.WriteString("\nAssistant:")

	prompt := b.String()
	slog.Info("generated prompt", "prompt", prompt)
	return prompt, turns
}
