package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripguide/tripd/internal/chat"
)

type scriptedReader struct {
	lines []string
	end   error
}

func (s *scriptedReader) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", s.end
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type echoProvider struct {
	prompts []string
	failOn  string
}

func (p *echoProvider) Name() string { return "echo" }

func (p *echoProvider) Complete(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.failOn != "" && strings.Contains(prompt, "User: "+p.failOn+"\nAssistant:") {
		return "", errors.New("upstream down")
	}
	return "noted", nil
}

func TestConverseKeepsHistory(t *testing.T) {
	p := &echoProvider{}
	svc := chat.NewService(p, chat.Options{DefaultRole: "R"})
	in := &scriptedReader{lines: []string{"first", "  ", "second"}, end: io.EOF}
	var out bytes.Buffer

	require.NoError(t, converse(context.Background(), svc, in, &out))

	require.Len(t, p.prompts, 2)
	assert.Equal(t, "R\nUser: first\nAssistant: noted\nUser: second\nAssistant:", p.prompts[1])
	assert.Equal(t, "guide> noted\nguide> noted\n", out.String())
}

func TestConverseReset(t *testing.T) {
	p := &echoProvider{}
	svc := chat.NewService(p, chat.Options{DefaultRole: "R"})
	in := &scriptedReader{lines: []string{"first", cmdReset, "second"}, end: io.EOF}
	var out bytes.Buffer

	require.NoError(t, converse(context.Background(), svc, in, &out))

	require.Len(t, p.prompts, 2)
	assert.Equal(t, "R\nUser: second\nAssistant:", p.prompts[1])
	assert.Contains(t, out.String(), "Conversation cleared.")
}

func TestConverseFailedTurnKeepsHistory(t *testing.T) {
	p := &echoProvider{failOn: "broken"}
	svc := chat.NewService(p, chat.Options{DefaultRole: "R"})
	in := &scriptedReader{lines: []string{"one", "broken", "two"}, end: io.EOF}
	var out bytes.Buffer

	require.NoError(t, converse(context.Background(), svc, in, &out))

	require.Len(t, p.prompts, 3)
	assert.Equal(t, "R\nUser: one\nAssistant: noted\nUser: two\nAssistant:", p.prompts[2])
	assert.Contains(t, out.String(), "guide> "+chat.FallbackUnavailable)
}

func TestConverseQuit(t *testing.T) {
	p := &echoProvider{}
	svc := chat.NewService(p, chat.Options{})
	in := &scriptedReader{lines: []string{cmdQuit, "never"}, end: io.EOF}

	require.NoError(t, converse(context.Background(), svc, in, io.Discard))
	assert.Empty(t, p.prompts)
}

func TestConverseInterrupt(t *testing.T) {
	svc := chat.NewService(&echoProvider{}, chat.Options{})
	in := &scriptedReader{end: readline.ErrInterrupt}

	assert.NoError(t, converse(context.Background(), svc, in, io.Discard))
}

func TestConverseReadError(t *testing.T) {
	svc := chat.NewService(&echoProvider{}, chat.Options{})
	boom := errors.New("tty gone")
	in := &scriptedReader{end: boom}

	assert.ErrorIs(t, converse(context.Background(), svc, in, io.Discard), boom)
}

func TestConverseCancelled(t *testing.T) {
	p := &echoProvider{}
	svc := chat.NewService(p, chat.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, converse(ctx, svc, &scriptedReader{lines: []string{"hi"}}, io.Discard))
	assert.Empty(t, p.prompts)
}
