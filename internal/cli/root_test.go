package cli

import (
	"log/slog"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripguide/tripd/internal"
	"golang.org/x/crypto/bcrypt"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var c CLI
	parser, err := kong.New(&c, kong.Name(internal.Name), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &c, ctx
}

func TestParseStart(t *testing.T) {
	c, ctx := parse(t, "-d", "--log-file", "/app/logs/app.log", "start", "--addr", ":9090", "-p", "gemini")

	assert.Equal(t, "start", ctx.Command())
	assert.True(t, c.Debug)
	assert.Equal(t, ".env", c.EnvFile)
	assert.Equal(t, "/app/logs/app.log", c.LogFile)
	assert.Equal(t, ":9090", c.Start.Addr)
	assert.Equal(t, "gemini", c.Start.Provider)
}

func TestParseHashToken(t *testing.T) {
	c, ctx := parse(t, "hash-token", "s3cret", "--cost", "4")

	assert.Equal(t, "hash-token <token>", ctx.Command())
	assert.Equal(t, "s3cret", c.HashToken.Token)
	assert.Equal(t, 4, c.HashToken.Cost)
}

func TestParseChat(t *testing.T) {
	c, ctx := parse(t, "--env-file", "prod.env", "chat")

	assert.Equal(t, "chat", ctx.Command())
	assert.Equal(t, "prod.env", c.EnvFile)
	assert.Empty(t, c.Chat.Provider)
}

func TestLogLevel(t *testing.T) {
	t.Cleanup(func() {
		internal.SetDebug(false)
		internal.SetQuiet(false)
	})

	internal.SetDebug(false)
	internal.SetQuiet(false)
	assert.Equal(t, slog.LevelInfo, LogLevel())

	internal.SetQuiet(true)
	assert.Equal(t, slog.LevelWarn, LogLevel())

	internal.SetDebug(true)
	assert.Equal(t, slog.LevelDebug, LogLevel())
}

func TestHashToken(t *testing.T) {
	hash, err := hashToken("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	_, err = hashToken("", bcrypt.MinCost)
	assert.Error(t, err)

	_, err = hashToken("x", bcrypt.MaxCost+1)
	assert.Error(t, err)
}
