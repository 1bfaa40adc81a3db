package cloudtree

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommandWritesRootUsage(t *testing.T) {
	m := newTestManager(t, nil)
	require.NoError(t, m.Register(mustBuild(t, NewCommandBuilder[string]("give").
		AddComponent(Required[string, string]("player", StringParser[string](StringSingle))))))

	var buf bytes.Buffer
	help := m.HelpCommand(&buf)
	require.NoError(t, m.Register(help))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	matched, err := m.Parse(cmdCtx, "help")
	require.NoError(t, err)
	require.NoError(t, matched.Handler(cmdCtx))

	assert.Contains(t, buf.String(), "Subcommands:")
	assert.Contains(t, buf.String(), "give")
}

func TestHelpCommandWritesSubcommandUsage(t *testing.T) {
	m := newTestManager(t, nil)
	require.NoError(t, m.Register(mustBuild(t, NewCommandBuilder[string]("give").
		AddComponent(Required[string, string]("player", StringParser[string](StringSingle))))))

	var buf bytes.Buffer
	help := m.HelpCommand(&buf)
	require.NoError(t, m.Register(help))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	matched, err := m.Parse(cmdCtx, "help give")
	require.NoError(t, err)
	require.NoError(t, matched.Handler(cmdCtx))

	assert.True(t, strings.Contains(buf.String(), "<player>"))
}

func TestHelpCommandUnknownSubcommand(t *testing.T) {
	m := newTestManager(t, nil)
	var buf bytes.Buffer
	help := m.HelpCommand(&buf)
	require.NoError(t, m.Register(help))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	matched, err := m.Parse(cmdCtx, "help bogus")
	require.NoError(t, err)
	assert.Error(t, matched.Handler(cmdCtx))
}
