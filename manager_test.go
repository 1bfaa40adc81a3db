package cloudtree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, hasPermission HasPermissionFunc) *CommandManager[string] {
	t.Helper()
	return NewCommandManager[string](hasPermission, func(sender string) string { return sender })
}

func mustBuild(t *testing.T, b *CommandBuilder[string]) *Command[string] {
	t.Helper()
	cmd, err := b.Build()
	require.NoError(t, err)
	return cmd
}

func TestManagerParseLiteralAndRequiredArgument(t *testing.T) {
	m := newTestManager(t, nil)

	var givenPlayer string
	var givenAmount int
	cmd := mustBuild(t, NewCommandBuilder[string]("give").
		AddComponent(Required[string, string]("player", StringParser[string](StringSingle))).
		AddComponent(Required[string, int]("amount", IntegerParser[string]())).
		Handler(func(cmdCtx *CommandContext[string]) error {
			givenPlayer = ContextMustGet[string](cmdCtx, "player")
			givenAmount = ContextMustGet[int](cmdCtx, "amount")
			return nil
		}))
	require.NoError(t, m.Register(cmd))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	matched, err := m.Parse(cmdCtx, "give steve 3")
	require.NoError(t, err)
	assert.Same(t, cmd, matched)

	require.NoError(t, matched.Handler(cmdCtx))
	assert.Equal(t, "steve", givenPlayer)
	assert.Equal(t, 3, givenAmount)
}

func TestManagerParseNoSuchCommand(t *testing.T) {
	m := newTestManager(t, nil)
	require.NoError(t, m.Register(mustBuild(t, NewCommandBuilder[string]("give"))))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	_, err := m.Parse(cmdCtx, "take")
	var noSuch *NoSuchCommandError
	assert.ErrorAs(t, err, &noSuch)
	assert.Equal(t, "take", noSuch.SuppliedCommand)
}

func TestManagerParseInvalidSyntaxWhenArgumentMissing(t *testing.T) {
	m := newTestManager(t, nil)
	cmd := mustBuild(t, NewCommandBuilder[string]("give").
		AddComponent(Required[string, string]("player", StringParser[string](StringSingle))))
	require.NoError(t, m.Register(cmd))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	_, err := m.Parse(cmdCtx, "give")
	var invalidSyntax *InvalidSyntaxError
	assert.ErrorAs(t, err, &invalidSyntax)
}

func TestManagerOptionalDefaultValue(t *testing.T) {
	m := newTestManager(t, nil)
	amountComp := WithDefaultValue[string, int](
		Optional[string, int]("amount", IntegerParser[string]()),
		ConstantDefault[string, int](1),
	)
	var captured int
	cmd := mustBuild(t, NewCommandBuilder[string]("give").
		AddComponent(Required[string, string]("player", StringParser[string](StringSingle))).
		AddComponent(amountComp).
		Handler(func(cmdCtx *CommandContext[string]) error {
			captured = ContextMustGet[int](cmdCtx, "amount")
			return nil
		}))
	require.NoError(t, m.Register(cmd))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	matched, err := m.Parse(cmdCtx, "give steve")
	require.NoError(t, err)
	require.NoError(t, matched.Handler(cmdCtx))
	assert.Equal(t, 1, captured)
}

func TestManagerParseInvalidSyntaxWhenTrailingInputRemains(t *testing.T) {
	m := newTestManager(t, nil)
	require.NoError(t, m.Register(mustBuild(t, NewCommandBuilder[string]("test"))))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	_, err := m.Parse(cmdCtx, "test this thing")
	var invalidSyntax *InvalidSyntaxError
	assert.ErrorAs(t, err, &invalidSyntax)
}

func TestManagerComponentPreprocessorRunsAfterSuccessfulParse(t *testing.T) {
	m := newTestManager(t, nil)
	var ran bool
	player := Required[string, string]("player", StringParser[string](StringSingle)).
		WithPreprocessor(func(cmdCtx *CommandContext[string], input *CommandInput) error {
			ran = true
			v, ok := ContextGet[string](cmdCtx, "player")
			require.True(t, ok)
			assert.Equal(t, "steve", v)
			return nil
		})
	cmd := mustBuild(t, NewCommandBuilder[string]("give").AddComponent(player))
	require.NoError(t, m.Register(cmd))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	_, err := m.Parse(cmdCtx, "give steve")
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestManagerComponentPreprocessorErrorAbortsParse(t *testing.T) {
	m := newTestManager(t, nil)
	boom := errors.New("boom")
	player := Required[string, string]("player", StringParser[string](StringSingle)).
		WithPreprocessor(func(cmdCtx *CommandContext[string], input *CommandInput) error {
			return boom
		})
	cmd := mustBuild(t, NewCommandBuilder[string]("give").AddComponent(player))
	require.NoError(t, m.Register(cmd))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	_, err := m.Parse(cmdCtx, "give steve")
	assert.ErrorIs(t, err, boom)
}

func TestManagerPermissionDenied(t *testing.T) {
	hasPermission := func(sender any, name string) bool { return false }
	m := newTestManager(t, hasPermission)
	cmd := mustBuild(t, NewCommandBuilder[string]("admin").Permission(NamedPermission("admin.use")))
	require.NoError(t, m.Register(cmd))

	cmdCtx := NewCommandContext[string](context.Background(), "player1")
	_, err := m.Parse(cmdCtx, "admin")
	var noPerm *NoPermissionError
	assert.ErrorAs(t, err, &noPerm)
}

func TestManagerSenderTypeMismatch(t *testing.T) {
	m := newTestManager(t, nil)
	cmd := mustBuild(t, NewCommandBuilder[string]("admin").SenderType("operator"))
	require.NoError(t, m.Register(cmd))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	_, err := m.Parse(cmdCtx, "admin")
	var invalidSender *InvalidCommandSenderError
	assert.ErrorAs(t, err, &invalidSender)
}

func TestManagerFlagParsing(t *testing.T) {
	m := newTestManager(t, nil)
	cmd := mustBuild(t, NewCommandBuilder[string]("build").
		AddFlag(Flag[string, int]("height", 'h', IntegerParser[string]())).
		AddFlag(PresenceFlag[string]("force", 'f')))
	require.NoError(t, m.Register(cmd))

	cmdCtx := NewCommandContext[string](context.Background(), "console")
	matched, err := m.Parse(cmdCtx, "build --height 12 -f")
	require.NoError(t, err)
	assert.Same(t, cmd, matched)

	height, ok := cmdCtx.Flags().GetValue("height")
	require.True(t, ok)
	assert.Equal(t, 12, height)
	assert.True(t, cmdCtx.Flags().WasPresent("force"))
}

func TestManagerDuplicateRegistrationRejected(t *testing.T) {
	m := newTestManager(t, nil)
	require.NoError(t, m.Register(mustBuild(t, NewCommandBuilder[string]("give"))))
	err := m.Register(mustBuild(t, NewCommandBuilder[string]("give")))
	assert.Error(t, err)
}

func TestManagerOverrideExistingCommands(t *testing.T) {
	m := newTestManager(t, nil)
	m.Settings.OverrideExistingCommands = true
	require.NoError(t, m.Register(mustBuild(t, NewCommandBuilder[string]("give"))))
	assert.NoError(t, m.Register(mustBuild(t, NewCommandBuilder[string]("give"))))
}

func TestManagerUnregisterPrunesPath(t *testing.T) {
	m := newTestManager(t, nil)
	cmd := mustBuild(t, NewCommandBuilder[string]("give"))
	require.NoError(t, m.Register(cmd))
	require.Len(t, m.root.children, 1)

	m.Unregister(cmd)
	assert.Empty(t, m.root.children)
}
