package cloudtree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFlagCommand(t *testing.T) *Command[string] {
	t.Helper()
	return mustBuild(t, NewCommandBuilder[string]("build").
		AddFlag(Flag[string, int]("height", 'h', IntegerParser[string]())).
		AddFlag(PresenceFlag[string]("force", 'f')).
		AddFlag(PresenceFlag[string]("quiet", 'q')))
}

func TestParseFlagTokenPermutations(t *testing.T) {
	cases := map[string]struct {
		line       string
		height     int
		hasHeight  bool
		forceSet   bool
		quietSet   bool
	}{
		"LongWithSpace":        {line: "--height 5", height: 5, hasHeight: true},
		"LongWithEquals":       {line: "--height=5", height: 5, hasHeight: true},
		"ShortWithSpace":       {line: "-h 5", height: 5, hasHeight: true},
		"ShortAttached":        {line: "-h5", height: 5, hasHeight: true},
		"CombinedPresenceOnly": {line: "-fq", forceSet: true, quietSet: true},
		"SinglePresence":       {line: "--force", forceSet: true},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := buildFlagCommand(t)
			cmdCtx := NewCommandContext[string](context.Background(), "console")
			input := NewCommandInput(c.line)
			require.NoError(t, parseFlagToken(cmd, cmdCtx, input, true))
			for !input.IsEmpty(true) {
				require.NoError(t, parseFlagToken(cmd, cmdCtx, input, true))
			}

			if c.hasHeight {
				v, ok := cmdCtx.Flags().GetValue("height")
				require.True(t, ok)
				assert.Equal(t, c.height, v)
			}
			assert.Equal(t, c.forceSet, cmdCtx.Flags().WasPresent("force"))
			assert.Equal(t, c.quietSet, cmdCtx.Flags().WasPresent("quiet"))
		})
	}
}

func TestParseFlagTokenCombinedWithValueCarrier(t *testing.T) {
	cmd := buildFlagCommand(t)
	cmdCtx := NewCommandContext[string](context.Background(), "console")

	// "-fh5": 'f' is presence-only, 'h' carries a value; since not every
	// character is presence-only, the whole run is treated as "-f" followed
	// by "h5" attached to the first value-carrying flag encountered.
	input := NewCommandInput("-fh5")
	require.NoError(t, parseFlagToken(cmd, cmdCtx, input, true))

	assert.True(t, cmdCtx.Flags().WasPresent("force"))
	height, ok := cmdCtx.Flags().GetValue("height")
	require.True(t, ok)
	assert.Equal(t, 5, height)
}

func TestParseFlagTokenUnknownFlag(t *testing.T) {
	cmd := buildFlagCommand(t)
	cmdCtx := NewCommandContext[string](context.Background(), "console")
	input := NewCommandInput("--bogus")
	err := parseFlagToken(cmd, cmdCtx, input, true)
	assert.Error(t, err)
	var argErr *ArgumentParseError
	assert.ErrorAs(t, err, &argErr)
}

func TestParseFlagTokenNegatedBoolean(t *testing.T) {
	cmd := buildFlagCommand(t)
	cmdCtx := NewCommandContext[string](context.Background(), "console")
	input := NewCommandInput("--no-force")

	require.NoError(t, parseFlagToken(cmd, cmdCtx, input, true))
	assert.True(t, cmdCtx.Flags().WasPresent("force"))
	v, ok := cmdCtx.Flags().GetValue("force")
	require.True(t, ok)
	assert.Equal(t, false, v)
}

func TestParseFlagTokenStrictRejectsCombinedPresenceFlags(t *testing.T) {
	cmd := buildFlagCommand(t)
	cmdCtx := NewCommandContext[string](context.Background(), "console")
	input := NewCommandInput("-fq")

	err := parseFlagToken(cmd, cmdCtx, input, false)
	require.Error(t, err)
	assert.True(t, cmdCtx.Flags().WasPresent("force"), "the first character is still consumed as a standalone flag")
	assert.False(t, cmdCtx.Flags().WasPresent("quiet"))
}

func TestAllPresenceOnly(t *testing.T) {
	cmd := buildFlagCommand(t)
	assert.True(t, allPresenceOnly(cmd, "fq"))
	assert.False(t, allPresenceOnly(cmd, "fh"))
	assert.False(t, allPresenceOnly(cmd, ""))
}
