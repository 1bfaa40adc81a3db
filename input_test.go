package cloudtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandInputReadString(t *testing.T) {
	in := NewCommandInput("  give steve 3  ")
	assert.Equal(t, "give", in.ReadString())
	assert.Equal(t, "steve", in.ReadString())
	assert.Equal(t, "3", in.ReadString())
	assert.True(t, in.IsEmpty(true))
}

func TestCommandInputPeekDoesNotAdvance(t *testing.T) {
	in := NewCommandInput("give steve")
	assert.Equal(t, "give", in.PeekString())
	assert.Equal(t, "give", in.PeekString())
	assert.Equal(t, "give", in.ReadString())
}

func TestCommandInputCopyIsIndependent(t *testing.T) {
	in := NewCommandInput("give steve")
	cp := in.Copy()
	cp.ReadString()

	assert.Equal(t, "give", in.PeekString(), "advancing a copy must not affect the original")
}

func TestCommandInputReadQuotedString(t *testing.T) {
	in := NewCommandInput(`"hello world" remainder`)
	s, err := in.ReadQuotedString()
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)
	assert.Equal(t, "remainder", in.ReadString())
}

func TestCommandInputReadRemaining(t *testing.T) {
	in := NewCommandInput("give steve   a bunch of items")
	in.ReadString()
	in.ReadString()
	assert.Equal(t, "a bunch of items", in.ReadRemaining())
}

func TestLastToken(t *testing.T) {
	assert.Equal(t, "bar", LastToken("foo bar"))
	assert.Equal(t, "solo", LastToken("solo"))
}
