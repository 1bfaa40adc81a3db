package cloudtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertChildLiteralMergesAliases(t *testing.T) {
	root := newCommandNode[string](nil, nil)

	child, err := root.insertChild(Literal[string]("give", "g"), false)
	require.NoError(t, err)

	same, err := root.insertChild(Literal[string]("give", "gv"), false)
	require.NoError(t, err)

	assert.Same(t, child, same, "a literal sharing an alias must reuse the existing node")
	assert.ElementsMatch(t, []string{"give", "g", "gv"}, child.component.Aliases)
	assert.Len(t, root.children, 1)
}

func TestInsertChildAmbiguity(t *testing.T) {
	cases := map[string]struct {
		existing *erasedComponent[string]
		next     *erasedComponent[string]
		wantErr  bool
	}{
		"TwoRequiredSameType": {
			existing: Required[string, int]("a", IntegerParser[string]()),
			next:     Required[string, int]("b", IntegerParser[string]()),
			wantErr:  true,
		},
		"RequiredAndOptionalDifferentType": {
			existing: Required[string, int]("a", IntegerParser[string]()),
			next:     Optional[string, string]("b", StringParser[string](StringSingle)),
			wantErr:  false,
		},
		"LiteralAliasCollidesWithArgumentName": {
			existing: Required[string, string]("target", StringParser[string](StringSingle)),
			next:     Literal[string]("target"),
			wantErr:  true,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			root := newCommandNode[string](nil, nil)
			_, err := root.insertChild(c.existing, false)
			require.NoError(t, err)

			_, err = root.insertChild(c.next, false)
			if c.wantErr {
				assert.Error(t, err)
				var ambiguous *AmbiguousNodeError
				assert.ErrorAs(t, err, &ambiguous)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInsertChildAllowUnsafeBypassesAmbiguity(t *testing.T) {
	root := newCommandNode[string](nil, nil)
	_, err := root.insertChild(Required[string, int]("a", IntegerParser[string]()), false)
	require.NoError(t, err)

	_, err = root.insertChild(Required[string, int]("b", IntegerParser[string]()), true)
	assert.NoError(t, err)
	assert.Len(t, root.children, 2)
}

func TestOrderedChildrenRanksLiteralsFirst(t *testing.T) {
	root := newCommandNode[string](nil, nil)
	_, _ = root.insertChild(Optional[string, string]("opt", StringParser[string](StringSingle)), false)
	_, _ = root.insertChild(Required[string, int]("req", IntegerParser[string]()), false)
	_, _ = root.insertChild(Literal[string]("lit"), false)

	ordered := root.orderedChildren()
	require.Len(t, ordered, 3)
	assert.Equal(t, ComponentLiteral, ordered[0].component.Type)
	assert.Equal(t, ComponentRequired, ordered[1].component.Type)
	assert.Equal(t, ComponentOptional, ordered[2].component.Type)
}

func TestRemoveChildPrunesLeaf(t *testing.T) {
	root := newCommandNode[string](nil, nil)
	child, err := root.insertChild(Literal[string]("sub"), false)
	require.NoError(t, err)

	root.removeChild(child)
	assert.Empty(t, root.children)
	assert.True(t, root.isLeaf())
}
