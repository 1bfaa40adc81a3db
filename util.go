package cloudtree

import (
	"errors"
	"reflect"
)

// errLiteralMismatch is an internal sentinel used while walking the tree
// to signal "this LITERAL child doesn't match the current token"; it never
// escapes to a caller.
var errLiteralMismatch = errors.New("cloudtree: literal mismatch")

func typeNameOf(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "any"
	}
	return t.String()
}
