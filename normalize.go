package placeholder

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// normalizeArg converts an operand into a display fragment and a tree
// node, functionally updating the constants if the operand is a plain
// value.
//
// A placeholder operand passes through: its display name is used
// verbatim if it is a bare argument marker and parenthesized otherwise,
// and its tree becomes the operand node. The caller is responsible for
// merging the placeholder's own constants after combining trees. Any
// other value is given a fresh synthetic name, recorded in a copy of
// constants, and referenced by name in the tree.
func normalizeArg(v any, constants map[string]any) (string, *node, map[string]any) {
	if e, ok := v.(*Expr); ok {
		if e.tree.kind == nodeSlot {
			return e.name, e.tree, constants
		}
		return "(" + e.name + ")", e.tree, constants
	}
	name := syntheticName()
	return repr(v), &node{kind: nodeName, name: name}, assoc(constants, name, v)
}

// syntheticName generates a name for a captured constant. Names are
// random per call, so merging the constants of independently built
// expressions cannot collide.
func syntheticName() string {
	u := uuid.New()
	return "_" + hex.EncodeToString(u[:])
}

// repr renders a captured value for an expression's display name.
func repr(v any) string {
	return fmt.Sprintf("%#v", v)
}

// assoc returns a copy of m with k set to v. The input map is never
// mutated; expressions sharing a constants map stay independent.
func assoc(m map[string]any, k string, v any) map[string]any {
	c := make(map[string]any, len(m)+1)
	for k, v := range m {
		c[k] = v
	}
	c[k] = v
	return c
}

// merge returns the union of two constants maps, preferring neither:
// synthetic names make collisions impossible, so no entry is ever
// dropped. Nil inputs are fine.
func merge(a, b map[string]any) map[string]any {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	c := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		c[k] = v
	}
	for k, v := range b {
		c[k] = v
	}
	return c
}

// mergeOperand unions constants with the operand's own constants when
// the operand is a placeholder.
func mergeOperand(constants map[string]any, v any) map[string]any {
	if e, ok := v.(*Expr); ok {
		return merge(constants, e.constants)
	}
	return constants
}
