package placeholder

import (
	"strconv"
	"strings"
	"sync"
)

// Expr is a placeholder expression: a value that records a computation
// symbolically instead of performing it. The argument markers returned
// by Slot are the simplest expressions; every operator method combines
// an expression with an operand into a new, larger expression. Nothing
// is evaluated until Call, which compiles the recorded tree once,
// caches the result, and applies it.
//
// Expressions are immutable. An Expr is safe to reuse as a
// subexpression of any number of larger expressions, and safe to Call
// from multiple goroutines.
type Expr struct {
	// name is the source-like rendering of the expression.
	name string
	// tree is the recorded computation.
	tree *node
	// constants maps captured names to the values they denote. It holds
	// exactly the free values the tree references that are not argument
	// markers.
	constants map[string]any

	once sync.Once
	fn   Func
}

// Func is the executable form of a placeholder expression.
type Func func(args ...any) (any, error)

var (
	slotmu sync.Mutex
	slots  = make(map[int]*Expr)
)

// Slot returns the canonical placeholder for the n-th positional
// argument, counted from 1. Invoked directly, it is the identity of its
// position: Slot(k).Call(a1, ..., ak) returns ak. Slot panics if n is
// not positive.
func Slot(n int) *Expr {
	if n < 1 {
		panic("placeholder: slot index must be positive, got " + strconv.Itoa(n))
	}
	slotmu.Lock()
	defer slotmu.Unlock()
	if e := slots[n]; e != nil {
		return e
	}
	name := "_" + strconv.Itoa(n)
	e := &Expr{name: name, tree: &node{kind: nodeSlot, slot: n}}
	slots[n] = e
	return e
}

// Canonical markers for the first few argument positions. Higher
// positions come from Slot.
var (
	X1 = Slot(1)
	X2 = Slot(2)
	X3 = Slot(3)
	X4 = Slot(4)
	X5 = Slot(5)
)

// String returns the source-like rendering of the expression.
func (e *Expr) String() string {
	return e.name
}

// GoString returns the rendering wrapped with a type tag.
func (e *Expr) GoString() string {
	return "<placeholder: " + e.name + ">"
}

// pname returns the display name, parenthesized unless the tree root
// binds at least as tightly as any operator: a bare marker, a name, an
// attribute access, or a call.
func (e *Expr) pname() string {
	switch e.tree.kind {
	case nodeSlot, nodeName, nodeAttr, nodeCall:
		return e.name
	}
	return "(" + e.name + ")"
}

// binary builds the expression e.op(v).
func (e *Expr) binary(op opKind, v any) *Expr {
	frag, t, constants := normalizeArg(v, e.constants)
	return &Expr{
		name:      e.pname() + " " + op.symbol() + " " + frag,
		tree:      &node{kind: nodeBinary, op: op, left: e.tree, right: t},
		constants: mergeOperand(constants, v),
	}
}

// unary builds the expression op(e).
func (e *Expr) unary(op opKind) *Expr {
	return &Expr{
		name:      op.symbol() + e.pname(),
		tree:      &node{kind: nodeUnary, op: op, left: e.tree},
		constants: e.constants,
	}
}

// builtin builds the expression fn(e) for a named builtin free function.
func (e *Expr) builtin(fn string) *Expr {
	return &Expr{
		name:      fn + "(" + e.name + ")",
		tree:      &node{kind: nodeCall, left: &node{kind: nodeName, name: fn}, list: []*node{e.tree}},
		constants: e.constants,
	}
}

// Add builds e + v. For numbers it is addition; for strings,
// concatenation.
func (e *Expr) Add(v any) *Expr { return e.binary(opAdd, v) }

// Sub builds e - v.
func (e *Expr) Sub(v any) *Expr { return e.binary(opSub, v) }

// Mul builds e * v. A string times an integer repeats it.
func (e *Expr) Mul(v any) *Expr { return e.binary(opMul, v) }

// Div builds e / v, true division: integer operands produce a float64.
func (e *Expr) Div(v any) *Expr { return e.binary(opDiv, v) }

// FloorDiv builds e // v, division rounding toward negative infinity.
func (e *Expr) FloorDiv(v any) *Expr { return e.binary(opFloorDiv, v) }

// Mod builds e % v. The result takes the sign of the divisor.
func (e *Expr) Mod(v any) *Expr { return e.binary(opMod, v) }

// Pow builds e ** v. An integer base with a negative integer exponent
// produces a float64.
func (e *Expr) Pow(v any) *Expr { return e.binary(opPow, v) }

// BitAnd builds e & v.
func (e *Expr) BitAnd(v any) *Expr { return e.binary(opAnd, v) }

// BitOr builds e | v.
func (e *Expr) BitOr(v any) *Expr { return e.binary(opOr, v) }

// Xor builds e ^ v.
func (e *Expr) Xor(v any) *Expr { return e.binary(opXor, v) }

// Lsh builds e << v. Negative shift counts are outside the domain.
func (e *Expr) Lsh(v any) *Expr { return e.binary(opLsh, v) }

// Rsh builds e >> v. Negative shift counts are outside the domain.
func (e *Expr) Rsh(v any) *Expr { return e.binary(opRsh, v) }

// Lt builds e < v.
func (e *Expr) Lt(v any) *Expr { return e.binary(opLt, v) }

// Le builds e <= v.
func (e *Expr) Le(v any) *Expr { return e.binary(opLe, v) }

// Eq builds e == v. Like every other operator method, it builds an
// expression; it does not compare two placeholders for identity.
func (e *Expr) Eq(v any) *Expr { return e.binary(opEq, v) }

// Ne builds e != v.
func (e *Expr) Ne(v any) *Expr { return e.binary(opNe, v) }

// Ge builds e >= v.
func (e *Expr) Ge(v any) *Expr { return e.binary(opGe, v) }

// Gt builds e > v.
func (e *Expr) Gt(v any) *Expr { return e.binary(opGt, v) }

// Neg builds -e.
func (e *Expr) Neg() *Expr { return e.unary(opNeg) }

// Invert builds ~e, bitwise complement.
func (e *Expr) Invert() *Expr { return e.unary(opInvert) }

// Abs builds abs(e).
func (e *Expr) Abs() *Expr { return e.builtin("abs") }

// Next builds next(e), which advances the iterator e evaluates to. An
// exhausted iterator yields ErrStopIteration.
func (e *Expr) Next() *Expr { return e.builtin("next") }

// IterExpr builds iter(e), which produces an iterator over the slice,
// array or string e evaluates to.
func (e *Expr) IterExpr() *Expr { return e.builtin("iter") }

// Attr builds e.attr, resolved against the evaluated value by method
// first, then struct field.
func (e *Expr) Attr(attr string) *Expr {
	return &Expr{
		name:      e.pname() + "." + attr,
		tree:      &node{kind: nodeAttr, left: e.tree, name: attr},
		constants: e.constants,
	}
}

// Index builds e[key]. More than one key indexes successively, so
// Index(i, j) reaches e[i][j]; the display keeps the comma-joined
// multi-dimensional form. Keys may themselves be placeholders.
func (e *Expr) Index(keys ...any) *Expr {
	if len(keys) == 0 {
		panic("placeholder: Index requires at least one key")
	}
	frags := make([]string, len(keys))
	list := make([]*node, len(keys))
	constants := e.constants
	for i, k := range keys {
		var t *node
		frags[i], t, constants = normalizeArg(k, constants)
		constants = mergeOperand(constants, k)
		list[i] = t
	}
	return &Expr{
		name:      e.pname() + "[" + strings.Join(frags, ", ") + "]",
		tree:      &node{kind: nodeIndex, left: e.tree, list: list},
		constants: constants,
	}
}

// Apply builds the call expression e(args...). Nothing is invoked:
// the result is an ordinary expression whose eventual evaluation
// applies e's value to the evaluated arguments. Arguments may be
// placeholders or plain values.
func (e *Expr) Apply(args ...any) *Expr {
	frags := make([]string, len(args))
	list := make([]*node, len(args))
	constants := e.constants
	for i, a := range args {
		var t *node
		frags[i], t, constants = normalizeArg(a, constants)
		constants = mergeOperand(constants, a)
		list[i] = t
	}
	return &Expr{
		name:      e.name + "(" + strings.Join(frags, ", ") + ")",
		tree:      &node{kind: nodeCall, left: e.tree, list: list},
		constants: constants,
	}
}

// Call compiles the expression if it has not been compiled yet and
// invokes it. The number of arguments must equal the maximum marker
// index the expression references; the i-th marker is bound to the
// i-th argument.
func (e *Expr) Call(args ...any) (any, error) {
	return e.compiled()(args...)
}

// Compiled returns the expression's executable form, compiling and
// caching it if needed. The same Func is returned for every call.
func (e *Expr) Compiled() Func {
	return e.compiled()
}

func (e *Expr) compiled() Func {
	e.once.Do(func() {
		e.fn = compile(e)
	})
	return e.fn
}
