package placeholder

import "strconv"

// node is a node in the abstract syntax tree of a placeholder expression.
type node struct {
	kind nodeKind

	op   opKind // nodeBinary, nodeUnary
	name string // nodeName is the referenced name; nodeAttr is the attribute
	slot int    // nodeSlot is the 1-based argument index

	left  *node
	right *node
	// list is the argument nodes of a nodeCall or the key nodes of a
	// nodeIndex, in order.
	list []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeSlot   // reference to a positional argument marker, pre-substitution
	nodeName   // push lookup(name)
	nodeBinary // evaluate left and right, apply op
	nodeUnary  // evaluate left, apply op
	nodeAttr   // evaluate left, look up attribute name
	nodeIndex  // evaluate left, index by each key in list in order
	nodeCall   // evaluate left, evaluate list, apply left to list
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeSlot:
		return "Slot"
	case nodeName:
		return "Name"
	case nodeBinary:
		return "Binary"
	case nodeUnary:
		return "Unary"
	case nodeAttr:
		return "Attr"
	case nodeIndex:
		return "Index"
	case nodeCall:
		return "Call"
	}
	return "nodeKind(" + strconv.Itoa(int(k)) + ")"
}

// opKind distinguishes binary and unary operators.
type opKind int8

const (
	opNone opKind = iota

	opAdd      // +
	opSub      // -
	opMul      // *
	opDiv      // / (true division; integer operands produce a float)
	opFloorDiv // //
	opMod      // %
	opPow      // **
	opAnd      // &
	opOr       // |
	opXor      // ^
	opLsh      // <<
	opRsh      // >>

	opLt // <
	opLe // <=
	opEq // ==
	opNe // !=
	opGe // >=
	opGt // >

	opNeg    // unary -
	opInvert // unary ~
)

var opSymbols = [...]string{
	opAdd:      "+",
	opSub:      "-",
	opMul:      "*",
	opDiv:      "/",
	opFloorDiv: "//",
	opMod:      "%",
	opPow:      "**",
	opAnd:      "&",
	opOr:       "|",
	opXor:      "^",
	opLsh:      "<<",
	opRsh:      ">>",
	opLt:       "<",
	opLe:       "<=",
	opEq:       "==",
	opNe:       "!=",
	opGe:       ">=",
	opGt:       ">",
	opNeg:      "-",
	opInvert:   "~",
}

// symbol returns the source-level spelling of an operator.
func (op opKind) symbol() string {
	return opSymbols[op]
}

// comparison reports whether op yields a truth value rather than an
// arithmetic result.
func (op opKind) comparison() bool {
	return opLt <= op && op <= opGt
}

// copyTree creates a structural copy of a tree. Compilation substitutes
// names into a copy so that sibling expressions sharing subtrees are
// unaffected.
func copyTree(n *node) *node {
	if n == nil {
		return nil
	}
	c := *n
	c.left = copyTree(n.left)
	c.right = copyTree(n.right)
	if n.list != nil {
		c.list = make([]*node, len(n.list))
		for i, a := range n.list {
			c.list[i] = copyTree(a)
		}
	}
	return &c
}
