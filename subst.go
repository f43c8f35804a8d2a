package placeholder

import "strconv"

// nameSubst rewrites argument markers in an expression tree into
// ordinary parameter name references.
//
// visit mutates the memo in place, so a nameSubst must be used to
// compile only once; reuse across compiles would leak one expression's
// substitutions into another.
type nameSubst struct {
	// memo maps slot index to the name node every occurrence of that
	// marker rewrites to.
	memo map[int]*node
	// max is the highest slot index seen. The compiled parameter list
	// covers 1..max even when lower indices never appear.
	max int
}

func newNameSubst() *nameSubst {
	return &nameSubst{memo: make(map[int]*node)}
}

// visit rewrites every marker reachable from n and returns the
// rewritten tree. The input must be a private copy: rewriting works in
// place below the root.
func (s *nameSubst) visit(n *node) *node {
	if n == nil {
		return nil
	}
	if n.kind == nodeSlot {
		if m := s.memo[n.slot]; m != nil {
			return m
		}
		m := &node{kind: nodeName, name: "_" + strconv.Itoa(n.slot)}
		s.memo[n.slot] = m
		if n.slot > s.max {
			s.max = n.slot
		}
		return m
	}
	n.left = s.visit(n.left)
	n.right = s.visit(n.right)
	for i, a := range n.list {
		n.list[i] = s.visit(a)
	}
	return n
}
