package placeholder

import "strconv"

// rawFunc is a compiled expression before constant injection: free
// names not bound by the parameter list resolve through globals.
type rawFunc func(globals map[string]any, args ...any) (any, error)

// compile translates an expression's recorded tree into an executable
// Func. The substitution pass runs on a structural copy with a fresh
// nameSubst, so expressions sharing subtrees compile independently. The
// parameter list covers marker indices 1 through the maximum
// referenced; an expression referencing no marker compiles to a
// zero-argument callable.
func compile(e *Expr) Func {
	s := newNameSubst()
	t := s.visit(copyTree(e.tree))
	nparams := s.max
	display := e.GoString()
	raw := func(globals map[string]any, args ...any) (any, error) {
		if len(args) != nparams {
			return nil, &ArgCountError{Fn: display, Want: nparams, Got: len(args)}
		}
		sc := &scope{args: args, globals: globals}
		return t.eval(sc)
	}
	return bind(raw, e.constants)
}

// scope is the namespace a compiled expression evaluates in: positional
// parameters first, then the injected constants.
type scope struct {
	args    []any
	globals map[string]any
}

// lookup resolves a free name. Parameter names are "_1".."_n" bound to
// the corresponding argument; everything else resolves through the
// injected constants.
func (sc *scope) lookup(name string) (any, bool) {
	if len(name) > 1 && name[0] == '_' {
		if i, err := strconv.Atoi(name[1:]); err == nil && 1 <= i && i <= len(sc.args) {
			return sc.args[i-1], true
		}
	}
	v, ok := sc.globals[name]
	return v, ok
}
