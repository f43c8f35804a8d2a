package placeholder

import (
	"reflect"
	"runtime"
	"strings"
)

// Val wraps an arbitrary value so it can seed an expression: as the
// left operand of an operator, the target of indexing, or the function
// of a call expression built with Apply. The wrapped value becomes a
// captured constant referenced by name; wrapping an existing
// placeholder returns an equivalent placeholder.
//
//	table := placeholder.Val(m)         // m a map
//	get := table.Index(placeholder.X1)  // m[_1]
//	v, err := get.Call("key")
func Val(v any) *Expr {
	if e, ok := v.(*Expr); ok {
		return &Expr{name: e.name, tree: e.tree, constants: e.constants}
	}
	name := displayName(v)
	return &Expr{
		name:      name,
		tree:      &node{kind: nodeName, name: name},
		constants: map[string]any{name: v},
	}
}

// Fn wraps a callable for use as the applied function of a call
// expression. Fn(f).Apply(X2, X1) builds an expression that, once
// invoked with concrete arguments, applies f to the second and first of
// them; f itself runs only at that point, exactly once per invocation.
//
// Fn and Val build the same kind of placeholder; the two names mark the
// two intents.
func Fn(f any) *Expr {
	return Val(f)
}

// displayName renders a wrapped value for display names: a function's
// name if it has one, its debug representation otherwise.
func displayName(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func && !rv.IsNil() {
		if f := runtime.FuncForPC(rv.Pointer()); f != nil {
			name := f.Name()
			if i := strings.LastIndexByte(name, '/'); i >= 0 {
				name = name[i+1:]
			}
			if i := strings.IndexByte(name, '.'); i >= 0 {
				name = name[i+1:]
			}
			if name != "" {
				return name
			}
		}
	}
	return repr(v)
}
