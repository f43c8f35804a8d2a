package placeholder

import (
	"reflect"
	"strconv"
)

// eval computes the node's value in a scope. Trees reaching eval have
// been through the substitution pass, so encountering a raw slot is an
// internal invariant violation.
func (n *node) eval(sc *scope) (any, error) {
	switch n.kind {
	case nodeName:
		if v, ok := sc.lookup(n.name); ok {
			return v, nil
		}
		if f, ok := builtins[n.name]; ok {
			return f, nil
		}
		return nil, &NameError{Name: n.name}
	case nodeBinary:
		l, err := n.left.eval(sc)
		if err != nil {
			return nil, err
		}
		r, err := n.right.eval(sc)
		if err != nil {
			return nil, err
		}
		return applyBinary(n.op, l, r)
	case nodeUnary:
		v, err := n.left.eval(sc)
		if err != nil {
			return nil, err
		}
		return applyUnary(n.op, v)
	case nodeAttr:
		v, err := n.left.eval(sc)
		if err != nil {
			return nil, err
		}
		return attrOf(v, n.name)
	case nodeIndex:
		v, err := n.left.eval(sc)
		if err != nil {
			return nil, err
		}
		for _, kn := range n.list {
			k, err := kn.eval(sc)
			if err != nil {
				return nil, err
			}
			v, err = indexOf(v, k)
			if err != nil {
				return nil, err
			}
		}
		return v, nil
	case nodeCall:
		f, err := n.left.eval(sc)
		if err != nil {
			return nil, err
		}
		args := make([]any, len(n.list))
		for i, an := range n.list {
			if args[i], err = an.eval(sc); err != nil {
				return nil, err
			}
		}
		return callValue(f, args)
	case nodeSlot:
		panic("placeholder: eval on unsubstituted slot _" + strconv.Itoa(n.slot))
	default:
		panic("placeholder: invalid AST node " + n.kind.String())
	}
}

// attrOf resolves an attribute on a value: a method first, then a
// struct field, dereferencing pointers and interfaces as needed.
func attrOf(v any, attr string) (any, error) {
	if v == nil {
		return nil, &AttributeError{Value: v, Attr: attr}
	}
	rv := reflect.ValueOf(v)
	if m := rv.MethodByName(attr); m.IsValid() {
		return m.Interface(), nil
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, &AttributeError{Value: v, Attr: attr}
		}
		rv = rv.Elem()
		if m := rv.MethodByName(attr); m.IsValid() {
			return m.Interface(), nil
		}
	}
	if rv.Kind() == reflect.Struct {
		if f := rv.FieldByName(attr); f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}
	return nil, &AttributeError{Value: v, Attr: attr}
}

// indexOf indexes a value by a key: maps by converted key, slices,
// arrays and strings by integer position. Negative positions count
// from the end.
func indexOf(v, key any) (any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, &IndexError{Value: v, Key: key}
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		kt := rv.Type().Key()
		if !kv.IsValid() {
			return nil, &IndexError{Value: v, Key: key}
		}
		if kv.Type() != kt {
			if !kv.Type().ConvertibleTo(kt) {
				return nil, &IndexError{Value: v, Key: key}
			}
			kv = kv.Convert(kt)
		}
		ev := rv.MapIndex(kv)
		if !ev.IsValid() {
			return nil, &IndexError{Value: v, Key: key}
		}
		return ev.Interface(), nil
	case reflect.Slice, reflect.Array, reflect.String:
		i, ok := toInt(key)
		if !ok {
			return nil, &IndexError{Value: v, Key: key}
		}
		if i < 0 {
			i += int64(rv.Len())
		}
		if i < 0 || i >= int64(rv.Len()) {
			return nil, &IndexError{Value: v, Key: key}
		}
		if rv.Kind() == reflect.String {
			return byte(rv.Index(int(i)).Uint()), nil
		}
		return rv.Index(int(i)).Interface(), nil
	}
	return nil, &IndexError{Value: v, Key: key}
}

// callValue applies a callable value to evaluated arguments. Func
// values and compatible function shapes are called directly; any other
// Go function goes through reflection, converting arguments where the
// conversion is value-preserving. A trailing error result propagates.
func callValue(f any, args []any) (any, error) {
	switch f := f.(type) {
	case Func:
		return f(args...)
	case func(...any) (any, error):
		return f(args...)
	case *Expr:
		return f.Call(args...)
	}
	rv := reflect.ValueOf(f)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, &OperandError{Op: "call", L: f}
	}
	t := rv.Type()
	in, err := convertArgs(t, args, f)
	if err != nil {
		return nil, err
	}
	out := rv.Call(in)
	return splitResults(t, out)
}

func convertArgs(t reflect.Type, args []any, f any) ([]reflect.Value, error) {
	if t.IsVariadic() {
		if len(args) < t.NumIn()-1 {
			return nil, &ArgCountError{Fn: t.String(), Want: t.NumIn() - 1, Got: len(args)}
		}
	} else if len(args) != t.NumIn() {
		return nil, &ArgCountError{Fn: t.String(), Want: t.NumIn(), Got: len(args)}
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= t.NumIn()-1 {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(i)
		}
		av := reflect.ValueOf(a)
		switch {
		case !av.IsValid():
			// Untyped nil for a nilable parameter.
			in[i] = reflect.Zero(pt)
		case av.Type().AssignableTo(pt):
			in[i] = av
		case av.Type().ConvertibleTo(pt) && convertible(av.Type(), pt):
			in[i] = av.Convert(pt)
		default:
			return nil, &OperandError{Op: "call", L: f, R: a}
		}
	}
	return in, nil
}

// convertible restricts reflect conversions used for arguments to ones
// that preserve the value: numeric widenings and interface
// satisfaction, not string/number reinterpretation.
func convertible(from, to reflect.Type) bool {
	if to.Kind() == reflect.Interface {
		return from.Implements(to)
	}
	return isNumeric(from.Kind()) && isNumeric(to.Kind())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func splitResults(t reflect.Type, out []reflect.Value) (any, error) {
	if n := t.NumOut(); n > 0 && t.Out(n-1) == errType {
		errv := out[n-1]
		out = out[:n-1]
		if !errv.IsNil() {
			return nil, errv.Interface().(error)
		}
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	vs := make([]any, len(out))
	for i, v := range out {
		vs[i] = v.Interface()
	}
	return vs, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()
