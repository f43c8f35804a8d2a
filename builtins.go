package placeholder

import (
	"math"
	"math/big"
	"reflect"
)

// builtins is the set of free functions an expression may call by name.
// Name lookup during evaluation falls back to this table after the
// injected constants, so a captured constant can shadow a builtin.
var builtins = map[string]Func{
	"abs":  Func(absBuiltin),
	"next": Func(nextBuiltin),
	"iter": Func(iterBuiltin),
}

func absBuiltin(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, &ArgCountError{Fn: "abs", Want: 1, Got: len(args)}
	}
	switch v := args[0].(type) {
	case *big.Int:
		return new(big.Int).Abs(v), nil
	case *big.Float:
		return new(big.Float).Abs(v), nil
	}
	if i, ok := toInt(args[0]); ok {
		if i == math.MinInt64 {
			return new(big.Int).Abs(big.NewInt(i)), nil
		}
		if i < 0 {
			i = -i
		}
		return normInt(i), nil
	}
	if f, ok := toFloat(args[0]); ok {
		return math.Abs(f), nil
	}
	return nil, &OperandError{Op: "abs", L: args[0]}
}

func iterBuiltin(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, &ArgCountError{Fn: "iter", Want: 1, Got: len(args)}
	}
	return NewIter(args[0])
}

func nextBuiltin(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, &ArgCountError{Fn: "next", Want: 1, Got: len(args)}
	}
	it, ok := args[0].(*Iter)
	if !ok {
		return nil, &OperandError{Op: "next", L: args[0]}
	}
	return it.Next()
}

// Iter steps through the elements of a slice, array or string. It is
// what an expression's iter builtin produces and what its next builtin
// advances. An Iter is not safe for concurrent use.
type Iter struct {
	v   reflect.Value
	pos int
}

// NewIter returns an iterator over v's elements. A string iterates
// bytewise. Passing an *Iter returns it unchanged.
func NewIter(v any) (*Iter, error) {
	if it, ok := v.(*Iter); ok {
		return it, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		return &Iter{v: rv}, nil
	}
	return nil, &OperandError{Op: "iter", L: v}
}

// Next returns the next element, or ErrStopIteration if the iterator is
// exhausted.
func (it *Iter) Next() (any, error) {
	if it.pos >= it.v.Len() {
		return nil, ErrStopIteration
	}
	e := it.v.Index(it.pos)
	it.pos++
	if it.v.Kind() == reflect.String {
		return byte(e.Uint()), nil
	}
	return e.Interface(), nil
}
