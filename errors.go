package placeholder

import (
	"errors"
	"fmt"
	"strconv"
)

// NameError is an error from a lookup for a free variable that is bound
// neither by the compiled expression's constants nor by a builtin.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// ArgCountError is an error from invoking a compiled expression with the
// wrong number of positional arguments.
type ArgCountError struct {
	// Fn is the display form of the expression that was invoked.
	Fn string
	// Want is the number of parameters the expression takes, i.e. the
	// maximum argument index it references.
	Want int
	// Got is the number of arguments supplied.
	Got int
}

func (err *ArgCountError) Error() string {
	return fmt.Sprintf("%s takes %d positional arguments but %d were given", err.Fn, err.Want, err.Got)
}

// OperandError is an error from applying an operation to values that do
// not support it.
type OperandError struct {
	// Op is the operator or operation that failed.
	Op string
	// L and R are the operands. R is nil for unary operations, attribute
	// lookups and the like.
	L, R any
}

func (err *OperandError) Error() string {
	if err.R == nil {
		return fmt.Sprintf("operation %s not supported on %T", err.Op, err.L)
	}
	return fmt.Sprintf("operation %s not supported between %T and %T", err.Op, err.L, err.R)
}

// DomainError is an error from applying an operation to an argument
// outside its domain, like dividing by zero or shifting by a negative
// count.
type DomainError struct {
	// X is the out-of-domain operand.
	X any
	// Op is the operator that rejected it.
	Op string
}

func (err *DomainError) Error() string {
	return fmt.Sprintf("%v outside domain of %s", err.X, err.Op)
}

// AttributeError is an error from looking up an attribute that the value
// does not have.
type AttributeError struct {
	// Value is the value on which the lookup failed.
	Value any
	// Attr is the attribute name.
	Attr string
}

func (err *AttributeError) Error() string {
	return fmt.Sprintf("%T has no attribute %q", err.Value, err.Attr)
}

// IndexError is an error from indexing a value with a key it cannot be
// indexed by, including out-of-range positions.
type IndexError struct {
	// Value is the indexed value.
	Value any
	// Key is the offending key.
	Key any
}

func (err *IndexError) Error() string {
	return fmt.Sprintf("cannot index %T by %#v", err.Value, err.Key)
}

// ErrStopIteration indicates an exhausted iterator.
var ErrStopIteration = errors.New("iterator exhausted")

var (
	_ error = (*NameError)(nil)
	_ error = (*ArgCountError)(nil)
	_ error = (*OperandError)(nil)
	_ error = (*DomainError)(nil)
	_ error = (*AttributeError)(nil)
	_ error = (*IndexError)(nil)
)
