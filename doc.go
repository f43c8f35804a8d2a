// Package placeholder builds small callable expressions from argument
// markers instead of function literals.
//
// X1, X2, ... (and Slot(n) for higher positions) stand for the 1st,
// 2nd, ... nth positional argument of an eventual callable. Combining a
// marker with operands through operator methods records the computation
// symbolically:
//
//	double := placeholder.X1.Mul(2)      // _1 * 2
//	v, err := double.Call(21)            // 42
//
// The first Call compiles the recorded tree into an executable form and
// caches it on the expression, so an expression is cheap to apply many
// times. The number of arguments an expression takes is the highest
// marker index it mentions, whether or not the lower ones appear.
//
// Plain values mixed into an expression are captured as constants and
// bound into the compiled form once; markers appearing more than once
// all refer to the same argument. Val and Fn wrap outside values and
// functions so they can seed an expression, and Apply composes call
// expressions without invoking anything until the result itself is
// called.
package placeholder
