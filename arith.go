package placeholder

import (
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Dynamic arithmetic over the values an expression can meet at run
// time. Integers compute in int64 and promote to *big.Int on overflow;
// mixing an integer with a float computes in float64; mixing anything
// numeric with a *big.Float computes in *big.Float. True division of
// integers yields float64. Floor division and modulo round toward
// negative infinity, so the remainder takes the divisor's sign.

// applyBinary computes l op r.
func applyBinary(op opKind, l, r any) (any, error) {
	switch {
	case isBigFloat(l) || isBigFloat(r):
		if lf, ok := toBigFloat(l); ok {
			if rf, ok := toBigFloat(r); ok {
				return bigFloatOp(op, lf, rf)
			}
		}
	case isBigInt(l) || isBigInt(r):
		if isFloat(l) || isFloat(r) {
			lf, _ := toFloat(l)
			rf, _ := toFloat(r)
			return floatOp(op, lf, rf)
		}
		if li, ok := toBigInt(l); ok {
			if ri, ok := toBigInt(r); ok {
				return bigIntOp(op, li, ri)
			}
		}
	case isFloat(l) || isFloat(r):
		lf, lok := toFloat(l)
		rf, rok := toFloat(r)
		if lok && rok {
			return floatOp(op, lf, rf)
		}
	default:
		li, lok := toInt(l)
		ri, rok := toInt(r)
		if lok && rok {
			return intOp(op, li, ri)
		}
	}
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			return stringOp(op, ls, rs)
		}
		if n, ok := toInt(r); ok && op == opMul {
			return repeatString(ls, n), nil
		}
	}
	if rs, ok := r.(string); ok && op == opMul {
		if n, ok := toInt(l); ok {
			return repeatString(rs, n), nil
		}
	}
	if lb, ok := l.(bool); ok {
		if rb, ok := r.(bool); ok {
			return boolOp(op, lb, rb)
		}
	}
	switch op {
	case opEq:
		return reflect.DeepEqual(l, r), nil
	case opNe:
		return !reflect.DeepEqual(l, r), nil
	}
	return nil, &OperandError{Op: op.symbol(), L: l, R: r}
}

// applyUnary computes op v.
func applyUnary(op opKind, v any) (any, error) {
	switch op {
	case opNeg:
		switch v := v.(type) {
		case *big.Int:
			return new(big.Int).Neg(v), nil
		case *big.Float:
			return new(big.Float).Neg(v), nil
		}
		if i, ok := toInt(v); ok {
			if i == math.MinInt64 {
				return new(big.Int).Neg(big.NewInt(i)), nil
			}
			return normInt(-i), nil
		}
		if f, ok := toFloat(v); ok {
			return -f, nil
		}
	case opInvert:
		if v, ok := v.(*big.Int); ok {
			return new(big.Int).Not(v), nil
		}
		if i, ok := toInt(v); ok {
			return normInt(^i), nil
		}
	}
	return nil, &OperandError{Op: op.symbol(), L: v}
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

func isBigInt(v any) bool {
	_, ok := v.(*big.Int)
	return ok
}

func isBigFloat(v any) bool {
	_, ok := v.(*big.Float)
	return ok
}

// toInt reports a value as an int64 if it is an integer that fits.
func toInt(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uintptr:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, true
	}
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

func toBigInt(v any) (*big.Int, bool) {
	if z, ok := v.(*big.Int); ok {
		return z, true
	}
	if i, ok := toInt(v); ok {
		return big.NewInt(i), true
	}
	return nil, false
}

func toBigFloat(v any) (*big.Float, bool) {
	switch v := v.(type) {
	case *big.Float:
		return v, true
	case *big.Int:
		return new(big.Float).SetPrec(prec).SetInt(v), true
	}
	if f, ok := toFloat(v); ok {
		return new(big.Float).SetPrec(prec).SetFloat64(f), true
	}
	return nil, false
}

// prec is the precision used when promoting to *big.Float.
const prec = 64

// normInt converts an int64 result to the platform int when it fits.
func normInt(v int64) any {
	if int64(int(v)) == v {
		return int(v)
	}
	return big.NewInt(v)
}

// normBig shrinks a *big.Int result back to int when it fits, so
// ordinary arithmetic stays in ordinary types.
func normBig(z *big.Int) any {
	if z.IsInt64() {
		return normInt(z.Int64())
	}
	return z
}

func intOp(op opKind, a, b int64) (any, error) {
	switch op {
	case opAdd:
		s := a + b
		if (b > 0 && s < a) || (b < 0 && s > a) {
			return normBig(new(big.Int).Add(big.NewInt(a), big.NewInt(b))), nil
		}
		return normInt(s), nil
	case opSub:
		s := a - b
		if (b < 0 && s < a) || (b > 0 && s > a) {
			return normBig(new(big.Int).Sub(big.NewInt(a), big.NewInt(b))), nil
		}
		return normInt(s), nil
	case opMul:
		if a == 0 || b == 0 {
			return 0, nil
		}
		if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
			return normBig(new(big.Int).Mul(big.NewInt(a), big.NewInt(b))), nil
		}
		p := a * b
		if p/b != a {
			return normBig(new(big.Int).Mul(big.NewInt(a), big.NewInt(b))), nil
		}
		return normInt(p), nil
	case opDiv:
		if b == 0 {
			return nil, &DomainError{X: b, Op: "/"}
		}
		return float64(a) / float64(b), nil
	case opFloorDiv:
		if b == 0 {
			return nil, &DomainError{X: b, Op: "//"}
		}
		if a == math.MinInt64 && b == -1 {
			return normBig(new(big.Int).Neg(big.NewInt(a))), nil
		}
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return normInt(q), nil
	case opMod:
		if b == 0 {
			return nil, &DomainError{X: b, Op: "%"}
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return normInt(m), nil
	case opPow:
		if b < 0 {
			if a == 0 {
				return nil, &DomainError{X: b, Op: "**"}
			}
			return math.Pow(float64(a), float64(b)), nil
		}
		return normBig(new(big.Int).Exp(big.NewInt(a), big.NewInt(b), nil)), nil
	case opAnd:
		return normInt(a & b), nil
	case opOr:
		return normInt(a | b), nil
	case opXor:
		return normInt(a ^ b), nil
	case opLsh:
		if b < 0 {
			return nil, &DomainError{X: b, Op: "<<"}
		}
		if b >= 63 {
			return normBig(new(big.Int).Lsh(big.NewInt(a), uint(b))), nil
		}
		s := a << b
		if s>>b != a {
			return normBig(new(big.Int).Lsh(big.NewInt(a), uint(b))), nil
		}
		return normInt(s), nil
	case opRsh:
		if b < 0 {
			return nil, &DomainError{X: b, Op: ">>"}
		}
		if b >= 63 {
			if a < 0 {
				return -1, nil
			}
			return 0, nil
		}
		return normInt(a >> b), nil
	case opLt:
		return a < b, nil
	case opLe:
		return a <= b, nil
	case opEq:
		return a == b, nil
	case opNe:
		return a != b, nil
	case opGe:
		return a >= b, nil
	case opGt:
		return a > b, nil
	}
	return nil, &OperandError{Op: op.symbol(), L: a, R: b}
}

func floatOp(op opKind, a, b float64) (any, error) {
	switch op {
	case opAdd:
		return a + b, nil
	case opSub:
		return a - b, nil
	case opMul:
		return a * b, nil
	case opDiv:
		if b == 0 && a == 0 {
			return nil, &DomainError{X: b, Op: "/"}
		}
		return a / b, nil
	case opFloorDiv:
		if b == 0 {
			return nil, &DomainError{X: b, Op: "//"}
		}
		return math.Floor(a / b), nil
	case opMod:
		if b == 0 {
			return nil, &DomainError{X: b, Op: "%"}
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	case opPow:
		return math.Pow(a, b), nil
	case opLt:
		return a < b, nil
	case opLe:
		return a <= b, nil
	case opEq:
		return a == b, nil
	case opNe:
		return a != b, nil
	case opGe:
		return a >= b, nil
	case opGt:
		return a > b, nil
	}
	return nil, &OperandError{Op: op.symbol(), L: a, R: b}
}

func bigIntOp(op opKind, a, b *big.Int) (any, error) {
	switch op {
	case opAdd:
		return normBig(new(big.Int).Add(a, b)), nil
	case opSub:
		return normBig(new(big.Int).Sub(a, b)), nil
	case opMul:
		return normBig(new(big.Int).Mul(a, b)), nil
	case opDiv:
		if b.Sign() == 0 {
			return nil, &DomainError{X: b, Op: "/"}
		}
		af := new(big.Float).SetPrec(prec).SetInt(a)
		bf := new(big.Float).SetPrec(prec).SetInt(b)
		return af.Quo(af, bf), nil
	case opFloorDiv, opMod:
		if b.Sign() == 0 {
			return nil, &DomainError{X: b, Op: op.symbol()}
		}
		q, m := new(big.Int).QuoRem(a, b, new(big.Int))
		if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
			q.Sub(q, oneInt)
			m.Add(m, b)
		}
		if op == opFloorDiv {
			return normBig(q), nil
		}
		return normBig(m), nil
	case opPow:
		if b.Sign() < 0 {
			if a.Sign() == 0 {
				return nil, &DomainError{X: b, Op: "**"}
			}
			af, _ := new(big.Float).SetInt(a).Float64()
			bf, _ := new(big.Float).SetInt(b).Float64()
			return math.Pow(af, bf), nil
		}
		return normBig(new(big.Int).Exp(a, b, nil)), nil
	case opAnd:
		return normBig(new(big.Int).And(a, b)), nil
	case opOr:
		return normBig(new(big.Int).Or(a, b)), nil
	case opXor:
		return normBig(new(big.Int).Xor(a, b)), nil
	case opLsh, opRsh:
		if b.Sign() < 0 || !b.IsUint64() || b.Uint64() > math.MaxUint32 {
			return nil, &DomainError{X: b, Op: op.symbol()}
		}
		if op == opLsh {
			return normBig(new(big.Int).Lsh(a, uint(b.Uint64()))), nil
		}
		return normBig(new(big.Int).Rsh(a, uint(b.Uint64()))), nil
	}
	if op.comparison() {
		return cmpResult(op, a.Cmp(b)), nil
	}
	return nil, &OperandError{Op: op.symbol(), L: a, R: b}
}

func bigFloatOp(op opKind, a, b *big.Float) (any, error) {
	switch op {
	case opAdd:
		return new(big.Float).SetPrec(prec).Add(a, b), nil
	case opSub:
		return new(big.Float).SetPrec(prec).Sub(a, b), nil
	case opMul:
		return new(big.Float).SetPrec(prec).Mul(a, b), nil
	case opDiv:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if a.Sign() == 0 && b.Sign() == 0 || a.IsInf() && b.IsInf() {
			return nil, &DomainError{X: b, Op: "/"}
		}
		return new(big.Float).SetPrec(prec).Quo(a, b), nil
	case opFloorDiv:
		if b.Sign() == 0 {
			return nil, &DomainError{X: b, Op: "//"}
		}
		q := new(big.Float).SetPrec(prec).Quo(a, b)
		return bfFloor(q), nil
	case opMod:
		if b.Sign() == 0 {
			return nil, &DomainError{X: b, Op: "%"}
		}
		q := new(big.Float).SetPrec(prec).Quo(a, b)
		f := bfFloor(q)
		m := new(big.Float).SetPrec(prec).Mul(f, b)
		return m.Sub(a, m), nil
	case opPow:
		// Guard against negative bases, as the underlying Pow is
		// undefined there.
		if a.Signbit() {
			return nil, &DomainError{X: a, Op: "**"}
		}
		r := new(big.Float).SetPrec(prec)
		return bigfloat.Pow(r, a, b), nil
	}
	if op.comparison() {
		return cmpResult(op, a.Cmp(b)), nil
	}
	return nil, &OperandError{Op: op.symbol(), L: a, R: b}
}

// bfFloor rounds toward negative infinity.
func bfFloor(x *big.Float) *big.Float {
	z, acc := x.Int(nil)
	f := new(big.Float).SetPrec(x.Prec()).SetInt(z)
	if x.Signbit() && acc == big.Above {
		f.Sub(f, oneFloat)
	}
	return f
}

var (
	oneInt   = big.NewInt(1)
	oneFloat = big.NewFloat(1)
)

func stringOp(op opKind, a, b string) (any, error) {
	switch op {
	case opAdd:
		return a + b, nil
	case opLt:
		return a < b, nil
	case opLe:
		return a <= b, nil
	case opEq:
		return a == b, nil
	case opNe:
		return a != b, nil
	case opGe:
		return a >= b, nil
	case opGt:
		return a > b, nil
	}
	return nil, &OperandError{Op: op.symbol(), L: a, R: b}
}

func repeatString(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, int(n))
}

func boolOp(op opKind, a, b bool) (any, error) {
	switch op {
	case opAnd:
		return a && b, nil
	case opOr:
		return a || b, nil
	case opXor:
		return a != b, nil
	case opEq:
		return a == b, nil
	case opNe:
		return a != b, nil
	}
	return nil, &OperandError{Op: op.symbol(), L: a, R: b}
}

func cmpResult(op opKind, c int) bool {
	switch op {
	case opLt:
		return c < 0
	case opLe:
		return c <= 0
	case opEq:
		return c == 0
	case opNe:
		return c != 0
	case opGe:
		return c >= 0
	case opGt:
		return c > 0
	}
	panic("placeholder: cmpResult on non-comparison " + op.symbol())
}
