package symbolic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// DefaultDecimals is the number of decimal places to which Eval rounds the
// result of each arithmetic operation unless told otherwise. It is enough to
// hide representation error from chains like 0.2 * 1.5 * 6 while staying far
// below the precision of any value a caller would write down.
const DefaultDecimals = 15

// EvalOption is an option for Eval.
type EvalOption interface {
	evalOption()
}

type (
	decopt   int
	noroundt struct{}
)

func (decopt) evalOption()   {}
func (noroundt) evalOption() {}

// Decimals sets the number of decimal places to which Eval rounds the result
// of each addition, subtraction, multiplication, division, and
// exponentiation. Negative values disable rounding.
func Decimals(n int) EvalOption {
	return decopt(n)
}

// NoRounding disables rounding of intermediate results, leaving plain IEEE-754
// arithmetic.
func NoRounding() EvalOption {
	return noroundt{}
}

// rounder rounds intermediate results to a fixed number of decimal places.
// A zero scale disables rounding.
type rounder struct {
	scale float64
}

func newRounder(opts []EvalOption) rounder {
	places := DefaultDecimals
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case decopt:
			places = int(opt)
		case noroundt:
			places = -1
		default:
			panic("symbolic: unknown eval option type")
		}
	}
	if places < 0 {
		return rounder{}
	}
	return rounder{scale: math.Pow10(places)}
}

// maxExact is the magnitude above which a float64 has no fractional bits.
const maxExact = 1 << 52

func (r rounder) round(v float64) float64 {
	if r.scale == 0 {
		return v
	}
	s := v * r.scale
	// Rounding would be a no-op for values with no digits at this scale, but
	// the multiply and divide could still perturb them. This also passes
	// infinities and NaN through.
	if !(math.Abs(s) < maxExact) {
		return v
	}
	return math.Round(s) / r.scale
}

// Eval evaluates e with variables taken from vars. Operands are evaluated
// left to right and the first error stops evaluation.
//
// Division follows IEEE-754, so dividing by zero produces an infinity or NaN
// rather than an error. Exponentiation is the one operation that checks its
// result: a NaN or infinite power, such as (-1)^0.5 or an overflow, fails with
// an error wrapping ErrUndefinedOperation. A variable missing from vars fails
// with a *SymbolNotFoundError.
//
// Each arithmetic result is rounded to DefaultDecimals decimal places unless
// opts say otherwise; see Decimals and NoRounding.
func (e *Expr) Eval(vars map[Symbol]float64, opts ...EvalOption) (float64, error) {
	return e.eval(vars, newRounder(opts))
}

func (e *Expr) eval(vars map[Symbol]float64, r rounder) (float64, error) {
	switch e.kind {
	case KindConst:
		return e.val, nil
	case KindVar:
		v, ok := vars[e.sym]
		if !ok {
			return 0, &SymbolNotFoundError{Symbol: e.sym}
		}
		return v, nil
	case KindNeg:
		v, err := e.left.eval(vars, r)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case KindAdd, KindSub, KindMul, KindDiv, KindPow:
		// Handled below.
	default:
		panic("symbolic: invalid expression kind " + e.kind.String())
	}
	lv, err := e.left.eval(vars, r)
	if err != nil {
		return 0, err
	}
	rv, err := e.right.eval(vars, r)
	if err != nil {
		return 0, err
	}
	var v float64
	switch e.kind {
	case KindAdd:
		v = lv + rv
	case KindSub:
		v = lv - rv
	case KindMul:
		v = lv * rv
	case KindDiv:
		v = lv / rv
	case KindPow:
		v = math.Pow(lv, rv)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%s ^ %s: %w", fmtnum(lv), fmtnum(rv), ErrUndefinedOperation)
		}
	}
	return r.round(v), nil
}

// Bindings converts a map keyed by variable name to one keyed by Symbol,
// suitable for Eval.
func Bindings(vars map[string]float64) map[Symbol]float64 {
	m := make(map[Symbol]float64, len(vars))
	for k, v := range vars {
		m[NewSymbol(k)] = v
	}
	return m
}

// ErrUndefinedOperation is the error underlying evaluations that have no real
// result, such as a fractional power of a negative number.
var ErrUndefinedOperation = errors.New("undefined operation")

// SymbolNotFoundError is an error from evaluating a variable that has no
// value.
type SymbolNotFoundError struct {
	// Symbol is the variable that was missing.
	Symbol Symbol
}

func (err *SymbolNotFoundError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Symbol.name)
}
