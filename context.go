package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
	"golang.org/x/exp/slices"
)

// Context evaluates expressions with arbitrary-precision arithmetic. It holds
// variable values and the precision of calculations, so one Context can
// evaluate many expressions, and Clone derives contexts that share its
// settings. It is not safe to use a Context concurrently.
//
// Context results are not rounded to decimal places; the precision in bits
// bounds their error instead.
type Context struct {
	stack []*big.Float
	names map[Symbol]*big.Float
	prec  uint
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt map[string]*big.Float
	precopt uint
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Float) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Float) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. a missing variable or an exponentiation with no real result, then the
// result is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Expr) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("symbolic: Eval during Eval")
	}
	ctx.err = ctx.run(e)
	if ctx.err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// run evaluates e, converting big.ErrNaN panics from package big into
// ErrUndefinedOperation.
func (ctx *Context) run(e *Expr) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		err = fmt.Errorf("%s: %w", nan.Error(), ErrUndefinedOperation)
	}()
	return e.evalbig(ctx)
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("symbolic: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("symbolic: inconsistent stack: " + fmt.Sprint(len(ctx.stack)) + " items")
	}
}

// Err returns the error that occurred during the last evaluation with ctx, if
// any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Set sets the value of a variable. Returns ctx for chaining. Calling Set
// while the context is being used to evaluate an expression panics.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	if len(ctx.stack) > 1 {
		panic("symbolic: Set on in-use context")
	}
	if ctx.names == nil {
		ctx.names = make(map[Symbol]*big.Float)
	}
	ctx.names[NewSymbol(name)] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.names[NewSymbol(name)]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Names returns the names of the variables set in the context, sorted.
func (ctx *Context) Names() []string {
	names := make([]string, 0, len(ctx.names))
	for k := range ctx.names {
		names = append(names, k.name)
	}
	slices.Sort(names)
	return names
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		names: make(map[Symbol]*big.Float, len(ctx.names)),
		prec:  ctx.prec,
	}
	// Apply the last precision setting first so that every copied or new
	// value is rounded to it.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Values are never modified in place, so pointers can be shared when the
	// precision is unchanged.
	if n.prec == ctx.prec {
		for name, val := range ctx.names {
			n.names[name] = val
		}
	} else {
		for name, val := range ctx.names {
			n.names[name] = new(big.Float).SetPrec(n.prec).Set(val)
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[NewSymbol(opt.name)] = new(big.Float).SetPrec(n.prec).Set(opt.val)
		case varsopt:
			for k, v := range opt {
				n.names[NewSymbol(k)] = new(big.Float).SetPrec(n.prec).Set(v)
			}
		case precopt:
			// Already done. Do nothing.
		default:
			panic("symbolic: unknown context option type")
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// evalbig pushes the node's value to the context's stack.
func (e *Expr) evalbig(ctx *Context) error {
	switch e.kind {
	case KindConst:
		if math.IsNaN(e.val) {
			return fmt.Errorf("NaN constant: %w", ErrUndefinedOperation)
		}
		ctx.push().SetFloat64(e.val)
		return nil
	case KindVar:
		v := ctx.names[e.sym]
		if v == nil {
			return &SymbolNotFoundError{Symbol: e.sym}
		}
		ctx.push().Set(v)
		return nil
	case KindNeg:
		if err := e.left.evalbig(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
		return nil
	case KindAdd, KindSub, KindMul, KindDiv, KindPow:
		// Handled below.
	default:
		panic("symbolic: invalid expression kind " + e.kind.String())
	}
	if err := e.left.evalbig(ctx); err != nil {
		return err
	}
	if err := e.right.evalbig(ctx); err != nil {
		return err
	}
	r := ctx.pop()
	l := ctx.top()
	// Operations without a result, e.g. inf - inf or 0 * inf, panic with
	// big.ErrNaN; run recovers those.
	switch e.kind {
	case KindAdd:
		l.Add(l, r)
	case KindSub:
		l.Sub(l, r)
	case KindMul:
		l.Mul(l, r)
	case KindDiv:
		l.Quo(l, r)
	case KindPow:
		return bigpow(l, r)
	}
	return nil
}

// bigpow sets l to l^r. Integer exponents use exact repeated squaring, so
// results like 4^3^2 are exact to the context's precision; other exponents
// use bigfloat.Pow.
func bigpow(l, r *big.Float) error {
	fail := powerr(l, r)
	if l.IsInf() || r.IsInf() {
		return fail()
	}
	integral := r.IsInt()
	if integral {
		if n, acc := r.Int64(); acc == big.Exact {
			powint(l, n)
			if l.IsInf() {
				return fail()
			}
			return nil
		}
	}
	switch l.Sign() {
	case 0:
		// Not an int64 exponent, so r != 0.
		if r.Sign() < 0 {
			return fail()
		}
		l.SetInt64(0)
		return nil
	case -1:
		if !integral {
			// No real result for a negative base and a non-integer exponent.
			return fail()
		}
		// An integer exponent too large for int64. Its parity gives the sign.
		l.Abs(l)
		if err := powreal(l, r, fail); err != nil {
			return err
		}
		if odd(r) {
			l.Neg(l)
		}
		return nil
	}
	return powreal(l, r, fail)
}

// powreal sets l to l^r for l > 0. Results whose binary exponent is outside
// the range of big.Float are decided without calling bigfloat.Pow.
func powreal(l, r *big.Float, fail func() error) error {
	if l.Cmp(big.NewFloat(1)) == 0 {
		return nil
	}
	var m big.Float
	e := l.MantExp(&m)
	mf, _ := m.Float64()
	rf, _ := r.Float64()
	lg := rf * (float64(e) + math.Log2(mf))
	switch {
	case lg > big.MaxExp:
		return fail()
	case lg < big.MinExp:
		l.SetInt64(0)
		return nil
	}
	l.Set(bigfloat.Pow(new(big.Float).SetPrec(l.Prec()), l, r))
	if l.IsInf() {
		return fail()
	}
	return nil
}

// odd reports whether the integer r is odd, i.e. its lowest set bit is the
// ones place.
func odd(r *big.Float) bool {
	if r.Sign() == 0 {
		return false
	}
	return r.MantExp(nil) == int(r.MinPrec())
}

// powint sets l to l^n. A zero base with a negative exponent becomes an
// infinity, which the caller reports.
func powint(l *big.Float, n int64) {
	u := uint64(n)
	if n < 0 {
		u = uint64(-n)
	}
	x := new(big.Float).SetPrec(l.Prec()).Set(l)
	l.SetInt64(1)
	for ; u > 0; u >>= 1 {
		if u&1 == 1 {
			l.Mul(l, x)
		}
		x.Mul(x, x)
	}
	if n < 0 {
		if l.Sign() == 0 {
			l.SetInf(false)
			return
		}
		l.Quo(new(big.Float).SetPrec(l.Prec()).SetInt64(1), l)
	}
}

// powerr creates an error for l^r. It must be called before l is modified.
func powerr(l, r *big.Float) func() error {
	msg := l.Text('g', 10) + " ^ " + r.Text('g', 10)
	return func() error {
		return fmt.Errorf("%s: %w", msg, ErrUndefinedOperation)
	}
}

// EvalString is a shortcut to parse an expression and evaluate it in a new
// context created with opts.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	a, err := Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	ctx := NewContext(opts...)
	if r := ctx.Eval(a); r != nil {
		return r, nil
	}
	return nil, ctx.Err()
}
