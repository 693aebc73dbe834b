package symbolic

// MaxSimplifyPasses bounds the number of passes SimplifyFully makes.
const MaxSimplifyPasses = 64

// Simplify returns an expression equal to e wherever every variable has a
// value, rewritten to a smaller or more canonical form. It makes one pass from
// the leaves up: each node's children are simplified first, then the first
// matching rule for the node is applied once.
//
// Sums fold constants, combine x + x into 2 * x and c*x + x into (c+1) * x,
// and drop zero terms. Differences fold constants and drop a zero subtrahend.
// Products fold constants, turn x * x into x ^ 2 and x^a * x^b into
// x ^ (a + b), and drop factors of one; a zero factor gives 0 and a factor of
// -1 gives a negation. Quotients fold constants, drop a divisor of one, and
// turn 0 / x into 0. Powers flatten (x^a)^b into x ^ (a * b), reduce x^1 to x
// and both x^0 and 1^x to 1. Note that 0^0 therefore simplifies to 1.
//
// Because each rule fires at most once per node, the result of one pass can
// sometimes be simplified further; e.g. flattening a power creates a product
// that the same pass does not revisit. Use SimplifyFully to reach a fixed
// point.
func (e *Expr) Simplify() *Expr {
	switch e.kind {
	case KindConst, KindVar:
		return e
	case KindNeg:
		return neg(e.left.Simplify())
	case KindAdd:
		return simplifyAdd(e.left.Simplify(), e.right.Simplify())
	case KindSub:
		return simplifySub(e.left.Simplify(), e.right.Simplify())
	case KindMul:
		return simplifyMul(e.left.Simplify(), e.right.Simplify())
	case KindDiv:
		return simplifyDiv(e.left.Simplify(), e.right.Simplify())
	case KindPow:
		return simplifyPow(e.left.Simplify(), e.right.Simplify())
	default:
		panic("symbolic: invalid expression kind " + e.kind.String())
	}
}

// SimplifyFully applies Simplify until the result stops changing, up to
// MaxSimplifyPasses times.
func (e *Expr) SimplifyFully() *Expr {
	for i := 0; i < MaxSimplifyPasses; i++ {
		next := e.Simplify()
		if next.Equal(e) {
			return next
		}
		e = next
	}
	return e
}

func simplifyAdd(l, r *Expr) *Expr {
	switch {
	case l.kind == KindConst && r.kind == KindConst:
		return Const(l.val + r.val)
	case l.Equal(r):
		return binop(KindMul, Const(2), l)
	}
	if c, ok := likeTerm(l, r); ok {
		return binop(KindMul, Const(c+1), r)
	}
	if c, ok := likeTerm(r, l); ok {
		return binop(KindMul, Const(c+1), l)
	}
	switch {
	case l.IsConst(0):
		return r
	case r.IsConst(0):
		return l
	}
	return binop(KindAdd, l, r)
}

// likeTerm reports whether m is c*x or x*c for a constant c and an x
// structurally equal to t, and returns c.
func likeTerm(m, t *Expr) (float64, bool) {
	if m.kind != KindMul {
		return 0, false
	}
	switch {
	case m.left.kind == KindConst && m.right.Equal(t):
		return m.left.val, true
	case m.right.kind == KindConst && m.left.Equal(t):
		return m.right.val, true
	}
	return 0, false
}

func simplifySub(l, r *Expr) *Expr {
	switch {
	case l.kind == KindConst && r.kind == KindConst:
		return Const(l.val - r.val)
	case r.IsConst(0):
		// Only the subtrahend may be dropped: 0 - x is -x, not x.
		return l
	}
	return binop(KindSub, l, r)
}

func simplifyMul(l, r *Expr) *Expr {
	switch {
	case l.kind == KindConst && r.kind == KindConst:
		return Const(l.val * r.val)
	case l.Equal(r):
		return binop(KindPow, l, Const(2))
	case l.kind == KindPow && r.kind == KindPow && l.left.Equal(r.left):
		return binop(KindPow, l.left, binop(KindAdd, l.right, r.right))
	case l.IsConst(1):
		return r
	case r.IsConst(1):
		return l
	case l.IsConst(0), r.IsConst(0):
		return Const(0)
	case l.IsConst(-1):
		return neg(r)
	case r.IsConst(-1):
		return neg(l)
	}
	return binop(KindMul, l, r)
}

func simplifyDiv(l, r *Expr) *Expr {
	switch {
	case l.kind == KindConst && r.kind == KindConst:
		// Division by zero gives an IEEE infinity or NaN.
		return Const(l.val / r.val)
	case r.IsConst(1):
		// Only a divisor of one may be dropped: 1 / x is not x.
		return l
	case l.IsConst(0):
		return Const(0)
	}
	return binop(KindDiv, l, r)
}

func simplifyPow(base, exp *Expr) *Expr {
	switch {
	case base.kind == KindPow:
		return binop(KindPow, base.left, binop(KindMul, base.right, exp))
	case exp.IsConst(1):
		return base
	case exp.IsConst(0):
		return Const(1)
	case base.IsConst(1):
		return Const(1)
	}
	return binop(KindPow, base, exp)
}
