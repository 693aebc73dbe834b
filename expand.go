package symbolic

// Expand distributes multiplication over addition and subtraction throughout
// e, so that (a + b) * c becomes (a * c) + (b * c) and c * (a - b) becomes
// (c * a) - (c * b). Each distributed product is expanded again until no
// product has a sum or difference as an operand. Sums take precedence over
// differences, and a left operand over a right one.
//
// Division and exponentiation do not distribute, but their operands are
// expanded. Expand does not simplify; the result is usually larger than e.
func (e *Expr) Expand() *Expr {
	switch e.kind {
	case KindConst, KindVar:
		return e
	case KindNeg:
		return neg(e.left.Expand())
	case KindMul:
		return expandMul(e.left.Expand(), e.right.Expand())
	case KindAdd, KindSub, KindDiv, KindPow:
		return binop(e.kind, e.left.Expand(), e.right.Expand())
	default:
		panic("symbolic: invalid expression kind " + e.kind.String())
	}
}

// expandMul distributes l * r where l and r are already expanded.
func expandMul(l, r *Expr) *Expr {
	switch {
	case l.kind == KindAdd:
		return distribute(KindAdd, l.left, l.right, r, false)
	case r.kind == KindAdd:
		return distribute(KindAdd, r.left, r.right, l, false)
	case l.kind == KindSub:
		return distribute(KindSub, l.left, l.right, r, true)
	case r.kind == KindSub:
		return distribute(KindSub, r.left, r.right, l, true)
	}
	return binop(KindMul, l, r)
}

// distribute expands (a op b) * other. Sums put other on the right of each
// term, differences on the left.
func distribute(op Kind, a, b, other *Expr, otherFirst bool) *Expr {
	var x, y *Expr
	if otherFirst {
		x, y = binop(KindMul, other, a), binop(KindMul, other, b)
	} else {
		x, y = binop(KindMul, a, other), binop(KindMul, b, other)
	}
	return binop(op, x, y).Expand()
}
