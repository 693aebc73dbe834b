package symbolic

// Operand is a value that can appear as an operand when building an
// expression: either an *Expr or a Num.
type Operand interface {
	expr() *Expr
}

// Num is a raw number used as an operand. It lets literals mix with
// expressions on either side of an operator:
//
//	x.Mul(Num(2))  // (x * 2)
//	Num(2).Mul(x)  // (2 * x)
type Num float64

func (n Num) expr() *Expr {
	return Const(float64(n))
}

func (e *Expr) expr() *Expr {
	return e
}

// operand converts an Operand to an expression, treating a nil interface the
// same as a nil *Expr so that binop reports it.
func operand(o Operand) *Expr {
	if o == nil {
		return nil
	}
	return o.expr()
}

// Add returns l + r.
func Add(l, r Operand) *Expr {
	return binop(KindAdd, operand(l), operand(r))
}

// Sub returns l - r.
func Sub(l, r Operand) *Expr {
	return binop(KindSub, operand(l), operand(r))
}

// Mul returns l * r.
func Mul(l, r Operand) *Expr {
	return binop(KindMul, operand(l), operand(r))
}

// Div returns l / r.
func Div(l, r Operand) *Expr {
	return binop(KindDiv, operand(l), operand(r))
}

// Pow returns base ^ exp.
func Pow(base, exp Operand) *Expr {
	return binop(KindPow, operand(base), operand(exp))
}

// Neg returns -e.
func Neg(e Operand) *Expr {
	return neg(operand(e))
}

// Add returns e + r.
func (e *Expr) Add(r Operand) *Expr { return Add(e, r) }

// Sub returns e - r.
func (e *Expr) Sub(r Operand) *Expr { return Sub(e, r) }

// Mul returns e * r.
func (e *Expr) Mul(r Operand) *Expr { return Mul(e, r) }

// Div returns e / r.
func (e *Expr) Div(r Operand) *Expr { return Div(e, r) }

// Pow returns e ^ r.
func (e *Expr) Pow(r Operand) *Expr { return Pow(e, r) }

// Neg returns -e.
func (e *Expr) Neg() *Expr { return neg(e) }

func (n Num) Add(r Operand) *Expr { return Add(n, r) }
func (n Num) Sub(r Operand) *Expr { return Sub(n, r) }
func (n Num) Mul(r Operand) *Expr { return Mul(n, r) }
func (n Num) Div(r Operand) *Expr { return Div(n, r) }
func (n Num) Pow(r Operand) *Expr { return Pow(n, r) }
