package symbolic

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// Expr is a node in an expression tree. The zero value is not a valid
// expression; build expressions with Const, Var, and the operator functions.
//
// An Expr is immutable. Operations that transform an expression return new
// nodes and leave their receivers unchanged.
type Expr struct {
	kind Kind

	val float64
	sym Symbol

	// left is the only operand of a negation.
	left  *Expr
	right *Expr
}

// Kind identifies the variant of an expression node.
type Kind int8

const (
	KindNone Kind = iota

	KindConst // literal number
	KindVar   // variable lookup

	KindAdd // left + right
	KindSub // left - right
	KindMul // left * right
	KindDiv // left / right
	KindPow // left ^ right
	KindNeg // -left
)

var kindNames = [...]string{
	KindNone:  "None",
	KindConst: "Const",
	KindVar:   "Var",
	KindAdd:   "Add",
	KindSub:   "Sub",
	KindMul:   "Mul",
	KindDiv:   "Div",
	KindPow:   "Pow",
	KindNeg:   "Neg",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// binary reports whether k is one of the two-operand kinds.
func (k Kind) binary() bool {
	return KindAdd <= k && k <= KindPow
}

// Const returns a constant expression.
func Const(v float64) *Expr {
	return &Expr{kind: KindConst, val: v}
}

// Var returns a reference to the variable with the given name.
func Var(name string) *Expr {
	return VarOf(NewSymbol(name))
}

// VarOf returns a reference to the variable s.
func VarOf(s Symbol) *Expr {
	return &Expr{kind: KindVar, sym: s}
}

// binop builds a binary node. The operands are not copied; this is safe
// because nothing modifies an Expr after it is built.
func binop(k Kind, l, r *Expr) *Expr {
	if l == nil || r == nil {
		panic("symbolic: nil operand to " + k.String())
	}
	return &Expr{kind: k, left: l, right: r}
}

func neg(e *Expr) *Expr {
	if e == nil {
		panic("symbolic: nil operand to Neg")
	}
	return &Expr{kind: KindNeg, left: e}
}

// Kind returns the variant of e.
func (e *Expr) Kind() Kind {
	return e.kind
}

// Value returns the value of a constant. It panics if e is not a constant.
func (e *Expr) Value() float64 {
	if e.kind != KindConst {
		panic("symbolic: Value of non-constant " + e.kind.String() + " expression")
	}
	return e.val
}

// IsConst reports whether e is a constant equal to v.
func (e *Expr) IsConst(v float64) bool {
	return e.kind == KindConst && e.val == v
}

// Symbol returns the variable e refers to. The second result is false unless e
// is exactly a variable reference.
func (e *Expr) Symbol() (Symbol, bool) {
	if e.kind != KindVar {
		return Symbol{}, false
	}
	return e.sym, true
}

// Left returns the left operand of a binary expression or the operand of a
// negation. It returns nil for constants and variables.
func (e *Expr) Left() *Expr {
	return e.left
}

// Right returns the right operand of a binary expression, or nil for any other
// kind of node.
func (e *Expr) Right() *Expr {
	return e.right
}

// Equal reports whether e and f are structurally identical: the same kinds of
// nodes with the same constants and variables in the same places. Constants
// compare with ==, so a NaN constant is never equal to anything.
func (e *Expr) Equal(f *Expr) bool {
	if e == nil && f == nil {
		return true
	}
	if e == nil || f == nil || e.kind != f.kind {
		return false
	}
	switch e.kind {
	case KindConst:
		return e.val == f.val
	case KindVar:
		return e.sym == f.sym
	case KindNeg:
		return e.left.Equal(f.left)
	case KindAdd, KindSub, KindMul, KindDiv, KindPow:
		return e.left.Equal(f.left) && e.right.Equal(f.right)
	default:
		panic("symbolic: invalid expression kind " + e.kind.String())
	}
}

// Symbols returns the distinct variables used in e, sorted by name.
func (e *Expr) Symbols() []Symbol {
	seen := make(map[string]bool)
	e.walk(func(n *Expr) {
		if n.kind == KindVar {
			seen[n.sym.name] = true
		}
	})
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	slices.Sort(names)
	r := make([]Symbol, len(names))
	for i, name := range names {
		r[i] = NewSymbol(name)
	}
	return r
}

// walk calls f on each node of e in pre-order.
func (e *Expr) walk(f func(*Expr)) {
	f(e)
	if e.left != nil {
		e.left.walk(f)
	}
	if e.right != nil {
		e.right.walk(f)
	}
}
