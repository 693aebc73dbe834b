package symbolic

import (
	"fmt"
	"strconv"
	"strings"
)

var opstrs = [...]string{
	KindAdd: " + ",
	KindSub: " - ",
	KindMul: " * ",
	KindDiv: " / ",
	KindPow: " ^ ",
}

// String renders e with every binary operation in parentheses, e.g.
// "(x + (2 * y))". Negation is a prefix minus and constants use the default
// formatting of float64. The format is stable across releases.
//
// A negative constant prints with a leading minus, which Parse reads back as
// the negation of a positive constant. The parsed tree evaluates the same but
// is not Equal to e.
func (e *Expr) String() string {
	var b strings.Builder
	e.fmt(&b, false)
	return b.String()
}

// Format implements fmt.Formatter. The verbs %v and %s produce the same text
// as String. With the + flag, e.g. %+v, products of a constant and a variable
// are written by juxtaposition, so 2 * x prints as "2x".
func (e *Expr) Format(f fmt.State, verb rune) {
	var b strings.Builder
	switch verb {
	case 'v', 's':
		e.fmt(&b, f.Flag('+'))
		f.Write([]byte(b.String()))
	case 'q':
		e.fmt(&b, f.Flag('+'))
		f.Write([]byte(strconv.Quote(b.String())))
	default:
		fmt.Fprintf(f, "%%!%c(*symbolic.Expr=%s)", verb, e.String())
	}
}

func (e *Expr) fmt(b *strings.Builder, compact bool) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	switch e.kind {
	case KindConst:
		b.WriteString(fmtnum(e.val))
	case KindVar:
		b.WriteString(e.sym.name)
	case KindNeg:
		b.WriteByte('-')
		e.left.fmt(b, compact)
	case KindAdd, KindSub, KindMul, KindDiv, KindPow:
		if compact && e.kind == KindMul {
			if c, v, ok := coefficient(e); ok {
				b.WriteString(fmtnum(c))
				b.WriteString(v.name)
				return
			}
		}
		b.WriteByte('(')
		e.left.fmt(b, compact)
		b.WriteString(opstrs[e.kind])
		e.right.fmt(b, compact)
		b.WriteByte(')')
	default:
		panic("symbolic: cannot format expression kind " + e.kind.String())
	}
}

// coefficient matches c*v and v*c for a constant c and variable v.
func coefficient(e *Expr) (float64, Symbol, bool) {
	switch {
	case e.left.kind == KindConst && e.right.kind == KindVar:
		return e.left.val, e.right.sym, true
	case e.left.kind == KindVar && e.right.kind == KindConst:
		return e.right.val, e.left.sym, true
	}
	return 0, Symbol{}, false
}

func fmtnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// LaTeX renders e as LaTeX math. Unlike String, it only adds parentheses
// where the layout needs them.
func (e *Expr) LaTeX() string {
	var b strings.Builder
	e.latex(&b)
	return b.String()
}

func (e *Expr) latex(b *strings.Builder) {
	switch e.kind {
	case KindConst:
		b.WriteString(fmtnum(e.val))
	case KindVar:
		b.WriteString(e.sym.name)
	case KindNeg:
		b.WriteByte('-')
		e.left.latexGroup(b, e.left.additive())
	case KindAdd:
		e.left.latex(b)
		b.WriteString(" + ")
		e.right.latex(b)
	case KindSub:
		e.left.latex(b)
		b.WriteString(" - ")
		e.right.latexGroup(b, e.right.additive())
	case KindMul:
		e.left.latexGroup(b, e.left.additive())
		b.WriteString(` \cdot `)
		e.right.latexGroup(b, e.right.additive())
	case KindDiv:
		b.WriteString(`\frac{`)
		e.left.latex(b)
		b.WriteString("}{")
		e.right.latex(b)
		b.WriteByte('}')
	case KindPow:
		base := e.left.kind.binary() || e.left.kind == KindNeg || e.left.kind == KindConst && e.left.val < 0
		e.left.latexGroup(b, base)
		b.WriteString("^{")
		e.right.latex(b)
		b.WriteByte('}')
	default:
		panic("symbolic: cannot format expression kind " + e.kind.String())
	}
}

func (e *Expr) latexGroup(b *strings.Builder, paren bool) {
	if !paren {
		e.latex(b)
		return
	}
	b.WriteString(`\left(`)
	e.latex(b)
	b.WriteString(`\right)`)
}

func (e *Expr) additive() bool {
	return e.kind == KindAdd || e.kind == KindSub
}
