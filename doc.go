// Package symbolic implements immutable scalar expression trees with numeric
// evaluation, algebraic simplification, and distributive expansion.
//
// Trees are built from constants, variables, and the operators + - * / ^ and
// unary negation, either with the constructors in this package or by parsing
// text. An *Expr is never modified once built, so trees and subtrees may be
// shared freely, including between goroutines.
//
//	x, y := symbolic.Var("x"), symbolic.Var("y")
//	e := x.Add(y.Mul(symbolic.Num(3).Pow(symbolic.Num(2))))
//	v, err := e.Eval(symbolic.Bindings(map[string]float64{"x": 1, "y": 2}))
//	// v == 19
//
// Simplify and Expand are pure rewrites that never consult variable values.
// Simplify makes a single bottom-up pass; some reductions only appear after a
// second pass, so use SimplifyFully to iterate to a fixed point.
package symbolic
