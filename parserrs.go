package symbolic

import "strconv"

// InputError is an error caused by invalid input to Parse. Every error Parse
// returns for bad input implements InputError.
type InputError interface {
	error
	// Pos is the 1-based rune column of the token at fault.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)

// OperatorError reports an operator used where it has no meaning, such as
// * with nothing to its left.
type OperatorError struct {
	Col      int
	Operator string
	// Unary is true when the operator appeared in place of an operand.
	Unary bool
}

func (err *OperatorError) Error() string {
	arity := "binary"
	if err.Unary {
		arity = "unary"
	}
	return at(err.Col, "unknown "+arity+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int { return err.Col }

// BracketError reports a bracket without its partner, or a pair of brackets
// of different shapes.
type BracketError struct {
	Col int
	// Left is the open bracket, empty for a stray close bracket.
	Left string
	// Right is the close bracket found, empty if the input ended first.
	Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return at(err.Col, "close bracket "+err.Right+" with no open bracket")
	case err.Right == "":
		return at(err.Col, "open bracket "+err.Left+" with no close bracket")
	default:
		return at(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
	}
}

func (err *BracketError) Pos() int { return err.Col }

// SeparatorError reports a comma or semicolon that the parse options do not
// accept as the end of an expression.
type SeparatorError struct {
	Col int
	Sep string
}

func (err *SeparatorError) Error() string {
	return at(err.Col, "unexpected separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int { return err.Col }

// EmptyExpressionError reports a missing operand: empty input, "()", or an
// operator with nothing after it.
type EmptyExpressionError struct {
	Col int
	// End is the token where an operand was expected, empty at end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return at(err.Col, "no expression before "+strconv.Quote(err.End))
	case err.Col <= 1:
		return at(err.Col, "no expression")
	default:
		return at(err.Col, "no expression at end of input")
	}
}

func (err *EmptyExpressionError) Pos() int { return err.Col }

func at(col int, msg string) string {
	return "column " + strconv.Itoa(col) + ": " + msg
}
