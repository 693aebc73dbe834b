package symbolic

import (
	"io"
	"strings"
)

// Expr = num | name | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr | Expr Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr

// Parse reads an expression from src. The given options are applied in order.
//
// Numbers are decimal with an optional fraction and exponent, or inf, Inf, or
// ∞. Names start with a letter or underscore and continue with letters,
// digits, underscores, and dots. ^ binds tightest and groups to the right,
// then unary + and -, then multiplication and division, then addition and
// subtraction. Terms written next to each other are multiplied, so "2 x" and
// "2(x + 1)" are products. Unary plus adds no node to the tree.
//
// Errors resulting from invalid input implement InputError.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	e, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	case tokenSep:
		switch {
		case p.ceof && tok.text == ",":
		case p.seof && tok.text == ";":
		default:
			return nil, itShouldNotHaveEndedThisWay(tok, -1)
		}
		if e == nil {
			return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
		}
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	return e, nil
}

// ParseString parses an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// MustParse parses an expression from a string and panics if it is invalid.
// It is meant for expressions written into programs.
func MustParse(src string) *Expr {
	e, err := ParseString(src)
	if err != nil {
		panic("symbolic: MustParse(" + src + "): " + err.Error())
	}
	return e
}

// parseterm parses terms joined by operators more binding than until. If
// there is no error, then parseterm pushes the last token it scans, including
// EOF. If the input is an empty subexpression, the result is nil with no
// error; callers must create an error where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*Expr, error) {
	e, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.eofws())
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent, tokenOpen:
			// Juxtaposition is multiplication:
			// (parsed) x -> (parsed) * (x)
			// (parsed) x^(expr) -> (parsed) * (x^(expr))
			// a^(parsed) x -> (a^(parsed)) * (x)
			scan.push(tok)
			if !termprec.moreBinding(until) {
				return e, nil
			}
			rhs, err := parseterm(scan, p, termprec)
			if err != nil {
				return nil, err
			}
			e = binop(KindMul, e, rhs)
		case tokenOp:
			prec := binaryop(tok.text)
			if prec.op == KindNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return e, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			e = binop(prec.op, e, rhs)
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return e, nil
		default:
			panic("symbolic: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx, until operator) (*Expr, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return Const(tok.val), nil
	case tokenIdent:
		return Var(tok.text), nil
	case tokenOp:
		prec := unaryop(tok.text)
		if prec.op == KindNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the outer operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		if prec.op == KindNeg {
			return neg(rhs), nil
		}
		return rhs, nil
	case tokenOpen:
		match := rightbracket(tok.text)
		p.depth++
		rhs, err := parseterm(scan, p, exprprec)
		p.depth--
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != closebrackets[match] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return rhs, nil
	case tokenClose:
		// Let the caller decide whether an empty group is an error.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		if p.depth == 0 && (p.ceof && tok.text == "," || p.seof && tok.text == ";") {
			scan.push(tok)
			return nil, nil
		}
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		if until != exprprec {
			// The caller reports the empty operand.
			scan.push(tok)
			return nil, nil
		}
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("symbolic: unknown token: " + tok.String())
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	for i, b := range openbrackets {
		if b == left {
			return i
		}
	}
	panic("symbolic: invalid bracket " + left)
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket index that the
// expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("symbolic: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op Kind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binaryop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of KindNone.
func binaryop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, KindAdd}
	case "-":
		return operator{1, false, KindSub}
	case "*", "×":
		return operator{5, false, KindMul}
	case "/", "÷":
		return operator{5, false, KindDiv}
	case "^":
		return operator{15, true, KindPow}
	default:
		return operator{}
	}
}

// unaryop gets a unary operator for a token string. Unary plus has op KindConst
// as a placeholder since it adds no node. If there is no such unary operator,
// then the result has an op of KindNone.
func unaryop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, KindConst}
	case "-":
		return operator{10, true, KindNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence for implicit multiplication. Its prec
	// matches that of explicit multiplication.
	termprec = operator{5, true, KindMul}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, KindNone}
)
