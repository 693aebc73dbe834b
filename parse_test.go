package symbolic

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		b := binaryop(string(r))
		u := unaryop(string(r))
		if b.op == KindNone && u.op == KindNone {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestTermPrecMatchesMultiplication(t *testing.T) {
	if p := binaryop("*").prec; p != termprec.prec {
		t.Errorf("terms have prec %d but * has prec %d", termprec.prec, p)
	}
	if p := binaryop("×").prec; p != termprec.prec {
		t.Errorf("terms have prec %d but × has prec %d", termprec.prec, p)
	}
}

func TestParseTrees(t *testing.T) {
	x, y, z := Var("x"), Var("y"), Var("z")
	c := func(v float64) *Expr { return Const(v) }
	cases := []struct {
		name string
		src  string
		want *Expr
	}{
		{"num", "1", c(1)},
		{"frac", ".5", c(0.5)},
		{"exp", "1e3", c(1000)},
		{"inf", "inf", c(math.Inf(1))},
		{"infinity", "∞", c(math.Inf(1))},
		{"name", "x", x},
		{"dotted", "x.y_1", Var("x.y_1")},
		{"add", "x + y", Add(x, y)},
		{"sub", "x - y", Sub(x, y)},
		{"mul", "x * y", Mul(x, y)},
		{"times", "x × y", Mul(x, y)},
		{"div", "x / y", Div(x, y)},
		{"divide", "x ÷ y", Div(x, y)},
		{"pow", "x ^ y", Pow(x, y)},
		{"neg", "-x", Neg(x)},
		{"plus", "+x", x},
		{"plus-operand", "x + +y", Add(x, y)},
		{"neg-operand", "x - -y", Sub(x, Neg(y))},
		{"sum-left", "4 - 5 - 6", Sub(Sub(c(4), c(5)), c(6))},
		{"product-left", "4 / 5 / 6", Div(Div(c(4), c(5)), c(6))},
		{"pow-right", "4 ^ 3 ^ 2", Pow(c(4), Pow(c(3), c(2)))},
		{"precedence", "x + y * 3^2", Add(x, Mul(y, Pow(c(3), c(2))))},
		{"precedence-left", "x^2 * y + z", Add(Mul(Pow(x, c(2)), y), z)},
		{"mixed-product", "x × y ÷ z", Div(Mul(x, y), z)},
		{"neg-pow", "-2^2", Neg(Pow(c(2), c(2)))},
		{"pow-neg", "2^-1", Pow(c(2), Neg(c(1)))},
		{"neg-product", "-x * y", Mul(Neg(x), y)},
		{"parens", "(x + y) * z", Mul(Add(x, y), z)},
		{"brackets", "[x + y] * {z}", Mul(Add(x, y), z)},
		{"nested", "((x))", x},
		{"neg-group", "(-x)^2", Pow(Neg(x), c(2))},
		{"term", "2 x", Mul(c(2), x)},
		{"term-group", "2(x + 1)", Mul(c(2), Add(x, c(1)))},
		{"term-groups", "[x]{y}", Mul(x, y)},
		{"terms", "2 x y", Mul(c(2), Mul(x, y))},
		{"term-then-mul", "2 x * y", Mul(Mul(c(2), x), y)},
		{"pow-then-term", "x ^ 2 y", Mul(Pow(x, c(2)), y)},
		{"term-then-pow", "x y ^ 2", Mul(x, Pow(y, c(2)))},
		{"term-then-add", "2 x + 1", Add(Mul(c(2), x), c(1))},
		{"spaces", " \t x\n+\ny ", Add(x, y)},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if !got.Equal(c.want) {
				t.Errorf("%q parsed wrong: want %v, got %v", c.src, c.want, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		res  []string
		excl []string
	}{
		{"empty", "", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`}, []string{`(?i)\bend\b`}},
		{"spaces", "  ", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`}, nil},
		{"emptyparen", "()", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `\)`}, nil},
		{"emptyterm", "x()", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `\)`}, nil},
		{"emptyoperand", "x*", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"emptyunary", "x*-", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"emptysum", "1 +", new(EmptyExpressionError), []string{`(?i)\bend\b`}, nil},
		{"left", "(x", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"right", "x)", new(BracketError), []string{`(?i)\bbracket\b`, `\)`}, nil},
		{"mismatch", "(x]", new(BracketError), []string{`(?i)\bbracket\b`, `\(`, `]`}, nil},
		{"mismatch-mul", "x*(y]", new(BracketError), []string{`(?i)\bbracket\b`, `\(`, `]`}, nil},
		{"mismatch-terms", "x(y]", new(BracketError), []string{`(?i)\bbracket\b`, `\(`, `]`}, nil},
		{"nonunary", "*x", new(OperatorError), []string{`(?i)\bunary\b`, `(?i)\bop`, `\*`}, nil},
		{"nonunary-pow", "x^^y", new(OperatorError), []string{`(?i)\bunary\b`, `\^`}, nil},
		{"sep", "x, y", new(SeparatorError), []string{`","`}, nil},
		{"semi", "x; y", new(SeparatorError), []string{`";"`}, nil},
		{"sepbrackets", "(x, y)", new(SeparatorError), []string{`","`}, nil},
		{"lexer", "2^(-$)", new(LexError), []string{`\$`}, nil},
		{"number", "2x", new(LexError), []string{`(?i)\bnumber\b`}, nil},

		{"op-paren", "(b*)", new(EmptyExpressionError), []string{`\)`}, nil},
		{"haskell", "(+)", new(EmptyExpressionError), []string{`\)`}, nil},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
			for _, re := range c.excl {
				if regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q matches %s", msg, re)
				}
			}
		})
	}
}

func TestParseErrorPos(t *testing.T) {
	cases := []struct {
		src string
		pos int
	}{
		{"", 1},
		{"1 +", 4},
		{"x)", 2},
		{"(x", 3},
		{"x, y", 2},
		{"1 * *", 5},
	}
	for _, c := range cases {
		_, err := ParseString(c.src)
		ie, ok := err.(InputError)
		if !ok {
			t.Errorf("%q gave non-input error %v", c.src, err)
			continue
		}
		if p := ie.Pos(); p != c.pos {
			t.Errorf("%q gave error at %d, want %d: %v", c.src, p, c.pos, err)
		}
	}
}

func TestStopOn(t *testing.T) {
	x, y := Var("x"), Var("y")
	cases := []struct {
		name string
		src  string
		stop string
		want []*Expr
		errs []error
	}{
		{"newline", "x\ny", "\n", []*Expr{x, y}, nil},
		{"newline-sum", "x + 1\ny", "\n", []*Expr{Add(x, Const(1)), y}, nil},
		{"comma", "x,y", ",", []*Expr{x, y}, nil},
		{"semi", "x;y", ";", []*Expr{x, y}, nil},
		{"num", "1\n1", "\n", []*Expr{Const(1), Const(1)}, nil},
		{"multinl", "x\n\ny", "\n", []*Expr{x, y}, nil},
		{"repeated-stop", "x\ty\nx", "\t\n\t\n", []*Expr{x, y, x}, nil},
		{"after-op", "x +\ny", "\n", []*Expr{Add(x, y)}, nil},
		{"in-brackets", "(x\n+ y)\nx", "\n", []*Expr{Add(x, y), x}, nil},
		{"start,", ",", ",", []*Expr{nil, nil}, []error{new(EmptyExpressionError), new(EmptyExpressionError)}},
		{"start;", ";", ";", []*Expr{nil, nil}, []error{new(EmptyExpressionError), new(EmptyExpressionError)}},
		{"sep-in-brackets", "(x, y)", ",", []*Expr{nil}, []error{new(SeparatorError)}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			for i, want := range c.want {
				a, err := Parse(src, StopOn([]rune(c.stop)...))
				if err != nil {
					switch {
					case i >= len(c.errs), c.errs[i] == nil:
						t.Errorf("%q iter %d didn't parse: %v", c.src, i, err)
					case reflect.TypeOf(err) != reflect.TypeOf(c.errs[i]):
						t.Errorf("%q iter %d gave wrong error: want %T, got %#v", c.src, i, c.errs[i], err)
					}
					continue
				}
				if !a.Equal(want) {
					t.Errorf("%q iter %d: want %v, got %v", c.src, i, want, a)
				}
			}
		})
	}
}

func TestStopOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	StopOn('x')
}

func TestStopOnDuplicates(t *testing.T) {
	o := StopOn('\t', '\n', '\t', ',', '\n', ',').(*eofopt)
	if o.ws != "\t\n" || !o.c || o.s {
		t.Errorf("wrong stop set: %+v", *o)
	}
}

func TestStopOnReset(t *testing.T) {
	// A later StopOn replaces an earlier one.
	_, err := ParseString("x, y", StopOn(','), StopOn())
	if _, ok := err.(*SeparatorError); !ok {
		t.Errorf("wrong error: want *SeparatorError, got %#v", err)
	}
}

func TestMustParse(t *testing.T) {
	if e := MustParse("x + 1"); !e.Equal(Add(Var("x"), Const(1))) {
		t.Errorf("wrong parse: %v", e)
	}
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	MustParse("x +")
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "w^x*y+z+a*b^c"},
		{"descasc-parens", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c"},
		{"ascdesc-parens", "w+((x*(y^(z^a)))*b)+c"},
		{"descasc-nums", "1^1.1*1.1e1+1.1e-1+.1*inf^∞"},
		{"ascdesc-nums", "1+1.1*1.1e1^1.1e-1^.1*inf+∞"},
		{"terms", "2 x y (z + 1)"},
	}
	for _, c := range cases {
		c := c
		b.Run(c.name, func(b *testing.B) {
			r := strings.NewReader(c.src)
			for i := 0; i < b.N; i++ {
				r.Reset(c.src)
				Parse(r)
			}
		})
	}
}
