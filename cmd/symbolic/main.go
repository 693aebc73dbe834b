package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/zephyrtronium/symbolic"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		with         [][2]string
		nl, echo     bool
		interactive  bool
		prec, places int
		c            calc
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", 0, "precision of calculations in bits (0 for float64)")
	flag.IntVar(&places, "round", symbolic.DefaultDecimals, "decimal places for float64 results (-1 to disable)")
	flag.BoolVar(&c.expand, "expand", false, "distribute products over sums before evaluating")
	flag.BoolVar(&c.simplify, "simplify", false, "simplify expressions once before evaluating")
	flag.BoolVar(&c.fixpoint, "fixpoint", false, "simplify expressions until they stop changing")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print expression trees")
	flag.BoolVar(&interactive, "i", false, "read expressions interactively")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must not be negative", prec)
	}
	c.init(uint(prec), places)
	for _, d := range with {
		if err := c.let(d[0], d[1]); err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
	}
	verb += "\n"

	if interactive {
		if err := repl(&c, verb); err != nil {
			log.Fatal(err)
		}
		return
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	var p []*symbolic.Expr
	var opts []symbolic.ParseOption
	if nl {
		opts = append(opts, symbolic.StopOn('\n'))
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := symbolic.Parse(in, opts...)
			if err != nil {
				log.Fatal(err)
			}
			p = append(p, a)
		}
	}

	for _, a := range p {
		a = c.transform(a)
		if echo {
			fmt.Printf("%v : ", a)
		}
		r, err := c.eval(a)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf(verb, r)
	}
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}

// calc holds the evaluation settings shared by batch and interactive modes.
type calc struct {
	expand, simplify, fixpoint bool

	// ctx is the arbitrary-precision context, or nil to use float64.
	ctx  *symbolic.Context
	vars map[symbolic.Symbol]float64
	opts []symbolic.EvalOption
}

func (c *calc) init(prec uint, places int) {
	c.vars = make(map[symbolic.Symbol]float64)
	c.opts = []symbolic.EvalOption{symbolic.Decimals(places)}
	if prec > 0 {
		c.ctx = symbolic.NewContext(symbolic.Prec(prec))
	}
}

// let evaluates src and binds the result to name.
func (c *calc) let(name, src string) error {
	a, err := symbolic.ParseString(src)
	if err != nil {
		return err
	}
	if c.ctx != nil {
		tmp := c.ctx.Clone()
		r := tmp.Eval(a)
		if r == nil {
			return tmp.Err()
		}
		c.ctx.Set(name, r)
		return nil
	}
	r, err := a.Eval(c.vars, c.opts...)
	if err != nil {
		return err
	}
	c.vars[symbolic.NewSymbol(name)] = r
	return nil
}

func (c *calc) transform(a *symbolic.Expr) *symbolic.Expr {
	if c.expand {
		a = a.Expand()
	}
	switch {
	case c.fixpoint:
		a = a.SimplifyFully()
	case c.simplify:
		a = a.Simplify()
	}
	return a
}

// eval returns a *big.Float or float64 depending on the configured
// precision.
func (c *calc) eval(a *symbolic.Expr) (interface{}, error) {
	if c.ctx != nil {
		r := c.ctx.Eval(a)
		if r == nil {
			return nil, c.ctx.Err()
		}
		return r, nil
	}
	return a.Eval(c.vars, c.opts...)
}

// bound lists the names of the variables with values, sorted.
func (c *calc) bound() []string {
	if c.ctx != nil {
		return c.ctx.Names()
	}
	names := make([]string, 0, len(c.vars))
	for k := range c.vars {
		names = append(names, k.Name())
	}
	slices.Sort(names)
	return names
}

// unbound reports whether err is only due to a variable without a value, in
// which case the expression itself is the most useful result.
func unbound(err error) bool {
	var nf *symbolic.SymbolNotFoundError
	return errors.As(err, &nf)
}
