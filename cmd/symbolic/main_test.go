package main

import (
	"errors"
	"math/big"
	"testing"

	"github.com/zephyrtronium/symbolic"
)

func TestCalcFloat(t *testing.T) {
	var c calc
	c.init(0, symbolic.DefaultDecimals)
	if err := c.let("x", "2"); err != nil {
		t.Fatal(err)
	}
	if err := c.let("y", "x + 1"); err != nil {
		t.Fatal(err)
	}
	r, err := c.eval(symbolic.MustParse("x y"))
	if err != nil {
		t.Fatal(err)
	}
	if r != 6.0 {
		t.Errorf("wrong result: want 6, got %v", r)
	}
	if names := c.bound(); len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("wrong bound names: %v", names)
	}
	_, err = c.eval(symbolic.MustParse("z"))
	if !unbound(err) {
		t.Errorf("missing variable not reported as unbound: %v", err)
	}
	_, err = c.eval(symbolic.MustParse("(-1)^0.5"))
	if err == nil || unbound(err) {
		t.Errorf("wrong error from undefined power: %v", err)
	}
}

func TestCalcBig(t *testing.T) {
	var c calc
	c.init(128, -1)
	if err := c.let("x", "3"); err != nil {
		t.Fatal(err)
	}
	if err := c.let("bad", "y"); err == nil {
		t.Errorf("no error binding to a missing variable")
	}
	r, err := c.eval(symbolic.MustParse("x ^ 2"))
	if err != nil {
		t.Fatal(err)
	}
	f, ok := r.(*big.Float)
	if !ok {
		t.Fatalf("wrong result type %T", r)
	}
	if v, _ := f.Float64(); v != 9 {
		t.Errorf("wrong result: want 9, got %v", v)
	}
	if names := c.bound(); len(names) != 1 || names[0] != "x" {
		t.Errorf("wrong bound names: %v", names)
	}
	_, err = c.eval(symbolic.MustParse("0 / 0"))
	if !errors.Is(err, symbolic.ErrUndefinedOperation) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestCalcTransform(t *testing.T) {
	cases := []struct {
		name                       string
		expand, simplify, fixpoint bool
		src                        string
		want                       string
	}{
		{"none", false, false, false, "x + x", "(x + x)"},
		{"simplify", false, true, false, "(x^2)^3", "(x ^ (2 * 3))"},
		{"fixpoint", false, false, true, "(x^2)^3", "(x ^ 6)"},
		{"expand", true, false, false, "2 (x + 1)", "((x * 2) + (1 * 2))"},
		{"expand-simplify", true, true, false, "2 (x + 1)", "((x * 2) + 2)"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			k := calc{expand: c.expand, simplify: c.simplify, fixpoint: c.fixpoint}
			if got := k.transform(symbolic.MustParse(c.src)).String(); got != c.want {
				t.Errorf("wrong transform of %s: want %s, got %s", c.src, c.want, got)
			}
		})
	}
}
