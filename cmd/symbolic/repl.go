package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/symbolic"
)

const (
	prompt      = "> "
	historyFile = ".symbolic_history"
	replHelp    = `enter an expression to evaluate it, or a command:
  :let name = expr   bind a variable
  :vars              list bound variables
  :quit              exit`
)

// repl reads expressions from the terminal until EOF or :quit. Expressions
// whose variables are not all bound print in transformed form instead of as a
// number.
func repl(c *calc, verb string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		switch {
		case err == nil: // do nothing
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			fmt.Println()
			return nil
		default:
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if quit := command(c, line); quit {
				return nil
			}
			continue
		}
		a, err := symbolic.ParseString(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		a = c.transform(a)
		r, err := c.eval(a)
		switch {
		case err == nil:
			fmt.Printf(verb, r)
		case unbound(err):
			fmt.Println(a)
		default:
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// command runs a REPL command and reports whether the REPL should exit.
func command(c *calc, line string) bool {
	cmd, arg := line, ""
	if k := strings.IndexAny(line, " \t"); k >= 0 {
		cmd, arg = line[:k], strings.TrimSpace(line[k:])
	}
	switch cmd {
	case ":quit", ":q":
		return true
	case ":vars":
		for _, name := range c.bound() {
			fmt.Println(name)
		}
	case ":let":
		d := strings.SplitN(arg, "=", 2)
		if len(d) != 2 {
			fmt.Fprintln(os.Stderr, `usage: :let name = expr`)
			break
		}
		name := strings.TrimSpace(d[0])
		if err := c.let(name, d[1]); err != nil {
			fmt.Fprintf(os.Stderr, "setting %s: %v\n", name, err)
		}
	default:
		fmt.Fprintln(os.Stderr, replHelp)
	}
	return false
}
