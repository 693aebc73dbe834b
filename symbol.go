package symbolic

import "strconv"

// Symbol names a variable. Symbols are compared by name, so any two Symbols
// with the same name are interchangeable, including as map keys.
type Symbol struct {
	name string
}

// NewSymbol returns the symbol with the given name.
func NewSymbol(name string) Symbol {
	return Symbol{name: name}
}

// Name returns the symbol's name.
func (s Symbol) Name() string {
	return s.name
}

func (s Symbol) String() string {
	return s.name
}

// GoString quotes the name so that empty and whitespace names stay visible
// in %#v output.
func (s Symbol) GoString() string {
	return "symbolic.NewSymbol(" + strconv.Quote(s.name) + ")"
}
