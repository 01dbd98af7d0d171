package plotscript

import (
	"strings"
)

// Expression is both the parse tree and the runtime value: a head
// Atom, an ordered tail, and a property list used for render
// annotations. The zero Expression is the None value.
type Expression struct {
	head  Atom
	tail  []Expression
	props map[string]Expression
}

func MakeExpression(head Atom, tail ...Expression) Expression {
	return Expression{head: head, tail: tail}
}

func MakeNumber(f float64) Expression {
	return Expression{head: AtomNumber{Val: f}}
}

func MakeComplex(c complex128) Expression {
	return Expression{head: AtomComplex{Val: c}}
}

func MakeSymbol(name string) Expression {
	return Expression{head: AtomSymbol{Name: name}}
}

// MakeString wraps s in the quote delimiters a string literal carries.
func MakeString(s string) Expression {
	return Expression{head: AtomString{S: `"` + s + `"`}}
}

func MakeList(items ...Expression) Expression {
	return Expression{head: AtomSymbol{Name: "list"}, tail: items}
}

// MakeLambda pairs a list of parameter symbols with an unevaluated body.
func MakeLambda(params Expression, body Expression) Expression {
	return Expression{head: AtomSymbol{Name: "lambda"}, tail: []Expression{params, body}}
}

func (e Expression) Head() Atom {
	if e.head == nil {
		return AtomNone{}
	}
	return e.head
}

// Tail returns the children; callers must not modify the slice.
func (e Expression) Tail() []Expression {
	return e.tail
}

func (e Expression) Len() int {
	return len(e.tail)
}

func (e Expression) IsNone() bool {
	_, ok := e.Head().(AtomNone)
	return ok && len(e.tail) == 0
}

func (e Expression) IsHeadNumber() bool {
	_, ok := e.Head().(AtomNumber)
	return ok
}

func (e Expression) IsHeadComplex() bool {
	_, ok := e.Head().(AtomComplex)
	return ok
}

func (e Expression) IsHeadSymbol() bool {
	_, ok := e.Head().(AtomSymbol)
	return ok
}

func (e Expression) IsHeadString() bool {
	_, ok := e.Head().(AtomString)
	return ok
}

func (e Expression) IsList() bool {
	return isSymbolNamed(e.Head(), "list")
}

func (e Expression) IsLambda() bool {
	return isSymbolNamed(e.Head(), "lambda") && len(e.tail) == 2
}

// IsLeaf reports a bare atom with no children, other than the empty list.
func (e Expression) IsLeaf() bool {
	return len(e.tail) == 0 && !e.IsList()
}

// AsNumber returns the real payload when the head is a Number.
func (e Expression) AsNumber() (float64, bool) {
	n, ok := e.Head().(AtomNumber)
	return n.Val, ok
}

// AsComplex promotes a Number head to complex; ok is false for
// anything non-numeric.
func (e Expression) AsComplex() (complex128, bool) {
	switch h := e.Head().(type) {
	case AtomNumber:
		return complex(h.Val, 0), true
	case AtomComplex:
		return h.Val, true
	}
	return 0, false
}

func (e Expression) SymbolName() (string, bool) {
	s, ok := e.Head().(AtomSymbol)
	return s.Name, ok
}

// Equal compares heads and tails recursively. Properties are ignored.
func (e Expression) Equal(o Expression) bool {
	if !AtomEqual(e.Head(), o.Head()) {
		return false
	}
	if len(e.tail) != len(o.tail) {
		return false
	}
	for i := range e.tail {
		if !e.tail[i].Equal(o.tail[i]) {
			return false
		}
	}
	return true
}

// String gives the display form: "NONE" for no value, "(re,im)" for a
// complex, otherwise a parenthesized head and children with the head
// omitted for lists and lambdas.
func (e Expression) String() string {
	var sb strings.Builder
	e.display(&sb)
	return sb.String()
}

func (e Expression) display(sb *strings.Builder) {
	if e.IsNone() {
		sb.WriteString("NONE")
		return
	}
	if e.IsHeadComplex() {
		sb.WriteString(e.Head().String())
		for _, c := range e.tail {
			c.display(sb)
		}
		return
	}
	sb.WriteByte('(')
	if !isSymbolNamed(e.Head(), "list") && !isSymbolNamed(e.Head(), "lambda") {
		sb.WriteString(e.Head().String())
		if len(e.tail) > 0 {
			sb.WriteByte(' ')
		}
	}
	for i, c := range e.tail {
		if i > 0 {
			sb.WriteByte(' ')
		}
		c.display(sb)
	}
	sb.WriteByte(')')
}

// Program renders e as source text which evaluates back to a value
// equal to e. Properties are not rendered.
func (e Expression) Program() string {
	var sb strings.Builder
	if e.IsLeaf() && !e.IsHeadComplex() {
		sb.WriteByte('(')
		e.program(&sb)
		sb.WriteByte(')')
		return sb.String()
	}
	e.program(&sb)
	return sb.String()
}

func (e Expression) program(sb *strings.Builder) {
	switch h := e.Head().(type) {
	case AtomComplex:
		if len(e.tail) == 0 {
			sb.WriteString("(+ " + formatNumber(real(h.Val)) + " (* " + formatNumber(imag(h.Val)) + " I))")
			return
		}
	case AtomNone:
		if len(e.tail) == 0 {
			sb.WriteString("NONE")
			return
		}
	}
	if len(e.tail) == 0 && !e.IsList() {
		sb.WriteString(e.Head().String())
		return
	}
	if e.IsLambda() {
		sb.WriteString("(lambda (")
		for i, p := range e.tail[0].tail {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.Head().String())
		}
		sb.WriteString(") ")
		e.tail[1].program(sb)
		sb.WriteByte(')')
		return
	}
	sb.WriteByte('(')
	sb.WriteString(e.Head().String())
	for _, c := range e.tail {
		sb.WriteByte(' ')
		c.program(sb)
	}
	sb.WriteByte(')')
}
