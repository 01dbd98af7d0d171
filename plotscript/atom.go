package plotscript

import (
	"math"
	"regexp"
	"strconv"
)

// Atom is the leaf value carried at the head of every Expression.
// Exactly one of AtomNone, AtomNumber, AtomComplex, AtomSymbol or
// AtomString.
type Atom interface {
	isAtom()
	String() string
}

type AtomNone struct{}

type AtomNumber struct {
	Val float64
}

type AtomComplex struct {
	Val complex128
}

type AtomSymbol struct {
	Name string
}

// AtomString keeps its surrounding double quotes in S.
type AtomString struct {
	S string
}

func (AtomNone) isAtom()    {}
func (AtomNumber) isAtom()  {}
func (AtomComplex) isAtom() {}
func (AtomSymbol) isAtom()  {}
func (AtomString) isAtom()  {}

func (AtomNone) String() string { return "NONE" }

func (a AtomNumber) String() string { return formatNumber(a.Val) }

func (a AtomComplex) String() string {
	return "(" + formatNumber(real(a.Val)) + "," + formatNumber(imag(a.Val)) + ")"
}

func (a AtomSymbol) String() string { return a.Name }

func (a AtomString) String() string { return a.S }

// Unquoted returns the literal text without its delimiters.
func (a AtomString) Unquoted() string {
	s := a.S
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	return s
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// NumberRegex accepts the decimal forms a numeric literal may take;
// words like inf and nan stay symbols.
var NumberRegex = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// MakeAtom classifies a Plain or Quote token. A token that looks
// numeric but does not parse yields AtomNone, which the parser rejects.
func MakeAtom(tok Token) Atom {
	str := tok.str
	if len(str) == 0 {
		return AtomNone{}
	}
	if NumberRegex.MatchString(str) {
		f, err := strconv.ParseFloat(str, 64)
		if err == nil {
			return AtomNumber{Val: f}
		}
	}
	if tok.typ == TokenQuote {
		return AtomString{S: str}
	}
	if !isDigit(str[0]) {
		return AtomSymbol{Name: str}
	}
	return AtomNone{}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// numbersEqual compares within a few ulps of the larger magnitude.
func numbersEqual(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= 4*epsilon*scale
}

const epsilon = 2.220446049250313e-16

// AtomEqual is true when a and b are the same variant with equal
// payloads. Numeric payloads compare within epsilon.
func AtomEqual(a, b Atom) bool {
	if a == nil {
		a = AtomNone{}
	}
	if b == nil {
		b = AtomNone{}
	}
	switch x := a.(type) {
	case AtomNone:
		_, ok := b.(AtomNone)
		return ok
	case AtomNumber:
		y, ok := b.(AtomNumber)
		return ok && numbersEqual(x.Val, y.Val)
	case AtomComplex:
		y, ok := b.(AtomComplex)
		return ok && numbersEqual(real(x.Val), real(y.Val)) &&
			numbersEqual(imag(x.Val), imag(y.Val))
	case AtomSymbol:
		y, ok := b.(AtomSymbol)
		return ok && x.Name == y.Name
	case AtomString:
		y, ok := b.(AtomString)
		return ok && x.S == y.S
	}
	return false
}

func isSymbolNamed(a Atom, name string) bool {
	s, ok := a.(AtomSymbol)
	return ok && s.Name == name
}
