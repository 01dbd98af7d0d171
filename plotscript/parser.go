package plotscript

import (
	"io"
	"strings"
)

// Parser builds one rooted Expression from a token stream. The program
// must be a single parenthesized form.
type Parser struct {
	lexer *Lexer
}

func NewParser() *Parser {
	return &Parser{lexer: NewLexer(nil)}
}

func (p *Parser) Reset(stream io.Reader) {
	p.lexer.Reset(stream)
}

// ParseExpression consumes the whole stream. On failure no partial
// tree is returned.
func (p *Parser) ParseExpression() (Expression, error) {
	tok, err := p.lexer.GetNextToken()
	if err != nil {
		return Expression{}, err
	}
	switch tok.typ {
	case TokenEnd:
		return Expression{}, ErrEmptyInput
	case TokenOpen:
	case TokenClose:
		return Expression{}, ErrUnbalanced
	default:
		return Expression{}, ErrBareAtom
	}

	expr, err := p.ParseList()
	if err != nil {
		return Expression{}, err
	}

	tok, err = p.lexer.GetNextToken()
	if err != nil {
		return Expression{}, err
	}
	if tok.typ != TokenEnd {
		return Expression{}, ErrLeftover
	}
	return expr, nil
}

// ParseList is called just after an open paren has been consumed.
// A form whose first element is itself a form, ((f ...) a b), becomes
// (apply (f ...) (list a b)).
func (p *Parser) ParseList() (Expression, error) {
	tok, err := p.lexer.GetNextToken()
	if err != nil {
		return Expression{}, err
	}

	var head Atom
	var nestedHead *Expression
	switch tok.typ {
	case TokenEnd:
		return Expression{}, UnexpectedEnd
	case TokenClose:
		return Expression{}, ErrEmptyForm
	case TokenOpen:
		inner, err := p.ParseList()
		if err != nil {
			return Expression{}, err
		}
		nestedHead = &inner
	default:
		head, err = p.parseAtom(tok)
		if err != nil {
			return Expression{}, err
		}
	}

	var tail []Expression
	for {
		tok, err := p.lexer.GetNextToken()
		if err != nil {
			return Expression{}, err
		}
		switch tok.typ {
		case TokenEnd:
			return Expression{}, UnexpectedEnd
		case TokenClose:
			if nestedHead != nil {
				return MakeExpression(AtomSymbol{Name: "apply"}, *nestedHead, MakeList(tail...)), nil
			}
			return Expression{head: head, tail: tail}, nil
		case TokenOpen:
			child, err := p.ParseList()
			if err != nil {
				return Expression{}, err
			}
			tail = append(tail, child)
		default:
			a, err := p.parseAtom(tok)
			if err != nil {
				return Expression{}, err
			}
			tail = append(tail, Expression{head: a})
		}
	}
}

func (p *Parser) parseAtom(tok Token) (Atom, error) {
	a := MakeAtom(tok)
	if _, bad := a.(AtomNone); bad {
		return nil, ErrInvalidAtom
	}
	return a, nil
}

// Parse builds the tree for an already tokenized program.
func Parse(toks []Token) (Expression, bool) {
	p := &Parser{lexer: &Lexer{tokens: append([]Token(nil), toks...), done: true}}
	expr, err := p.ParseExpression()
	if err != nil {
		return Expression{}, false
	}
	return expr, true
}

// ParseString tokenizes and parses src, reporting why parsing failed.
func ParseString(src string) (Expression, error) {
	p := NewParser()
	p.Reset(strings.NewReader(src))
	return p.ParseExpression()
}
