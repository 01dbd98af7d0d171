package plotscript

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenTypeEmpty TokenType = iota
	TokenOpen
	TokenClose
	TokenQuote
	TokenPlain
	TokenEnd
)

type Token struct {
	typ TokenType
	str string
}

var EndTk = Token{typ: TokenEnd}

func (t Token) Type() TokenType {
	return t.typ
}

func (t Token) String() string {
	switch t.typ {
	case TokenOpen:
		return "("
	case TokenClose:
		return ")"
	case TokenEnd:
		return ""
	}
	return t.str
}

type LexerState int

const (
	LexerNormal  LexerState = iota
	LexerComment            // inside ; through end of line
	LexerQuote              // inside "..."
)

// Lexer turns a rune stream into Tokens. Quote mode captures every
// rune verbatim, including parens, semicolons and whitespace.
type Lexer struct {
	state   LexerState
	tokens  []Token
	buffer  *bytes.Buffer
	stream  io.RuneScanner
	linenum int
	done    bool
}

func NewLexer(stream io.Reader) *Lexer {
	lex := &Lexer{
		tokens:  make([]Token, 0, 10),
		buffer:  new(bytes.Buffer),
		state:   LexerNormal,
		linenum: 1,
	}
	lex.Reset(stream)
	return lex
}

func (lexer *Lexer) Linenum() int {
	return lexer.linenum
}

func (lex *Lexer) Reset(stream io.Reader) {
	lex.tokens = lex.tokens[:0]
	lex.state = LexerNormal
	lex.linenum = 1
	lex.done = false
	lex.buffer.Reset()
	if stream == nil {
		lex.stream = nil
		return
	}
	rs, ok := stream.(io.RuneScanner)
	if !ok {
		rs = bufio.NewReader(stream)
	}
	lex.stream = rs
}

func (lexer *Lexer) AppendToken(tok Token) {
	lexer.tokens = append(lexer.tokens, tok)
}

// dumpBuffer flushes any pending text as a single token. Text that
// began with a quote delimiter is a Quote token, everything else Plain.
func (lexer *Lexer) dumpBuffer() {
	if lexer.buffer.Len() == 0 {
		return
	}
	str := lexer.buffer.String()
	lexer.buffer.Reset()
	typ := TokenPlain
	if str[0] == '"' {
		typ = TokenQuote
	}
	lexer.AppendToken(Token{typ: typ, str: str})
}

func (lexer *Lexer) LexNextRune(r rune) {
	if r == '\n' {
		lexer.linenum++
	}

	switch lexer.state {
	case LexerComment:
		if r == '\n' {
			lexer.state = LexerNormal
		}
		return

	case LexerQuote:
		lexer.buffer.WriteRune(r)
		if r == '"' {
			lexer.dumpBuffer()
			lexer.state = LexerNormal
		}
		return
	}

	switch {
	case r == '(':
		lexer.dumpBuffer()
		lexer.AppendToken(Token{typ: TokenOpen})
	case r == ')':
		lexer.dumpBuffer()
		lexer.AppendToken(Token{typ: TokenClose})
	case r == ';':
		lexer.dumpBuffer()
		lexer.state = LexerComment
	case r == '"':
		lexer.dumpBuffer()
		lexer.buffer.WriteRune(r)
		lexer.state = LexerQuote
	case unicode.IsSpace(r):
		lexer.dumpBuffer()
	default:
		lexer.buffer.WriteRune(r)
	}
}

func (lexer *Lexer) PeekNextToken() (tok Token, err error) {
	for len(lexer.tokens) == 0 {
		if lexer.done || lexer.stream == nil {
			return EndTk, nil
		}
		r, _, err := lexer.stream.ReadRune()
		if err == io.EOF {
			// an unterminated quote is flushed as-is; the
			// parser decides whether that is acceptable.
			lexer.done = true
			lexer.dumpBuffer()
			continue
		}
		if err != nil {
			return EndTk, err
		}
		lexer.LexNextRune(r)
	}
	return lexer.tokens[0], nil
}

func (lexer *Lexer) GetNextToken() (tok Token, err error) {
	tok, err = lexer.PeekNextToken()
	if err != nil || tok.typ == TokenEnd {
		return EndTk, err
	}
	lexer.tokens = lexer.tokens[1:]
	return tok, nil
}

// Tokenize reads stream to the end and returns every token in order.
func Tokenize(stream io.Reader) ([]Token, error) {
	lex := NewLexer(stream)
	var toks []Token
	for {
		tok, err := lex.GetNextToken()
		if err != nil {
			return nil, err
		}
		if tok.typ == TokenEnd {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func TokenizeString(s string) ([]Token, error) {
	return Tokenize(strings.NewReader(s))
}
