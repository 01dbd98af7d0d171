package plotscript

import (
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func tokenStrings(toks []Token) []string {
	s := make([]string, len(toks))
	for i, t := range toks {
		s[i] = t.String()
	}
	return s
}

func Test001LexerSplitsOnParensAndSpace(t *testing.T) {

	cv.Convey(`Given (+ 1 2), the lexer should produce an open, three plain tokens and a close`, t, func() {
		toks, err := TokenizeString("(+ 1 2)")
		panicOn(err)
		cv.So(tokenStrings(toks), cv.ShouldResemble, []string{"(", "+", "1", "2", ")"})
		cv.So(toks[0].Type(), cv.ShouldEqual, TokenOpen)
		cv.So(toks[1].Type(), cv.ShouldEqual, TokenPlain)
		cv.So(toks[4].Type(), cv.ShouldEqual, TokenClose)

		toks, err = TokenizeString("(begin(define a 1)(a))")
		panicOn(err)
		cv.So(len(toks), cv.ShouldEqual, 11)
	})
}

func Test002LexerKeepsStringLiteralsWhole(t *testing.T) {

	cv.Convey(`Given a string literal holding parens, a semicolon and spaces, it should come back as one quote token with its delimiters`, t, func() {
		toks, err := TokenizeString(`(define x "a (b) ; c")`)
		panicOn(err)
		cv.So(len(toks), cv.ShouldEqual, 5)
		cv.So(toks[3].Type(), cv.ShouldEqual, TokenQuote)
		cv.So(toks[3].String(), cv.ShouldEqual, `"a (b) ; c"`)
	})

	cv.Convey(`A quote directly after plain text starts a new token`, t, func() {
		toks, err := TokenizeString(`(f abc"def")`)
		panicOn(err)
		cv.So(tokenStrings(toks), cv.ShouldResemble, []string{"(", "f", "abc", `"def"`, ")"})
	})
}

func Test003LexerSkipsComments(t *testing.T) {

	cv.Convey(`Given a comment with a paren in it, the comment should be dropped through end of line`, t, func() {
		toks, err := TokenizeString("(+ 1 ; comment (\n 2)")
		panicOn(err)
		cv.So(tokenStrings(toks), cv.ShouldResemble, []string{"(", "+", "1", "2", ")"})

		toks, err = TokenizeString("(+ 1 2);trailing")
		panicOn(err)
		cv.So(len(toks), cv.ShouldEqual, 5)
	})
}

func Test004LexerCountsLines(t *testing.T) {

	cv.Convey(`After lexing three lines the lexer should report line 3`, t, func() {
		lex := NewLexer(nil)
		lex.Reset(stringsReader("(begin\n(define a 1)\n(a))"))
		for {
			tok, err := lex.GetNextToken()
			panicOn(err)
			if tok.Type() == TokenEnd {
				break
			}
		}
		cv.So(lex.Linenum(), cv.ShouldEqual, 3)
	})
}

func Test005ReplContinuationDetection(t *testing.T) {

	cv.Convey(`needsMoreInput should ask for more only for an open form or an unterminated string`, t, func() {
		cv.So(needsMoreInput("(begin (define a 1)"), cv.ShouldBeTrue)
		cv.So(needsMoreInput(`(define s "abc`), cv.ShouldBeTrue)
		cv.So(needsMoreInput("(+ 1 2)"), cv.ShouldBeFalse)
		cv.So(needsMoreInput("(+ 1 2) ; ("), cv.ShouldBeFalse)
		cv.So(needsMoreInput(`(define s "(")`), cv.ShouldBeFalse)
		cv.So(needsMoreInput(".quit"), cv.ShouldBeFalse)
	})
}
