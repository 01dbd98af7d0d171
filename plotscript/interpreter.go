package plotscript

import (
	"io"
	"strings"

	"fortio.org/log"
)

// Interpreter pairs a parser with one persistent Environment. It is
// not safe for concurrent use; Kernel gives it a goroutine of its own.
type Interpreter struct {
	parser *Parser
	env    *Environment
	ast    Expression
	parsed bool
}

func NewInterpreter() *Interpreter {
	return &Interpreter{
		parser: NewParser(),
		env:    NewEnvironment(),
	}
}

func (interp *Interpreter) Env() *Environment {
	return interp.env
}

// ParseStream reads a whole program. It reports false, keeping no
// partial tree, when the text is not exactly one parenthesized form.
func (interp *Interpreter) ParseStream(stream io.Reader) bool {
	interp.parser.Reset(stream)
	ast, err := interp.parser.ParseExpression()
	if err != nil {
		log.LogVf("parse failed: %v", err)
		interp.ast = Expression{}
		interp.parsed = false
		return false
	}
	interp.ast = ast
	interp.parsed = true
	return true
}

// Evaluate runs the most recently parsed program.
func (interp *Interpreter) Evaluate() (Expression, error) {
	if !interp.parsed {
		return Expression{}, ErrNoProgram
	}
	return interp.env.Eval(interp.ast)
}

// EvalString parses and evaluates src in one step.
func (interp *Interpreter) EvalString(src string) (Expression, error) {
	if !interp.ParseStream(strings.NewReader(src)) {
		return Expression{}, ErrParse
	}
	return interp.Evaluate()
}

// Reset drops every user definition.
func (interp *Interpreter) Reset() {
	interp.env.Reset()
	interp.ast = Expression{}
	interp.parsed = false
}
