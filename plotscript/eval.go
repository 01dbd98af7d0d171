package plotscript

import (
	"fortio.org/log"
)

var specialForms = map[string]bool{
	"begin":  true,
	"define": true,
	"lambda": true,
}

// maxCallDepth bounds nested lambda calls; without conditionals any
// recursive lambda would otherwise never return.
const maxCallDepth = 10000

func IsSpecialForm(name string) bool {
	return specialForms[name]
}

// Eval evaluates exp in env. The first error aborts the whole
// evaluation; defines that already ran are kept.
func (env *Environment) Eval(exp Expression) (Expression, error) {
	head := exp.Head()

	if len(exp.tail) == 0 && !isSymbolNamed(head, "list") {
		return env.handleLookup(head)
	}

	if name, ok := head.(AtomSymbol); ok {
		switch name.Name {
		case "begin":
			return env.handleBegin(exp)
		case "define":
			return env.handleDefine(exp)
		case "lambda":
			return env.handleLambda(exp)
		}
	}

	args := make([]Expression, 0, len(exp.tail))
	for _, child := range exp.tail {
		v, err := env.Eval(child)
		if err != nil {
			return Expression{}, err
		}
		args = append(args, v)
	}
	return env.apply(head, args)
}

func (env *Environment) handleLookup(head Atom) (Expression, error) {
	switch h := head.(type) {
	case AtomSymbol:
		if env.IsExp(h) {
			return env.GetExp(h), nil
		}
		if env.IsProc(h) {
			// a procedure name evaluates to itself; the call is deferred
			return Expression{head: h}, nil
		}
		return Expression{}, semErr("Error during evaluation: unknown symbol")
	case AtomNumber, AtomComplex, AtomString:
		return Expression{head: h}, nil
	}
	return Expression{}, semErr("Error during evaluation: Invalid type in terminal expression")
}

func (env *Environment) handleBegin(exp Expression) (Expression, error) {
	if len(exp.tail) == 0 {
		return Expression{}, semErr("Error during evaluation: zero arguments to begin")
	}
	log.LogVf("eval begin with %d forms", len(exp.tail))
	var result Expression
	var err error
	for _, child := range exp.tail {
		result, err = env.Eval(child)
		if err != nil {
			return Expression{}, err
		}
	}
	return result, nil
}

func (env *Environment) handleDefine(exp Expression) (Expression, error) {
	if len(exp.tail) != 2 {
		return Expression{}, semErr("Error during evaluation: invalid number of arguments to define")
	}
	sym, ok := exp.tail[0].Head().(AtomSymbol)
	if !ok || len(exp.tail[0].tail) != 0 {
		return Expression{}, semErr("Error during evaluation: first argument to define not symbol")
	}
	if IsSpecialForm(sym.Name) {
		return Expression{}, semErr("Error during evaluation: attempt to redefine a special-form")
	}
	if env.IsProc(sym) {
		return Expression{}, semErr("Error during evaluation: attempt to redefine a built-in procedure")
	}

	result, err := env.Eval(exp.tail[1])
	if err != nil {
		return Expression{}, err
	}

	if env.IsKnown(sym) {
		return Expression{}, semErr("Error during evaluation: attempt to redefine a previously defined symbol")
	}
	log.LogVf("eval define %s", sym.Name)
	if err := env.AddExp(sym, result, false); err != nil {
		return Expression{}, err
	}
	return result, nil
}

// handleLambda does not evaluate anything; the result pairs the
// parameter symbols with the unevaluated body.
func (env *Environment) handleLambda(exp Expression) (Expression, error) {
	if len(exp.tail) != 2 {
		return Expression{}, semErr("Error during evaluation: invalid number of arguments to lambda")
	}
	sig := exp.tail[0]
	params := make([]Expression, 0, len(sig.tail)+1)
	for _, p := range append([]Expression{{head: sig.Head()}}, sig.tail...) {
		if !p.IsHeadSymbol() || len(p.tail) != 0 {
			return Expression{}, semErr("Error during evaluation: lambda parameter not symbol")
		}
		params = append(params, Expression{head: p.Head()})
	}
	return MakeLambda(MakeList(params...), exp.tail[1]), nil
}

// apply dispatches a call whose arguments are already evaluated.
func (env *Environment) apply(op Atom, args []Expression) (Expression, error) {
	sym, ok := op.(AtomSymbol)
	if !ok {
		return Expression{}, semErr("Error during evaluation: procedure name not symbol")
	}

	b, name, found := env.resolveProc(sym.Name)
	if !found {
		return Expression{}, semErr("Error during evaluation: symbol does not name a procedure")
	}
	if b.kind == ExpressionBinding {
		return env.callLambda(b.exp, args)
	}
	log.LogVf("eval apply %s to %d args", name, len(args))
	return b.proc(env, name, args)
}

func (env *Environment) callLambda(lambda Expression, args []Expression) (Expression, error) {
	params := lambda.tail[0].tail
	if len(params) != len(args) {
		return Expression{}, semErr("Error during evaluation: lambda function called with incorrect number of args")
	}
	if env.depth >= maxCallDepth {
		return Expression{}, semErr("Error during evaluation: maximum call depth exceeded")
	}
	child := env.NewChild("lambda")
	for i, p := range params {
		if err := child.AddExp(p.Head(), args[i], true); err != nil {
			return Expression{}, err
		}
	}
	return child.Eval(lambda.tail[1])
}

// IsCallable reports whether proc is a lambda or a leaf symbol naming
// something env can call.
func (env *Environment) IsCallable(proc Expression) bool {
	if proc.IsLambda() {
		return true
	}
	if !proc.IsHeadSymbol() || len(proc.tail) != 0 || proc.IsList() {
		return false
	}
	name, _ := proc.SymbolName()
	_, _, ok := env.resolveProc(name)
	return ok
}

// Call invokes proc, a lambda value or a procedure symbol, on args.
func (env *Environment) Call(proc Expression, args []Expression) (Expression, error) {
	if proc.IsLambda() {
		return env.callLambda(proc, args)
	}
	return env.apply(proc.Head(), args)
}

// Arity is the lambda's parameter count, or -1 for built-ins.
func Arity(proc Expression) int {
	if proc.IsLambda() {
		return len(proc.tail[0].tail)
	}
	return -1
}
