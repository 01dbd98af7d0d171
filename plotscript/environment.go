package plotscript

import (
	"math"
)

// Procedure is the single shape every built-in takes. name is the
// symbol it was invoked under; env is the calling environment, which
// most procedures ignore.
type Procedure func(env *Environment, name string, args []Expression) (Expression, error)

// Environment maps symbols to values and built-in procedures. The
// global scope holds the constants and built-ins; each lambda call
// evaluates in a child Environment.
type Environment struct {
	scope  *Scope
	global *Scope
	depth  int
}

var (
	ConstPi = math.Atan2(0, -1)
	ConstE  = math.Exp(1)
	ConstI  = complex(0, 1)
)

func NewEnvironment() *Environment {
	env := &Environment{}
	env.Reset()
	return env
}

// Reset discards every binding and reinstalls the constants and
// built-in procedures.
func (env *Environment) Reset() {
	g := NewGlobalScope()
	g.Bind("pi", binding{kind: ExpressionBinding, exp: MakeNumber(ConstPi)})
	g.Bind("e", binding{kind: ExpressionBinding, exp: MakeNumber(ConstE)})
	g.Bind("I", binding{kind: ExpressionBinding, exp: MakeComplex(ConstI)})
	for name, proc := range BuiltinFunctions() {
		g.Bind(name, binding{kind: ProcedureBinding, proc: proc})
	}
	env.global = g
	env.scope = g
}

// NewChild returns an Environment whose innermost scope is a fresh
// child of env's.
func (env *Environment) NewChild(name string) *Environment {
	return &Environment{
		scope:  NewScope(name, env.scope),
		global: env.global,
		depth:  env.depth + 1,
	}
}

func (env *Environment) Scope() *Scope {
	return env.scope
}

// AddFunction installs a procedure in the global scope.
func (env *Environment) AddFunction(name string, proc Procedure) {
	env.global.Bind(name, binding{kind: ProcedureBinding, proc: proc})
}

// AddExp binds sym to exp in the innermost scope. Without rebind a
// symbol already visible from here is an error; with rebind, used for
// lambda parameters, any local binding is replaced.
func (env *Environment) AddExp(sym Atom, exp Expression, rebind bool) error {
	s, ok := sym.(AtomSymbol)
	if !ok {
		return semErr("Attempt to add non-symbol to environment")
	}
	if rebind {
		env.scope.Erase(s.Name)
	} else if _, _, found := env.scope.Lookup(s.Name); found {
		return semErr("Attempt to overwrite symbol in environment")
	}
	env.scope.Bind(s.Name, binding{kind: ExpressionBinding, exp: exp})
	return nil
}

func (env *Environment) IsKnown(sym Atom) bool {
	s, ok := sym.(AtomSymbol)
	if !ok {
		return false
	}
	_, _, found := env.scope.Lookup(s.Name)
	return found
}

func (env *Environment) IsExp(sym Atom) bool {
	b, ok := env.lookup(sym)
	return ok && b.kind == ExpressionBinding
}

func (env *Environment) IsProc(sym Atom) bool {
	b, ok := env.lookup(sym)
	return ok && b.kind == ProcedureBinding
}

// GetExp returns the bound value, or None when sym is not a value.
func (env *Environment) GetExp(sym Atom) Expression {
	b, ok := env.lookup(sym)
	if !ok || b.kind != ExpressionBinding {
		return Expression{}
	}
	return b.exp
}

func (env *Environment) GetProc(sym Atom) (Procedure, bool) {
	b, ok := env.lookup(sym)
	if !ok || b.kind != ProcedureBinding {
		return nil, false
	}
	return b.proc, true
}

func (env *Environment) lookup(sym Atom) (binding, bool) {
	s, ok := sym.(AtomSymbol)
	if !ok {
		return binding{}, false
	}
	b, _, found := env.scope.Lookup(s.Name)
	return b, found
}

// maxAliasHops bounds a chain of symbols bound to symbols.
const maxAliasHops = 64

// resolveProc follows name through any symbols bound to symbols until
// it reaches a built-in or a lambda value. A symbol bound to its own
// name, as when a parameter shares the name of the procedure passed
// in, continues from the scope above that binding.
func (env *Environment) resolveProc(name string) (b binding, resolved string, ok bool) {
	from := env.scope
	for hop := 0; hop < maxAliasHops && from != nil; hop++ {
		bnd, where, found := from.Lookup(name)
		if !found {
			return binding{}, name, false
		}
		if bnd.kind == ProcedureBinding || bnd.exp.IsLambda() {
			return bnd, name, true
		}
		next, isSym := bnd.exp.SymbolName()
		if !isSym || len(bnd.exp.tail) != 0 || bnd.exp.IsList() {
			return binding{}, name, false
		}
		if next == name {
			from = where.Parent
		} else {
			from = where
		}
		name = next
	}
	return binding{}, name, false
}

// Names lists every symbol visible from env, sorted.
func (env *Environment) Names() []string {
	return env.scope.Names()
}
