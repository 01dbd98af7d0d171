package plotscript

import (
	"sort"
)

func ListFunction(env *Environment, name string, args []Expression) (Expression, error) {
	items := make([]Expression, len(args))
	copy(items, args)
	return MakeList(items...), nil
}

func FirstFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return Expression{}, semErr("Error in call to first, need 1 argument")
	}
	if !args[0].IsList() {
		return Expression{}, semErr("Error in call to first, argument not a list")
	}
	if len(args[0].tail) == 0 {
		return Expression{}, semErr("Error in call to first, argument is an empty list")
	}
	return args[0].tail[0], nil
}

func RestFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return Expression{}, semErr("Error in call to rest, need 1 argument")
	}
	if !args[0].IsList() {
		return Expression{}, semErr("Error in call to rest, argument not a list")
	}
	if len(args[0].tail) == 0 {
		return Expression{}, semErr("Error in call to rest, argument is an empty list")
	}
	rest := make([]Expression, len(args[0].tail)-1)
	copy(rest, args[0].tail[1:])
	return MakeList(rest...), nil
}

func LengthFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return Expression{}, semErr("Error in call to length, need 1 argument")
	}
	if !args[0].IsList() {
		return Expression{}, semErr("Error in call to length, argument not a list")
	}
	return MakeNumber(float64(len(args[0].tail))), nil
}

// AppendFunction adds its second argument as the last element of the
// list given first.
func AppendFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return Expression{}, semErr("Error in call to append, need 2 arguments")
	}
	if !args[0].IsList() {
		return Expression{}, semErr("Error in call to append, argument 1 not a list")
	}
	items := make([]Expression, 0, len(args[0].tail)+1)
	items = append(items, args[0].tail...)
	items = append(items, args[1])
	return MakeList(items...), nil
}

func JoinFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return Expression{}, semErr("Error in call to join, need 2 arguments")
	}
	if !args[0].IsList() || !args[1].IsList() {
		return Expression{}, semErr("Error in call to join, argument 1 or 2 not a list")
	}
	items := make([]Expression, 0, len(args[0].tail)+len(args[1].tail))
	items = append(items, args[0].tail...)
	items = append(items, args[1].tail...)
	return MakeList(items...), nil
}

// RangeFunction produces (list a a+step ... ) up to and including b.
func RangeFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 3 {
		return Expression{}, semErr("Error in call to range, need 3 arguments")
	}
	var vals [3]float64
	for i, a := range args {
		f, ok := a.AsNumber()
		if !ok {
			return Expression{}, semErr("Error in call to range, argument not a number")
		}
		vals[i] = f
	}
	begin, end, step := vals[0], vals[1], vals[2]
	if begin > end {
		return Expression{}, semErr("Error in call to range, begin greater than end")
	}
	if step <= 0 {
		return Expression{}, semErr("Error in call to range, step must be positive")
	}

	var items []Expression
	for i := 0; ; i++ {
		v := begin + float64(i)*step
		if v > end && !numbersEqual(v, end) {
			break
		}
		items = append(items, MakeNumber(v))
	}
	return MakeList(items...), nil
}

// resolveCallable turns a symbol naming a lambda into the lambda
// itself, so its arity can be checked; anything else is returned as is.
func (env *Environment) resolveCallable(proc Expression) Expression {
	name, ok := proc.SymbolName()
	if !ok || len(proc.tail) != 0 {
		return proc
	}
	if b, _, found := env.resolveProc(name); found && b.kind == ExpressionBinding {
		return b.exp
	}
	return proc
}

// ApplyFunction calls its first argument with the elements of the
// list given second as arguments.
func ApplyFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return Expression{}, semErr("Error in call to apply, need 2 arguments")
	}
	if !env.IsCallable(args[0]) {
		return Expression{}, semErr("Error in call to apply, first argument not a procedure")
	}
	if !args[1].IsList() {
		return Expression{}, semErr("Error in call to apply, second argument not a list")
	}
	return env.Call(env.resolveCallable(args[0]), args[1].tail)
}

// MapFunction calls a one-argument procedure on each list element.
func MapFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return Expression{}, semErr("Error in call to map, need 2 arguments")
	}
	if !env.IsCallable(args[0]) {
		return Expression{}, semErr("Error in call to map, first argument not a procedure")
	}
	if !args[1].IsList() {
		return Expression{}, semErr("Error in call to map, second argument not a list")
	}
	proc := env.resolveCallable(args[0])
	if Arity(proc) > 1 {
		return Expression{}, semErr("Error in call to map, procedure takes more than one argument")
	}
	results := make([]Expression, 0, len(args[1].tail))
	for _, item := range args[1].tail {
		r, err := env.Call(proc, []Expression{item})
		if err != nil {
			return Expression{}, err
		}
		results = append(results, r)
	}
	return MakeList(results...), nil
}

// SetPropertyFunction returns a copy of its third argument carrying
// the given key and value.
func SetPropertyFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 3 {
		return Expression{}, semErr("Error in call to set-property, need 3 arguments")
	}
	key, ok := args[0].Head().(AtomString)
	if !ok || len(args[0].tail) != 0 {
		return Expression{}, semErr("Error in call to set-property, first argument not a string")
	}
	return args[2].SetProperty(key.Unquoted(), args[1]), nil
}

func GetPropertyFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return Expression{}, semErr("Error in call to get-property, need 2 arguments")
	}
	key, ok := args[0].Head().(AtomString)
	if !ok || len(args[0].tail) != 0 {
		return Expression{}, semErr("Error in call to get-property, first argument not a string")
	}
	return args[1].GetProperty(key.Unquoted()), nil
}

func ListFunctions() map[string]Procedure {
	return map[string]Procedure{
		"list":   ListFunction,
		"first":  FirstFunction,
		"rest":   RestFunction,
		"length": LengthFunction,
		"append": AppendFunction,
		"join":   JoinFunction,
		"range":  RangeFunction,
		"apply":  ApplyFunction,
		"map":    MapFunction,
	}
}

func PropertyFunctions() map[string]Procedure {
	return map[string]Procedure{
		"set-property": SetPropertyFunction,
		"get-property": GetPropertyFunction,
	}
}

// BuiltinFunctions is the full table installed into every fresh
// global scope.
func BuiltinFunctions() map[string]Procedure {
	all := make(map[string]Procedure)
	for _, m := range []map[string]Procedure{
		NumericFunctions(),
		ListFunctions(),
		PropertyFunctions(),
		PlotFunctions(),
	} {
		for k, v := range m {
			all[k] = v
		}
	}
	return all
}

// BuiltinNames lists the built-in procedure names and constants, sorted.
func BuiltinNames() []string {
	names := []string{"pi", "e", "I", "begin", "define", "lambda"}
	for k := range BuiltinFunctions() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
