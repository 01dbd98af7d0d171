package plotscript

import (
	"math"
	"math/cmplx"
)

// anyComplex decides the domain for a whole call: one complex
// argument promotes every operand.
func anyComplex(args []Expression) bool {
	for _, a := range args {
		if a.IsHeadComplex() {
			return true
		}
	}
	return false
}

func isNumeric(e Expression) bool {
	return e.IsHeadNumber() || e.IsHeadComplex()
}

func SumFunction(env *Environment, name string, args []Expression) (Expression, error) {
	promote := anyComplex(args)
	var realSum float64
	var cplxSum complex128
	for _, a := range args {
		if !isNumeric(a) {
			return Expression{}, semErr("Error in call to add, argument not a number")
		}
		if promote {
			c, _ := a.AsComplex()
			cplxSum += c
		} else {
			f, _ := a.AsNumber()
			realSum += f
		}
	}
	if promote {
		return MakeComplex(cplxSum), nil
	}
	return MakeNumber(realSum), nil
}

func MulFunction(env *Environment, name string, args []Expression) (Expression, error) {
	promote := anyComplex(args)
	realProd := 1.0
	cplxProd := complex(1, 0)
	for _, a := range args {
		if !isNumeric(a) {
			return Expression{}, semErr("Error in call to multiply, argument not a number")
		}
		if promote {
			c, _ := a.AsComplex()
			cplxProd *= c
		} else {
			f, _ := a.AsNumber()
			realProd *= f
		}
	}
	if promote {
		return MakeComplex(cplxProd), nil
	}
	return MakeNumber(realProd), nil
}

// SubNegFunction negates one argument or subtracts the second of two.
func SubNegFunction(env *Environment, name string, args []Expression) (Expression, error) {
	switch len(args) {
	case 1:
		if !isNumeric(args[0]) {
			return Expression{}, semErr("Error in call to negate: invalid argument.")
		}
		if args[0].IsHeadComplex() {
			c, _ := args[0].AsComplex()
			return MakeComplex(-c), nil
		}
		f, _ := args[0].AsNumber()
		return MakeNumber(-f), nil
	case 2:
		if !isNumeric(args[0]) || !isNumeric(args[1]) {
			return Expression{}, semErr("Error in call to subtraction: invalid argument.")
		}
		if anyComplex(args) {
			a, _ := args[0].AsComplex()
			b, _ := args[1].AsComplex()
			return MakeComplex(a - b), nil
		}
		a, _ := args[0].AsNumber()
		b, _ := args[1].AsNumber()
		return MakeNumber(a - b), nil
	}
	return Expression{}, semErr("Error in call to subtraction or negation: invalid number of arguments.")
}

// DivFunction takes the reciprocal of one argument or divides two.
func DivFunction(env *Environment, name string, args []Expression) (Expression, error) {
	switch len(args) {
	case 1:
		if !isNumeric(args[0]) {
			return Expression{}, semErr("Error in call to division: invalid argument.")
		}
		if args[0].IsHeadComplex() {
			c, _ := args[0].AsComplex()
			return MakeComplex(1 / c), nil
		}
		f, _ := args[0].AsNumber()
		return MakeNumber(1 / f), nil
	case 2:
		if !isNumeric(args[0]) || !isNumeric(args[1]) {
			return Expression{}, semErr("Error in call to division: invalid argument.")
		}
		if anyComplex(args) {
			a, _ := args[0].AsComplex()
			b, _ := args[1].AsComplex()
			return MakeComplex(a / b), nil
		}
		a, _ := args[0].AsNumber()
		b, _ := args[1].AsNumber()
		return MakeNumber(a / b), nil
	}
	return Expression{}, semErr("Error in call to division: invalid number of arguments.")
}

func PowFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 2 {
		return Expression{}, semErr("Error in call to pow: invalid number of arguments.")
	}
	if !isNumeric(args[0]) || !isNumeric(args[1]) {
		return Expression{}, semErr("Error in call to pow: invalid argument.")
	}
	if anyComplex(args) {
		a, _ := args[0].AsComplex()
		b, _ := args[1].AsComplex()
		return MakeComplex(cmplx.Pow(a, b)), nil
	}
	a, _ := args[0].AsNumber()
	b, _ := args[1].AsNumber()
	return MakeNumber(math.Pow(a, b)), nil
}

// SqrtFunction returns a pure imaginary result for a negative real.
func SqrtFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return Expression{}, semErr("Error in call to sqrt: invalid number of arguments.")
	}
	switch h := args[0].Head().(type) {
	case AtomNumber:
		if h.Val >= 0 {
			return MakeNumber(math.Sqrt(h.Val)), nil
		}
		return MakeComplex(complex(0, math.Sqrt(-h.Val))), nil
	case AtomComplex:
		return MakeComplex(cmplx.Sqrt(h.Val)), nil
	}
	return Expression{}, semErr("Error in call to sqrt: invalid argument.")
}

func LnFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 1 {
		return Expression{}, semErr("Error in call to ln: invalid number of arguments.")
	}
	f, ok := args[0].AsNumber()
	if !ok || f <= 0 {
		return Expression{}, semErr("Error in call to ln: invalid argument.")
	}
	return MakeNumber(math.Log(f)), nil
}

// realFunction builds the single real-argument trig procedures.
func realFunction(fname string, fn func(float64) float64) Procedure {
	return func(env *Environment, name string, args []Expression) (Expression, error) {
		if len(args) != 1 {
			return Expression{}, semErrf("Error in call to %s: invalid number of arguments.", fname)
		}
		f, ok := args[0].AsNumber()
		if !ok {
			return Expression{}, semErrf("Error in call to %s: invalid argument.", fname)
		}
		return MakeNumber(fn(f)), nil
	}
}

// complexFunction builds the procedures that accept only a complex
// argument: real, imag, mag, arg and conj.
func complexFunction(fname string, fn func(complex128) Expression) Procedure {
	return func(env *Environment, name string, args []Expression) (Expression, error) {
		if len(args) != 1 {
			return Expression{}, semErrf("Error in call to %s: invalid number of arguments.", fname)
		}
		if !args[0].IsHeadComplex() {
			return Expression{}, semErrf("Error in call to %s: invalid argument.", fname)
		}
		c, _ := args[0].AsComplex()
		return fn(c), nil
	}
}

func NumericFunctions() map[string]Procedure {
	return map[string]Procedure{
		"+":    SumFunction,
		"-":    SubNegFunction,
		"*":    MulFunction,
		"/":    DivFunction,
		"^":    PowFunction,
		"sqrt": SqrtFunction,
		"ln":   LnFunction,
		"sin":  realFunction("sin", math.Sin),
		"cos":  realFunction("cos", math.Cos),
		"tan":  realFunction("tan", math.Tan),
		"real": complexFunction("real", func(c complex128) Expression { return MakeNumber(real(c)) }),
		"imag": complexFunction("imag", func(c complex128) Expression { return MakeNumber(imag(c)) }),
		"mag":  complexFunction("mag", func(c complex128) Expression { return MakeNumber(cmplx.Abs(c)) }),
		"arg":  complexFunction("arg", func(c complex128) Expression { return MakeNumber(cmplx.Phase(c)) }),
		"conj": complexFunction("conj", func(c complex128) Expression { return MakeComplex(cmplx.Conj(c)) }),
	}
}
