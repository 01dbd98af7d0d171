package plotscript

import (
	"strings"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

// evalOK runs src in a fresh interpreter without the startup program.
func evalOK(src string) Expression {
	interp := NewInterpreter()
	res, err := interp.EvalString(src)
	panicOn(err)
	return res
}

func evalErr(src string) error {
	interp := NewInterpreter()
	_, err := interp.EvalString(src)
	return err
}

func numberOf(e Expression) float64 {
	f, ok := e.AsNumber()
	if !ok {
		panic("not a number: " + e.String())
	}
	return f
}

func Test030EvalDefineAndBegin(t *testing.T) {

	cv.Convey(`begin should return the value of its last form, and define should bind a name for later forms`, t, func() {
		cv.So(numberOf(evalOK("(+ 1 2 3)")), cv.ShouldEqual, 6)
		cv.So(numberOf(evalOK("(begin (define a 1) (define b pi) (+ a b))")), cv.ShouldAlmostEqual, 1+ConstPi, 1e-12)

		res := evalOK(`(define x "foo")`)
		cv.So(res.Head(), cv.ShouldResemble, AtomString{S: `"foo"`})
	})

	cv.Convey(`define should refuse to rebind anything already known`, t, func() {
		err := evalErr("(begin (define a 1) (define a 2))")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(IsSemanticError(err), cv.ShouldBeTrue)
		cv.So(err.Error(), cv.ShouldContainSubstring, "previously defined")

		cv.So(evalErr("(define begin 1)").Error(), cv.ShouldContainSubstring, "special-form")
		cv.So(evalErr("(define + 1)").Error(), cv.ShouldContainSubstring, "built-in")
		cv.So(evalErr("(define pi 3)").Error(), cv.ShouldContainSubstring, "previously defined")
		cv.So(evalErr("(define 1 2)").Error(), cv.ShouldContainSubstring, "not symbol")
		cv.So(evalErr("(define a)"), cv.ShouldNotBeNil)
		cv.So(evalErr("(begin)"), cv.ShouldNotBeNil)
	})

	cv.Convey(`unknown symbols and non-procedures in head position are errors`, t, func() {
		cv.So(evalErr("(foo)").Error(), cv.ShouldContainSubstring, "unknown symbol")
		cv.So(evalErr("(foo 1 2)"), cv.ShouldNotBeNil)
		cv.So(evalErr("(begin (define a 1) (a 2))"), cv.ShouldNotBeNil)
		cv.So(evalErr(`("str" 1)`), cv.ShouldNotBeNil)
	})
}

func Test031EvalLambda(t *testing.T) {

	cv.Convey(`lambda values capture parameters and run their body in a child scope`, t, func() {
		cv.So(numberOf(evalOK("(begin (define addtwo (lambda (x y) (+ x y))) (addtwo 1 2))")), cv.ShouldEqual, 3)
		cv.So(evalErr("(begin (define addtwo (lambda (x y) (+ x y))) (addtwo 1 2 3))"), cv.ShouldNotBeNil)

		cv.So(numberOf(evalOK("(begin (define a 1) (define f (lambda (x) (+ x a))) (f 2))")), cv.ShouldEqual, 3)
		cv.So(numberOf(evalOK("(begin (define x 10) (define f (lambda (x) (* x 2))) (f 3))")), cv.ShouldEqual, 6)
		cv.So(numberOf(evalOK("(begin (define f (lambda (x) (* x 2))) (define g (lambda (y) (f (+ y 1)))) (g 4))")), cv.ShouldEqual, 10)

		lam := evalOK("(lambda (x) (x))")
		cv.So(lam.IsLambda(), cv.ShouldBeTrue)
		cv.So(Arity(lam), cv.ShouldEqual, 1)
	})

	cv.Convey(`malformed lambdas are errors`, t, func() {
		cv.So(evalErr("(begin (define f lambda (x) (x)) (f 3 3))"), cv.ShouldNotBeNil)
		cv.So(evalErr("(lambda (x y))"), cv.ShouldNotBeNil)
		cv.So(evalErr("(lambda (x 1) (x))").Error(), cv.ShouldContainSubstring, "parameter not symbol")
	})

	cv.Convey(`a symbol bound to a procedure name can be called`, t, func() {
		cv.So(numberOf(evalOK("(begin (define plus +) (plus 1 2))")), cv.ShouldEqual, 3)
	})

	cv.Convey(`a parameter named after the built-in passed to it still calls that built-in`, t, func() {
		cv.So(numberOf(evalOK("(begin (define g (lambda (sqrt) (sqrt 4))) (g sqrt))")), cv.ShouldEqual, 2)
		cv.So(numberOf(evalOK("(begin (define h (lambda (+) (+ 1 2 3))) (h *))")), cv.ShouldEqual, 6)
		cv.So(evalOK("(begin (define k (lambda (sqrt) (map sqrt (list 4 9)))) (k sqrt))").String(), cv.ShouldEqual, "((2) (3))")
		cv.So(evalErr("(begin (define g (lambda (f) (f 4))) (g 3))").Error(), cv.ShouldEqual,
			"Error during evaluation: symbol does not name a procedure")
	})

	cv.Convey(`a lambda that calls itself forever is stopped with an error`, t, func() {
		err := evalErr("(begin (define f (lambda (x) (f x))) (f 1))")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(IsSemanticError(err), cv.ShouldBeTrue)
		cv.So(err.Error(), cv.ShouldEqual, "Error during evaluation: maximum call depth exceeded")

		interp := NewInterpreter()
		_, err = interp.EvalString("(begin (define f (lambda (x) (f x))) (f 1))")
		cv.So(err, cv.ShouldNotBeNil)
		res, err := interp.EvalString("(+ 1 1)")
		panicOn(err)
		cv.So(numberOf(res), cv.ShouldEqual, 2)
	})
}

func Test032InterpreterKeepsStateBetweenPrograms(t *testing.T) {

	cv.Convey(`definitions made before an error survive it, and Reset clears them`, t, func() {
		interp := NewInterpreter()
		_, err := interp.Evaluate()
		cv.So(err, cv.ShouldEqual, ErrNoProgram)

		_, err = interp.EvalString("(begin (define a 1) (foo))")
		cv.So(err, cv.ShouldNotBeNil)

		res, err := interp.EvalString("(a)")
		panicOn(err)
		cv.So(numberOf(res), cv.ShouldEqual, 1)

		_, err = interp.EvalString("(+ 1")
		cv.So(err, cv.ShouldEqual, ErrParse)
		_, err = interp.Evaluate()
		cv.So(err, cv.ShouldEqual, ErrNoProgram)

		cv.So(interp.ParseStream(strings.NewReader("(* a 5)")), cv.ShouldBeTrue)
		res, err = interp.Evaluate()
		panicOn(err)
		cv.So(numberOf(res), cv.ShouldEqual, 5)

		interp.Reset()
		_, err = interp.EvalString("(a)")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(interp.Env().IsProc(AtomSymbol{Name: "+"}), cv.ShouldBeTrue)
	})
}
