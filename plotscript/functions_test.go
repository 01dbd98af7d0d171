package plotscript

import (
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test060ListProcedures(t *testing.T) {

	cv.Convey(`list, first, rest, length, append and join`, t, func() {
		cv.So(evalOK("(list)").IsList(), cv.ShouldBeTrue)
		cv.So(numberOf(evalOK("(first (list 1 2 3))")), cv.ShouldEqual, 1)
		cv.So(evalOK("(rest (list 1 2 3))").String(), cv.ShouldEqual, "((2) (3))")
		cv.So(evalOK("(rest (list 1))").String(), cv.ShouldEqual, "()")
		cv.So(numberOf(evalOK("(length (list))")), cv.ShouldEqual, 0)
		cv.So(numberOf(evalOK("(length (list 1 (list 2 3)))")), cv.ShouldEqual, 2)
		cv.So(evalOK("(append (list 1) 2)").String(), cv.ShouldEqual, "((1) (2))")
		cv.So(evalOK("(append (list 1) (list 2))").String(), cv.ShouldEqual, "((1) ((2)))")
		cv.So(evalOK("(join (list 1) (list 2 3))").String(), cv.ShouldEqual, "((1) (2) (3))")
	})

	cv.Convey(`list procedures reject non-lists and empty lists`, t, func() {
		for _, src := range []string{
			"(first (1))", "(first (list))", "(first (list 1) (list 2))",
			"(rest (1))", "(rest (list))",
			"(length (1))", "(length (list) (list))",
			"(append 1 2)", "(append (list 1))",
			"(join (list 1) 2)", "(join (list 1))",
		} {
			err := evalErr(src)
			cv.So(err, cv.ShouldNotBeNil)
			cv.So(IsSemanticError(err), cv.ShouldBeTrue)
		}
	})
}

func Test061Range(t *testing.T) {

	cv.Convey(`range includes both ends when the step lands on the end`, t, func() {
		r := evalOK("(range 0 1 0.11)")
		cv.So(r.Len(), cv.ShouldEqual, 10)
		cv.So(numberOf(r.Tail()[0]), cv.ShouldEqual, 0)
		cv.So(numberOf(r.Tail()[9]), cv.ShouldAlmostEqual, 0.99, 1e-12)

		r = evalOK("(range -2 2 0.5)")
		cv.So(r.Len(), cv.ShouldEqual, 9)
		cv.So(numberOf(r.Tail()[8]), cv.ShouldEqual, 2)

		cv.So(evalOK("(range 0 0 1)").Len(), cv.ShouldEqual, 1)
	})

	cv.Convey(`range argument errors`, t, func() {
		cv.So(evalErr("(range 0 1)").Error(), cv.ShouldEqual, "Error in call to range, need 3 arguments")
		cv.So(evalErr(`(range 0 "a" 1)`).Error(), cv.ShouldEqual, "Error in call to range, argument not a number")
		cv.So(evalErr("(range 1 0 1)").Error(), cv.ShouldEqual, "Error in call to range, begin greater than end")
		cv.So(evalErr("(range 0 1 0)").Error(), cv.ShouldEqual, "Error in call to range, step must be positive")
		cv.So(evalErr("(range 0 1 -1)").Error(), cv.ShouldEqual, "Error in call to range, step must be positive")
	})
}

func Test062Apply(t *testing.T) {

	cv.Convey(`apply calls built-ins and lambdas with the elements of a list`, t, func() {
		cv.So(numberOf(evalOK("(apply + (list 1 2 3))")), cv.ShouldEqual, 6)
		cv.So(numberOf(evalOK("(apply - (list 5))")), cv.ShouldEqual, -5)
		cv.So(numberOf(evalOK("(begin (define f1 (lambda (x y z) (+ x (- y z)))) (apply f1 (list 1 3 2)))")), cv.ShouldEqual, 2)
		cv.So(numberOf(evalOK("(apply (lambda (x) (* x x)) (list 7))")), cv.ShouldEqual, 49)
	})

	cv.Convey(`apply argument errors`, t, func() {
		cv.So(evalErr("(apply 2 1)").Error(), cv.ShouldEqual, "Error in call to apply, first argument not a procedure")
		cv.So(evalErr("(apply 1)").Error(), cv.ShouldEqual, "Error in call to apply, need 2 arguments")
		cv.So(evalErr("(apply 1 (list 1 2))").Error(), cv.ShouldEqual, "Error in call to apply, first argument not a procedure")
		cv.So(evalErr("(apply + 3)").Error(), cv.ShouldEqual, "Error in call to apply, second argument not a list")
		cv.So(evalErr("(begin (define addtwo (lambda (x y) (+ x y))) (apply addtwo (list 1 2 3)))"), cv.ShouldNotBeNil)
	})
}

func Test063Map(t *testing.T) {

	cv.Convey(`map applies a one-argument procedure to each element`, t, func() {
		cv.So(evalOK("(map / (list 1 2 4))").String(), cv.ShouldEqual, "((1) (0.5) (0.25))")
		cv.So(evalOK("(map - (list 1 2 3))").String(), cv.ShouldEqual, "((-1) (-2) (-3))")
		cv.So(evalOK("(map (lambda (x) (* x x)) (list 1 2 3))").String(), cv.ShouldEqual, "((1) (4) (9))")
		cv.So(evalOK("(map sqrt (list))").Len(), cv.ShouldEqual, 0)
	})

	cv.Convey(`map and apply reach a built-in through a parameter of the same name`, t, func() {
		cv.So(evalOK("(begin (define m (lambda (sqrt) (map sqrt (list 1 4 9)))) (m sqrt))").String(), cv.ShouldEqual, "((1) (2) (3))")
		cv.So(numberOf(evalOK("(begin (define a (lambda (+) (apply + (list 1 2)))) (a +))")), cv.ShouldEqual, 3)
		cv.So(evalErr("(begin (define m (lambda (sqrt) (map sqrt (list 1)))) (m 2))").Error(), cv.ShouldEqual,
			"Error in call to map, first argument not a procedure")
	})

	cv.Convey(`map argument errors`, t, func() {
		cv.So(evalErr("(map 3 (list 1 2 3))").Error(), cv.ShouldEqual, "Error in call to map, first argument not a procedure")
		cv.So(evalErr("(map sin 1)").Error(), cv.ShouldEqual, "Error in call to map, second argument not a list")
		cv.So(evalErr("(map sin)").Error(), cv.ShouldEqual, "Error in call to map, need 2 arguments")
		cv.So(evalErr("(begin (define addtwo (lambda (x y) (+ x y))) (map addtwo (list 1 2 3)))").Error(),
			cv.ShouldEqual, "Error in call to map, procedure takes more than one argument")
		cv.So(evalErr(`(map sin (list "a"))`), cv.ShouldNotBeNil)
	})
}

func Test064BuiltinNames(t *testing.T) {

	cv.Convey(`BuiltinNames lists the procedures, constants and special forms in order`, t, func() {
		names := BuiltinNames()
		cv.So(names, cv.ShouldContain, "pi")
		cv.So(names, cv.ShouldContain, "lambda")
		cv.So(names, cv.ShouldContain, "set-property")
		cv.So(names, cv.ShouldContain, "continuous-plot")
		for i := 1; i < len(names); i++ {
			cv.So(names[i-1] < names[i], cv.ShouldBeTrue)
		}
	})
}
