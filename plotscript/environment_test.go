package plotscript

import (
	"bytes"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test040EnvironmentStartsWithConstantsAndBuiltins(t *testing.T) {

	cv.Convey(`a new environment knows pi, e, I and the built-in procedures`, t, func() {
		env := NewEnvironment()
		pi := AtomSymbol{Name: "pi"}
		cv.So(env.IsExp(pi), cv.ShouldBeTrue)
		cv.So(numberOf(env.GetExp(pi)), cv.ShouldAlmostEqual, 3.141592653589793, 1e-15)
		cv.So(env.GetExp(AtomSymbol{Name: "I"}).Head(), cv.ShouldResemble, AtomComplex{Val: complex(0, 1)})
		cv.So(env.IsProc(AtomSymbol{Name: "+"}), cv.ShouldBeTrue)
		cv.So(env.IsProc(pi), cv.ShouldBeFalse)
		cv.So(env.IsKnown(AtomSymbol{Name: "nope"}), cv.ShouldBeFalse)
		cv.So(env.IsKnown(AtomNumber{Val: 1}), cv.ShouldBeFalse)
		cv.So(env.GetExp(AtomSymbol{Name: "+"}).IsNone(), cv.ShouldBeTrue)

		_, ok := env.GetProc(AtomSymbol{Name: "map"})
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(env.Names(), cv.ShouldContain, "discrete-plot")
	})
}

func Test041EnvironmentAddExp(t *testing.T) {

	cv.Convey(`AddExp refuses non-symbols and known names unless rebinding`, t, func() {
		env := NewEnvironment()
		a := AtomSymbol{Name: "a"}

		cv.So(env.AddExp(AtomNumber{Val: 1}, MakeNumber(1), false), cv.ShouldNotBeNil)
		cv.So(env.AddExp(a, MakeNumber(1), false), cv.ShouldBeNil)
		cv.So(env.AddExp(a, MakeNumber(2), false), cv.ShouldNotBeNil)
		cv.So(numberOf(env.GetExp(a)), cv.ShouldEqual, 1)
		cv.So(env.AddExp(a, MakeNumber(2), true), cv.ShouldBeNil)
		cv.So(numberOf(env.GetExp(a)), cv.ShouldEqual, 2)
	})

	cv.Convey(`a child environment sees its parent and shadows only by rebinding`, t, func() {
		env := NewEnvironment()
		a := AtomSymbol{Name: "a"}
		panicOn(env.AddExp(a, MakeNumber(1), false))

		child := env.NewChild("call")
		cv.So(child.Scope().Depth(), cv.ShouldEqual, 1)
		cv.So(numberOf(child.GetExp(a)), cv.ShouldEqual, 1)
		cv.So(child.AddExp(a, MakeNumber(5), false), cv.ShouldNotBeNil)
		cv.So(child.AddExp(a, MakeNumber(5), true), cv.ShouldBeNil)
		cv.So(numberOf(child.GetExp(a)), cv.ShouldEqual, 5)
		cv.So(numberOf(env.GetExp(a)), cv.ShouldEqual, 1)

		var buf bytes.Buffer
		child.Scope().Show(&buf)
		cv.So(buf.String(), cv.ShouldContainSubstring, "scope call")
		cv.So(buf.String(), cv.ShouldContainSubstring, "scope global (global)")
		cv.So(buf.String(), cv.ShouldContainSubstring, "a -> (5)")
	})

	cv.Convey(`AddFunction installs a procedure callable from programs`, t, func() {
		interp := NewInterpreter()
		interp.Env().AddFunction("twice", func(env *Environment, name string, args []Expression) (Expression, error) {
			return MakeNumber(2 * numberOf(args[0])), nil
		})
		res, err := interp.EvalString("(twice 21)")
		panicOn(err)
		cv.So(numberOf(res), cv.ShouldEqual, 42)
	})
}
