package plotscript

import (
	"path/filepath"
	"testing"

	"fortio.org/log"
	cv "github.com/glycerine/goconvey/convey"
)

func Test100KernelEvaluatesOnItsWorker(t *testing.T) {

	cv.Convey(`a started kernel should evaluate programs against one persistent environment`, t, func() {
		k := NewKernel(StartupProgram)
		k.Start()
		defer k.Stop()
		cv.So(k.Running(), cv.ShouldBeTrue)

		r := k.Eval("(+ 1 2)")
		cv.So(r.Err, cv.ShouldEqual, "")
		cv.So(numberOf(r.Result), cv.ShouldEqual, 3)

		r = k.Eval("(define a 4)")
		cv.So(r.Err, cv.ShouldEqual, "")
		r = k.Eval("(* a a)")
		cv.So(numberOf(r.Result), cv.ShouldEqual, 16)

		r = k.Eval("(make-point 1 2)")
		cv.So(r.Result.ObjectName(), cv.ShouldEqual, "point")

		r = k.Eval("(+ 1")
		cv.So(r.Err, cv.ShouldEqual, ErrParse.Error())

		r = k.Eval("(undefined-thing)")
		cv.So(r.Err, cv.ShouldContainSubstring, "unknown symbol")
	})

	cv.Convey(`replies are unchanged when verbose request tracing is on`, t, func() {
		prev := log.SetLogLevel(log.Verbose)
		defer log.SetLogLevel(prev)
		cv.So(log.LogVerbose(), cv.ShouldBeTrue)

		k := NewKernel(StartupProgram)
		k.Start()
		defer k.Stop()
		cv.So(numberOf(k.Eval("(* 6 7)").Result), cv.ShouldEqual, 42)
		cv.So(k.Eval("(nope)").Err, cv.ShouldContainSubstring, "unknown symbol")
	})
}

func Test101KernelStopStartDiscardsEnvironment(t *testing.T) {

	cv.Convey(`a stopped kernel refuses work, and a restart begins from a fresh environment`, t, func() {
		k := NewKernel(StartupProgram)
		k.Start()
		first := k.Session()
		cv.So(k.Eval("(define a 1)").Err, cv.ShouldEqual, "")

		k.Stop()
		cv.So(k.Running(), cv.ShouldBeFalse)
		cv.So(k.Eval("(a)").Err, cv.ShouldEqual, ErrKernelStopped.Error())
		k.Stop()

		k.Start()
		cv.So(k.Session(), cv.ShouldNotEqual, first)
		cv.So(k.Eval("(a)").Err, cv.ShouldContainSubstring, "unknown symbol")
		cv.So(k.Eval("(define a 2)").Err, cv.ShouldEqual, "")

		cv.So(k.Eval(DieSentinel).Err, cv.ShouldEqual, ErrKernelStopped.Error())
		cv.So(k.Running(), cv.ShouldBeFalse)
		k.Start()

		k.Interrupt()
		k.Reset()
		cv.So(k.Running(), cv.ShouldBeTrue)
		cv.So(k.Eval("(a)").Err, cv.ShouldContainSubstring, "unknown symbol")
		cv.So(k.Eval("(make-point 0 0)").Err, cv.ShouldEqual, "")
		k.Stop()
	})

	cv.Convey(`a broken startup program is logged and the kernel still serves`, t, func() {
		k := NewKernel("(+ 1")
		k.Start()
		defer k.Stop()
		cv.So(numberOf(k.Eval("(+ 1 1)").Result), cv.ShouldEqual, 2)
	})
}

func Test102KernelTranscript(t *testing.T) {

	cv.Convey(`every request and reply should be appended to the transcript`, t, func() {
		path := filepath.Join(t.TempDir(), "session.msgp")
		tr, err := OpenTranscript(path)
		panicOn(err)

		k := NewKernel(StartupProgram)
		k.SetTranscript(tr)
		k.Start()
		k.Eval("(list 1 (+ 1 I))")
		k.Eval("(nope)")
		k.Eval(`(make-text "hi")`)
		session := k.Session()
		k.Stop()
		panicOn(tr.Close())

		entries, err := ReadTranscript(path)
		panicOn(err)
		cv.So(len(entries), cv.ShouldEqual, 3)
		for i, e := range entries {
			cv.So(e.Session, cv.ShouldEqual, session)
			cv.So(e.Seq, cv.ShouldEqual, int64(i+1))
		}
		cv.So(entries[0].Program, cv.ShouldEqual, "(list 1 (+ 1 I))")
		cv.So(entries[0].Err, cv.ShouldEqual, "")
		cv.So(entries[0].Result.Equal(evalOK("(list 1 (+ 1 I))")), cv.ShouldBeTrue)
		cv.So(entries[0].Fingerprint, cv.ShouldEqual, entries[0].Result.Fingerprint())

		cv.So(entries[1].Err, cv.ShouldContainSubstring, "unknown symbol")
		cv.So(entries[1].Fingerprint, cv.ShouldEqual, uint64(0))

		cv.So(entries[2].Result.ObjectName(), cv.ShouldEqual, "text")
		cv.So(entries[2].Result.GetProperty(PropPosition).ObjectName(), cv.ShouldEqual, "point")
	})
}
