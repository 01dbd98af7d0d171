package plotscript

import (
	"fmt"
	"strings"
	"sync"

	"fortio.org/log"
	"github.com/google/uuid"
)

// DieSentinel ends the worker's service loop when pushed as input.
const DieSentinel = "die"

// Reply is one worker response. An empty Err means Result is valid.
type Reply struct {
	Err    string
	Result Expression
}

// Kernel runs one Interpreter on a goroutine of its own and trades
// program text for Replies over a pair of queues. Only the worker
// touches the Interpreter, so evaluation needs no locking. At most one
// request is in flight; Eval blocks until its reply arrives.
//
// Interrupt is accepted but does nothing: a running evaluation cannot
// be cancelled. Stop (and optionally Start) is the only way out, and
// it discards the environment.
type Kernel struct {
	mut sync.Mutex

	startup    string
	input      *Queue[string]
	output     *Queue[Reply]
	done       chan struct{}
	running    bool
	session    string
	seq        int64
	transcript *Transcript
}

// NewKernel returns a stopped kernel which will evaluate startup in
// every fresh environment it builds.
func NewKernel(startup string) *Kernel {
	return &Kernel{
		startup: startup,
		input:   NewQueue[string](),
		output:  NewQueue[Reply](),
	}
}

// SetTranscript records every subsequent request and reply to t.
func (k *Kernel) SetTranscript(t *Transcript) {
	k.mut.Lock()
	k.transcript = t
	k.mut.Unlock()
}

func (k *Kernel) Running() bool {
	k.mut.Lock()
	defer k.mut.Unlock()
	return k.running
}

// Session identifies the current worker; it changes on every Start.
func (k *Kernel) Session() string {
	k.mut.Lock()
	defer k.mut.Unlock()
	return k.session
}

// Start spawns the worker with a brand new environment. Starting a
// running kernel is a no-op.
func (k *Kernel) Start() {
	k.mut.Lock()
	defer k.mut.Unlock()
	if k.running {
		return
	}
	k.session = uuid.New().String()
	k.seq = 0
	k.done = make(chan struct{})
	k.running = true
	go k.serve(k.session, k.input, k.output, k.done)
	log.Infof("kernel session %s started", k.session)
}

// Stop sends the sentinel and waits for the worker to exit.
func (k *Kernel) Stop() {
	k.mut.Lock()
	defer k.mut.Unlock()
	k.stopLocked()
}

func (k *Kernel) stopLocked() {
	if !k.running {
		return
	}
	k.input.Push(DieSentinel)
	<-k.done
	k.running = false
	log.Infof("kernel session %s stopped", k.session)
}

// Reset is Stop then Start; every definition is lost.
func (k *Kernel) Reset() {
	k.Stop()
	k.Start()
}

// Interrupt has no effect on an evaluation in progress.
func (k *Kernel) Interrupt() {
	log.Infof("kernel interrupt requested; evaluations cannot be interrupted, use stop/reset")
}

// Eval submits program and waits for its reply. A stopped kernel
// answers immediately without touching the queues.
func (k *Kernel) Eval(program string) Reply {
	k.mut.Lock()
	defer k.mut.Unlock()
	if !k.running {
		return Reply{Err: ErrKernelStopped.Error()}
	}
	if program == DieSentinel {
		// the worker exits without replying
		k.stopLocked()
		return Reply{Err: ErrKernelStopped.Error()}
	}
	k.input.Push(program)
	r := k.output.WaitAndPop()
	k.seq++
	if log.LogVerbose() {
		if r.Err == "" {
			log.LogVf("kernel %s request %d -> %016x", k.session, k.seq, r.Result.Fingerprint())
		} else {
			log.LogVf("kernel %s request %d failed: %s", k.session, k.seq, r.Err)
		}
	}
	if k.transcript != nil {
		entry := &TranscriptEntry{
			Session: k.session,
			Seq:     k.seq,
			Program: program,
			Err:     r.Err,
			Result:  r.Result,
		}
		if err := k.transcript.Append(entry); err != nil {
			log.Warnf("kernel transcript write failed: %v", err)
		}
	}
	return r
}

// serve is the worker loop. It owns interp exclusively.
func (k *Kernel) serve(session string, input *Queue[string], output *Queue[Reply], done chan struct{}) {
	defer close(done)

	interp := NewInterpreter()
	if err := RunStartup(interp, k.startup); err != nil {
		log.Errf("kernel session %s: %v", session, err)
	}

	for {
		program := input.WaitAndPop()
		if program == DieSentinel {
			return
		}
		output.Push(evalRequest(interp, program))
	}
}

func evalRequest(interp *Interpreter, program string) (r Reply) {
	defer func() {
		if rec := recover(); rec != nil {
			r = Reply{Err: fmt.Sprintf("Error: %v", rec)}
		}
	}()
	if !interp.ParseStream(strings.NewReader(program)) {
		return Reply{Err: ErrParse.Error()}
	}
	result, err := interp.Evaluate()
	if err != nil {
		return Reply{Err: err.Error()}
	}
	return Reply{Result: result}
}
