package plotscript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/shurcooL/go-goon"
)

var replCommands = []string{
	".quit", ".dump", ".ls", ".fp", ".verb", ".help",
	"%start", "%stop", "%reset", "%interrupt",
}

const replHelp = `commands:
  .quit        exit
  .dump        show the structure of the last result
  .ls          list built-in procedures and constants
  .fp          fingerprint of the last result
  .verb        toggle verbose debug output
  %start       start the kernel
  %stop        stop the kernel (definitions are lost)
  %reset       stop then start the kernel
  %interrupt   request an interrupt (evaluations cannot be interrupted)
`

func getLine(reader *bufio.Reader) (string, error) {
	line := make([]byte, 0)
	for {
		linepart, hasMore, err := reader.ReadLine()
		if err != nil {
			return "", err
		}
		line = append(line, linepart...)
		if !hasMore {
			break
		}
	}
	return string(line), nil
}

// needsMoreInput reports an open form or an unterminated string.
// Comments and string contents are lexed, so parens inside them do
// not count.
func needsMoreInput(str string) bool {
	lex := NewLexer(strings.NewReader(str))
	depth := 0
	for {
		tok, err := lex.GetNextToken()
		if err != nil || tok.typ == TokenEnd {
			break
		}
		switch tok.typ {
		case TokenOpen:
			depth++
		case TokenClose:
			depth--
		}
	}
	return depth > 0 || lex.state == LexerQuote
}

var continuationPrompt = "... "

// liner reads Stdin only. If noLiner, then we read from reader.
func (pr *Prompter) getExpression(reader *bufio.Reader, noLiner bool, out io.Writer) (string, error) {
	var line, nextline string
	var err error

	if noLiner {
		fmt.Fprint(out, pr.prompt)
		line, err = getLine(reader)
	} else {
		line, err = pr.Getline(nil)
	}
	if err != nil {
		return "", err
	}

	for needsMoreInput(line) {
		if noLiner {
			fmt.Fprint(out, continuationPrompt)
			nextline, err = getLine(reader)
		} else {
			nextline, err = pr.Getline(&continuationPrompt)
		}
		if err != nil {
			return "", err
		}
		line += "\n" + nextline
	}
	return line, nil
}

type replSession struct {
	cfg    *PlotscriptConfig
	kernel *Kernel
	out    io.Writer
	last   Reply
	have   bool
}

// Repl reads programs, hands them to k, and prints each reply until
// end of input or .quit.
func Repl(k *Kernel, cfg *PlotscriptConfig) {
	out := cfg.Stdout
	var reader *bufio.Reader
	var pr *Prompter
	if cfg.NoLiner {
		// reader is used if one wishes to drop the liner library.
		// Useful for not full terminal env, like under test.
		reader = bufio.NewReader(cfg.Stdin)
		pr = &Prompter{prompt: cfg.Prompt}
	} else {
		pr = NewPrompter(cfg.Prompt, cfg.HistoryFile)
		defer pr.Close()
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "plotscript version %s\n", Version())
		fmt.Fprintf(out, "type .help for commands. Ctrl-d to exit.\n")
	}

	rs := &replSession{cfg: cfg, kernel: k, out: out}
	for {
		line, err := pr.getExpression(reader, cfg.NoLiner, out)
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(out, err)
			}
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if handled, quit := rs.command(line); handled {
			if quit {
				return
			}
			continue
		}
		rs.eval(line)
	}
}

func (rs *replSession) command(line string) (handled bool, quit bool) {
	parts := strings.Fields(line)
	first := parts[0]
	if !strings.HasPrefix(first, ".") && !strings.HasPrefix(first, "%") {
		return false, false
	}
	VPrintf("repl command '%s'", first)

	switch first {
	case ".quit":
		return true, true
	case ".help":
		io.WriteString(rs.out, replHelp)
	case ".dump":
		if !rs.have {
			fmt.Fprintln(rs.out, "no result yet")
			break
		}
		fmt.Fprint(rs.out, goon.Sdump(rs.last))
	case ".ls":
		fmt.Fprintln(rs.out, strings.Join(BuiltinNames(), " "))
	case ".fp":
		if !rs.have || rs.last.Err != "" {
			fmt.Fprintln(rs.out, "no result yet")
			break
		}
		fmt.Fprintf(rs.out, "%016x\n", rs.last.Result.Fingerprint())
	case ".verb":
		Verbose = !Verbose
		fmt.Fprintf(rs.out, "verbose: %v.\n", Verbose)
	case "%start":
		rs.kernel.Start()
	case "%stop":
		rs.kernel.Stop()
	case "%reset":
		rs.kernel.Reset()
	case "%interrupt":
		rs.kernel.Interrupt()
	default:
		fmt.Fprintf(rs.out, "unknown command '%s'; try .help\n", first)
	}
	return true, false
}

func (rs *replSession) eval(program string) {
	reply := rs.kernel.Eval(program)
	rs.last = reply
	rs.have = true
	if reply.Err != "" {
		fmt.Fprintln(rs.out, reply.Err)
		return
	}
	printResult(rs.out, reply.Result, rs.cfg.Json)
}

func printResult(out io.Writer, e Expression, asJson bool) {
	if asJson {
		by, err := ExpressionToJson(e)
		if err != nil {
			fmt.Fprintf(out, "Error: could not encode result as JSON: %v\n", err)
			return
		}
		fmt.Fprintln(out, string(by))
		return
	}
	fmt.Fprintln(out, e.String())
}

// evalOnce runs program in a fresh interpreter and returns the
// process exit status.
func evalOnce(cfg *PlotscriptConfig, startup string, program string) int {
	interp := NewInterpreter()
	if err := RunStartup(interp, startup); err != nil {
		log.Errf("%v", err)
	}
	res, err := interp.EvalString(program)
	if err != nil {
		fmt.Fprintln(cfg.Stdout, err)
		return 1
	}
	printResult(cfg.Stdout, res, cfg.Json)
	return 0
}

// RunMain does the work of the plotscript command and returns its
// exit status: -e evaluates one program, a file argument evaluates
// that file, otherwise an interactive repl runs against a Kernel.
func RunMain(cfg *PlotscriptConfig) int {
	startup, err := LoadStartup(cfg.StartupFile)
	if err != nil {
		log.Errf("%v", err)
		return 1
	}

	if cfg.Command != "" {
		return evalOnce(cfg, startup, cfg.Command)
	}

	if args := cfg.Flags.Args(); len(args) > 0 {
		src, err := os.ReadFile(args[0])
		if err != nil {
			log.Errf("could not read program file: %v", err)
			return 1
		}
		return evalOnce(cfg, startup, string(src))
	}

	k := NewKernel(startup)
	if cfg.TranscriptFile != "" {
		t, err := OpenTranscript(cfg.TranscriptFile)
		if err != nil {
			log.Errf("%v", err)
			return 1
		}
		defer t.Close()
		k.SetTranscript(t)
	}
	k.Start()
	Repl(k, cfg)
	k.Stop()
	return 0
}

// like main() for a standalone repl, now in library
func ReplMain(cfg *PlotscriptConfig) {
	os.Exit(RunMain(cfg))
}
