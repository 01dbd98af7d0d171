/*
The plotscript command line REPL and script runner.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glycerine/plotscript/plotscript"
)

func usage(myflags *flag.FlagSet) {
	fmt.Printf("plotscript command line help:\n")
	fmt.Printf("  plotscript [flags]            interactive repl\n")
	fmt.Printf("  plotscript [flags] file.pls   evaluate a program file\n")
	fmt.Printf("  plotscript -e '(program)'     evaluate one program\n")
	myflags.PrintDefaults()
	os.Exit(1)
}

func main() {
	cfg := plotscript.NewPlotscriptConfig("plotscript")
	cfg.DefineFlags()
	err := cfg.Flags.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		usage(cfg.Flags)
	}

	if err != nil {
		panic(err)
	}
	err = cfg.ValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "plotscript command line error: '%v'\n", err)
		usage(cfg.Flags)
	}

	// the library does all the heavy lifting.
	plotscript.ReplMain(cfg)
}
