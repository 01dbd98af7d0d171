package plotscript

import (
	"fmt"
	"path"
	"runtime"
	"time"
)

var Verbose bool // set to true to debug

// get timestamp for logging purposes
func ts() string {
	return time.Now().Format("2006-01-02 15:04:05.999 -0700 MST")
}

// VPrintf prints with file:line and a timestamp when Verbose is on.
func VPrintf(format string, a ...interface{}) {
	if Verbose {
		fmt.Printf("\n%s %s ", FileLine(2), ts())
		fmt.Printf(format+"\n", a...)
	}
}

func FileLine(depth int) string {
	_, fileName, fileLine, ok := runtime.Caller(depth)
	var s string
	if ok {
		s = fmt.Sprintf("%s:%d", path.Base(fileName), fileLine)
	} else {
		s = ""
	}
	return s
}
