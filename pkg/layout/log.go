package layout

import (
	"io"
	"log"
)

// logger receives layout diagnostics. It discards output until SetLogOutput
// is called.
var logger = log.New(io.Discard, "layout: ", 0)

// SetLogOutput directs layout diagnostics to w. Pass nil to silence them.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	logger.SetOutput(w)
}

// Logf writes a diagnostic line. Containers built outside this package use it
// to report through the same sink.
func Logf(format string, args ...any) {
	logger.Printf(format, args...)
}
