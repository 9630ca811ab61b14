// Package logger configures the process wide logger that the devutils packages log to
package logger

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Log writes an info entry with the given message and key/value pairs to the default logger
func Log(msg string, args ...interface{}) {
	hclog.Default().Info(msg, args...)
}

// Configure replaces the default logger with one that has the given name and level and writes
// to out. The level is one of trace, debug, info, warn, or error. A nil out means stderr.
func Configure(name, level string, out io.Writer) hclog.Logger {
	if out == nil {
		out = hclog.DefaultOutput
	}
	hclog.DefaultOptions = &hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.LevelFromString(level),
		Output: out,
	}
	l := hclog.New(hclog.DefaultOptions)
	hclog.SetDefault(l)
	return l
}
