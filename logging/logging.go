// Package logging is a thin tracing facade over charmbracelet/log, the
// teacher's structured-logging dependency. Each core package gets its
// own named sub-logger with an independently settable level; no
// behavior anywhere in the core depends on whether a given logger is
// enabled, per SPEC_FULL.md's ambient stack.
package logging

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	root   = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	named  = map[string]*log.Logger{}
	levels = map[string]log.Level{}
)

// For returns the named sub-logger for a core package ("parser", "fir",
// "graph", ...), creating it on first use with the level SetLevel
// recorded for name, or root's default level if there is none.
func For(name string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if l, ok := named[name]; ok {
		return l
	}
	l := root.With("pkg", name)
	if lvl, ok := levels[name]; ok {
		l.SetLevel(lvl)
	}
	named[name] = l
	return l
}

// SetLevel records the level for a named sub-logger and applies it at
// once if For(name) has already created that logger; otherwise For
// applies it when it first creates the logger.
func SetLevel(name string, level log.Level) {
	mu.Lock()
	defer mu.Unlock()
	levels[name] = level
	if l, ok := named[name]; ok {
		l.SetLevel(level)
	}
}

// SetOutput redirects every existing and future named logger's output,
// used by cmd/ harnesses that want logs on a file instead of stderr.
func SetOutput(w *os.File) {
	mu.Lock()
	defer mu.Unlock()
	// Redirect in place so *log.Logger values already handed out by For
	// (e.g. package-level vars) switch writers too.
	root.SetOutput(w)
	for _, l := range named {
		l.SetOutput(w)
	}
}
