package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores the terminal; tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var osExit = os.Exit

var (
	crashMu       sync.Mutex
	crashTerminal Finalizer
	crashLog      func(r any, stack []byte)
	exitFn        = osExit
)

// RegisterCrashTerminal sets the screen restored before a crash report is printed
func RegisterCrashTerminal(f Finalizer) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashTerminal = f
}

// RegisterCrashLogger sets an extra sink (the debug log file) for crash reports
func RegisterCrashLogger(fn func(r any, stack []byte)) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashLog = fn
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term, logFn := crashTerminal, crashLog
	crashMu.Unlock()

	// Restore terminal to sane state before writing to stderr
	if term != nil {
		term.Fini()
	}

	stack := debug.Stack()
	if logFn != nil {
		logFn(r, stack)
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()

	exitFn(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
