// Package repl implements the interactive prompt loop: it reads operator
// lines, applies configuration commands to the session and forwards
// everything else to the inference binary.
package repl

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/output"
	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/session"
)

// Invoker runs one prompt to completion and returns its exit code.
type Invoker interface {
	Invoke(ctx context.Context, s session.Snapshot, prompt string) int
}

// State of the loop.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// StatFunc reports whether a path exists; os.Stat by default.
type StatFunc func(name string) (os.FileInfo, error)

// TurnContextFunc derives the context for one invocation.
type TurnContextFunc func(parent context.Context) (context.Context, context.CancelFunc)

// InterruptContext cancels the turn when the process receives an
// interrupt. The handler only exists while a turn runs, so Ctrl-C at the
// idle prompt still ends the program.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}

// Loop is the interactive prompt loop.
type Loop struct {
	in      *bufio.Reader
	console *output.Console
	session *session.State
	invoker Invoker
	stat    StatFunc
	turnCtx TurnContextFunc
	state   State
}

// Option configures a Loop.
type Option func(*Loop)

// WithStat replaces os.Stat in the sanity check.
func WithStat(fn StatFunc) Option {
	return func(l *Loop) {
		l.stat = fn
	}
}

// WithTurnContext replaces InterruptContext.
func WithTurnContext(fn TurnContextFunc) Option {
	return func(l *Loop) {
		l.turnCtx = fn
	}
}

// New creates a loop reading from in.
func New(in io.Reader, console *output.Console, s *session.State, inv Invoker, opts ...Option) *Loop {
	l := &Loop{
		in:      bufio.NewReader(in),
		console: console,
		session: s,
		invoker: inv,
		stat:    os.Stat,
		turnCtx: InterruptContext,
		state:   Running,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current loop state.
func (l *Loop) State() State {
	return l.state
}

// Run prints the banner and the sanity check, then processes lines until
// an exit command, end of input or a read error.
func (l *Loop) Run(ctx context.Context) {
	PrintUsage(l.console)
	l.SanityCheck()

	for l.state == Running {
		if ctx.Err() != nil {
			break
		}
		l.console.Prompt()

		line, err := l.in.ReadString('\n')
		if line != "" {
			l.handle(ctx, line)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.console.Sink().Warn("input read failed", err)
			}
			l.console.Blank()
			break
		}
	}

	l.state = Terminated
	l.console.Println("[litert] session closed.")
}

// SanityCheck reports missing files for the current session.
func (l *Loop) SanityCheck() {
	Check(l.console, l.session.Snapshot(), l.stat)
}

// handle processes a single input line.
func (l *Loop) handle(ctx context.Context, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	if isExit(line) {
		l.state = Terminated
		return
	}
	if l.command(line) {
		return
	}

	snap := l.session.Snapshot()
	turnCtx, cancel := l.turnCtx(ctx)
	code := l.invoker.Invoke(turnCtx, snap, line)
	cancel()

	if code != 0 {
		l.console.Printf("[litert] %s exited with code=%d", filepath.Base(snap.ExecutablePath), code)
		l.console.Printf("[litert] hint: check that the .so libraries are in %s and that the backend/model path are correct.", snap.LibraryPath)
	}
}
