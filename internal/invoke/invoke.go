// Package invoke runs the inference executable once per prompt, streaming
// its merged stdout/stderr to the console and reporting its exit code.
package invoke

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/output"
	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/session"
)

// Sentinel exit codes synthesized when the child never ran to completion.
const (
	ExitStartFailure = 127
	ExitInterrupted  = 130
)

// LibraryPathEnv is exported to the child for gpu runs.
const LibraryPathEnv = "LD_LIBRARY_PATH"

// DefaultWaitDelay is how long an interrupted child gets between SIGTERM
// and SIGKILL.
const DefaultWaitDelay = 3 * time.Second

// Config holds configuration for the Invoker.
type Config struct {
	// PTY starts the child on a pseudo-terminal instead of a pipe.
	PTY bool

	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration

	// Environ returns the inherited environment (default: os.Environ).
	Environ func() []string
}

// Invoker runs the inference binary.
type Invoker struct {
	console   *output.Console
	usePTY    bool
	waitDelay time.Duration
	environ   func() []string
}

// New creates an Invoker printing to console.
func New(console *output.Console, cfg Config) *Invoker {
	inv := &Invoker{
		console:   console,
		usePTY:    cfg.PTY,
		waitDelay: cfg.WaitDelay,
		environ:   cfg.Environ,
	}
	if inv.waitDelay <= 0 {
		inv.waitDelay = DefaultWaitDelay
	}
	if inv.environ == nil {
		inv.environ = os.Environ
	}
	return inv
}

// Args builds the argument vector. The prompt is passed as one argument
// value, verbatim.
func Args(s session.Snapshot, prompt string) []string {
	return []string{
		s.ExecutablePath,
		"--backend=" + string(s.Backend),
		"--model_path=" + s.ModelPath,
		"--input_prompt=" + prompt,
	}
}

// Env returns base unchanged for cpu. For gpu it returns a copy with
// LD_LIBRARY_PATH set to the session library path, replacing any
// inherited value.
func Env(base []string, s session.Snapshot) []string {
	if s.Backend != session.BackendGPU {
		return base
	}
	env := make([]string, 0, len(base)+1)
	for _, kv := range base {
		if strings.HasPrefix(kv, LibraryPathEnv+"=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, LibraryPathEnv+"="+s.LibraryPath)
}

// Invoke runs the executable for prompt and blocks until it exits.
// It returns the child's exit code, ExitStartFailure if it could not be
// started, or ExitInterrupted if ctx was cancelled while it ran.
func (inv *Invoker) Invoke(ctx context.Context, s session.Snapshot, prompt string) int {
	sink := inv.console.Sink()
	argv := Args(s, prompt)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = Env(inv.environ(), s)
	cmd.Cancel = func() error { return terminate(cmd.Process) }
	cmd.WaitDelay = inv.waitDelay

	sink.Verbose("exec: " + strings.Join(argv, " "))

	// Ask the child to go away on every return path. After a normal Wait
	// this is a no-op (os.ErrProcessDone).
	defer func() {
		if cmd.Process != nil {
			_ = terminate(cmd.Process)
		}
	}()

	var stream io.ReadCloser
	var err error
	if inv.usePTY {
		stream, err = startPTY(cmd)
	} else {
		stream, err = startPipe(cmd)
	}
	if err != nil {
		if ctx.Err() != nil {
			return inv.interrupted(ctx.Err())
		}
		inv.console.Printf("[litert] failed to start %s: %v", s.ExecutablePath, err)
		sink.Error("start failed", err)
		return ExitStartFailure
	}
	defer stream.Close()

	// Unblock the reader if the turn is cancelled while a grandchild still
	// holds the write side open.
	stop := context.AfterFunc(ctx, func() { stream.Close() })
	defer stop()

	inv.stream(ctx, stream)

	err = cmd.Wait()
	if ctx.Err() != nil {
		return inv.interrupted(ctx.Err())
	}
	if cmd.ProcessState != nil {
		return exitCode(cmd.ProcessState)
	}
	inv.console.Printf("[litert] wait failed: %v", err)
	sink.Error("wait failed", err)
	return ExitStartFailure
}

// stream copies the child's output to the console line by line until EOF.
func (inv *Invoker) stream(ctx context.Context, r io.Reader) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			inv.console.Println(strings.TrimSuffix(line, "\r"))
		}
		if err != nil {
			if !endOfStream(err) && ctx.Err() == nil {
				inv.console.Sink().Warn("output read stopped", err)
			}
			return
		}
	}
}

func (inv *Invoker) interrupted(cause error) int {
	inv.console.Println("[litert] interrupted.")
	inv.console.Sink().Warn("interrupted", cause)
	return ExitInterrupted
}

func startPipe(cmd *exec.Cmd) (io.ReadCloser, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	// One descriptor for both streams keeps the kernel's interleaving.
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	pw.Close()
	return pr, nil
}

func endOfStream(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || isPTYClosed(err)
}
