// Package litert provides a public API for the interactive LiteRT-LM
// prompt runner.
//
// It drives an external litert_lm_main binary once per prompt, streaming
// its merged stdout/stderr, and lets the operator change the binary,
// model, backend and library path between prompts.
//
// Basic usage:
//
//	err := litert.Run(ctx, nil) // stdin/stdout, device defaults
//
// With options:
//
//	err := litert.Run(ctx, &litert.RunOptions{
//	    ExecutablePath: "/data/local/tmp/litert_lm_main",
//	    Backend:        "cpu",
//	    Input:          strings.NewReader("hello\n/exit\n"),
//	    Output:         &buf,
//	})
package litert

import (
	"context"
	"io"
	"os"

	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/config"
	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/invoke"
	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/output"
	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/repl"
	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/session"
)

// Sink receives the verbose side channel: every console line plus
// warnings and errors.
type Sink = output.Sink

// Sentinel exit codes reported for a turn.
const (
	ExitStartFailure = invoke.ExitStartFailure
	ExitInterrupted  = invoke.ExitInterrupted
)

// RunOptions configures a session.
type RunOptions struct {
	// ExecutablePath, ModelPath, Backend and LibraryPath seed the session.
	// Empty values use the device defaults under /data/local/tmp.
	ExecutablePath string
	ModelPath      string
	Backend        string
	LibraryPath    string

	// PTY runs the binary on a pseudo-terminal so it line-buffers its output.
	PTY bool

	// Input and Output default to os.Stdin and os.Stdout.
	Input  io.Reader
	Output io.Writer

	// Sink overrides the log side channel. When nil, a zerolog sink is
	// created if Verbose or LogFile is set; otherwise nothing is logged.
	Sink Sink

	// Verbose mirrors the side channel to stderr.
	Verbose bool
	// LogFile appends the side channel to a file.
	LogFile string
	// LogLevel filters the side channel (trace, debug, info, warn, error).
	LogLevel string
}

// Run starts the interactive loop and blocks until the operator exits or
// input ends. Only invalid options produce an error; failed prompts are
// reported on Output and never end the session.
func Run(ctx context.Context, opts *RunOptions) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	s, err := opts.session()
	if err != nil {
		return err
	}

	sink, closeSink, err := opts.sink()
	if err != nil {
		return err
	}
	defer closeSink()

	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	console := output.NewConsole(opts.output(), sink)
	inv := invoke.New(console, invoke.Config{PTY: opts.PTY})

	repl.New(in, console, s, inv).Run(ctx)
	return nil
}

// Check prints the advisory sanity report for the configured paths.
func Check(opts *RunOptions) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	s, err := opts.session()
	if err != nil {
		return err
	}
	repl.Check(output.NewConsole(opts.output(), opts.Sink), s.Snapshot(), nil)
	return nil
}

func (o *RunOptions) session() (*session.State, error) {
	return config.NewConfig().
		WithExecutable(o.ExecutablePath).
		WithModel(o.ModelPath).
		WithBackend(o.Backend).
		WithLibraryPath(o.LibraryPath).
		Session()
}

func (o *RunOptions) output() io.Writer {
	if o.Output == nil {
		return os.Stdout
	}
	return o.Output
}

func (o *RunOptions) sink() (Sink, func(), error) {
	if o.Sink != nil {
		return o.Sink, func() {}, nil
	}
	if !o.Verbose && o.LogFile == "" {
		return output.NopSink{}, func() {}, nil
	}
	ls, err := output.NewLogSink(output.LogConfig{
		Level:   o.LogLevel,
		File:    o.LogFile,
		Console: o.Verbose,
	})
	if err != nil {
		return nil, nil, err
	}
	return ls, func() { ls.Close() }, nil
}
