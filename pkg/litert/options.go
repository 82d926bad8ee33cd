package litert

import (
	"context"
	"io"
)

// Version is the current version of litert.
const Version = "0.2.0"

// DefaultOptions returns RunOptions that use the device defaults on
// stdin/stdout with no side channel.
func DefaultOptions() *RunOptions {
	return &RunOptions{}
}

// Option is a functional option for configuring a session.
type Option func(*RunOptions)

// WithExecutable sets the inference binary path.
func WithExecutable(path string) Option {
	return func(o *RunOptions) {
		o.ExecutablePath = path
	}
}

// WithModel sets the model path.
func WithModel(path string) Option {
	return func(o *RunOptions) {
		o.ModelPath = path
	}
}

// WithBackend sets the initial backend (cpu or gpu).
func WithBackend(backend string) Option {
	return func(o *RunOptions) {
		o.Backend = backend
	}
}

// WithLibraryPath sets LD_LIBRARY_PATH used for gpu runs.
func WithLibraryPath(path string) Option {
	return func(o *RunOptions) {
		o.LibraryPath = path
	}
}

// WithPTY runs the binary on a pseudo-terminal.
func WithPTY() Option {
	return func(o *RunOptions) {
		o.PTY = true
	}
}

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *RunOptions) {
		o.Input = in
		o.Output = out
	}
}

// WithSink sets the log side channel.
func WithSink(sink Sink) Option {
	return func(o *RunOptions) {
		o.Sink = sink
	}
}

// WithVerbose mirrors the side channel to stderr.
func WithVerbose() Option {
	return func(o *RunOptions) {
		o.Verbose = true
	}
}

// WithLogFile appends the side channel to path.
func WithLogFile(path string) Option {
	return func(o *RunOptions) {
		o.LogFile = path
	}
}

// ApplyOptions applies functional options to RunOptions.
func ApplyOptions(opts ...Option) *RunOptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunWith runs a session configured with functional options.
//
// Example:
//
//	err := litert.RunWith(ctx,
//	    litert.WithBackend("cpu"),
//	    litert.WithLogFile("/data/local/tmp/litert.log"),
//	)
func RunWith(ctx context.Context, opts ...Option) error {
	return Run(ctx, ApplyOptions(opts...))
}
