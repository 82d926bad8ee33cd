// Package output provides the console writer used by the prompt runner.
// Every user-visible line goes to the console writer and is mirrored to an
// optional log sink.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// PromptMarker is printed before each read of operator input.
const PromptMarker = "> "

// Console writes lines to the operator and mirrors them to a Sink.
type Console struct {
	out  io.Writer
	sink Sink
	mu   sync.Mutex
}

// NewConsole creates a console writing to out. A nil sink is replaced by NopSink.
func NewConsole(out io.Writer, sink Sink) *Console {
	if sink == nil {
		sink = NopSink{}
	}
	return &Console{out: out, sink: sink}
}

// Sink returns the side-channel sink this console mirrors to.
func (c *Console) Sink() Sink {
	return c.sink
}

// Println prints a line and mirrors it to the sink.
func (c *Console) Println(a ...any) {
	line := fmt.Sprintln(a...)
	c.write(line)
	c.sink.Verbose(strings.TrimSuffix(line, "\n"))
}

// Printf formats a line, prints it with a trailing newline and mirrors it.
func (c *Console) Printf(format string, a ...any) {
	line := fmt.Sprintf(format, a...)
	c.write(line + "\n")
	c.sink.Verbose(line)
}

// Blank prints an empty line. It is not mirrored.
func (c *Console) Blank() {
	c.write("\n")
}

// Prompt prints the input marker without a newline. It is not mirrored.
func (c *Console) Prompt() {
	c.write(PromptMarker)
}

func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Console output is best effort; a closed stdout must not stop the loop.
	_, _ = io.WriteString(c.out, s)
}
