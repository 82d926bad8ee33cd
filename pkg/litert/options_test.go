package litert_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/userddssilva/DevTitans-Hands-On-Final/pkg/litert"
)

func TestDefaultOptions(t *testing.T) {
	opts := litert.DefaultOptions()

	if opts.ExecutablePath != "" || opts.ModelPath != "" || opts.Backend != "" || opts.LibraryPath != "" {
		t.Errorf("expected empty paths so device defaults apply, got %+v", opts)
	}
	if opts.PTY {
		t.Error("PTY should be false by default")
	}
	if opts.Verbose {
		t.Error("Verbose should be false by default")
	}
	if opts.Sink != nil {
		t.Error("Sink should be nil by default")
	}
}

func TestApplyOptions(t *testing.T) {
	in := strings.NewReader("")
	var out bytes.Buffer

	opts := litert.ApplyOptions(
		litert.WithExecutable("/tmp/bin"),
		litert.WithModel("/tmp/model"),
		litert.WithBackend("cpu"),
		litert.WithLibraryPath("/tmp/lib"),
		litert.WithPTY(),
		litert.WithIO(in, &out),
		litert.WithVerbose(),
		litert.WithLogFile("/tmp/litert.log"),
	)

	if opts.ExecutablePath != "/tmp/bin" {
		t.Errorf("expected ExecutablePath '/tmp/bin', got %s", opts.ExecutablePath)
	}
	if opts.ModelPath != "/tmp/model" {
		t.Errorf("expected ModelPath '/tmp/model', got %s", opts.ModelPath)
	}
	if opts.Backend != "cpu" {
		t.Errorf("expected Backend 'cpu', got %s", opts.Backend)
	}
	if opts.LibraryPath != "/tmp/lib" {
		t.Errorf("expected LibraryPath '/tmp/lib', got %s", opts.LibraryPath)
	}
	if !opts.PTY {
		t.Error("PTY should be true")
	}
	if opts.Input != in || opts.Output != &out {
		t.Error("WithIO should set Input and Output")
	}
	if !opts.Verbose {
		t.Error("Verbose should be true")
	}
	if opts.LogFile != "/tmp/litert.log" {
		t.Errorf("expected LogFile '/tmp/litert.log', got %s", opts.LogFile)
	}
}

func TestWithSink(t *testing.T) {
	sink := &recordingSink{}
	opts := litert.ApplyOptions(litert.WithSink(sink))

	if opts.Sink != sink {
		t.Error("WithSink should set Sink")
	}
}
