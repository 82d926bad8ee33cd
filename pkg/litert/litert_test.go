package litert_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userddssilva/DevTitans-Hands-On-Final/pkg/litert"
)

type recordingSink struct {
	lines []string
	warns []string
	errs  []string
}

func (r *recordingSink) Verbose(msg string)          { r.lines = append(r.lines, msg) }
func (r *recordingSink) Warn(msg string, err error)  { r.warns = append(r.warns, msg) }
func (r *recordingSink) Error(msg string, err error) { r.errs = append(r.errs, msg) }

func run(t *testing.T, input string, opts ...litert.Option) (string, *recordingSink) {
	t.Helper()
	var out bytes.Buffer
	sink := &recordingSink{}
	opts = append(opts, litert.WithIO(strings.NewReader(input), &out), litert.WithSink(sink))
	require.NoError(t, litert.RunWith(context.Background(), opts...))
	return out.String(), sink
}

func TestScenarioBackendGPU(t *testing.T) {
	out, _ := run(t, "/backend gpu\n", litert.WithBackend("cpu"))

	assert.Contains(t, out, "backend=gpu")
}

func TestScenarioInvalidBackend(t *testing.T) {
	out, _ := run(t, "/backend xyz\n/exit\n")

	assert.Contains(t, out, "Usage: /backend cpu|gpu")
	assert.NotContains(t, out, "backend=xyz")
	// the sanity check still reports the gpu library path
	assert.Contains(t, out, "GPU: using LD_LIBRARY_PATH=/data/local/tmp")
}

func TestScenarioMissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "litert_lm_main")
	out, sink := run(t, "hello world\n/model /tmp/m\n", litert.WithExecutable(missing))

	assert.Contains(t, out, "exited with code=127")
	assert.Contains(t, out, "[litert] modelPath=/tmp/m", "loop re-prompts after a failed turn")
	assert.Len(t, sink.errs, 1)
}

func TestScenarioExit(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "never-run")
	out, _ := run(t, "/exit\nhello\n", litert.WithExecutable(bin))

	assert.True(t, strings.HasSuffix(out, "[litert] session closed.\n"))
	assert.NotContains(t, out, "exited with code")
}

func TestScenarioEmptyLineBinEOF(t *testing.T) {
	out, sink := run(t, "\n/bin /tmp/x")

	assert.Contains(t, out, "[litert] binPath=/tmp/x")
	assert.Contains(t, out, "session closed")
	assert.Contains(t, sink.lines, "[litert] binPath=/tmp/x", "configuration changes are mirrored")
	assert.Empty(t, sink.errs)
}

func TestRunEndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "litert_lm_main")
	script := "#!/bin/sh\necho \"$1 $2\"\necho \"ld=${LD_LIBRARY_PATH-none}\" 1>&2\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
	model := filepath.Join(dir, "model.litertlm")
	require.NoError(t, os.WriteFile(model, nil, 0644))

	out, sink := run(t, "first\n/backend cpu\nsecond\n",
		litert.WithExecutable(bin),
		litert.WithModel(model),
		litert.WithLibraryPath(dir),
	)

	assert.NotContains(t, out, "warning:", "both files exist")
	assert.Contains(t, out, "--backend=gpu --model_path="+model+"\nld="+dir+"\n")
	assert.Contains(t, out, "--backend=cpu --model_path="+model+"\n")
	assert.Contains(t, sink.lines, "--backend=gpu --model_path="+model)
	assert.NotContains(t, out, "exited with code")
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	err := litert.RunWith(context.Background(),
		litert.WithBackend("tpu"),
		litert.WithIO(strings.NewReader(""), &bytes.Buffer{}),
	)
	assert.Error(t, err)
}

func TestRunWithLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "litert.log")
	var out bytes.Buffer

	err := litert.RunWith(context.Background(),
		litert.WithIO(strings.NewReader("/ld /vendor/lib64\n"), &out),
		litert.WithLogFile(logPath),
	)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "LD_LIBRARY_PATH=/vendor/lib64")
	assert.Contains(t, string(data), `"tag":"litert"`)
}

func TestCheck(t *testing.T) {
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing")

	err := litert.Check(&litert.RunOptions{
		ExecutablePath: missing,
		Backend:        "cpu",
		Output:         &out,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "warning: binary not found at "+missing)
	assert.NotContains(t, out.String(), "GPU:")
}
