//go:build !windows

package invoke

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// terminate asks the process to exit.
func terminate(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Signal(syscall.SIGTERM)
}

// exitCode follows the shell convention of 128+signal for children killed
// by a signal.
func exitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}

func startPTY(cmd *exec.Cmd) (io.ReadCloser, error) {
	return pty.Start(cmd)
}

// Reading the master side of a pty returns EIO once the child has exited.
func isPTYClosed(err error) bool {
	var pathErr *os.PathError
	return errors.As(err, &pathErr) && errors.Is(pathErr.Err, syscall.EIO)
}
