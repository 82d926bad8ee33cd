//go:build windows

package invoke

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

func terminate(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}

func exitCode(state *os.ProcessState) int {
	return state.ExitCode()
}

func startPTY(cmd *exec.Cmd) (io.ReadCloser, error) {
	return nil, errors.New("pty mode is not supported on windows")
}

func isPTYClosed(error) bool { return false }
