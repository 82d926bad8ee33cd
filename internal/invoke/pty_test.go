//go:build linux || darwin

package invoke_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/invoke"
	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/session"
)

func TestInvokePTYMode(t *testing.T) {
	if _, err := os.Stat("/dev/ptmx"); err != nil {
		t.Skip("no pty support in this environment")
	}
	bin := fakeBinary(t, `if [ -t 1 ]; then echo tty; else echo notty; fi
echo err-line 1>&2
exit 4`)
	var buf bytes.Buffer
	inv := newInvoker(&buf, invoke.Config{PTY: true})

	code := inv.Invoke(context.Background(), snapshot(session.BackendCPU, bin), "p")
	if code != 4 {
		t.Fatalf("Invoke() = %d, want 4; output:\n%s", code, buf.String())
	}
	if got, want := buf.String(), "tty\nerr-line\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if strings.Contains(buf.String(), "\r") {
		t.Errorf("carriage returns should be stripped: %q", buf.String())
	}
}
