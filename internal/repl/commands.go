package repl

import (
	"os"
	"strings"

	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/output"
	"github.com/userddssilva/DevTitans-Hands-On-Final/internal/session"
)

var exitKeywords = []string{"/exit", "exit", "sair"}

func isExit(line string) bool {
	for _, kw := range exitKeywords {
		if strings.EqualFold(line, kw) {
			return true
		}
	}
	return false
}

// command is a "/name <arg>" line that updates the session.
type command struct {
	prefix string // includes the separating space
	usage  string
	set    func(s *session.State, arg string) error
	echo   func(s *session.State) string
}

var commands = []command{
	{
		prefix: "/backend ",
		usage:  "Usage: /backend cpu|gpu",
		set:    (*session.State).SetBackend,
		echo:   func(s *session.State) string { return "backend=" + string(s.Backend()) },
	},
	{
		prefix: "/model ",
		usage:  "Usage: /model <path>",
		set:    (*session.State).SetModelPath,
		echo:   func(s *session.State) string { return "modelPath=" + s.ModelPath() },
	},
	{
		prefix: "/bin ",
		usage:  "Usage: /bin <path>",
		set:    (*session.State).SetExecutablePath,
		echo:   func(s *session.State) string { return "binPath=" + s.ExecutablePath() },
	},
	{
		prefix: "/ld ",
		usage:  "Usage: /ld <path>",
		set:    (*session.State).SetLibraryPath,
		echo:   func(s *session.State) string { return "LD_LIBRARY_PATH=" + s.LibraryPath() },
	},
}

// command applies line if it is a session command and reports whether it was one.
// Prefixes are case-sensitive; a bare "/model" is not a command.
func (l *Loop) command(line string) bool {
	for _, c := range commands {
		if !strings.HasPrefix(line, c.prefix) {
			continue
		}
		arg := strings.TrimSpace(line[len(c.prefix):])
		if err := c.set(l.session, arg); err != nil {
			l.console.Println(c.usage)
			return true
		}
		l.console.Println("[litert] " + c.echo(l.session))
		return true
	}
	return false
}

// PrintUsage prints the banner listing the available commands.
func PrintUsage(c *output.Console) {
	c.Println("=== DevTITANS LiteRt: prompt runner for litert_lm_main ===")
	c.Println("Type a prompt and press ENTER.")
	c.Println("Commands:")
	c.Println("  /exit")
	c.Println("  /backend cpu|gpu")
	c.Println("  /model /path/on/device/model.litertlm")
	c.Println("  /bin   /path/on/device/litert_lm_main")
	c.Println("  /ld    /path/on/device (LD_LIBRARY_PATH)")
	c.Blank()
}

// Check prints advisory warnings about the session paths. It never fails.
func Check(c *output.Console, s session.Snapshot, stat StatFunc) {
	if stat == nil {
		stat = os.Stat
	}
	if _, err := stat(s.ExecutablePath); err != nil {
		c.Printf("[litert] warning: binary not found at %s", s.ExecutablePath)
		c.Printf("[litert] verify with: adb shell ls -l %s", s.ExecutablePath)
	}
	if _, err := stat(s.ModelPath); err != nil {
		c.Printf("[litert] warning: model not found at %s", s.ModelPath)
		c.Printf("[litert] verify with: adb shell ls -l %s", s.ModelPath)
	}
	if s.Backend == session.BackendGPU {
		c.Printf("[litert] GPU: using LD_LIBRARY_PATH=%s", s.LibraryPath)
	}
}
