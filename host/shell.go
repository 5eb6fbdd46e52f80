package host

import (
	"errors"
	"io"
	"os/exec"
	"syscall"

	"github.com/dcastro-mk/gomk/mk"
)

// Shell runs command lines through a POSIX-compatible shell via
// os/exec, the way the teacher's own command runner distinguishes an
// unreachable shell from a non-zero exit from a signal-terminated
// child.
type Shell struct {
	// Path is the shell binary to invoke, e.g. "/bin/sh". Defaults to
	// /bin/sh when empty.
	Path string
}

// Run executes command via "sh -c command", writing its combined
// stdout/stderr to out.
func (s Shell) Run(command string, out io.Writer) mk.RunStatus {
	path := s.Path
	if path == "" {
		path = "/bin/sh"
	}
	cmd := exec.Command(path, "-c", command)
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if err == nil {
		return mk.RunStatus{Kind: mk.RunExited, Code: 0}
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return mk.RunStatus{Kind: mk.RunUnreachable}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			sig := ws.Signal()
			if sig == syscall.SIGINT || sig == syscall.SIGQUIT {
				return mk.RunStatus{Kind: mk.RunInterrupted, Signal: int(sig)}
			}
			return mk.RunStatus{Kind: mk.RunExited, Code: 128 + int(sig)}
		}
		return mk.RunStatus{Kind: mk.RunExited, Code: exitErr.ExitCode()}
	}

	return mk.RunStatus{Kind: mk.RunUnreachable}
}
