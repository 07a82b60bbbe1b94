package tools

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// Terminal executes external commands with allow/deny checks.
type Terminal struct {
	WorkingDir     string
	Allowed        []string
	Denied         []string
	Timeout        time.Duration
	AllowExecution bool
}

// ExecResult carries output and status code.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined joins stdout and stderr the way build logs are usually read.
func (r ExecResult) Combined() string {
	out := r.Stdout
	if r.Stderr != "" {
		if out != "" {
			out += "\n"
		}
		out += r.Stderr
	}
	return out
}

// Exec runs a command in the terminal's working directory.
func (t *Terminal) Exec(ctx context.Context, command string, args ...string) (ExecResult, error) {
	return t.ExecIn(ctx, t.WorkingDir, command, args...)
}

// ExecIn runs a command in dir if allowed by configuration.
func (t *Terminal) ExecIn(ctx context.Context, dir string, command string, args ...string) (ExecResult, error) {
	if !t.AllowExecution {
		return ExecResult{}, Validation("exec", "execution disabled by configuration")
	}
	if command == "" {
		return ExecResult{}, Validation("exec", "command is required")
	}
	if err := t.validateCommand(command); err != nil {
		return ExecResult{}, err
	}

	// a deadline already set by the caller wins over the configured timeout
	if _, ok := ctx.Deadline(); !ok {
		timeout := t.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		ExitCode: func() int {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return exitErr.ExitCode()
			}
			if err != nil {
				return -1
			}
			return 0
		}(),
	}

	if err != nil {
		return res, ProcessFailure("exec "+command, err, res.Stderr, res.ExitCode)
	}
	return res, nil
}

func (t *Terminal) validateCommand(cmd string) error {
	lower := strings.ToLower(cmd)
	for _, deny := range t.Denied {
		if lower == strings.ToLower(deny) {
			return Validation("exec", "command %q is denied", cmd)
		}
	}
	if len(t.Allowed) > 0 {
		for _, allow := range t.Allowed {
			if lower == strings.ToLower(allow) {
				return nil
			}
		}
		return Validation("exec", "command %q is not in allowlist", cmd)
	}
	return nil
}
